package agentlogic

import "github.com/talgya/tidemarket/internal/entity"

// preDispatch runs the three checks every agent goes through before its
// state-specific routine (design doc Section 4.5.1). The bool is true when
// the returned action (None for an already-dead agent, or Die) should be
// returned directly without reaching the state machine, and false when the
// state machine should run.
func preDispatch(v *View, a *entity.Agent) (Action, bool) {
	if a.Dead {
		return Action{Kind: ActionNone}, true
	}

	a.Energy = satSub(a.Energy, v.Config.EnergyCost)
	if a.Energy == 0 {
		return Action{Kind: ActionDie}, true
	}

	if a.TimeoutQuota > 0 {
		a.TimeoutQuota--
	}

	return Action{}, false
}
