package agentlogic

import (
	"math"

	"github.com/talgya/tidemarket/internal/entity"
)

// updateQuotas recomputes an agent's energy and cash quotas on arrival home,
// resets its timeout quota if it met its cash target, and demotes it to a
// fresh Explorer if its timeout quota ran out (design doc Section 4.5.6).
func updateQuotas(v *View, a *entity.Agent) {
	if a.Energy >= v.Config.InitialEnergy {
		a.EnergyQuota = a.Energy
	} else {
		deficit := v.Config.InitialEnergy - a.Energy
		p := float64(deficit) / 10000
		a.EnergyQuota = uint32(math.Ceil(float64(a.Energy) * (1 + p)))
	}

	if a.Cash >= a.CashQuota {
		a.TimeoutQuota = v.Config.TimeoutQuota
	}

	if a.TimeoutQuota == 0 {
		a.Job = entity.Job{Kind: entity.JobExplorer}
		a.TimeoutQuota = v.Config.TimeoutQuota
	}

	a.CashQuota = a.Cash + uint32(float64(a.Cash)*(float64(a.Greed)/100))
}
