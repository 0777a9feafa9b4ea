package service

import (
	"math"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
)

// LoanDefeatCeiling 贷款判负线：max(100000, 2×身价)。
// 绝对下限保护开局小帝国，相对上限跟着身价走。
func LoanDefeatCeiling(networth int64) int64 {
	bc := basic.BasicConf.Bank
	relative := int64(math.Floor(float64(networth) * bc.LoanDefeatNetworthRatio))
	if relative < bc.LoanDefeatFloor {
		return bc.LoanDefeatFloor
	}
	return relative
}

// EvaluateDefeat 每个行动批次后调用。判负条件按优先级检查，第一个命中生效；
// 已判负的帝国不再改写原因。abandoned 由外部信号设置，这里不判。
func EvaluateDefeat(e *domain.Empire) bool {
	if e.Defeated {
		return true
	}
	switch {
	case e.Resources.Land <= 0:
		markDefeated(e, domain.DefeatNoLand)
	case e.Peasants <= 0:
		markDefeated(e, domain.DefeatNoPeasants)
	case e.Loan > LoanDefeatCeiling(e.Networth):
		markDefeated(e, domain.DefeatExcessiveLoan)
	default:
		return false
	}
	return true
}

// MarkAbandoned 外部信号（断线超时、主动弃权）触发的判负。
func MarkAbandoned(e *domain.Empire) {
	if e.Defeated {
		return
	}
	markDefeated(e, domain.DefeatAbandoned)
}

func markDefeated(e *domain.Empire, reason string) {
	e.Defeated = true
	e.DefeatReason = reason
}
