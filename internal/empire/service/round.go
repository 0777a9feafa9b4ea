package service

import (
	"math"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/unit"
)

// Networth 身价：金币 + 存款 − 贷款 + 土地×50 + 建筑×150 + 兵力×兵种身价 + 符文×2。
func Networth(e *domain.Empire) int64 {
	nc := basic.BasicConf.Networth
	worth := float64(e.Resources.Gold+e.Savings-e.Loan) +
		float64(e.Resources.Land)*nc.Land +
		float64(e.TotalBuildings())*nc.Building +
		float64(e.Resources.Runes)*nc.Rune
	for name, count := range e.Troops {
		worth += float64(count) * unit.Networth(name)
	}
	return int64(math.Floor(worth))
}

// RecomputeNetworth 身价是派生值，每回合与每次结算后重算。
func RecomputeNetworth(e *domain.Empire) {
	e.Networth = Networth(e)
}

// AdvanceRound 把帝国推进到 nextRound：
// 计息一次、攻击计数清零、没花完的行动点存入奖励点（有上限），
// 行动点恢复 50 并加上奖励点、清理过期限时效果。
func AdvanceRound(e *domain.Empire, nextRound int) {
	ApplyRoundInterest(e)

	e.AttacksThisRound = 0
	e.BonusTurns += e.TurnsRemaining
	if limit := basic.BasicConf.Game.BonusTurnsCap; e.BonusTurns > limit {
		e.BonusTurns = limit
	}
	e.TurnsRemaining = basic.BasicConf.Game.TurnsPerRound + e.BonusTurns
	e.BonusTurns = 0

	clearExpired(&e.Effects.Shield, nextRound)
	clearExpired(&e.Effects.Gate, nextRound)
	clearExpired(&e.Effects.Pacification, nextRound)
	clearExpired(&e.Effects.DivineProtection, nextRound)

	RecomputeNetworth(e)
}

func clearExpired(expiry *int, round int) {
	if *expiry != 0 && *expiry < round {
		*expiry = 0
	}
}
