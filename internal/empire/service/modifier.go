package service

import (
	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/advisor"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/policy"
	"EraRealms/internal/shared/gameconfig/race"
)

// 效果类目，取值必须与 gameconfig 各表的 modifiers key 一致。
const (
	CategoryIncome     = "income"
	CategoryFood       = "food"
	CategoryIndustry   = "industry"
	CategoryExplore    = "explore"
	CategoryMagic      = "magic"
	CategoryOffense    = "offense"
	CategoryDefense    = "defense"
	CategoryBuildCost  = "build_cost"
	CategorySpellCost  = "spell_cost"
	CategoryMarket     = "market"
	CategoryCasualties = "casualties"
)

// Accumulator 是修正值管线的累加器：百分比加法叠加，平差单独累计。
type Accumulator struct {
	Percent float64
	Flat    float64
}

type modifierStage func(e *domain.Empire, category string, acc *Accumulator)

// 组合顺序固定：race → era → mastery → advisor → policy，改顺序就是改语义。
var modifierPipeline = []modifierStage{
	raceStage,
	eraStage,
	masteryStage,
	advisorStage,
	policyStage,
}

// Resolve 汇总一个类目上的净修正值。
func Resolve(e *domain.Empire, category string) Accumulator {
	var acc Accumulator
	for _, stage := range modifierPipeline {
		stage(e, category, &acc)
	}
	return acc
}

// GainMultiplier 收益类目的乘数：1 + pct/100，下限 0。
func GainMultiplier(e *domain.Empire, category string) float64 {
	m := 1 + Resolve(e, category).Percent/100
	if m < 0 {
		return 0
	}
	return m
}

// CostDivisor 成本类目的除数：正向百分比降低成本。
// 下限 0.1，防止配置把成本打成 0 或负数。
func CostDivisor(e *domain.Empire, category string) float64 {
	d := 1 + Resolve(e, category).Percent/100
	if d < 0.1 {
		return 0.1
	}
	return d
}

func raceStage(e *domain.Empire, category string, acc *Accumulator) {
	acc.Percent += race.Modifier(e.Race, category)
}

func eraStage(e *domain.Empire, category string, acc *Accumulator) {
	acc.Percent += era.Modifier(e.Era, category)
}

func masteryStage(e *domain.Empire, category string, acc *Accumulator) {
	action := masteryActionFor(category)
	if action == "" {
		return
	}
	acc.Percent += MasteryPercent(e.MasteryLevel(action))
}

func advisorStage(e *domain.Empire, category string, acc *Accumulator) {
	for _, a := range e.Advisors {
		cfg, ok := advisor.Get(a.CfgId)
		if !ok {
			continue
		}
		// cost_discount 在建造成本处乘法消费，unit_specialist 只在战斗结算消费，
		// 两者都不进通用百分比管线
		switch cfg.Effect.Kind {
		case advisor.EffectPercent:
			if cfg.Effect.Category == category {
				acc.Percent += cfg.Effect.Percent
			}
		case advisor.EffectFlat:
			if cfg.Effect.Category == category {
				acc.Flat += cfg.Effect.Amount
			}
		}
	}
}

func policyStage(e *domain.Empire, category string, acc *Accumulator) {
	for _, p := range e.Policies {
		acc.Percent += policy.Modifier(p, category)
	}
}

// MasteryPercent 专精按档位累进：1~3 级各 +10%，4~5 级各 +15%，总量封顶 60%。
func MasteryPercent(level int) float64 {
	if level <= 0 {
		return 0
	}
	if level > 5 {
		level = 5
	}
	pct := 0.0
	for i := 1; i <= level; i++ {
		if i <= 3 {
			pct += 10
		} else {
			pct += 15
		}
	}
	if pct > 60 {
		pct = 60
	}
	return pct
}

func masteryActionFor(category string) string {
	switch category {
	case CategoryFood:
		return domain.ActionFarm
	case CategoryIncome:
		return domain.ActionCash
	case CategoryExplore:
		return domain.ActionExplore
	case CategoryIndustry:
		return domain.ActionIndustry
	case CategoryMagic:
		return domain.ActionMeditate
	}
	return ""
}

// AdvisorCostMultiplier 折扣类顾问按乘法叠加：两个 20%/25% 的折扣合成 0.80×0.75。
func AdvisorCostMultiplier(e *domain.Empire) float64 {
	m := 1.0
	for _, a := range e.Advisors {
		cfg, ok := advisor.Get(a.CfgId)
		if !ok || cfg.Effect.Kind != advisor.EffectCostDiscount {
			continue
		}
		m *= 1 - cfg.Effect.Discount
	}
	return m
}

// SpecialistOffensePercent 专家型顾问对指定兵种的攻击加成（百分比，可叠加）。
func SpecialistOffensePercent(e *domain.Empire, unitName string) float64 {
	pct := 0.0
	for _, a := range e.Advisors {
		cfg, ok := advisor.Get(a.CfgId)
		if !ok || cfg.Effect.Kind != advisor.EffectUnitSpecialist {
			continue
		}
		if cfg.Effect.BoostUnit == unitName {
			pct += cfg.Effect.BoostPercent
		}
	}
	return pct
}

// SpecialistDefensePercent 专家型顾问对指定兵种的防御惩罚（正值表示削减）。
func SpecialistDefensePercent(e *domain.Empire, unitName string) float64 {
	pct := 0.0
	for _, a := range e.Advisors {
		cfg, ok := advisor.Get(a.CfgId)
		if !ok || cfg.Effect.Kind != advisor.EffectUnitSpecialist {
			continue
		}
		if cfg.Effect.PenaltyUnit == unitName {
			pct += cfg.Effect.PenaltyPercent
		}
	}
	return pct
}
