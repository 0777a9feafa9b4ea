package service

import (
	"math"
	"math/rand"
	"sort"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"
)

// SpellRuneCost 施法符文成本：(土地×0.1 + 100 + 法师塔×0.2) × 法术倍率 ÷ 法术成本修正。
func SpellRuneCost(e *domain.Empire, name string) int64 {
	sc := basic.BasicConf.Spells
	base := float64(e.Resources.Land)*sc.LandCostRate + sc.BaseCost +
		float64(e.Buildings[domain.BuildingTower])*sc.TowerCostRate
	return int64(math.Floor(base * spell.Multiplier(name) / CostDivisor(e, CategorySpellCost)))
}

// WizardPower 法师战力：法师数 × 时代魔法系数 × 魔法修正。
func WizardPower(e *domain.Empire) float64 {
	wizards := float64(e.Troops[unit.Wizard])
	return wizards * unit.Stats(unit.Wizard, e.Era).Magic * GainMultiplier(e, CategoryMagic)
}

// CanCastSpell 按固定顺序校验施法前置：已判负 → 法术存在 → 健康门槛 →
// 至少 1 名法师 → 符文足够 → 时代法术的边界与冷却。
// 没有法师时无论符文多少都不能施法。
func CanCastSpell(e *domain.Empire, name string, round int) error {
	if e.Defeated {
		return ErrDefeated.WithReason(ReasonDefeated)
	}
	if !spell.Exists(name) {
		return ErrValidation.WithReason(ReasonUnknownSpell).WithData("spell", name)
	}
	if e.Health < basic.BasicConf.Game.HealthActionGate {
		return ErrRuleGate.WithReason(ReasonHealthLow).WithData("health", e.Health)
	}
	if e.Troops[unit.Wizard] < 1 {
		return ErrInsufficient.WithReason(ReasonWizardsShort)
	}
	cost := SpellRuneCost(e, name)
	if cost > e.Resources.Runes {
		return ErrInsufficient.WithReason(ReasonRunesShort).
			WithData("cost", cost).WithData("runes", e.Resources.Runes)
	}
	if spell.Kind(name) == spell.KindEra {
		return canChangeEra(e, name, round)
	}
	return nil
}

// 时代变更：不能越过边界，且上次变更的回合内不能再变（双向冷却一回合）。
func canChangeEra(e *domain.Empire, name string, round int) error {
	target := eraTarget(e.Era, name)
	if target == "" {
		return ErrRuleGate.WithReason(ReasonEraBoundary).WithData("era", e.Era)
	}
	if round <= e.EraChangedRound {
		return ErrRuleGate.WithReason(ReasonEraCooldown).
			WithData("era_changed_round", e.EraChangedRound).WithData("round", round)
	}
	return nil
}

func eraTarget(current, name string) string {
	if name == spell.Advance {
		return era.Next(current)
	}
	return era.Prev(current)
}

// CastSelf 结算 self/era 法术。前置校验由 CanCastSpell 完成，这里只管效果。
func CastSelf(e *domain.Empire, name string, round int) *domain.SpellResult {
	cost := SpellRuneCost(e, name)
	e.Resources.Runes -= cost
	res := &domain.SpellResult{Spell: name, Success: true, RunesSpent: cost}

	detail, _ := spell.Get(name)
	switch name {
	case spell.Shield:
		e.Effects.Shield = round + detail.DurationRounds - 1
	case spell.Gate:
		e.Effects.Gate = round + detail.DurationRounds - 1
	case spell.Food:
		res.FoodGained = selfYield(e, detail.YieldPerLand)
		e.Resources.Food += res.FoodGained
	case spell.Cash:
		res.GoldGained = selfYield(e, detail.YieldPerLand)
		e.Resources.Gold += res.GoldGained
	case spell.Runes:
		res.RunesGained = selfYield(e, detail.YieldPerLand)
		e.Resources.Runes += res.RunesGained
	case spell.Advance, spell.Regress:
		e.Era = eraTarget(e.Era, name)
		e.EraChangedRound = round
		res.NewEra = e.Era
	}
	return res
}

func selfYield(e *domain.Empire, perLand float64) int64 {
	return int64(math.Floor(float64(e.Resources.Land) * perLand * GainMultiplier(e, CategoryMagic)))
}

// CastOffensive 结算进攻法术：法力比值过门槛才生效，失败折损 1%~5% 法师。
// 目标有奥术护盾时施法方的比值打 0.75 折。
func CastOffensive(caster, target *domain.Empire, name string, round int, rng *rand.Rand) *domain.SpellResult {
	sc := basic.BasicConf.Spells
	cost := SpellRuneCost(caster, name)
	caster.Resources.Runes -= cost
	res := &domain.SpellResult{Spell: name, RunesSpent: cost}

	defense := WizardPower(target)
	if defense < 1 {
		defense = 1
	}
	ratio := WizardPower(caster) / defense
	if target.ShieldActive(round) {
		ratio *= sc.ShieldRatioPenalty
	}

	detail, _ := spell.Get(name)
	if ratio < detail.Threshold {
		lossRate := sc.FailWizardLossMin + rng.Float64()*(sc.FailWizardLossMax-sc.FailWizardLossMin)
		lost := int64(math.Floor(float64(caster.Troops[unit.Wizard]) * lossRate))
		if lost < 1 {
			lost = 1
		}
		if lost > caster.Troops[unit.Wizard] {
			lost = caster.Troops[unit.Wizard]
		}
		caster.Troops[unit.Wizard] -= lost
		res.WizardsLost = lost
		return res
	}

	res.Success = true
	switch name {
	case spell.Spy:
		res.Intel = snapshotIntel(target, round)
	case spell.Blast:
		res.TroopsDestroyed = damageTroops(target, detail.TroopDamage)
	case spell.Storm:
		res.FoodDestroyed = int64(math.Floor(float64(target.Resources.Food) * detail.FoodDamage))
		res.CashDestroyed = int64(math.Floor(float64(target.Resources.Gold) * detail.CashDamage))
		target.Resources.Food -= res.FoodDestroyed
		target.Resources.Gold -= res.CashDestroyed
	case spell.Struct:
		res.BuildingsDestroyed = damageBuildings(target, detail.BuildingDamage)
	case spell.Steal:
		res.GoldStolen = int64(math.Floor(float64(target.Resources.Gold) * detail.StealRate))
		target.Resources.Gold -= res.GoldStolen
		caster.Resources.Gold += res.GoldStolen
	case spell.Fight:
		lost := int64(math.Floor(float64(target.Troops[unit.Wizard]) * detail.WizardDamage))
		if lost > 0 {
			target.Troops[unit.Wizard] -= lost
			res.TroopsDestroyed = map[string]int64{unit.Wizard: lost}
		}
	}
	return res
}

func snapshotIntel(target *domain.Empire, round int) *domain.Intel {
	troops := make(map[string]int64, len(target.Troops))
	for name, count := range target.Troops {
		troops[name] = count
	}
	return &domain.Intel{
		Round:    round,
		Name:     target.Name,
		Race:     target.Race,
		Era:      target.Era,
		Land:     target.Resources.Land,
		Gold:     target.Resources.Gold,
		Food:     target.Resources.Food,
		Runes:    target.Resources.Runes,
		Peasants: target.Peasants,
		Networth: target.Networth,
		Troops:   troops,
	}
}

func damageTroops(target *domain.Empire, rate float64) map[string]int64 {
	names := sortedKeys(target.Troops)
	out := make(map[string]int64)
	for _, name := range names {
		lost := int64(math.Floor(float64(target.Troops[name]) * rate))
		if lost > 0 {
			target.Troops[name] -= lost
			out[name] = lost
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// 建筑被毁后土地还在，转为空地。
func damageBuildings(target *domain.Empire, rate float64) map[string]int64 {
	names := sortedKeys(target.Buildings)
	out := make(map[string]int64)
	for _, name := range names {
		lost := int64(math.Floor(float64(target.Buildings[name]) * rate))
		if lost > 0 {
			target.Buildings[name] -= lost
			target.Resources.Freeland += lost
			out[name] = lost
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
