package service

import (
	"math"
	"math/rand"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/unit"
)

// AttackStandard 全军压上：夺地 +15%，损失更高，扣 6 点健康。
// 单一兵种（infantry/cavalry/air/naval）损失更低，扣 5 点健康。
const AttackStandard = "standard"

func attackUnits(attackType string) []string {
	if attackType == AttackStandard {
		return unit.CombatTypes
	}
	return []string{attackType}
}

func validAttackType(attackType string) bool {
	if attackType == AttackStandard {
		return true
	}
	for _, name := range unit.CombatTypes {
		if name == attackType {
			return true
		}
	}
	return false
}

// OffensePower 进攻战力：Σ(兵力 × 时代攻击系数 × 专家加成) × 攻击修正 × 健康度。
func OffensePower(e *domain.Empire, attackType string) float64 {
	var sum float64
	for _, name := range attackUnits(attackType) {
		count := float64(e.Troops[name])
		stat := unit.Stats(name, e.Era).Offense
		sum += count * stat * (1 + SpecialistOffensePercent(e, name)/100)
	}
	return sum * GainMultiplier(e, CategoryOffense) * float64(e.Health) / 100
}

// DefensePower 防守战力：全兵种参与（法师也守城），专家惩罚削减对应兵种。
func DefensePower(e *domain.Empire) float64 {
	var sum float64
	for name, count := range e.Troops {
		if !unit.Exists(name) {
			continue
		}
		stat := unit.Stats(name, e.Era).Defense
		factor := 1 - SpecialistDefensePercent(e, name)/100
		if factor < 0 {
			factor = 0
		}
		sum += float64(count) * stat * factor
	}
	return sum * GainMultiplier(e, CategoryDefense) * float64(e.Health) / 100
}

// CanAttack 攻击前置：双方未判负且不在停战保护中、进攻方式合法、
// 非首回合、次数未达上限、健康门槛、同时代或任一方持有时间门。
func CanAttack(attacker, defender *domain.Empire, attackType string, round int) error {
	if attacker.Defeated {
		return ErrDefeated.WithReason(ReasonDefeated)
	}
	if defender == nil || defender.Defeated {
		return ErrRuleGate.WithReason(ReasonTargetGone)
	}
	if attacker.Id == defender.Id {
		return ErrValidation.WithReason(ReasonSelfTarget)
	}
	// 停战保护是双向的：受保护方既不能出兵也不会挨打
	if attacker.PacificationActive(round) {
		return ErrRuleGate.WithReason(ReasonTruceActive)
	}
	if defender.PacificationActive(round) {
		return ErrRuleGate.WithReason(ReasonTargetTruce)
	}
	if !validAttackType(attackType) {
		return ErrValidation.WithReason(ReasonBadAttackType).WithData("attack_type", attackType)
	}
	if round <= 1 {
		return ErrRuleGate.WithReason(ReasonFirstRound)
	}
	if attacker.AttacksThisRound >= basic.BasicConf.Game.AttackLimitPerRound {
		return ErrRuleGate.WithReason(ReasonAttackCap).WithData("attacks", attacker.AttacksThisRound)
	}
	if attacker.Health < basic.BasicConf.Game.HealthActionGate {
		return ErrRuleGate.WithReason(ReasonHealthLow).WithData("health", attacker.Health)
	}
	if attacker.Era != defender.Era && !attacker.GateActive(round) && !defender.GateActive(round) {
		return ErrRuleGate.WithReason(ReasonEraMismatch).
			WithData("attacker_era", attacker.Era).WithData("defender_era", defender.Era)
	}
	return nil
}

// ResolveAttack 结算一次进攻，直接修改双方实体。
// 胜负判定：进攻 ≥ 防守 × 1.05，打平算守方赢。
func ResolveAttack(attacker, defender *domain.Empire, attackType string, round int, rng *rand.Rand) *domain.CombatResult {
	cc := basic.BasicConf.Combat

	off := OffensePower(attacker, attackType)
	// 护盾或神佑生效时，攻方有效战力打 0.75 折
	if defender.ShieldActive(round) || defender.DivineActive(round) {
		off *= basic.BasicConf.Spells.ShieldRatioPenalty
	}
	def := DefensePower(defender)

	res := &domain.CombatResult{
		OffensePower: off,
		DefensePower: def,
		Won:          off >= def*cc.WinMargin,
	}

	// 双方战损：攻方只折损参战兵种，守方全员折损；casualties 修正降低己方损失
	attackerRate := cc.SingleLossRate
	healthCost := cc.SingleHealthCost
	if attackType == AttackStandard {
		attackerRate = cc.StandardLossRate
		healthCost = cc.StandardHealthCost
	}
	res.AttackerLosses = applyLosses(attacker, attackUnits(attackType), attackerRate)
	res.DefenderLosses = applyLosses(defender, unit.CombatTypes, cc.DefenderLossRate)

	if res.Won {
		applyConquest(attacker, defender, attackType, res, rng)
		attacker.Tally.OffenseSuccesses++
	} else {
		defender.Tally.DefenseSuccesses++
	}

	attacker.Health -= healthCost
	if attacker.Health < 0 {
		attacker.Health = 0
	}
	attacker.AttacksThisRound++
	attacker.Tally.OffenseAttempts++
	defender.Tally.DefenseAttempts++
	for _, lost := range res.DefenderLosses {
		attacker.Tally.Kills += lost
	}
	return res
}

func applyLosses(e *domain.Empire, units []string, rate float64) map[string]int64 {
	rate /= casualtyDivisor(e)
	out := make(map[string]int64)
	for _, name := range units {
		lost := int64(math.Floor(float64(e.Troops[name]) * rate))
		if lost > 0 {
			e.Troops[name] -= lost
			out[name] = lost
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func casualtyDivisor(e *domain.Empire) float64 {
	d := GainMultiplier(e, CategoryCasualties)
	if d < 0.1 {
		return 0.1
	}
	return d
}

// applyConquest 战胜结算：
//   - 夺取守方 7%~10% 土地，全军进攻额外 ×1.15
//   - 波及建筑中非民居的 30%~70% 转入攻方，未被夺走的按 7% 焚毁，其余仍归守方
//   - 守方额外损失 10% 空地（只毁不夺）
//
// 两边始终保持 freeland + Σbuildings == land。
func applyConquest(attacker, defender *domain.Empire, attackType string, res *domain.CombatResult, rng *rand.Rand) {
	cc := basic.BasicConf.Combat

	capturePct := cc.CaptureMin + rng.Float64()*(cc.CaptureMax-cc.CaptureMin)
	if attackType == AttackStandard {
		capturePct *= cc.StandardLandBonus
	}
	landGained := int64(math.Floor(float64(defender.Resources.Land) * capturePct))
	if landGained < 1 {
		landGained = 1
	}

	// 守方建筑按夺地比例波及，被焚毁建筑的地皮随夺地一并易手
	captureShare := cc.BuildingCaptureMin + rng.Float64()*(cc.BuildingCaptureMax-cc.BuildingCaptureMin)
	var buildingsRemoved int64
	gained := make(map[string]int64)
	destroyed := make(map[string]int64)
	for _, name := range domain.BuildingTypes {
		hit := int64(math.Floor(float64(defender.Buildings[name]) * capturePct))
		if hit <= 0 {
			continue
		}

		captured := int64(0)
		if name != domain.BuildingHome {
			captured = int64(math.Floor(float64(hit) * captureShare))
		}
		burned := int64(math.Floor(float64(hit-captured) * cc.BuildingDestroyRate))
		if captured+burned <= 0 {
			continue
		}
		defender.Buildings[name] -= captured + burned
		buildingsRemoved += captured + burned

		if captured > 0 {
			if attacker.Buildings == nil {
				attacker.Buildings = make(map[string]int64)
			}
			attacker.Buildings[name] += captured
			gained[name] = captured
		}
		if burned > 0 {
			destroyed[name] = burned
		}
	}

	// 夺地中建筑占地之外的部分来自守方空地，不够就少夺
	freelandTaken := landGained - buildingsRemoved
	if freelandTaken < 0 {
		freelandTaken = 0
		landGained = buildingsRemoved
	}
	if freelandTaken > defender.Resources.Freeland {
		freelandTaken = defender.Resources.Freeland
		landGained = buildingsRemoved + freelandTaken
	}
	defender.Resources.Freeland -= freelandTaken
	defender.Resources.Land -= landGained

	// 战火毁掉守方剩余空地的 10%，这部分谁也得不到
	razed := int64(math.Floor(float64(defender.Resources.Freeland) * cc.FreelandDestroyRate))
	defender.Resources.Freeland -= razed
	defender.Resources.Land -= razed

	var capturedTotal int64
	for _, n := range gained {
		capturedTotal += n
	}
	attacker.Resources.Land += landGained
	attacker.Resources.Freeland += landGained - capturedTotal

	res.LandGained = landGained
	if len(gained) > 0 {
		res.BuildingsGained = gained
	}
	if len(destroyed) > 0 {
		res.BuildingsDestroyed = destroyed
	}
}
