package service

import (
	"errors"
	"math/rand"
	"testing"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/unit"
)

// 步兵 present 攻 3 防 7，人类无攻防修正，健康 100：战力可以精确构造
func combatPair(t *testing.T, atkInfantry, defInfantry int64) (*domain.Empire, *domain.Empire) {
	atk := testEmpire(t, "human")
	atk.Id = 1
	atk.Troops[unit.Infantry] = atkInfantry
	def := testEmpire(t, "human")
	def.Id = 2
	def.Troops[unit.Infantry] = defInfantry
	return atk, def
}

func TestResolveAttack_胜负边界在5个百分点(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	// 防守 100×7=700，门槛 735；245×3=735 恰好取胜
	atk, def := combatPair(t, 245, 100)
	res := ResolveAttack(atk, def, unit.Infantry, 2, rng)
	if !res.Won {
		t.Fatalf("期望战力恰好 1.05 倍取胜：off=%v def=%v", res.OffensePower, res.DefensePower)
	}

	// 244×3=732 < 735，平局以下判守方赢
	atk, def = combatPair(t, 244, 100)
	res = ResolveAttack(atk, def, unit.Infantry, 2, rng)
	if res.Won {
		t.Fatalf("期望差一点点打不破 5%% 边界：off=%v def=%v", res.OffensePower, res.DefensePower)
	}
}

func TestResolveAttack_经典战例(t *testing.T) {
	// 攻 1000 vs 防 950：1000 ≥ 950×1.05=997.5 → 攻方胜
	rng := rand.New(rand.NewSource(11))
	atk, def := combatPair(t, 0, 0)
	atk.Troops[unit.Cavalry] = 500                                  // 500×... 用战力值直接验证
	atk.Troops[unit.Infantry] = 0
	off := OffensePower(atk, unit.Cavalry)
	if off != 3000 { // 500×6
		t.Fatalf("战例前置检查失败 off=%v", off)
	}
	def.Troops[unit.Infantry] = 408 // 408×7=2856；3000 ≥ 2998.8
	res := ResolveAttack(atk, def, unit.Cavalry, 2, rng)
	if !res.Won {
		t.Fatalf("期望 3000 vs 2856 攻方胜：off=%v def=%v", res.OffensePower, res.DefensePower)
	}
}

func TestResolveAttack_战胜后土地不变式成立(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	atk, def := combatPair(t, 1000, 10)
	def.Resources.Gold = 500000
	if _, _, err := Build(def, map[string]int64{domain.BuildingFarm: 100, domain.BuildingHome: 50}); err != nil {
		t.Fatalf("建造失败: %v", err)
	}

	res := ResolveAttack(atk, def, AttackStandard, 2, rng)
	if !res.Won {
		t.Fatalf("期望碾压取胜")
	}
	checkLandInvariant(t, atk)
	checkLandInvariant(t, def)
	if res.LandGained <= 0 {
		t.Fatalf("期望战胜夺地，got=%d", res.LandGained)
	}
	// 民居不可被夺取
	if res.BuildingsGained[domain.BuildingHome] != 0 {
		t.Fatalf("期望民居不转入攻方，got=%v", res.BuildingsGained)
	}
}

func TestResolveAttack_未被夺走的建筑只有少量焚毁(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	atk, def := combatPair(t, 5000, 10)
	def.Resources.Gold = 2000000
	if _, _, err := Build(def, map[string]int64{domain.BuildingFarm: 1000}); err != nil {
		t.Fatalf("建造失败: %v", err)
	}

	res := ResolveAttack(atk, def, AttackStandard, 2, rng)
	if !res.Won {
		t.Fatalf("期望碾压取胜")
	}
	gained := res.BuildingsGained[domain.BuildingFarm]
	burned := res.BuildingsDestroyed[domain.BuildingFarm]
	if gained <= 0 || burned <= 0 {
		t.Fatalf("期望农田有转入也有焚毁，gained=%d burned=%d", gained, burned)
	}
	// 没被夺走的部分按 7% 焚毁，不会整片夷平
	if burned >= gained {
		t.Fatalf("期望焚毁只占零头，gained=%d burned=%d", gained, burned)
	}
	if def.Buildings[domain.BuildingFarm]+gained+burned != 1000 {
		t.Fatalf("期望波及之外的农田仍归守方，got=%d", def.Buildings[domain.BuildingFarm])
	}
	checkLandInvariant(t, atk)
	checkLandInvariant(t, def)
}

func TestCanAttack_停战保护双向生效(t *testing.T) {
	atk, def := combatPair(t, 100, 100)
	def.Effects.Pacification = 3

	if err := CanAttack(atk, def, AttackStandard, 2); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望受保护目标不可攻击，got=%v", err)
	}

	def.Effects.Pacification = 0
	atk.Effects.Pacification = 3
	if err := CanAttack(atk, def, AttackStandard, 2); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望保护期内不能出兵，got=%v", err)
	}

	// 过期自动失效
	if err := CanAttack(atk, def, AttackStandard, 4); err != nil {
		t.Fatalf("期望保护过期后放行，got=%v", err)
	}
}

func TestResolveAttack_全军与单兵种的健康消耗(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	atk, def := combatPair(t, 100, 100)
	ResolveAttack(atk, def, AttackStandard, 2, rng)
	if atk.Health != 94 {
		t.Fatalf("期望全军进攻扣 6 点健康，got=%d", atk.Health)
	}

	atk, def = combatPair(t, 100, 100)
	ResolveAttack(atk, def, unit.Infantry, 2, rng)
	if atk.Health != 95 {
		t.Fatalf("期望单兵种进攻扣 5 点健康，got=%d", atk.Health)
	}
}

func TestResolveAttack_护盾削弱攻方有效战力(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	// 无护盾时 735 恰好取胜；护盾打 0.75 折后打不动
	atk, def := combatPair(t, 245, 100)
	def.Effects.Shield = 2
	res := ResolveAttack(atk, def, unit.Infantry, 2, rng)
	if res.Won {
		t.Fatalf("期望护盾把攻方有效战力压下去：off=%v", res.OffensePower)
	}
}

func TestCanAttack_首回合与次数上限(t *testing.T) {
	atk, def := combatPair(t, 100, 100)
	if err := CanAttack(atk, def, AttackStandard, 1); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望首回合禁止攻击，got=%v", err)
	}

	atk.AttacksThisRound = 10
	if err := CanAttack(atk, def, AttackStandard, 2); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望达到次数上限拒绝，got=%v", err)
	}
}

func TestCanAttack_跨时代需要时间门(t *testing.T) {
	atk, def := combatPair(t, 100, 100)
	def.Era = era.Future

	if err := CanAttack(atk, def, AttackStandard, 2); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望跨时代无门拒绝，got=%v", err)
	}
	// 任意一方有时间门都放行
	atk.Effects.Gate = 2
	if err := CanAttack(atk, def, AttackStandard, 2); err != nil {
		t.Fatalf("期望攻方有门放行，got=%v", err)
	}
	atk.Effects.Gate = 0
	def.Effects.Gate = 2
	if err := CanAttack(atk, def, AttackStandard, 2); err != nil {
		t.Fatalf("期望守方有门也放行，got=%v", err)
	}
}

func TestCanAttack_入参与目标状态(t *testing.T) {
	atk, def := combatPair(t, 100, 100)
	if err := CanAttack(atk, def, "wizard", 2); !errors.Is(err, ErrValidation) {
		t.Fatalf("期望法师不能领军，got=%v", err)
	}
	def.Defeated = true
	if err := CanAttack(atk, def, AttackStandard, 2); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望已判负目标拒绝，got=%v", err)
	}
}

func TestResolveAttack_战损按参战兵种折算(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	atk, def := combatPair(t, 1000, 1000)
	atk.Troops[unit.Cavalry] = 1000

	res := ResolveAttack(atk, def, unit.Infantry, 2, rng)
	// 单兵种进攻只折损领军兵种
	if res.AttackerLosses[unit.Cavalry] != 0 {
		t.Fatalf("期望骑兵不参战不折损，got=%v", res.AttackerLosses)
	}
	if res.AttackerLosses[unit.Infantry] != 45 { // floor(1000×0.045)
		t.Fatalf("期望步兵折损 45，got=%v", res.AttackerLosses)
	}
	if res.DefenderLosses[unit.Infantry] != 50 { // floor(1000×0.05)
		t.Fatalf("期望守方折损 50，got=%v", res.DefenderLosses)
	}
}
