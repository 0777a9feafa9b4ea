package service

import (
	"errors"
	"math/rand"
	"testing"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"
)

func spellReady(t *testing.T, raceName string) *domain.Empire {
	e := testEmpire(t, raceName)
	e.Troops[unit.Wizard] = 100
	e.Resources.Runes = 1000000
	return e
}

func TestSpellRuneCost_基础公式(t *testing.T) {
	e := spellReady(t, "human")
	// (2000×0.1 + 100 + 0×0.2) × 4.9 = 1470
	if got := SpellRuneCost(e, spell.Shield); got != 1470 {
		t.Fatalf("期望护盾符文成本 1470，got=%d", got)
	}
}

func TestSpellRuneCost_法术成本修正是除数(t *testing.T) {
	e := spellReady(t, "elf") // spell_cost +10
	if got := SpellRuneCost(e, spell.Shield); got != 1336 { // floor(1470/1.1)
		t.Fatalf("期望精灵护盾成本 1336，got=%d", got)
	}
}

func TestCanCastSpell_没有法师时符文再多也不行(t *testing.T) {
	e := testEmpire(t, "human")
	e.Resources.Runes = 100000000
	e.Troops[unit.Wizard] = 0

	err := CanCastSpell(e, spell.Shield, 2)
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望法师门槛拒绝，got=%v", err)
	}
	var ex *Error
	if !errors.As(err, &ex) || ex.Reason() != ReasonWizardsShort.Code {
		t.Fatalf("期望 reason 是法师不足，got=%v", err)
	}
}

func TestCanCastSpell_健康门槛(t *testing.T) {
	e := spellReady(t, "human")
	e.Health = 19
	if err := CanCastSpell(e, spell.Shield, 2); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望健康不足 20 拒绝，got=%v", err)
	}
}

func TestCanCastSpell_时代冷却边界(t *testing.T) {
	e := spellReady(t, "human")
	e.EraChangedRound = 3

	// currentRound ≤ R 全部失败
	for _, round := range []int{2, 3} {
		if err := CanCastSpell(e, spell.Advance, round); !errors.Is(err, ErrRuleGate) {
			t.Fatalf("round=%d 期望冷却拒绝，got=%v", round, err)
		}
	}
	// currentRound > R 放行
	if err := CanCastSpell(e, spell.Advance, 4); err != nil {
		t.Fatalf("round=4 期望放行，got=%v", err)
	}
}

func TestCanCastSpell_时代边界(t *testing.T) {
	e := spellReady(t, "human")
	e.Era = era.Future
	if err := CanCastSpell(e, spell.Advance, 5); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望已在未来时代不能再前进，got=%v", err)
	}
	e.Era = era.Past
	if err := CanCastSpell(e, spell.Regress, 5); !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望已在过去时代不能再倒退，got=%v", err)
	}
}

func TestCastSelf_时代变更写入冷却标记(t *testing.T) {
	e := spellReady(t, "human")
	res := CastSelf(e, spell.Advance, 5)
	if e.Era != era.Future || res.NewEra != era.Future {
		t.Fatalf("期望前进到 future，got=%s", e.Era)
	}
	if e.EraChangedRound != 5 {
		t.Fatalf("期望记录变更回合 5，got=%d", e.EraChangedRound)
	}
}

func TestCastSelf_护盾按持续期写过期回合(t *testing.T) {
	e := spellReady(t, "human")
	CastSelf(e, spell.Shield, 4)
	if !e.ShieldActive(4) {
		t.Fatalf("期望护盾当回合生效")
	}
	if e.ShieldActive(5) {
		t.Fatalf("期望护盾只持续 1 回合")
	}

	CastSelf(e, spell.Gate, 4)
	if !e.GateActive(5) || e.GateActive(6) {
		t.Fatalf("期望时间门持续 2 回合")
	}
}

func TestCastSelf_产出类法术按土地产出(t *testing.T) {
	e := spellReady(t, "human") // human magic 修正 0，era present 0
	before := e.Resources.Food
	res := CastSelf(e, spell.Food, 2)
	if res.FoodGained != 2000*6 {
		t.Fatalf("期望产粮 12000，got=%d", res.FoodGained)
	}
	if e.Resources.Food != before+res.FoodGained {
		t.Fatalf("期望产出入账")
	}
}

func TestCastOffensive_法力比值过门槛才生效(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	caster := spellReady(t, "human")
	target := spellReady(t, "human")
	// 双方法力 100×2.0=200，比值 1.0：blast(0.85) 成，struct(1.25) 败

	res := CastOffensive(caster, target.Clone(), spell.Blast, 2, rng)
	if !res.Success {
		t.Fatalf("期望比值 1.0 过 blast 门槛")
	}

	wizardsBefore := caster.Troops[unit.Wizard]
	res = CastOffensive(caster, target, spell.Struct, 2, rng)
	if res.Success {
		t.Fatalf("期望比值 1.0 过不了 struct 门槛")
	}
	lost := wizardsBefore - caster.Troops[unit.Wizard]
	if lost != res.WizardsLost || lost < 1 || lost > 5 {
		t.Fatalf("期望失败折损 1%%~5%% 法师，lost=%d", lost)
	}
}

func TestCastOffensive_目标护盾打折施法方比值(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	caster := spellReady(t, "human")
	target := spellReady(t, "human")
	target.Effects.Shield = 2 // 比值 1.0×0.75 < 0.85

	res := CastOffensive(caster, target, spell.Blast, 2, rng)
	if res.Success {
		t.Fatalf("期望护盾把比值压到门槛之下")
	}
}

func TestCastOffensive_窃取法术搬运金币(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	caster := spellReady(t, "human")
	caster.Troops[unit.Wizard] = 1000 // 比值 10，稳过 steal(1.5)
	target := spellReady(t, "human")
	target.Resources.Gold = 100000

	res := CastOffensive(caster, target, spell.Steal, 2, rng)
	if !res.Success {
		t.Fatalf("期望窃取成功")
	}
	if res.GoldStolen != 8000 { // 8%
		t.Fatalf("期望窃取 8000，got=%d", res.GoldStolen)
	}
	if target.Resources.Gold != 92000 {
		t.Fatalf("期望目标扣款，got=%d", target.Resources.Gold)
	}
}

func TestCastOffensive_侦察生成带回合号的快照(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	caster := spellReady(t, "human")
	caster.Troops[unit.Wizard] = 1000
	target := spellReady(t, "elf")

	res := CastOffensive(caster, target, spell.Spy, 6, rng)
	if !res.Success || res.Intel == nil {
		t.Fatalf("期望侦察成功返回快照")
	}
	if res.Intel.Round != 6 || res.Intel.Race != "elf" {
		t.Fatalf("期望快照带抓取回合与目标信息，got=%+v", res.Intel)
	}
}

func TestCastOffensive_建筑被毁土地转空地(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	caster := spellReady(t, "human")
	caster.Troops[unit.Wizard] = 1000
	target := spellReady(t, "human")
	target.Resources.Gold = 500000
	if _, _, err := Build(target, map[string]int64{domain.BuildingFarm: 100}); err != nil {
		t.Fatalf("建造失败: %v", err)
	}

	res := CastOffensive(caster, target, spell.Struct, 2, rng)
	if !res.Success {
		t.Fatalf("期望摧毁成功")
	}
	if res.BuildingsDestroyed[domain.BuildingFarm] != 5 { // 5%
		t.Fatalf("期望毁掉 5 座农田，got=%v", res.BuildingsDestroyed)
	}
	checkLandInvariant(t, target)
}
