package app

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/empire/service"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"
)

func TestApplyAction_整单生效不碰原实体(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")
	goldBefore := e.Resources.Gold

	res, err := ops.ApplyAction(context.Background(), e, domain.ActionFarm, 3, ActionParams{})
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}
	if res.Empire == e {
		t.Fatalf("期望返回新实体")
	}
	if e.Resources.Gold != goldBefore || e.TurnsRemaining != 50 {
		t.Fatalf("期望原实体未动")
	}
	if res.Empire.TurnsRemaining != 47 || res.TurnsSpent != 3 {
		t.Fatalf("期望新实体扣 3 行动点，got=%d", res.Empire.TurnsRemaining)
	}
	if res.Empire.Networth == e.Networth && res.Empire.Resources.Gold == e.Resources.Gold {
		t.Fatalf("期望新实体有经济变化")
	}
}

func TestApplyAction_失败时原实体零改动(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")

	_, err := ops.ApplyAction(context.Background(), e, "march", 3, ActionParams{})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("期望未知行动拒绝，got=%v", err)
	}
	if e.TurnsRemaining != 50 || e.Resources.Gold != 50000 {
		t.Fatalf("期望原实体未动")
	}
}

func TestApplyAction_判负帝国只读(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")
	e.Defeated = true

	_, err := ops.ApplyAction(context.Background(), e, domain.ActionFarm, 1, ActionParams{})
	if !errors.Is(err, service.ErrDefeated) {
		t.Fatalf("期望判负帝国拒绝行动，got=%v", err)
	}
}

func TestApplyAction_建造回合数不够整单拒绝(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")
	e.TurnsRemaining = 2
	// 2000 地每回合完工 100 座，400 座要 4 回合
	_, err := ops.ApplyAction(context.Background(), e, domain.ActionBuild, 0,
		ActionParams{Buildings: map[string]int64{domain.BuildingFarm: 400}})
	if !errors.Is(err, service.ErrInsufficient) {
		t.Fatalf("期望行动点不足拒绝，got=%v", err)
	}
	if e.Buildings[domain.BuildingFarm] != 0 || e.Resources.Gold != 50000 {
		t.Fatalf("期望原实体未动")
	}
}

func TestApplyAction_建造先扣单再跑完工回合(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")

	res, err := ops.ApplyAction(context.Background(), e, domain.ActionBuild, 0,
		ActionParams{Buildings: map[string]int64{domain.BuildingFarm: 10}})
	if err != nil {
		t.Fatalf("建造失败: %v", err)
	}
	if res.BuildingsBuilt != 10 || res.TurnsSpent != 1 {
		t.Fatalf("期望 10 座 1 回合完工，got=%+v", res)
	}
	if res.Empire.Buildings[domain.BuildingFarm] != 10 || res.Empire.TurnsRemaining != 49 {
		t.Fatalf("期望新实体落地建筑并扣行动点")
	}
}

func TestApplyAction_产能分配必须合计100(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")

	_, err := ops.ApplyAction(context.Background(), e, domain.ActionIndustry, 1,
		ActionParams{Allocation: map[string]int{unit.Infantry: 60, unit.Cavalry: 30}})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("期望 90%% 分配拒绝，got=%v", err)
	}

	// 法师不可生产，不进分配
	_, err = ops.ApplyAction(context.Background(), e, domain.ActionIndustry, 1,
		ActionParams{Allocation: map[string]int{unit.Wizard: 100}})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("期望法师分配拒绝，got=%v", err)
	}

	res, err := ops.ApplyAction(context.Background(), e, domain.ActionIndustry, 1,
		ActionParams{Allocation: map[string]int{unit.Infantry: 50, unit.Cavalry: 50}})
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}
	if res.Empire.IndustryAllocation[unit.Cavalry] != 50 {
		t.Fatalf("期望分配写入新实体")
	}
	if e.IndustryAllocation[unit.Cavalry] != 0 {
		t.Fatalf("期望原实体分配未动")
	}
}

func TestTransactMarket_双副本都是新的(t *testing.T) {
	ops := newOps()
	// 精灵没有 market 修正，私市报价就是表价
	e := testEmpire(t, 1, "elf")
	ms := &domain.MarketState{Phase: domain.PhasePlayer}

	ne, nms, err := ops.TransactMarket(context.Background(), e, ms,
		service.Trade{Kind: service.TradeBuy, Item: service.ItemFood, Quantity: 100})
	if err != nil {
		t.Fatalf("交易失败: %v", err)
	}
	if ne == e || nms == ms {
		t.Fatalf("期望返回新实体与新市场状态")
	}
	if ne.Resources.Gold != 50000-35*100 || ne.Resources.Food != 10000+100 {
		t.Fatalf("期望按 35 买入 100 粮，gold=%d food=%d", ne.Resources.Gold, ne.Resources.Food)
	}
	if e.Resources.Gold != 50000 {
		t.Fatalf("期望原实体未动")
	}
}

func TestTransactMarket_商店期库存随交易扣减(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")
	e.Resources.Gold = 10000000
	ms := &domain.MarketState{
		Phase:       domain.PhaseShop,
		Multipliers: map[string]float64{unit.Infantry: 1.0},
		Stock:       map[string]int64{unit.Infantry: 10},
	}

	_, nms, err := ops.TransactMarket(context.Background(), e, ms,
		service.Trade{Kind: service.TradeBuy, Item: unit.Infantry, Quantity: 4})
	if err != nil {
		t.Fatalf("交易失败: %v", err)
	}
	if nms.Stock[unit.Infantry] != 6 {
		t.Fatalf("期望库存 10→6，got=%d", nms.Stock[unit.Infantry])
	}
	if ms.Stock[unit.Infantry] != 10 {
		t.Fatalf("期望原市场状态未动")
	}
}

func TestTransactBank_按类型分发(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")

	ne, info, err := ops.TransactBank(context.Background(), e, BankTx{Kind: BankDeposit, Amount: 20000})
	if err != nil {
		t.Fatalf("存款失败: %v", err)
	}
	if ne.Savings != 20000 || info.Savings != 20000 {
		t.Fatalf("期望存款入账并返回快照，got=%+v", info)
	}
	if e.Savings != 0 {
		t.Fatalf("期望原实体未动")
	}

	_, _, err = ops.TransactBank(context.Background(), e, BankTx{Kind: "gift", Amount: 1})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("期望未知操作拒绝，got=%v", err)
	}

	_, _, err = ops.TransactBank(context.Background(), e, BankTx{Kind: BankWithdraw, Amount: 1})
	if !errors.Is(err, service.ErrInsufficient) {
		t.Fatalf("期望余额不足拒绝，got=%v", err)
	}
}

func TestCastSpell_自助法术扣2行动点(t *testing.T) {
	ops := newOps()
	rng := rand.New(rand.NewSource(1))
	e := testEmpire(t, 1, "human")
	e.Troops[unit.Wizard] = 100
	e.Resources.Runes = 1000000

	caster, target, res, err := ops.CastSpell(context.Background(), e, nil, spell.Shield, 2, rng)
	if err != nil {
		t.Fatalf("施法失败: %v", err)
	}
	if target != nil {
		t.Fatalf("期望自助法术没有目标实体")
	}
	if caster.TurnsRemaining != 48 {
		t.Fatalf("期望扣 2 行动点，got=%d", caster.TurnsRemaining)
	}
	if !res.Success || res.RunesSpent <= 0 {
		t.Fatalf("期望自助法术必定成功，got=%+v", res)
	}
	if e.TurnsRemaining != 50 || !caster.ShieldActive(2) {
		t.Fatalf("期望效果只写进新实体")
	}
}

func TestCastSpell_行动点不足拒绝(t *testing.T) {
	ops := newOps()
	rng := rand.New(rand.NewSource(1))
	e := testEmpire(t, 1, "human")
	e.Troops[unit.Wizard] = 100
	e.Resources.Runes = 1000000
	e.TurnsRemaining = 1

	_, _, _, err := ops.CastSpell(context.Background(), e, nil, spell.Shield, 2, rng)
	if !errors.Is(err, service.ErrInsufficient) {
		t.Fatalf("期望行动点不足拒绝，got=%v", err)
	}
}

func TestCastSpell_进攻法术校验目标(t *testing.T) {
	ops := newOps()
	rng := rand.New(rand.NewSource(1))
	caster := testEmpire(t, 1, "human")
	caster.Troops[unit.Wizard] = 100
	caster.Resources.Runes = 1000000

	_, _, _, err := ops.CastSpell(context.Background(), caster, nil, spell.Blast, 2, rng)
	if !errors.Is(err, service.ErrRuleGate) {
		t.Fatalf("期望无目标拒绝，got=%v", err)
	}

	_, _, _, err = ops.CastSpell(context.Background(), caster, caster, spell.Blast, 2, rng)
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("期望自己打自己拒绝，got=%v", err)
	}

	target := testEmpire(t, 2, "human")
	target.Defeated = true
	_, _, _, err = ops.CastSpell(context.Background(), caster, target, spell.Blast, 2, rng)
	if !errors.Is(err, service.ErrRuleGate) {
		t.Fatalf("期望判负目标拒绝，got=%v", err)
	}
}

func TestCastSpell_进攻法术额外扣健康(t *testing.T) {
	ops := newOps()
	rng := rand.New(rand.NewSource(1))
	caster := testEmpire(t, 1, "human")
	caster.Troops[unit.Wizard] = 1000
	caster.Resources.Runes = 1000000
	target := testEmpire(t, 2, "human")
	target.Resources.Gold = 100000

	nc, nt, res, err := ops.CastSpell(context.Background(), caster, target, spell.Steal, 2, rng)
	if err != nil {
		t.Fatalf("施法失败: %v", err)
	}
	if !res.Success {
		t.Fatalf("期望法力压制下窃取成功")
	}
	if nc.Health != 95 || nc.TurnsRemaining != 48 {
		t.Fatalf("期望进攻法术扣 5 健康 2 行动点，health=%d", nc.Health)
	}
	if nt.Resources.Gold != 92000 || target.Resources.Gold != 100000 {
		t.Fatalf("期望只有新目标实体被扣款")
	}
}

func TestResolveCombat_双方都返回新实体(t *testing.T) {
	ops := newOps()
	rng := rand.New(rand.NewSource(7))
	atk := testEmpire(t, 1, "human")
	atk.Troops[unit.Infantry] = 1000
	def := testEmpire(t, 2, "human")
	def.Troops[unit.Infantry] = 100

	na, nd, res, err := ops.ResolveCombat(context.Background(), atk, def, service.AttackStandard, 2, rng)
	if err != nil {
		t.Fatalf("进攻失败: %v", err)
	}
	if !res.Won {
		t.Fatalf("期望碾压局获胜")
	}
	if na.TurnsRemaining != 48 {
		t.Fatalf("期望攻方扣 2 行动点，got=%d", na.TurnsRemaining)
	}
	if atk.TurnsRemaining != 50 || atk.Health != 100 {
		t.Fatalf("期望原攻方实体未动")
	}
	if def.Resources.Land != 2000 {
		t.Fatalf("期望原守方实体未动")
	}
	// 夺地在双方之间转移，只有守方被战火焚毁的空地凭空消失
	razed := int64(4000) - (na.Resources.Land + nd.Resources.Land)
	if razed <= 0 {
		t.Fatalf("期望战火焚毁部分守方空地，got=%d", razed)
	}
	rate := basic.BasicConf.Combat.FreelandDestroyRate
	if want := int64(math.Floor(float64(nd.Resources.Freeland+razed) * rate)); razed != want {
		t.Fatalf("期望消失的土地恰为焚毁的空地，razed=%d want=%d", razed, want)
	}
}

func TestResolveCombat_守方判负落在新实体上(t *testing.T) {
	ops := newOps()
	rng := rand.New(rand.NewSource(7))
	atk := testEmpire(t, 1, "human")
	atk.Troops[unit.Infantry] = 1000
	def := testEmpire(t, 2, "human")
	def.Resources.Land = 5
	def.Resources.Freeland = 5

	_, nd, _, err := ops.ResolveCombat(context.Background(), atk, def, service.AttackStandard, 2, rng)
	if err != nil {
		t.Fatalf("进攻失败: %v", err)
	}
	if nd.Resources.Land == 0 && !nd.Defeated {
		t.Fatalf("期望地被打光后判负")
	}
	if def.Defeated {
		t.Fatalf("期望原守方实体未动")
	}
}

func TestAdvanceRound_应用层只做克隆与判负(t *testing.T) {
	ops := newOps()
	e := testEmpire(t, 1, "human")
	e.Savings = 10000
	e.TurnsRemaining = 3

	ne := ops.AdvanceRound(context.Background(), e, 2)
	if ne == e {
		t.Fatalf("期望返回新实体")
	}
	// 剩余 3 点带到下回合
	if ne.Savings != 10400 || ne.TurnsRemaining != 53 {
		t.Fatalf("期望计息并恢复行动点，savings=%d turns=%d", ne.Savings, ne.TurnsRemaining)
	}
	if e.Savings != 10000 {
		t.Fatalf("期望原实体未动")
	}
}
