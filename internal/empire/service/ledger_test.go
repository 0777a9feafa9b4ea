package service

import (
	"testing"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/unit"
)

func TestFoodProduction_全空地场景(t *testing.T) {
	e := testEmpire(t, "human")
	// 2000 地 0 农田 → 2000×10 = 20000
	if got := FoodProduction(e); got != 20000 {
		t.Fatalf("期望 2000 空地产粮 20000，got=%v", got)
	}
}

func TestFoodProduction_农田密度越高边际越低(t *testing.T) {
	e := testEmpire(t, "human")
	e.Buildings[domain.BuildingFarm] = 100
	e.Resources.Freeland = 1900
	perFarmLow := (FoodProduction(e) - 19000) / 100

	e.Buildings[domain.BuildingFarm] = 1000
	e.Resources.Freeland = 1000
	perFarmHigh := (FoodProduction(e) - 10000) / 1000

	if perFarmHigh >= perFarmLow {
		t.Fatalf("期望农田密度升高后单位产量下降：low=%v high=%v", perFarmLow, perFarmHigh)
	}
}

func TestFoodConsumption_按兵种口粮累计(t *testing.T) {
	e := testEmpire(t, "human")
	e.Peasants = 1000
	e.Troops = map[string]int64{
		unit.Infantry: 100, // 5
		unit.Cavalry:  100, // 3
		unit.Wizard:   100, // 25
	}
	if got := FoodConsumption(e); got != 10+5+3+25 {
		t.Fatalf("期望口粮 43，got=%v", got)
	}
}

func TestIncome_基础公式(t *testing.T) {
	e := testEmpire(t, "elf") // 精灵 income 修正为 0
	// pci=25，税 20%，健康 100%，平民 500，无市场，身价档位 1.0
	e.Networth = 9000
	if got := Income(e); got != 25*0.2*1*500 {
		t.Fatalf("期望收入 2500，got=%v", got)
	}
}

func TestSizeBonus_阶梯表(t *testing.T) {
	cases := map[int64]float64{
		5000: 1.0, 10000: 1.0, 10001: 1.05,
		100000: 1.05, 500000: 1.1, 2000000: 1.15,
	}
	for networth, want := range cases {
		if got := SizeBonus(networth); got != want {
			t.Fatalf("networth=%d 期望 %v，got=%v", networth, want, got)
		}
	}
}

func TestExpenses_交易所抵扣有上限(t *testing.T) {
	e := testEmpire(t, "human")
	e.Troops = nil
	base := Expenses(e) // 2000×8 = 16000

	// 交易所占地一半以上，抵扣仍封顶 50%
	e.Buildings[domain.BuildingExchange] = 1500
	e.Resources.Freeland = 500
	if got := Expenses(e); got != base/2 {
		t.Fatalf("期望开销抵扣封顶 50%%：base=%v got=%v", base, got)
	}
}

func TestLoanPayment_强制还款(t *testing.T) {
	e := testEmpire(t, "human")
	e.Loan = 20000
	if got := LoanPayment(e); got != 100 {
		t.Fatalf("期望 20000 贷款每回合还 100，got=%d", got)
	}
}

func TestEvaluateTurn_断粮提前停且账本不截断(t *testing.T) {
	e := testEmpire(t, "human")
	e.Resources.Food = 0
	e.Resources.Freeland = 0
	e.Resources.Land = 10
	e.Buildings = map[string]int64{}
	e.Troops = map[string]int64{unit.Wizard: 10000} // 口粮 2500/回合
	e.Resources.Gold = 10000000

	_, stop := EvaluateTurn(e, domain.ActionCash)
	if stop != StopFood {
		t.Fatalf("期望断粮提前停，got=%q", stop)
	}
	if e.Resources.Food != 0 {
		t.Fatalf("期望提前停时账本不动，food=%d", e.Resources.Food)
	}
}

func TestEvaluateTurn_资金断裂提前停(t *testing.T) {
	e := testEmpire(t, "human")
	e.Resources.Gold = 0
	e.Peasants = 0 // 没有税收
	_, stop := EvaluateTurn(e, domain.ActionFarm)
	if stop != StopLoan {
		t.Fatalf("期望资金断裂提前停，got=%q", stop)
	}
}

func TestApplyTurn_健康恢复与人口增长(t *testing.T) {
	e := testEmpire(t, "human")
	e.Health = 50
	e.Peasants = 500
	ApplyTurn(e, TurnDelta{})
	if e.Health != 51 {
		t.Fatalf("期望每回合健康 +1，got=%d", e.Health)
	}
	// 容量 2000×2=4000，缺口 3500，每回合补 5%
	if e.Peasants != 500+175 {
		t.Fatalf("期望人口按缺口 5%% 增长到 675，got=%d", e.Peasants)
	}
}

func TestApplyTurn_人口不越过容量(t *testing.T) {
	e := testEmpire(t, "human")
	e.Peasants = 3999
	ApplyTurn(e, TurnDelta{})
	if e.Peasants != 4000 {
		t.Fatalf("期望人口在容量处截断，got=%d", e.Peasants)
	}
}

func TestExploreGain_土地越多收益越低(t *testing.T) {
	e := testEmpire(t, "human")
	small := exploreGain(e)
	e.Resources.Land = 200000
	big := exploreGain(e)
	if big >= small {
		t.Fatalf("期望探索收益随土地递减：small=%d big=%d", small, big)
	}
	if big < 1 {
		t.Fatalf("期望探索收益至少 1，got=%d", big)
	}
}

func TestIndustryOutput_按分配与单位产能换算(t *testing.T) {
	e := testEmpire(t, "human")
	e.Buildings[domain.BuildingIndustry] = 8
	e.Resources.Freeland -= 8
	e.IndustryAllocation = map[string]int{unit.Infantry: 50, unit.Cavalry: 50}
	// 产能 8×25=200：步兵 100/1=100，骑兵 100/2=50
	out := industryOutput(e)
	if out[unit.Infantry] != 100 || out[unit.Cavalry] != 50 {
		t.Fatalf("期望步兵 100 骑兵 50，got=%v", out)
	}
}
