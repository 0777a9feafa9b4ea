package service

import (
	"errors"
	"testing"

	"EraRealms/internal/empire/entity/domain"
)

func TestBuildingBaseCost_基础造价(t *testing.T) {
	// floor(1500 + 2000×0.05) = 1600
	if got := BuildingBaseCost(2000); got != 1600 {
		t.Fatalf("期望 2000 地基础造价 1600，got=%d", got)
	}
}

func TestBuildingCost_土地单调不减(t *testing.T) {
	e := testEmpire(t, "human")
	prev := int64(0)
	for _, land := range []int64{100, 1000, 5000, 50000} {
		e.Resources.Land = land
		cost := BuildingCost(e)
		if cost < prev {
			t.Fatalf("期望造价随土地单调不减：land=%d cost=%d prev=%d", land, cost, prev)
		}
		prev = cost
	}
}

func TestBuildingCost_折扣与种族修正(t *testing.T) {
	e := testEmpire(t, "dwarf") // build_cost +10 → 除数 1.1
	if got := BuildingCost(e); got != 1454 {
		t.Fatalf("期望矮人造价 floor(1600/1.1)=1454，got=%d", got)
	}

	e = testEmpire(t, "human")
	e.Advisors = []domain.Advisor{{Id: 1, CfgId: 8}, {Id: 2, CfgId: 10}} // 0.8×0.75
	if got := BuildingCost(e); got != 960 {
		t.Fatalf("期望折扣后造价 floor(1600×0.6)=960，got=%d", got)
	}
}

func TestDemolishRefund_不吃任何折扣(t *testing.T) {
	// floor(1600×0.3) = 480，与顾问折扣无关
	if got := DemolishRefund(2000); got != 480 {
		t.Fatalf("期望拆除返还 480，got=%d", got)
	}
}

func TestBuildRate_随土地规模走(t *testing.T) {
	if got := BuildRate(10); got != 1 {
		t.Fatalf("期望小帝国每回合至少完工 1 座，got=%d", got)
	}
	if got := BuildRate(2000); got != 100 {
		t.Fatalf("期望 2000 地每回合完工 100 座，got=%d", got)
	}
	if got := BuildTurns(250, 2000); got != 3 {
		t.Fatalf("期望 250 座需要 ceil(250/100)=3 回合，got=%d", got)
	}
}

func TestBuild_整单生效或整单拒绝(t *testing.T) {
	e := testEmpire(t, "human")

	_, _, err := Build(e, map[string]int64{domain.BuildingHome: e.Resources.Freeland + 1})
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望空地不足整单拒绝，got=%v", err)
	}
	if e.Buildings[domain.BuildingHome] != 0 || e.Resources.Gold != 50000 {
		t.Fatalf("期望拒绝后帝国无任何改动")
	}
}

func TestBuild_扣钱扣地并返回回合数(t *testing.T) {
	e := testEmpire(t, "human")
	spent, turns, err := Build(e, map[string]int64{domain.BuildingFarm: 10})
	if err != nil {
		t.Fatalf("建造失败: %v", err)
	}
	if spent != 1600*10 {
		t.Fatalf("期望花费 16000，got=%d", spent)
	}
	if turns != 1 {
		t.Fatalf("期望 10 座 1 回合完工，got=%d", turns)
	}
	checkLandInvariant(t, e)
}

func TestDemolish_返还并释放空地(t *testing.T) {
	e := testEmpire(t, "human")
	if _, _, err := Build(e, map[string]int64{domain.BuildingFarm: 10}); err != nil {
		t.Fatalf("建造失败: %v", err)
	}
	goldBefore := e.Resources.Gold

	refund, err := Demolish(e, map[string]int64{domain.BuildingFarm: 4})
	if err != nil {
		t.Fatalf("拆除失败: %v", err)
	}
	if refund != 480*4 {
		t.Fatalf("期望返还 1920，got=%d", refund)
	}
	if e.Resources.Gold != goldBefore+refund {
		t.Fatalf("期望返还入账")
	}
	if e.Buildings[domain.BuildingFarm] != 6 {
		t.Fatalf("期望剩余 6 座农田，got=%d", e.Buildings[domain.BuildingFarm])
	}
	checkLandInvariant(t, e)
}

func TestDemolish_持有不足整单拒绝(t *testing.T) {
	e := testEmpire(t, "human")
	_, err := Demolish(e, map[string]int64{domain.BuildingFarm: 1})
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望持有不足整单拒绝，got=%v", err)
	}
}
