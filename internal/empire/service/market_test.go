package service

import (
	"errors"
	"testing"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/unit"
)

func playerMarket() *domain.MarketState {
	return &domain.MarketState{Phase: domain.PhasePlayer}
}

func shopMarket(stock map[string]int64) *domain.MarketState {
	return &domain.MarketState{
		Phase:       domain.PhaseShop,
		Multipliers: map[string]float64{unit.Infantry: 1.0, unit.Cavalry: 1.0},
		Stock:       stock,
	}
}

func TestPricesOf_玩家期走私市价(t *testing.T) {
	e := testEmpire(t, "elf") // 精灵 market 修正 0
	p := PricesOf(e, playerMarket())
	if p.FoodBuy != 35 || p.FoodSell != 15 {
		t.Fatalf("期望粮价 35/15，got=%d/%d", p.FoodBuy, p.FoodSell)
	}
	if p.TroopBuy[unit.Infantry] != 1000 { // 500×2.0
		t.Fatalf("期望私市步兵买价 1000，got=%d", p.TroopBuy[unit.Infantry])
	}
	if p.TroopSell[unit.Infantry] != 200 { // 500×0.4
		t.Fatalf("期望私市步兵卖价 200，got=%d", p.TroopSell[unit.Infantry])
	}
}

func TestPricesOf_商店期按倍率定价(t *testing.T) {
	e := testEmpire(t, "elf")
	ms := shopMarket(nil)
	ms.Multipliers[unit.Infantry] = 1.5
	p := PricesOf(e, ms)
	if p.TroopBuy[unit.Infantry] != 750 { // 500×1.5
		t.Fatalf("期望商店步兵买价 750，got=%d", p.TroopBuy[unit.Infantry])
	}
}

func TestTransact_商店期出售不破50上限(t *testing.T) {
	e := testEmpire(t, "elf")
	e.Troops[unit.Infantry] = 100
	ms := shopMarket(nil)

	err := Transact(e, ms, Trade{Kind: TradeSell, Item: unit.Infantry, Quantity: 51})
	if !errors.Is(err, ErrRuleGate) {
		t.Fatalf("期望超过 50%% 出售被拒，got=%v", err)
	}
	if e.Troops[unit.Infantry] != 100 {
		t.Fatalf("期望拒绝后持有不变，got=%d", e.Troops[unit.Infantry])
	}

	if err := Transact(e, ms, Trade{Kind: TradeSell, Item: unit.Infantry, Quantity: 50}); err != nil {
		t.Fatalf("半数出售应放行: %v", err)
	}
	if e.Troops[unit.Infantry] != 50 {
		t.Fatalf("期望单笔交易后持有不低于交易前的一半，got=%d", e.Troops[unit.Infantry])
	}
}

func TestTransact_玩家期出售不设上限_粮食永远可全卖(t *testing.T) {
	e := testEmpire(t, "elf")
	e.Troops[unit.Infantry] = 100
	if err := Transact(e, playerMarket(), Trade{Kind: TradeSell, Item: unit.Infantry, Quantity: 100}); err != nil {
		t.Fatalf("玩家期全量出售应放行: %v", err)
	}

	food := e.Resources.Food
	if err := Transact(e, shopMarket(nil), Trade{Kind: TradeSell, Item: ItemFood, Quantity: food}); err != nil {
		t.Fatalf("商店期粮食也应可全卖: %v", err)
	}
	if e.Resources.Food != 0 {
		t.Fatalf("期望粮食清仓，got=%d", e.Resources.Food)
	}
}

func TestTransact_商店期库存只减不补(t *testing.T) {
	e := testEmpire(t, "elf")
	e.Resources.Gold = 100000
	ms := shopMarket(map[string]int64{unit.Infantry: 10})

	err := Transact(e, ms, Trade{Kind: TradeBuy, Item: unit.Infantry, Quantity: 11})
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望超库存买入被拒，got=%v", err)
	}
	if err := Transact(e, ms, Trade{Kind: TradeBuy, Item: unit.Infantry, Quantity: 10}); err != nil {
		t.Fatalf("库存内买入失败: %v", err)
	}
	if ms.Stock[unit.Infantry] != 0 {
		t.Fatalf("期望库存扣到 0，got=%d", ms.Stock[unit.Infantry])
	}
}

func TestTransact_买入受金币约束(t *testing.T) {
	e := testEmpire(t, "elf")
	e.Resources.Gold = 400 // 买价 500
	err := Transact(e, shopMarket(map[string]int64{unit.Infantry: 10}), Trade{Kind: TradeBuy, Item: unit.Infantry, Quantity: 1})
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望金币不足被拒，got=%v", err)
	}
}

func TestTransact_入参校验(t *testing.T) {
	e := testEmpire(t, "elf")
	if err := Transact(e, playerMarket(), Trade{Kind: TradeBuy, Item: "dragon", Quantity: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("期望未知商品被拒，got=%v", err)
	}
	if err := Transact(e, playerMarket(), Trade{Kind: TradeBuy, Item: ItemFood, Quantity: 0}); !errors.Is(err, ErrValidation) {
		t.Fatalf("期望 0 数量被拒，got=%v", err)
	}
	// 法师不入市
	if err := Transact(e, playerMarket(), Trade{Kind: TradeBuy, Item: unit.Wizard, Quantity: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("期望法师不可交易，got=%v", err)
	}
}
