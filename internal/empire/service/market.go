package service

import (
	"math"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/unit"
)

// 市场商品：粮食、符文、可生产兵种（法师不入市）
const (
	ItemFood  = "food"
	ItemRunes = "runes"
)

const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// Trade 一笔市场交易请求。
type Trade struct {
	Kind     string
	Item     string
	Quantity int64
}

// PricesOf 当前阶段下该帝国看到的报价。
// 玩家期走固定的私市价；商店期兵价 = 基础价 × 倍率。
// market 修正让买价变低、卖价变高。
func PricesOf(e *domain.Empire, ms *domain.MarketState) domain.MarketPrices {
	mc := basic.BasicConf.Market
	mult := GainMultiplier(e, CategoryMarket)

	p := domain.MarketPrices{
		FoodBuy:   priceBuy(float64(mc.PrivateFoodBuy), mult),
		FoodSell:  priceSell(float64(mc.PrivateFoodSell), mult),
		RuneBuy:   priceBuy(float64(mc.PrivateRuneBuy), mult),
		RuneSell:  priceSell(float64(mc.PrivateRuneSell), mult),
		TroopBuy:  make(map[string]int64, len(unit.CombatTypes)),
		TroopSell: make(map[string]int64, len(unit.CombatTypes)),
	}
	for _, name := range unit.CombatTypes {
		base := float64(unit.BaseCost(name))
		if ms.ShopPhase() {
			base *= shopMultiplier(ms, name)
			p.TroopBuy[name] = priceBuy(base, mult)
			p.TroopSell[name] = priceSell(base*mc.PrivateTroopSellRate, mult)
		} else {
			p.TroopBuy[name] = priceBuy(base*mc.PrivateTroopBuyRate, mult)
			p.TroopSell[name] = priceSell(base*mc.PrivateTroopSellRate, mult)
		}
	}
	return p
}

// Transact 结算一笔交易：校验全过才动状态，商店期买入扣库存。
func Transact(e *domain.Empire, ms *domain.MarketState, tx Trade) error {
	if tx.Quantity <= 0 {
		return ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("quantity", tx.Quantity)
	}
	if !marketItem(tx.Item) {
		return ErrValidation.WithReason(ReasonUnknownItem).WithData("item", tx.Item)
	}
	switch tx.Kind {
	case TradeBuy:
		return transactBuy(e, ms, tx)
	case TradeSell:
		return transactSell(e, ms, tx)
	}
	return ErrValidation.WithReason(ReasonUnknownItem).WithData("kind", tx.Kind)
}

func transactBuy(e *domain.Empire, ms *domain.MarketState, tx Trade) error {
	prices := PricesOf(e, ms)
	price := buyPriceOf(prices, tx.Item)
	cost := price * tx.Quantity
	if cost > e.Resources.Gold {
		return ErrInsufficient.WithReason(ReasonGoldShort).
			WithData("cost", cost).WithData("gold", e.Resources.Gold)
	}
	// 商店期限量：库存只减不补
	if ms.ShopPhase() {
		if stock := ms.StockOf(tx.Item); tx.Quantity > stock {
			return ErrInsufficient.WithReason(ReasonStockShort).
				WithData("item", tx.Item).WithData("stock", stock)
		}
		ms.Stock[tx.Item] -= tx.Quantity
	}

	e.Resources.Gold -= cost
	addHolding(e, tx.Item, tx.Quantity)
	return nil
}

func transactSell(e *domain.Empire, ms *domain.MarketState, tx Trade) error {
	held := holdingOf(e, tx.Item)
	if tx.Quantity > held {
		return ErrInsufficient.WithReason(ReasonHoldingsShort).
			WithData("item", tx.Item).WithData("held", held)
	}
	// 商店期兵种单笔出售不得超过持有量的一半；粮食永远可以全卖
	if ms.ShopPhase() && troopItem(tx.Item) {
		limit := int64(math.Floor(float64(held) * basic.BasicConf.Market.ShopSellCap))
		if tx.Quantity > limit {
			return ErrRuleGate.WithReason(ReasonSellCap).
				WithData("item", tx.Item).WithData("limit", limit)
		}
	}

	prices := PricesOf(e, ms)
	e.Resources.Gold += sellPriceOf(prices, tx.Item) * tx.Quantity
	addHolding(e, tx.Item, -tx.Quantity)
	return nil
}

func marketItem(item string) bool {
	if item == ItemFood || item == ItemRunes {
		return true
	}
	return troopItem(item)
}

func troopItem(item string) bool {
	for _, name := range unit.CombatTypes {
		if name == item {
			return true
		}
	}
	return false
}

func holdingOf(e *domain.Empire, item string) int64 {
	switch item {
	case ItemFood:
		return e.Resources.Food
	case ItemRunes:
		return e.Resources.Runes
	}
	return e.Troops[item]
}

func addHolding(e *domain.Empire, item string, delta int64) {
	switch item {
	case ItemFood:
		e.Resources.Food += delta
	case ItemRunes:
		e.Resources.Runes += delta
	default:
		if e.Troops == nil {
			e.Troops = make(map[string]int64)
		}
		e.Troops[item] += delta
	}
}

func buyPriceOf(p domain.MarketPrices, item string) int64 {
	switch item {
	case ItemFood:
		return p.FoodBuy
	case ItemRunes:
		return p.RuneBuy
	}
	return p.TroopBuy[item]
}

func sellPriceOf(p domain.MarketPrices, item string) int64 {
	switch item {
	case ItemFood:
		return p.FoodSell
	case ItemRunes:
		return p.RuneSell
	}
	return p.TroopSell[item]
}

func shopMultiplier(ms *domain.MarketState, item string) float64 {
	if ms == nil || ms.Multipliers == nil {
		return 1
	}
	if m, ok := ms.Multipliers[item]; ok && m > 0 {
		return m
	}
	return 1
}

// 买价至少 1，卖价不高于无修正价的两倍由配置保证，这里只做取整与下限
func priceBuy(base, mult float64) int64 {
	p := int64(math.Ceil(base / mult))
	if p < 1 {
		p = 1
	}
	return p
}

func priceSell(base, mult float64) int64 {
	p := int64(math.Floor(base * mult))
	if p < 0 {
		p = 0
	}
	return p
}
