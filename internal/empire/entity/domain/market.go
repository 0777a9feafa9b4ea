package domain

// 回合内三个阶段：玩家行动期、商店期、bot 结算期
const (
	PhasePlayer = "player"
	PhaseShop   = "shop"
	PhaseBot    = "bot"
)

// MarketState 对局级市场状态，由 game 会话持有并在商店期重置。
type MarketState struct {
	Phase string `json:"phase"`

	// 商店期兵种价格倍率：unit -> multiplier，按局随机后全回合固定
	Multipliers map[string]float64 `json:"multipliers"`

	// 商店期限量库存：item -> 剩余件数，只减不补
	Stock map[string]int64 `json:"stock"`
}

func (m *MarketState) Clone() *MarketState {
	if m == nil {
		return nil
	}
	c := &MarketState{Phase: m.Phase}
	if m.Multipliers != nil {
		c.Multipliers = make(map[string]float64, len(m.Multipliers))
		for k, v := range m.Multipliers {
			c.Multipliers[k] = v
		}
	}
	c.Stock = cloneCountMap(m.Stock)
	return c
}

func (m *MarketState) ShopPhase() bool { return m != nil && m.Phase == PhaseShop }

func (m *MarketState) StockOf(item string) int64 {
	if m == nil || m.Stock == nil {
		return 0
	}
	return m.Stock[item]
}
