package entity

import (
	"EraRealms/internal/empire/entity/domain"
)

type GameID int64

// GameState 一场对局的全量状态：回合进度、阶段、商店盘面、名单与随机种子。
// 帝国聚合不在这里，各自走 empire 上下文持久化。
type GameState struct {
	Id    GameID `json:"id"`
	Round int    `json:"round"`
	Phase string `json:"phase"` // player | shop | bot

	Market *domain.MarketState `json:"market"`

	EmpireIds []int64 `json:"empire_ids"`
	BotIds    []int64 `json:"bot_ids"`

	Seed     int64 `json:"seed"`
	RandUses int64 `json:"rand_uses"` // 重放对局时恢复随机流位置

	Finished bool  `json:"finished"`
	Winner   int64 `json:"winner"`
}

func (g *GameState) HasEmpire(id int64) bool {
	for _, e := range g.EmpireIds {
		if e == id {
			return true
		}
	}
	for _, b := range g.BotIds {
		if b == id {
			return true
		}
	}
	return false
}

func (g *GameState) IsBot(id int64) bool {
	for _, b := range g.BotIds {
		if b == id {
			return true
		}
	}
	return false
}

func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	c := *g
	c.Market = g.Market.Clone()
	c.EmpireIds = append([]int64(nil), g.EmpireIds...)
	c.BotIds = append([]int64(nil), g.BotIds...)
	return &c
}

// Game 是对局状态的内存态包装：领域状态 + 脏标记。
type Game struct {
	state *GameState
	dirty bool
}

func NewGame(state *GameState) *Game {
	if state == nil {
		return nil
	}
	return &Game{state: state, dirty: true}
}

func HydrateGame(state *GameState) *Game {
	if state == nil {
		return nil
	}
	return &Game{state: state}
}

func (g *Game) ID() GameID {
	return g.state.Id
}

func (g *Game) State() *GameState {
	return g.state
}

func (g *Game) MarkDirty() {
	if g != nil {
		g.dirty = true
	}
}

func (g *Game) Dirty() bool {
	return g != nil && g.dirty
}

func (g *Game) ClearDirty() {
	if g != nil {
		g.dirty = false
	}
}

func (g *Game) BuildPersistSnapshot(version uint64) (*GamePersistSnapshot, bool) {
	if g == nil || g.state == nil || !g.dirty {
		return nil, false
	}
	return &GamePersistSnapshot{
		Version: version,
		State:   g.state.Clone(),
	}, true
}
