package messages

// GameMessage 是对局 actor 的统一入口：manager 按 GameID 路由，
// 对局内再按消息类型分发。EmpireID 是发起方（0 表示对局级操作）。
//
// 这些结构同时是 gate 与 game 服务之间的 HTTP 载荷，json tag 即线上协议，
// 字段改名要同时考虑两边的兼容。
type GameMessage interface {
	GameID() int64
	EmpireID() int64
}

type GameBaseMessage struct {
	GameId   int64 `json:"game_id"`
	EmpireId int64 `json:"empire_id"`
}

func (m GameBaseMessage) GameID() int64 {
	return m.GameId
}

func (m GameBaseMessage) EmpireID() int64 {
	return m.EmpireId
}

// GJoinGame 入场：创建帝国并登记进对局名单。
type GJoinGame struct {
	GameBaseMessage
	Name string `json:"name"`
	Race string `json:"race"`
}

type GGameStatus struct {
	GameBaseMessage
}

type GEmpireStatus struct {
	GameBaseMessage
}

// GPrices 当前阶段下发起方看到的市场报价。
type GPrices struct {
	GameBaseMessage
}

type GApplyAction struct {
	GameBaseMessage
	Action     string           `json:"action"`
	Turns      int              `json:"turns"`
	Buildings  map[string]int64 `json:"buildings,omitempty"`
	Allocation map[string]int   `json:"allocation,omitempty"`
}

type GTransactMarket struct {
	GameBaseMessage
	Kind     string `json:"kind"`
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
}

type GTransactBank struct {
	GameBaseMessage
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
}

type GCastSpell struct {
	GameBaseMessage
	Spell    string `json:"spell"`
	TargetId int64  `json:"target_id"`
}

type GAttack struct {
	GameBaseMessage
	AttackType string `json:"attack_type"`
	TargetId   int64  `json:"target_id"`
}

type GDraftAdvisor struct {
	GameBaseMessage
}

type GDismissAdvisor struct {
	GameBaseMessage
	AdvisorId int64 `json:"advisor_id"`
}

type GRaiseMastery struct {
	GameBaseMessage
	Action string `json:"action"`
}

type GAdoptPolicy struct {
	GameBaseMessage
	Policy string `json:"policy"`
}

// GEndPhase 结束当前阶段：player→shop→bot，bot 期收盘推进回合。
type GEndPhase struct {
	GameBaseMessage
}
