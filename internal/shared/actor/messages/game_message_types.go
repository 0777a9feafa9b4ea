package messages

// GameReply 对局 actor 的统一回包：Code 用 transport 业务码，Payload 是领域结果。
type GameReply struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type EmpireSummary struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	Race     string `json:"race"`
	Era      string `json:"era"`
	Networth int64  `json:"networth"`
	Land     int64  `json:"land"`
	Bot      bool   `json:"bot"`
	Defeated bool   `json:"defeated"`
}

type GameStatus struct {
	GameId   int64           `json:"game_id"`
	Round    int             `json:"round"`
	Phase    string          `json:"phase"`
	Finished bool            `json:"finished"`
	Winner   int64           `json:"winner,omitempty"`
	Empires  []EmpireSummary `json:"empires"`
}
