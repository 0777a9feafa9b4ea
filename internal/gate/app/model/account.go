package model

// 账号域的网关模型：与 login 服务的 HTTP 协议字段一一对应。
// gate 不 import account 的 dto 包，协议靠字段约定对齐，两边可独立演进。

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Ip       string `json:"ip"`
	Hardware string `json:"hardware"`
}

type LoginResp struct {
	Username string   `json:"username"`
	UId      int      `json:"uid"`
	Session  string   `json:"session"`
	Profile  *Profile `json:"profile,omitempty"`
}

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Hardware string `json:"hardware"`
}

// Profile 玩家开局档案：默认帝国名、种族与最近加入的对局。
type Profile struct {
	EmpireName string `json:"empire_name"`
	Race       string `json:"race"`
	GameId     int64  `json:"game_id"`
	EmpireId   int64  `json:"empire_id"`
}

type BindGameReq struct {
	GameId   int64 `json:"game_id"`
	EmpireId int64 `json:"empire_id"`
}
