package dto

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Ip       string `json:"ip"`
	Hardware string `json:"hardware"`
}

type LoginResp struct {
	Username string       `json:"username"`
	UId      int          `json:"uid"`
	Session  string       `json:"session"` // token
	Profile  *ProfileResp `json:"profile,omitempty"`
}

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Hardware string `json:"hardware"`
}

type ProfileReq struct {
	EmpireName string `json:"empire_name"`
	Race       string `json:"race"`
}

type ProfileResp struct {
	EmpireName string `json:"empire_name"`
	Race       string `json:"race"`
	GameId     int64  `json:"game_id"`
	EmpireId   int64  `json:"empire_id"`
}

type BindGameReq struct {
	GameId   int64 `json:"game_id"`
	EmpireId int64 `json:"empire_id"`
}
