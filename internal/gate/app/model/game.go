package model

import "encoding/json"

// GameResult 对局服务的原样回包：业务码和载荷由 game 服务裁定，
// gate 不解释 Data 的内容，透传给客户端。
type GameResult struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (r *GameResult) OK() bool {
	return r != nil && r.Code == 0
}
