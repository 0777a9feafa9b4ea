package handler

import (
	"EraRealms/internal/gate/app"
	"EraRealms/internal/shared/session"
	"EraRealms/modules/kit/logx"
)

// 连接属性键：登录和入场成功后写入，后续请求据此补齐身份字段。
// 客户端报文里的 game_id/empire_id 一律不信，以连接上绑定的为准。
const (
	ConnKeySession  = "session"
	ConnKeyGameID   = "gameId"
	ConnKeyEmpireID = "empireId"
)

// Gate 聚合网关 handler 的公共依赖：会话表、应用服务、日志。
// ws 和 http 两套 handler 共用同一个实例。
type Gate struct {
	Session     session.Manager
	GateService *app.GateService
	Log         logx.Logger
}

func NewGate(s session.Manager, svc *app.GateService, log logx.Logger) *Gate {
	return &Gate{
		Session:     s,
		GateService: svc,
		Log:         log,
	}
}
