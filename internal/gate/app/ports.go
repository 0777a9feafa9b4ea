package app

import (
	"EraRealms/internal/gate/app/model"
	"EraRealms/internal/shared/actor/messages"
	"context"
)

// AccountClient 是 login 服务的出站端口：注册、登录、档案维护。
// 业务拒绝以 *BizRejectedError 返回，技术故障以 errx 系错误返回。
type AccountClient interface {
	Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error)
	Register(ctx context.Context, req model.RegisterReq) error
	Profile(ctx context.Context, session string) (*model.Profile, error)
	SaveProfile(ctx context.Context, session string, p model.Profile) error
	BindGame(ctx context.Context, session string, gameId, empireId int64) error
}

// GameClient 是 game 服务的出站端口：op 是操作名（join/status/action…），
// msg 是带 game_id/empire_id 的消息体。回包原样带回，由 gate 透传。
type GameClient interface {
	Call(ctx context.Context, op string, msg messages.GameMessage) (*model.GameResult, error)
}
