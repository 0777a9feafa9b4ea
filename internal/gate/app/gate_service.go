package app

import (
	"EraRealms/internal/gate/app/model"
	"EraRealms/internal/shared/actor/messages"
	"context"
)

// GateService 是网关的应用层：账号请求转发给 login 服务，
// 对局请求转发给 game 服务。会话绑定等接入态的事归 handler 层管。
type GateService struct {
	account AccountClient
	game    GameClient
}

func NewGateService(account AccountClient, game GameClient) *GateService {
	return &GateService{
		account: account,
		game:    game,
	}
}

func (g *GateService) Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error) {
	if g.account == nil {
		return nil, ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	resp, err := g.account.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrInternalServer.WithReason(ReasonUpstreamBadResponse)
	}
	return resp, nil
}

func (g *GateService) Register(ctx context.Context, req model.RegisterReq) error {
	if g.account == nil {
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	return g.account.Register(ctx, req)
}

func (g *GateService) Profile(ctx context.Context, session string) (*model.Profile, error) {
	if g.account == nil {
		return nil, ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	resp, err := g.account.Profile(ctx, session)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrInternalServer.WithReason(ReasonUpstreamBadResponse)
	}
	return resp, nil
}

func (g *GateService) SaveProfile(ctx context.Context, session string, p model.Profile) error {
	if g.account == nil {
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	return g.account.SaveProfile(ctx, session, p)
}

// BindGame 入场成功后把对局号写回玩家档案，下次登录直接回到这一局。
// 失败不致命：调用方只记日志，不打断入场流程。
func (g *GateService) BindGame(ctx context.Context, session string, gameId, empireId int64) error {
	if g.account == nil {
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	return g.account.BindGame(ctx, session, gameId, empireId)
}

// GameCall 把一条对局操作转给 game 服务，回包由调用方透传给客户端。
func (g *GateService) GameCall(ctx context.Context, op string, msg messages.GameMessage) (*model.GameResult, error) {
	if g.game == nil {
		return nil, ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	result, err := g.game.Call(ctx, op, msg)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrInternalServer.WithReason(ReasonUpstreamBadResponse)
	}
	return result, nil
}
