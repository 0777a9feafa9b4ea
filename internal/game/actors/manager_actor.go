package actors

import (
	"EraRealms/internal/game/entity"
	"EraRealms/internal/shared/actor/messages"

	"github.com/asynkron/protoactor-go/actor"
)

type GameID = entity.GameID

// ManagerActor 按 GameID 把消息路由到对局 actor，不存在则就地拉起。
type ManagerActor struct {
	deps       Deps
	gameActors map[GameID]*actor.PID
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:       deps,
		gameActors: make(map[GameID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	req, ok := ctx.Message().(messages.GameMessage)
	if !ok {
		return
	}
	if req == nil {
		ctx.Respond(failReply("nil request"))
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, GameID(req.GameID())))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, gameID GameID) *actor.PID {
	if pid, ok := m.gameActors[gameID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewGameActor(gameID, m.deps)
	})
	pid := ctx.Spawn(props)
	m.gameActors[gameID] = pid
	return pid
}
