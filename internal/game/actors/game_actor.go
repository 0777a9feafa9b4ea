package actors

import (
	"context"
	"errors"
	"math/rand"
	"time"

	empireactors "EraRealms/internal/empire/actors"
	empireapp "EraRealms/internal/empire/app"
	empireport "EraRealms/internal/empire/app/port"
	empireentity "EraRealms/internal/empire/entity"
	"EraRealms/internal/empire/entity/domain"
	gameport "EraRealms/internal/game/app/port"
	gamedc "EraRealms/internal/game/dc"
	"EraRealms/internal/game/entity"
	gamesvc "EraRealms/internal/game/service"
	"EraRealms/internal/shared/actor/messages"
	"EraRealms/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// ArchiveStore 回合收盘后把当期盘面归档，供榜单查询。
type ArchiveStore interface {
	ArchiveRound(ctx context.Context, gameId int64, round int, empires []*domain.Empire) error
}

// Deps 对局 actor 的外部依赖，由进程入口装配好后整包传入。
type Deps struct {
	GameRepo   gameport.GameRepository
	EmpireRepo empireport.EmpireRepository
	Archive    ArchiveStore
	Ops        *empireapp.OpsService
	Rounds     *gamesvc.RoundService
	IdGen      empireapp.IdGen
	Seed       int64 // 0 表示按时钟取种子
	Log        logx.Logger
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

// GameActor 持有一场对局的全部权威状态：对局进度 + 场上每个帝国的当前快照。
// 规则结算都在这条消息流里串行做，天然不需要锁；
// 每个帝国另有一个子 actor 只管自己的持久化，结算完把新状态推过去即可。
type GameActor struct {
	state  State
	gameID GameID
	deps   Deps

	dc   *gamedc.GameDC
	game *entity.Game

	empires  map[int64]*domain.Empire
	children map[int64]*actor.PID

	dispatcher *Dispatcher
	rng        *rand.Rand
	flushStop  chan struct{}
}

func NewGameActor(gameID GameID, deps Deps) *GameActor {
	return &GameActor{
		state:      None,
		gameID:     gameID,
		deps:       deps,
		dc:         gamedc.NewGameDC(deps.GameRepo),
		empires:    make(map[int64]*domain.Empire),
		children:   make(map[int64]*actor.PID),
		dispatcher: NewDispatcher(),
	}
}

func (p *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			ctx.Logger().Error("game dc close failed", "game_id", p.gameID, "err", err)
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopFlushLoop()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		p.dc.Flush(context.TODO())
		return
	case messages.GameMessage:
		if msg == nil {
			ctx.Respond(failReply("nil request"))
			return
		}
		if p.state != Online {
			ctx.Respond(failReply("game not online"))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
		return
	default:
		return
	}
}

func (p *GameActor) init(ctx actor.Context) {
	g, err := p.dc.Load(context.TODO(), p.gameID)
	switch {
	case err == nil:
		p.game = g
		if err := p.loadEmpires(ctx); err != nil {
			ctx.Logger().Error("game load empires failed", "game_id", p.gameID, "err", err)
			p.state = Stopping
			ctx.Stop(ctx.Self())
			return
		}
	case errors.Is(err, entity.ErrGameNotFound):
		if err := p.createGame(ctx); err != nil {
			ctx.Logger().Error("game create failed", "game_id", p.gameID, "err", err)
			p.state = Stopping
			ctx.Stop(ctx.Self())
			return
		}
	default:
		ctx.Logger().Error("game load failed", "game_id", p.gameID, "err", err)
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}

	p.rng = gamesvc.GameRand(p.game.State())
	p.state = Online
	p.startFlushLoop(ctx)
}

func (p *GameActor) createGame(ctx actor.Context) error {
	seed := p.deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gs := gamesvc.NewGameState(p.gameID, seed)
	bots, err := gamesvc.SpawnBots(gs, p.deps.IdGen)
	if err != nil {
		return err
	}

	p.game = entity.NewGame(gs)
	p.dc.Adopt(p.game)
	for _, bot := range bots {
		p.adoptEmpire(ctx, bot)
	}
	// 开局立刻落一版，防止进程在第一个刷盘周期前崩掉丢对局
	p.dc.Flush(context.TODO())
	return nil
}

func (p *GameActor) loadEmpires(ctx actor.Context) error {
	gs := p.game.State()
	ids := append(append([]int64(nil), gs.EmpireIds...), gs.BotIds...)
	for _, id := range ids {
		ent, err := p.deps.EmpireRepo.LoadEmpire(context.TODO(), domain.EmpireID(id))
		if err != nil {
			return err
		}
		p.empires[id] = ent.Empire()
		p.spawnChild(ctx, id, ent)
	}
	return nil
}

// adoptEmpire 接管一个刚创建的帝国：进权威表，并拉起持久化子 actor。
func (p *GameActor) adoptEmpire(ctx actor.Context, e *domain.Empire) {
	id := int64(e.Id)
	p.empires[id] = e
	p.spawnChild(ctx, id, empireentity.NewEmpireEntity(e))
}

func (p *GameActor) spawnChild(ctx actor.Context, id int64, ent *empireentity.EmpireEntity) {
	props := actor.PropsFromProducer(func() actor.Actor {
		return empireactors.NewEmpireActorWithEntity(ent, p.deps.EmpireRepo)
	})
	p.children[id] = ctx.Spawn(props)
}

// commit 换入结算后的新帝国状态，并把它推给持久化子 actor。
func (p *GameActor) commit(ctx actor.Context, e *domain.Empire) {
	if e == nil {
		return
	}
	id := int64(e.Id)
	p.empires[id] = e
	if pid := p.children[id]; pid != nil {
		ctx.Send(pid, &empireactors.ReplaceState{Empire: e})
	}
}

// syncAll 批处理（机器人期、回合收盘）直接改了权威表，整表推一遍。
func (p *GameActor) syncAll(ctx actor.Context) {
	for id, e := range p.empires {
		if pid := p.children[id]; pid != nil && e != nil {
			ctx.Send(pid, &empireactors.ReplaceState{Empire: e})
		}
	}
}

func (p *GameActor) Entity() *entity.Game {
	return p.game
}

func (p *GameActor) DC() *gamedc.GameDC {
	return p.dc
}

func (p *GameActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *GameActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
