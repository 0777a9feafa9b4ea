package actors

import (
	"context"
	"time"

	"EraRealms/internal/empire/app/port"
	"EraRealms/internal/empire/dc"
	"EraRealms/internal/empire/entity"
	"EraRealms/internal/empire/entity/domain"

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

// ReplaceState 对局结算后换入新的帝国状态，fire-and-forget。
type ReplaceState struct {
	Empire *domain.Empire
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

// EmpireActor 只管一个帝国的持久化生命周期：
// 启动时加载（或接管新建实体），运行期周期落库，停机前兜底刷盘。
// 规则结算不在这里，对局 actor 算完把新状态推过来。
type EmpireActor struct {
	state     State
	empireID  entity.EmpireID
	dc        *dc.EmpireDC
	entity    *entity.EmpireEntity
	adopted   *entity.EmpireEntity
	flushStop chan struct{}
}

func NewEmpireActor(empireID entity.EmpireID, repo port.EmpireRepository) *EmpireActor {
	return &EmpireActor{
		state:    None,
		empireID: empireID,
		dc:       dc.NewEmpireDC(repo),
	}
}

// NewEmpireActorWithEntity 接管一个刚创建的帝国，没有存档可加载。
func NewEmpireActorWithEntity(e *entity.EmpireEntity, repo port.EmpireRepository) *EmpireActor {
	return &EmpireActor{
		state:    None,
		empireID: e.ID(),
		dc:       dc.NewEmpireDC(repo),
		adopted:  e,
	}
}

func (p *EmpireActor) Receive(ctx actor.Context) {
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
			ctx.Logger().Error("empire dc close failed", "empire_id", p.empireID, "err", err)
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
	case *ReplaceState:
		if p.state != Online || msg.Empire == nil {
			return
		}
		p.entity.Replace(msg.Empire)
		return
	default:
		return
	}
}

func (p *EmpireActor) init(ctx actor.Context) {
	if p.adopted != nil {
		p.dc.Adopt(p.adopted)
		p.entity = p.adopted
		p.adopted = nil
		p.state = Online
		p.startFlushLoop(ctx)
		// 新建帝国立刻落一版，防止进程在第一个周期前崩掉丢开局
		p.dc.Flush(context.TODO())
		return
	}

	e, err := p.dc.Load(context.TODO(), p.empireID)
	if err != nil {
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}
	p.entity = e
	p.state = Online
	p.startFlushLoop(ctx)
}

func (p *EmpireActor) EmpireID() entity.EmpireID {
	return p.empireID
}

func (p *EmpireActor) Entity() *entity.EmpireEntity {
	return p.entity
}

func (p *EmpireActor) startFlushLoop(ctx actor.Context) {
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

func (p *EmpireActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
