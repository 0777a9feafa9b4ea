package dc

import (
	"context"
	"sync"
	"time"

	"EraRealms/internal/game/app/port"
	"EraRealms/internal/game/entity"
)

type GameID = entity.GameID

// GameDC 对局状态的数据缓存，套路与帝国侧一致：脏检查 + 快照 + 异步写库。
type GameDC struct {
	repo       port.GameRepository
	entity     *entity.Game
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.GamePersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewGameDC(repo port.GameRepository) *GameDC {
	d := &GameDC{
		repo:       repo,
		flushEvery: 3000 * time.Millisecond,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *GameDC) Load(ctx context.Context, id GameID) (*entity.Game, error) {
	g, err := d.repo.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	d.entity = g
	return g, nil
}

func (d *GameDC) Adopt(g *entity.Game) {
	d.entity = g
}

func (d *GameDC) Entity() *entity.Game {
	return d.entity
}

func (d *GameDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *GameDC) Flush(ctx context.Context) {
	if d.entity == nil || !d.entity.Dirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *GameDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *GameDC) buildNextSnapshot() (*entity.GamePersistSnapshot, bool) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *GameDC) enqueueLatest(s *entity.GamePersistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *GameDC) popPending() *entity.GamePersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *GameDC) requeueOnError(s *entity.GamePersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *GameDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *GameDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.Snapshot(context.TODO(), s); err != nil {
			d.requeueOnError(s)
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
