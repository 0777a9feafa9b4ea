package dc

import (
	"context"
	"sync"
	"time"

	"EraRealms/internal/empire/app/port"
	"EraRealms/internal/empire/entity"
)

type EmpireID = entity.EmpireID

// EmpireDC 是帝国聚合的数据缓存：全量加载进内存，
// 落库走脏检查 + 同步快照 + 异步写库（只保留最新版本）。
type EmpireDC struct {
	repo       port.EmpireRepository
	entity     *entity.EmpireEntity
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.EmpirePersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewEmpireDC(repo port.EmpireRepository) *EmpireDC {
	d := &EmpireDC{
		repo:       repo,
		flushEvery: 3000 * time.Millisecond,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *EmpireDC) Load(ctx context.Context, id EmpireID) (*entity.EmpireEntity, error) {
	e, err := d.repo.LoadEmpire(ctx, id)
	if err != nil {
		return nil, err
	}
	d.entity = e
	return e, nil
}

// Adopt 接管一个新建的实体（开局入场时没有可加载的存档）。
func (d *EmpireDC) Adopt(e *entity.EmpireEntity) {
	d.entity = e
}

// Flush 抓快照入队；真正的写库在 writerLoop。
// 注意：如果存在绕过 dc 的写（比如运维脚本），version 只能保证不用旧值覆盖新值。
func (d *EmpireDC) Flush(ctx context.Context) {
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *EmpireDC) IsDirty() bool {
	return d.entity.Dirty()
}

func (d *EmpireDC) Entity() *entity.EmpireEntity {
	return d.entity
}

func (d *EmpireDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *EmpireDC) Close(ctx context.Context) error {
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

func (d *EmpireDC) buildNextSnapshot() (*entity.EmpirePersistSnapshot, bool) {
	if d.entity == nil {
		return nil, false
	}
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

func (d *EmpireDC) enqueueLatest(s *entity.EmpirePersistSnapshot) {
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

func (d *EmpireDC) popPending() *entity.EmpirePersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *EmpireDC) requeueOnError(s *entity.EmpirePersistSnapshot) {
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

func (d *EmpireDC) writerLoop() {
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

func (d *EmpireDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.Snapshot(context.TODO(), s); err != nil {
			// 写失败重排当前快照；之后有更高 version 会把它覆盖掉。
			d.requeueOnError(s)
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
