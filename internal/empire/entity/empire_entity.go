package entity

import (
	"EraRealms/internal/empire/entity/domain"
)

type EmpireID = domain.EmpireID

// EmpireEntity 是帝国聚合的内存态：持有当前领域对象 + 脏标记。
// 应用层的结算总是产出新的 *domain.Empire，actor 用 Replace 换入并置脏，
// 落库由 dc 的写后刷新消化。
type EmpireEntity struct {
	id     EmpireID
	empire *domain.Empire
	dirty  bool
}

func NewEmpireEntity(e *domain.Empire) *EmpireEntity {
	if e == nil {
		return nil
	}
	return &EmpireEntity{id: e.Id, empire: e, dirty: true}
}

// Hydrate 从持久化状态恢复，不置脏。
func Hydrate(e *domain.Empire) *EmpireEntity {
	if e == nil {
		return nil
	}
	return &EmpireEntity{id: e.Id, empire: e}
}

func (p *EmpireEntity) ID() EmpireID {
	return p.id
}

func (p *EmpireEntity) Empire() *domain.Empire {
	return p.empire
}

// Replace 换入结算后的新领域对象。
func (p *EmpireEntity) Replace(e *domain.Empire) {
	if e == nil {
		return
	}
	p.empire = e
	p.dirty = true
}

func (p *EmpireEntity) Dirty() bool {
	return p != nil && p.dirty
}

func (p *EmpireEntity) ClearDirty() {
	if p != nil {
		p.dirty = false
	}
}

// BuildPersistSnapshot 同步抓取一份不可变快照，写库在别的 goroutine 做。
func (p *EmpireEntity) BuildPersistSnapshot(version uint64) (*EmpirePersistSnapshot, bool) {
	if p == nil || p.empire == nil || !p.dirty {
		return nil, false
	}
	return &EmpirePersistSnapshot{
		Version: version,
		State:   p.empire.Clone(),
	}, true
}
