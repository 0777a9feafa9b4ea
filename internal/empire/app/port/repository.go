package port

import (
	"context"

	"EraRealms/internal/empire/entity"
)

type EmpireRepository interface {
	LoadEmpire(ctx context.Context, id entity.EmpireID) (*entity.EmpireEntity, error)
	Snapshot(ctx context.Context, s *entity.EmpirePersistSnapshot) error
}
