package port

import (
	"context"

	"EraRealms/internal/game/entity"
)

type GameRepository interface {
	LoadGame(ctx context.Context, id entity.GameID) (*entity.Game, error)
	Snapshot(ctx context.Context, s *entity.GamePersistSnapshot) error
}
