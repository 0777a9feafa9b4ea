package mysql

import (
	"context"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/empire/infra/persistence/model"
	"EraRealms/modules/kit/errx"

	"gorm.io/gorm"
)

const (
	OpArchiveRound  = "repo.archive.ArchiveRound"
	OpTopByNetworth = "repo.archive.TopByNetworth"
)

// ArchiveRepo 把回合收盘战绩写进 mysql，供榜单与复盘查询。
type ArchiveRepo struct {
	db *gorm.DB
}

func NewArchiveRepo(db *gorm.DB) *ArchiveRepo {
	return &ArchiveRepo{db: db}
}

func (r *ArchiveRepo) ArchiveRound(ctx context.Context, gameId int64, round int, empires []*domain.Empire) error {
	if len(empires) == 0 {
		return nil
	}

	rows := make([]model.RoundArchive, 0, len(empires))
	for _, e := range empires {
		rows = append(rows, model.RoundArchive{
			GameId:       gameId,
			Round:        round,
			EmpireId:     int64(e.Id),
			Name:         e.Name,
			Race:         e.Race,
			Era:          e.Era,
			Networth:     e.Networth,
			Land:         e.Resources.Land,
			Gold:         e.Resources.Gold,
			Food:         e.Resources.Food,
			Runes:        e.Resources.Runes,
			Peasants:     e.Peasants,
			Health:       e.Health,
			Kills:        e.Tally.Kills,
			Defeated:     e.Defeated,
			DefeatReason: e.DefeatReason,
		})
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return errx.ErrUnavailable.WithData("op", OpArchiveRound).
			WithData("game_id", gameId).WithData("round", round).WithCause(err)
	}
	return nil
}

// TopByNetworth 返回某回合按身价降序的前 limit 条存档。
func (r *ArchiveRepo) TopByNetworth(ctx context.Context, gameId int64, round, limit int) ([]model.RoundArchive, error) {
	var rows []model.RoundArchive
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND round = ?", gameId, round).
		Order("networth DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errx.ErrUnavailable.WithData("op", OpTopByNetworth).
			WithData("game_id", gameId).WithData("round", round).WithCause(err)
	}
	return rows, nil
}
