package service

import (
	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/race"
	"EraRealms/internal/shared/gameconfig/unit"
)

// NewEmpire 开局帝国：起始数值全部来自 basic 表，时代从 present 起步。
func NewEmpire(id domain.EmpireID, name, raceName string) (*domain.Empire, error) {
	if !race.Exists(raceName) {
		return nil, ErrValidation.WithReason(ReasonUnknownItem).WithData("race", raceName)
	}
	ec := basic.BasicConf.Empire
	e := &domain.Empire{
		Id:   id,
		Name: name,
		Race: raceName,
		Era:  era.Present,
		Resources: domain.Resources{
			Gold:     ec.Gold,
			Food:     ec.Food,
			Runes:    ec.Runes,
			Land:     ec.Land,
			Freeland: ec.Land,
		},
		Buildings: make(map[string]int64, len(domain.BuildingTypes)),
		Troops:    make(map[string]int64, 5),
		IndustryAllocation: map[string]int{
			unit.Infantry: 100,
		},
		Peasants:       ec.Peasants,
		Health:         ec.Health,
		TaxRate:        ec.TaxRate,
		TurnsRemaining: basic.BasicConf.Game.TurnsPerRound,
		Masteries:      make(map[string]int, len(domain.MasteryActions)),
	}
	RecomputeNetworth(e)
	return e, nil
}
