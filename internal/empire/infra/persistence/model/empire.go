package model

import "EraRealms/internal/empire/entity/domain"

// EmpireDoc 是帝国聚合在 mongo 里的全量文档，一个帝国一条。
type EmpireDoc struct {
	EmpireID        int64  `bson:"_id"`
	Name            string `bson:"name"`
	Race            string `bson:"race"`
	Era             string `bson:"era"`
	EraChangedRound int    `bson:"era_changed_round"`

	Gold     int64 `bson:"gold"`
	Food     int64 `bson:"food"`
	Runes    int64 `bson:"runes"`
	Land     int64 `bson:"land"`
	Freeland int64 `bson:"freeland"`

	Buildings          map[string]int64 `bson:"buildings,omitempty"`
	Troops             map[string]int64 `bson:"troops,omitempty"`
	IndustryAllocation map[string]int   `bson:"industry_allocation,omitempty"`

	Peasants int64 `bson:"peasants"`
	Health   int   `bson:"health"`
	TaxRate  int   `bson:"tax_rate"`

	Savings  int64 `bson:"savings"`
	Loan     int64 `bson:"loan"`
	Networth int64 `bson:"networth"`

	TurnsRemaining   int `bson:"turns_remaining"`
	BonusTurns       int `bson:"bonus_turns"`
	AttacksThisRound int `bson:"attacks_this_round"`

	Tally   TallyDoc   `bson:"tally"`
	Effects EffectsDoc `bson:"effects"`

	Advisors   []AdvisorDoc   `bson:"advisors,omitempty"`
	BonusSlots int            `bson:"bonus_slots"`
	Masteries  map[string]int `bson:"masteries,omitempty"`
	Policies   []string       `bson:"policies,omitempty"`

	Defeated     bool   `bson:"defeated"`
	DefeatReason string `bson:"defeat_reason,omitempty"`
}

type TallyDoc struct {
	OffenseAttempts  int   `bson:"offense_attempts"`
	OffenseSuccesses int   `bson:"offense_successes"`
	DefenseAttempts  int   `bson:"defense_attempts"`
	DefenseSuccesses int   `bson:"defense_successes"`
	Kills            int64 `bson:"kills"`
}

type EffectsDoc struct {
	Shield           int `bson:"shield"`
	Gate             int `bson:"gate"`
	Pacification     int `bson:"pacification"`
	DivineProtection int `bson:"divine_protection"`
}

type AdvisorDoc struct {
	Id     int64  `bson:"id"`
	CfgId  int    `bson:"cfg_id"`
	Name   string `bson:"name"`
	Rarity string `bson:"rarity"`
}

func EmpireToDoc(e *domain.Empire) EmpireDoc {
	doc := EmpireDoc{
		EmpireID:        int64(e.Id),
		Name:            e.Name,
		Race:            e.Race,
		Era:             e.Era,
		EraChangedRound: e.EraChangedRound,

		Gold:     e.Resources.Gold,
		Food:     e.Resources.Food,
		Runes:    e.Resources.Runes,
		Land:     e.Resources.Land,
		Freeland: e.Resources.Freeland,

		Buildings:          e.Buildings,
		Troops:             e.Troops,
		IndustryAllocation: e.IndustryAllocation,

		Peasants: e.Peasants,
		Health:   e.Health,
		TaxRate:  e.TaxRate,

		Savings:  e.Savings,
		Loan:     e.Loan,
		Networth: e.Networth,

		TurnsRemaining:   e.TurnsRemaining,
		BonusTurns:       e.BonusTurns,
		AttacksThisRound: e.AttacksThisRound,

		Tally:   TallyDoc(e.Tally),
		Effects: EffectsDoc(e.Effects),

		BonusSlots: e.BonusSlots,
		Masteries:  e.Masteries,
		Policies:   e.Policies,

		Defeated:     e.Defeated,
		DefeatReason: e.DefeatReason,
	}
	for _, a := range e.Advisors {
		doc.Advisors = append(doc.Advisors, AdvisorDoc(a))
	}
	return doc
}

func DocToEmpire(doc EmpireDoc) *domain.Empire {
	e := &domain.Empire{
		Id:              domain.EmpireID(doc.EmpireID),
		Name:            doc.Name,
		Race:            doc.Race,
		Era:             doc.Era,
		EraChangedRound: doc.EraChangedRound,

		Resources: domain.Resources{
			Gold:     doc.Gold,
			Food:     doc.Food,
			Runes:    doc.Runes,
			Land:     doc.Land,
			Freeland: doc.Freeland,
		},
		Buildings:          doc.Buildings,
		Troops:             doc.Troops,
		IndustryAllocation: doc.IndustryAllocation,

		Peasants: doc.Peasants,
		Health:   doc.Health,
		TaxRate:  doc.TaxRate,

		Savings:  doc.Savings,
		Loan:     doc.Loan,
		Networth: doc.Networth,

		TurnsRemaining:   doc.TurnsRemaining,
		BonusTurns:       doc.BonusTurns,
		AttacksThisRound: doc.AttacksThisRound,

		Tally:   domain.CombatTally(doc.Tally),
		Effects: domain.TimedEffects(doc.Effects),

		BonusSlots: doc.BonusSlots,
		Masteries:  doc.Masteries,
		Policies:   doc.Policies,

		Defeated:     doc.Defeated,
		DefeatReason: doc.DefeatReason,
	}
	if e.Buildings == nil {
		e.Buildings = make(map[string]int64)
	}
	if e.Troops == nil {
		e.Troops = make(map[string]int64)
	}
	for _, a := range doc.Advisors {
		e.Advisors = append(e.Advisors, domain.Advisor(a))
	}
	return e
}
