package mongodb

import (
	"context"
	"errors"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/game/entity"
	"EraRealms/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultGameCollectionName = "game"

const (
	OpLoadGame = "repo.game.LoadGame"
	OpSnapshot = "repo.game.Snapshot"
)

// GameDoc 对局状态文档，一局一条。
type GameDoc struct {
	GameID int64  `bson:"_id"`
	Round  int    `bson:"round"`
	Phase  string `bson:"phase"`

	MarketPhase       string             `bson:"market_phase"`
	MarketMultipliers map[string]float64 `bson:"market_multipliers,omitempty"`
	MarketStock       map[string]int64   `bson:"market_stock,omitempty"`

	EmpireIds []int64 `bson:"empire_ids,omitempty"`
	BotIds    []int64 `bson:"bot_ids,omitempty"`

	Seed     int64 `bson:"seed"`
	RandUses int64 `bson:"rand_uses"`

	Finished bool  `bson:"finished"`
	Winner   int64 `bson:"winner,omitempty"`
}

type GameRepo struct {
	coll *mongo.Collection
}

func NewGameRepo(db *mongo.Database) *GameRepo {
	if db == nil {
		return &GameRepo{}
	}
	return &GameRepo{coll: db.Collection(defaultGameCollectionName)}
}

func (r *GameRepo) LoadGame(ctx context.Context, id entity.GameID) (*entity.Game, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithData("op", OpLoadGame).
			WithCause(errors.New("mongodb game collection is nil"))
	}

	var doc GameDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if err == nil {
		return entity.HydrateGame(docToState(doc)), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrGameNotFound
	}
	return nil, errx.ErrUnavailable.WithData("op", OpLoadGame).WithData("game_id", int64(id)).WithCause(err)
}

func (r *GameRepo) Snapshot(ctx context.Context, s *entity.GamePersistSnapshot) error {
	if s == nil || s.State == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithData("op", OpSnapshot).
			WithCause(errors.New("mongodb game collection is nil"))
	}

	doc := stateToDoc(s.State)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.GameID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithData("op", OpSnapshot).WithData("game_id", doc.GameID).WithCause(err)
	}
	return nil
}

func stateToDoc(gs *entity.GameState) GameDoc {
	doc := GameDoc{
		GameID:    int64(gs.Id),
		Round:     gs.Round,
		Phase:     gs.Phase,
		EmpireIds: gs.EmpireIds,
		BotIds:    gs.BotIds,
		Seed:      gs.Seed,
		RandUses:  gs.RandUses,
		Finished:  gs.Finished,
		Winner:    gs.Winner,
	}
	if gs.Market != nil {
		doc.MarketPhase = gs.Market.Phase
		doc.MarketMultipliers = gs.Market.Multipliers
		doc.MarketStock = gs.Market.Stock
	}
	return doc
}

func docToState(doc GameDoc) *entity.GameState {
	return &entity.GameState{
		Id:    entity.GameID(doc.GameID),
		Round: doc.Round,
		Phase: doc.Phase,
		Market: &domain.MarketState{
			Phase:       doc.MarketPhase,
			Multipliers: doc.MarketMultipliers,
			Stock:       doc.MarketStock,
		},
		EmpireIds: doc.EmpireIds,
		BotIds:    doc.BotIds,
		Seed:      doc.Seed,
		RandUses:  doc.RandUses,
		Finished:  doc.Finished,
		Winner:    doc.Winner,
	}
}
