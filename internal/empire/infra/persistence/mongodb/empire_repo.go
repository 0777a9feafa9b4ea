package mongodb

import (
	"context"
	"errors"

	"EraRealms/internal/empire/entity"
	"EraRealms/internal/empire/infra/persistence/model"
	"EraRealms/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultEmpireCollectionName = "empire"

const (
	OpLoadEmpire = "repo.empire.LoadEmpire"
	OpSnapshot   = "repo.empire.Snapshot"
)

type EmpireRepo struct {
	coll *mongo.Collection
}

func NewEmpireRepo(db *mongo.Database) *EmpireRepo {
	if db == nil {
		return &EmpireRepo{}
	}
	return &EmpireRepo{coll: db.Collection(defaultEmpireCollectionName)}
}

func (r *EmpireRepo) LoadEmpire(ctx context.Context, id entity.EmpireID) (*entity.EmpireEntity, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithData("op", OpLoadEmpire).
			WithCause(errors.New("mongodb empire collection is nil"))
	}

	var doc model.EmpireDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if err == nil {
		return entity.Hydrate(model.DocToEmpire(doc)), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrEmpireNotFound
	}
	return nil, errx.ErrUnavailable.WithData("op", OpLoadEmpire).WithData("empire_id", int64(id)).WithCause(err)
}

func (r *EmpireRepo) Snapshot(ctx context.Context, s *entity.EmpirePersistSnapshot) error {
	if s == nil || s.State == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithData("op", OpSnapshot).
			WithCause(errors.New("mongodb empire collection is nil"))
	}

	doc := model.EmpireToDoc(s.State)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.EmpireID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithData("op", OpSnapshot).WithData("empire_id", doc.EmpireID).WithCause(err)
	}
	return nil
}
