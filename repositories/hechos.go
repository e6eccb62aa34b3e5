package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/facundo-gs/busqueda-api/models"
)

type HechoRepository struct {
	col *mongo.Collection
}

func NewHechoRepository(db *mongo.Database) *HechoRepository {
	return &HechoRepository{col: db.Collection("hechos_indexados")}
}

// FindByHechoID returns the aggregate for the natural key, or nil when the
// fact is not indexed. Absence is not an error.
func (r *HechoRepository) FindByHechoID(ctx context.Context, hechoID string) (*models.HechoIndexado, error) {
	var h models.HechoIndexado
	err := r.col.FindOne(ctx, bson.M{"hecho_id": hechoID}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Upsert replaces the whole document keyed by hecho_id. Callers are expected
// to have merged already; the per-document replace is the only consistency
// boundary.
func (r *HechoRepository) Upsert(ctx context.Context, h *models.HechoIndexado) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"hecho_id": h.HechoID}, h, opts)
	return err
}

func (r *HechoRepository) Exists(ctx context.Context, hechoID string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"hecho_id": hechoID}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

// DeleteAll wipes the index. Administrative reset only.
func (r *HechoRepository) DeleteAll(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

func (r *HechoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *HechoRepository) CountCensurados(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"censurado": true})
}
