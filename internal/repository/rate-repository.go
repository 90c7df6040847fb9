package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// RateRepository is append-only for the rate values themselves: a new entry
// with a later effective date supersedes the old one, and only descriptive
// metadata may be patched afterwards.
type RateRepository struct {
	collection *mongo.Collection
}

func NewRateRepository(db *mongo.Database) *RateRepository {
	return &RateRepository{
		collection: db.Collection("RateConfig"),
	}
}

func (r *RateRepository) Create(ctx context.Context, rate *models.RateConfig) (*models.RateConfig, error) {
	if rate.ID.IsZero() {
		rate.ID = bson.NewObjectID()
	}
	rate.CreatedAt = int(time.Now().Unix())

	if _, err := r.collection.InsertOne(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to insert rate config: %w", err)
	}
	return rate, nil
}

func (r *RateRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.RateConfig, error) {
	var rate models.RateConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: rate config %s", apperr.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &rate, nil
}

// FindAll returns the whole table ordered oldest first; the lookup logic
// works over the in-memory slice.
func (r *RateRepository) FindAll(ctx context.Context) ([]models.RateConfig, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "effectiveDate", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list rate configs: %w", err)
	}
	defer cursor.Close(ctx)

	var rateTable []models.RateConfig
	if err := cursor.All(ctx, &rateTable); err != nil {
		return nil, fmt.Errorf("failed to decode rate configs: %w", err)
	}
	return rateTable, nil
}

func (r *RateRepository) FindByType(ctx context.Context, rateType models.RateType) ([]models.RateConfig, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"type": rateType}, options.Find().SetSort(bson.D{{Key: "effectiveDate", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list rate configs: %w", err)
	}
	defer cursor.Close(ctx)

	var rateTable []models.RateConfig
	if err := cursor.All(ctx, &rateTable); err != nil {
		return nil, fmt.Errorf("failed to decode rate configs: %w", err)
	}
	return rateTable, nil
}

// PatchDescription updates descriptive metadata only. Multiplier and
// effective date are immutable once written.
func (r *RateRepository) PatchDescription(ctx context.Context, id bson.ObjectID, description string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"description": description},
	})
	if err != nil {
		return fmt.Errorf("failed to patch rate config: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: rate config %s", apperr.ErrNotFound, id.Hex())
	}
	return nil
}
