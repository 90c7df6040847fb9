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
)

type ClaimRepository struct {
	collection *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{
		collection: db.Collection("Claim"),
	}
}

func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) (*models.Claim, error) {
	if claim.ID.IsZero() {
		claim.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	claim.CreatedAt = currentTime
	claim.UpdatedAt = currentTime

	if _, err := r.collection.InsertOne(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to insert claim: %w", err)
	}
	return claim, nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Claim, error) {
	var claim models.Claim
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: claim %s", apperr.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]*models.Claim, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *ClaimRepository) FindByStatus(ctx context.Context, status models.Status) ([]*models.Claim, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *ClaimRepository) find(ctx context.Context, filter bson.M) ([]*models.Claim, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}
	return claims, nil
}

func (r *ClaimRepository) Update(ctx context.Context, claim *models.Claim) error {
	claim.UpdatedAt = int(time.Now().Unix())

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": claim.ID}, bson.M{"$set": claim})
	if err != nil {
		return fmt.Errorf("failed to update claim: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: claim %s", apperr.ErrNotFound, claim.ID.Hex())
	}
	return nil
}

// TransitionStatus moves a claim from an expected current status to the
// next one in a single conditional update. The filter pins the status the
// lifecycle engine validated against, so a concurrent transition that
// slipped in between the read and this write makes the update match
// nothing instead of acting on stale state.
func (r *ClaimRepository) TransitionStatus(ctx context.Context, id bson.ObjectID, from, to models.Status, set bson.M) error {
	if set == nil {
		set = bson.M{}
	}
	set["status"] = to
	set["updatedAt"] = int(time.Now().Unix())

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to transition claim status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: claim %s is no longer in status %q", apperr.ErrInvalidState, id.Hex(), from)
	}
	return nil
}

func (r *ClaimRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: claim %s", apperr.ErrNotFound, id.Hex())
	}
	return nil
}
