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

type OvertimeRepository struct {
	collection *mongo.Collection
}

func NewOvertimeRepository(db *mongo.Database) *OvertimeRepository {
	return &OvertimeRepository{
		collection: db.Collection("OvertimeRequest"),
	}
}

func (r *OvertimeRepository) Create(ctx context.Context, request *models.OvertimeRequest) (*models.OvertimeRequest, error) {
	if request.ID.IsZero() {
		request.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	request.CreatedAt = currentTime
	request.UpdatedAt = currentTime

	if _, err := r.collection.InsertOne(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to insert overtime request: %w", err)
	}
	return request, nil
}

func (r *OvertimeRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.OvertimeRequest, error) {
	var request models.OvertimeRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: overtime request %s", apperr.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &request, nil
}

func (r *OvertimeRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]*models.OvertimeRequest, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *OvertimeRepository) FindByStatus(ctx context.Context, status models.Status) ([]*models.OvertimeRequest, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *OvertimeRepository) find(ctx context.Context, filter bson.M) ([]*models.OvertimeRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.OvertimeRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode overtime requests: %w", err)
	}
	return requests, nil
}

func (r *OvertimeRepository) Update(ctx context.Context, request *models.OvertimeRequest) error {
	request.UpdatedAt = int(time.Now().Unix())

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": request.ID}, bson.M{"$set": request})
	if err != nil {
		return fmt.Errorf("failed to update overtime request: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: overtime request %s", apperr.ErrNotFound, request.ID.Hex())
	}
	return nil
}

// TransitionStatus works like ClaimRepository.TransitionStatus: the
// expected current status rides in the filter so stale reads cannot commit.
func (r *OvertimeRepository) TransitionStatus(ctx context.Context, id bson.ObjectID, from, to models.Status, set bson.M) error {
	if set == nil {
		set = bson.M{}
	}
	set["status"] = to
	set["updatedAt"] = int(time.Now().Unix())

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to transition overtime status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: overtime request %s is no longer in status %q", apperr.ErrInvalidState, id.Hex(), from)
	}
	return nil
}

func (r *OvertimeRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete overtime request: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: overtime request %s", apperr.ErrNotFound, id.Hex())
	}
	return nil
}
