package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/calc"
	"claimbot/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type LedgerRepository struct {
	collection *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		collection: db.Collection("OvertimeLedger"),
	}
}

// TryAccumulate adds hours to the (user, month) ledger entry only if the
// new total stays within capHours, as one conditional update. Two
// concurrent submissions for the same user and month cannot both pass: the
// cap condition rides in the update filter, so whichever write lands second
// sees the already-incremented total and matches nothing.
func (r *LedgerRepository) TryAccumulate(ctx context.Context, userID bson.ObjectID, month string, hours, capHours float64) (float64, error) {
	if hours <= 0 {
		return 0, fmt.Errorf("%w: accumulated hours must be positive", apperr.ErrValidation)
	}
	if hours > capHours {
		return 0, fmt.Errorf("%w: monthly overtime cap (%.0f hours) exceeded", apperr.ErrCapExceeded, capHours)
	}

	key := bson.M{"userId": userID, "month": month}
	now := int(time.Now().Unix())

	// Make sure the month entry exists before the guarded increment; the
	// guard filter must never upsert or an over-cap attempt would mint a
	// duplicate entry.
	_, err := r.collection.UpdateOne(ctx, key, bson.M{
		"$setOnInsert": bson.M{"hours": 0.0, "updatedAt": now},
	}, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return 0, fmt.Errorf("failed to ensure ledger entry: %w", err)
	}

	guarded := bson.M{
		"userId": userID,
		"month":  month,
		"hours":  bson.M{"$lte": calc.CapHeadroom(capHours, hours)},
	}

	var updated models.OvertimeLedger
	err = r.collection.FindOneAndUpdate(ctx, guarded, bson.M{
		"$inc": bson.M{"hours": hours},
		"$set": bson.M{"updatedAt": now},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: monthly overtime cap (%.0f hours) exceeded", apperr.ErrCapExceeded, capHours)
		}
		return 0, fmt.Errorf("failed to accumulate ledger hours: %w", err)
	}

	return updated.Hours, nil
}

// TryAdjust moves an existing entry by delta hours (new minus old) as one
// conditional update, used when an edit keeps a request in the same month.
// The old hours are still counted in the entry, so a positive delta is
// capped against the total they occupy: the guard matches only when
// current + delta stays within capHours. A negative delta always applies,
// floor-guarded so it cannot drive the total below zero.
func (r *LedgerRepository) TryAdjust(ctx context.Context, userID bson.ObjectID, month string, delta, capHours float64) error {
	if delta == 0 {
		return nil
	}

	filter := bson.M{"userId": userID, "month": month}
	if delta > 0 {
		filter["hours"] = bson.M{"$lte": calc.CapHeadroom(capHours, delta)}
	} else {
		filter["hours"] = bson.M{"$gte": -delta}
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"hours": delta},
		"$set": bson.M{"updatedAt": int(time.Now().Unix())},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust ledger hours: %w", err)
	}
	if result.MatchedCount == 0 && delta > 0 {
		return fmt.Errorf("%w: monthly overtime cap (%.0f hours) exceeded", apperr.ErrCapExceeded, capHours)
	}
	return nil
}

// Release gives hours back to the month, used when a submitted request is
// rejected or deleted. The floor guard keeps a double release from driving
// the total negative.
func (r *LedgerRepository) Release(ctx context.Context, userID bson.ObjectID, month string, hours float64) error {
	if hours <= 0 {
		return nil
	}

	filter := bson.M{
		"userId": userID,
		"month":  month,
		"hours":  bson.M{"$gte": hours},
	}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"hours": -hours},
		"$set": bson.M{"updatedAt": int(time.Now().Unix())},
	})
	if err != nil {
		return fmt.Errorf("failed to release ledger hours: %w", err)
	}
	return nil
}

func (r *LedgerRepository) Find(ctx context.Context, userID bson.ObjectID, month string) (*models.OvertimeLedger, error) {
	var entry models.OvertimeLedger
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "month": month}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.OvertimeLedger{UserID: userID, Month: month, Hours: 0}, nil
		}
		return nil, err
	}
	return &entry, nil
}
