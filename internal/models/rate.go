package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// RateConfig entries are append-only. A new entry with a later effective
// date supersedes older ones; existing entries are never mutated, so every
// past payout stays explainable by the table as it was on that date.
type RateConfig struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Type          RateType      `bson:"type" json:"type"`
	DayType       DayType       `bson:"dayType,omitempty" json:"dayType"`
	Designation   string        `bson:"designation,omitempty" json:"designation"`
	Multiplier    float64       `bson:"multiplier" json:"multiplier"`
	EffectiveDate string        `bson:"effectiveDate" json:"effectiveDate"` // YYYY-MM-DD
	Description   string        `bson:"description,omitempty" json:"description"`
	CreatedBy     bson.ObjectID `bson:"createdBy,omitempty" json:"createdBy"`
	CreatedAt     int           `bson:"createdAt" json:"createdAt"`
}
