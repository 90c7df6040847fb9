package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Location is either a free-form address or a coordinate pair. The distance
// provider accepts both; Address wins when set.
type Location struct {
	Address string  `bson:"address,omitempty" json:"address"`
	Lat     float64 `bson:"lat,omitempty" json:"lat"`
	Lng     float64 `bson:"lng,omitempty" json:"lng"`
}

func (l *Location) IsZero() bool {
	return l == nil || (l.Address == "" && l.Lat == 0 && l.Lng == 0)
}

type ExpenseBreakdown struct {
	Mileage float64 `bson:"mileage" json:"mileage"`
	Toll    float64 `bson:"toll" json:"toll"`
	Petrol  float64 `bson:"petrol" json:"petrol"`
	Meal    float64 `bson:"meal" json:"meal"`
	Others  float64 `bson:"others" json:"others"`
}

func (e ExpenseBreakdown) Total() float64 {
	return e.Mileage + e.Toll + e.Petrol + e.Meal + e.Others
}

type Claim struct {
	ID          bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID      bson.ObjectID    `bson:"userId" json:"userId"`
	Status      Status           `bson:"status" json:"status"`
	TripMode    TripMode         `bson:"tripMode" json:"tripMode"`
	Origin      *Location        `bson:"origin,omitempty" json:"origin"`
	Destination *Location        `bson:"destination,omitempty" json:"destination"`
	TripKM      float64          `bson:"tripKm" json:"tripKm"`
	Expenses    ExpenseBreakdown `bson:"expenses" json:"expenses"`
	Total       float64          `bson:"total" json:"total"`
	Description string           `bson:"description,omitempty" json:"description"`
	ApprovedBy  bson.ObjectID    `bson:"approvedBy,omitempty" json:"approvedBy"`
	ApprovedAt  int              `bson:"approvedAt,omitempty" json:"approvedAt"`
	Remarks     string           `bson:"remarks,omitempty" json:"remarks"`
	CreatedAt   int              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int              `bson:"updatedAt" json:"updatedAt"`
}
