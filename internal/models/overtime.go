package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type OvertimeRequest struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         bson.ObjectID `bson:"userId" json:"userId"`
	Status         Status        `bson:"status" json:"status"`
	Date           string        `bson:"date" json:"date"`           // YYYY-MM-DD
	StartTime      string        `bson:"startTime" json:"startTime"` // HH:MM
	EndTime        string        `bson:"endTime" json:"endTime"`     // HH:MM
	Reason         string        `bson:"reason" json:"reason"`
	HoursWorked    float64       `bson:"hoursWorked" json:"hoursWorked"`
	DayType        DayType       `bson:"dayType" json:"dayType"`
	RateMultiplier float64       `bson:"rateMultiplier" json:"rateMultiplier"`
	HourlyRate     float64       `bson:"hourlyRate" json:"hourlyRate"`
	TotalPayout    float64       `bson:"totalPayout" json:"totalPayout"`
	ApprovedBy     bson.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy"`
	ApprovedAt     int           `bson:"approvedAt,omitempty" json:"approvedAt"`
	Remarks        string        `bson:"remarks,omitempty" json:"remarks"`
	CreatedAt      int           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      int           `bson:"updatedAt" json:"updatedAt"`
}

// OvertimeLedger accumulates accepted overtime hours per user per calendar
// month. Month uses the YYYY-MM key format. The cap check and the increment
// are a single conditional update in the repository, never a read followed
// by a write.
type OvertimeLedger struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Month     string        `bson:"month" json:"month"`
	Hours     float64       `bson:"hours" json:"hours"`
	UpdatedAt int           `bson:"updatedAt" json:"updatedAt"`
}
