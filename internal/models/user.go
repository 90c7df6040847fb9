package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID                 bson.ObjectID      `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email" json:"email" validate:"required,email"`
	Username           string             `bson:"username,omitempty" json:"username"`
	PasswordHash       string             `bson:"passwordHash" json:"-"`
	Roles              []string           `bson:"roles" json:"roles"`
	Designation        string             `bson:"designation,omitempty" json:"designation"`
	MonthlySalary      float64            `bson:"monthlySalary,omitempty" json:"-"`
	HourlyRate         float64            `bson:"hourlyRate,omitempty" json:"-"`
	SalaryVerification SalaryVerification `bson:"salaryVerification" json:"salaryVerification"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          int                `bson:"createdAt" json:"createdAt"`
	UpdatedAt          int                `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt        int                `bson:"lastLoginAt,omitempty" json:"lastLoginAt"`
}

// EffectiveHourlyRate returns the rate used for overtime payout: the stored
// hourly rate when set, otherwise monthly salary over 160 working hours.
// The second return is false when neither source is configured.
func (u *User) EffectiveHourlyRate() (float64, bool) {
	if u.HourlyRate > 0 {
		return u.HourlyRate, true
	}
	if u.MonthlySalary > 0 {
		return u.MonthlySalary / 160, true
	}
	return 0, false
}
