package models

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateClaimRequest struct {
	TripMode    TripMode  `json:"tripMode"`
	Origin      *Location `json:"origin"`
	Destination *Location `json:"destination"`
	Toll        float64   `json:"toll"`
	Petrol      float64   `json:"petrol"`
	Meal        float64   `json:"meal"`
	Others      float64   `json:"others"`
	Description string    `json:"description"`
}

type UpdateClaimRequest struct {
	TripMode    *TripMode `json:"tripMode"`
	Origin      *Location `json:"origin"`
	Destination *Location `json:"destination"`
	Toll        *float64  `json:"toll"`
	Petrol      *float64  `json:"petrol"`
	Meal        *float64  `json:"meal"`
	Others      *float64  `json:"others"`
	Description *string   `json:"description"`
}

type CreateOvertimeRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Reason    string `json:"reason"`
}

type UpdateOvertimeRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Reason    *string `json:"reason"`
}

type DecisionRequest struct {
	Remarks string `json:"remarks"`
}

type CreateRateRequest struct {
	Type          RateType `json:"type" validate:"required"`
	DayType       DayType  `json:"dayType"`
	Designation   string   `json:"designation"`
	Multiplier    float64  `json:"multiplier" validate:"required"`
	EffectiveDate string   `json:"effectiveDate" validate:"required"`
	Description   string   `json:"description"`
}

type PatchRateRequest struct {
	Description *string `json:"description"`
}

type UpdateUserRequest struct {
	Designation        *string             `json:"designation"`
	MonthlySalary      *float64            `json:"monthlySalary"`
	HourlyRate         *float64            `json:"hourlyRate"`
	SalaryVerification *SalaryVerification `json:"salaryVerification"`
	Roles              *[]string           `json:"roles"`
	IsActive           *bool               `json:"isActive"`
}
