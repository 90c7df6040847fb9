package models

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPaid      Status = "paid"
)

type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
	// DayTypePublicHoliday exists in the rate schema so holiday rates can be
	// configured ahead of a holiday calendar; the date classifier does not
	// produce it yet.
	DayTypePublicHoliday DayType = "public_holiday"
)

type TripMode string

const (
	TripModeDefault       TripMode = "default"            // office -> destination
	TripModeDefaultReturn TripMode = "default_return"     // office -> destination and back
	TripModeOriginOnly    TripMode = "origin_only"        // custom origin -> destination
	TripModeOriginReturn  TripMode = "origin_return"      // custom origin -> destination and back
	TripModeCustomOnly    TripMode = "custom_only"        // custom A -> B
	TripModeCustomReturn  TripMode = "custom_only_return" // custom A -> B and back
)

type SalaryVerification string

const (
	SalaryVerificationPending  SalaryVerification = "pending"
	SalaryVerificationVerified SalaryVerification = "verified"
	SalaryVerificationRejected SalaryVerification = "rejected"
)

type RateType string

const (
	RateTypeOvertimeMultiplier RateType = "overtime_multiplier"
	RateTypeMileage            RateType = "mileage"
)
