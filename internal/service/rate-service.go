package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
	"claimbot/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const rateTableCacheKey = "claimbot:rates:table"

type RateService struct {
	RateRepo  *repository.RateRepository
	RedisRepo *repository.RedisRepo
}

func NewRateService() *RateService {
	return &RateService{
		RateRepo:  repository.Repositories_instance.RateRepository,
		RedisRepo: repository.Repositories_instance.RedisRepository,
	}
}

func (rs *RateService) CreateRate(ctx context.Context, actorID string, req *models.CreateRateRequest) (*models.RateConfig, error) {
	if req.Multiplier <= 0 {
		return nil, fmt.Errorf("%w: multiplier must be positive", apperr.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", req.EffectiveDate); err != nil {
		return nil, fmt.Errorf("%w: invalid effective date %q, expected YYYY-MM-DD", apperr.ErrValidation, req.EffectiveDate)
	}
	switch req.Type {
	case models.RateTypeOvertimeMultiplier, models.RateTypeMileage:
	default:
		return nil, fmt.Errorf("%w: unknown rate type %q", apperr.ErrValidation, req.Type)
	}

	rate := &models.RateConfig{
		Type:          req.Type,
		DayType:       req.DayType,
		Designation:   req.Designation,
		Multiplier:    req.Multiplier,
		EffectiveDate: req.EffectiveDate,
		Description:   req.Description,
	}
	if creator, err := bson.ObjectIDFromHex(actorID); err == nil {
		rate.CreatedBy = creator
	}

	created, err := rs.RateRepo.Create(ctx, rate)
	if err != nil {
		return nil, err
	}

	if err := rs.RedisRepo.Invalidate(ctx, rateTableCacheKey); err != nil {
		log.Printf("Warning: failed to invalidate rate table cache: %v", err)
	}
	return created, nil
}

// Table returns the full rate table, served from Redis between writes. The
// calculators take the slice as input so a cached copy is as good as a
// fresh read.
func (rs *RateService) Table(ctx context.Context) ([]models.RateConfig, error) {
	var cached []models.RateConfig
	if err := rs.RedisRepo.GetStructCached(ctx, rateTableCacheKey, &cached); err == nil {
		return cached, nil
	}

	rateTable, err := rs.RateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := rs.RedisRepo.SaveStructCached(ctx, rateTableCacheKey, rateTable, 10*time.Minute); err != nil {
		log.Printf("Warning: failed to cache rate table: %v", err)
	}
	return rateTable, nil
}

// RatesByType lists one rate family in effective-date order, the view the
// admin screens use to audit how a multiplier evolved. Reads go straight to
// Mongo; the cached full table only serves the calculators.
func (rs *RateService) RatesByType(ctx context.Context, rateType models.RateType) ([]models.RateConfig, error) {
	switch rateType {
	case models.RateTypeOvertimeMultiplier, models.RateTypeMileage:
	default:
		return nil, fmt.Errorf("%w: unknown rate type %q", apperr.ErrValidation, rateType)
	}
	return rs.RateRepo.FindByType(ctx, rateType)
}

func (rs *RateService) GetRate(ctx context.Context, id string) (*models.RateConfig, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rate ID format", apperr.ErrValidation)
	}
	return rs.RateRepo.FindByID(ctx, oid)
}

func (rs *RateService) PatchRate(ctx context.Context, id string, req *models.PatchRateRequest) (*models.RateConfig, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rate ID format", apperr.ErrValidation)
	}

	if req.Description != nil {
		if err := rs.RateRepo.PatchDescription(ctx, oid, *req.Description); err != nil {
			return nil, err
		}
		if err := rs.RedisRepo.Invalidate(ctx, rateTableCacheKey); err != nil {
			log.Printf("Warning: failed to invalidate rate table cache: %v", err)
		}
	}
	return rs.RateRepo.FindByID(ctx, oid)
}
