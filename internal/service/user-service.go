package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
	"claimbot/internal/rbac"
	"claimbot/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo  *repository.UserRepository
	RedisRepo *repository.RedisRepo
}

func NewUserService() *UserService {
	return &UserService{
		UserRepo:  repository.Repositories_instance.UserRepository,
		RedisRepo: repository.Repositories_instance.RedisRepository,
	}
}

func (us *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Email == "" || len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: email and a password of at least 8 characters are required", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %s", err)
	}

	user := &models.User{
		Email:              req.Email,
		Username:           req.Username,
		PasswordHash:       string(hash),
		Roles:              []string{string(rbac.RoleStaff)},
		SalaryVerification: models.SalaryVerificationPending,
		IsActive:           true,
	}

	created, err := us.UserRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("New user created: %s", created.Email)
	return created, nil
}

func (us *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := us.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperr.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	}

	if err := us.UserRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("Warning: failed to record last login for %s: %v", user.Email, err)
	}
	return user, nil
}

func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}
	return us.UserRepo.FindByID(ctx, oid)
}

func (us *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return us.UserRepo.FindAll(ctx)
}

// UpdateUser applies admin edits: salary profile, verification status and
// role assignment. Role tags outside the closed set are rejected rather
// than stored inert.
func (us *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := us.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Roles != nil {
		for _, role := range *req.Roles {
			if !rbac.IsKnown(rbac.Role(role)) {
				return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
			}
		}
		user.Roles = *req.Roles
	}
	if req.Designation != nil {
		user.Designation = *req.Designation
	}
	if req.MonthlySalary != nil {
		user.MonthlySalary = *req.MonthlySalary
	}
	if req.HourlyRate != nil {
		user.HourlyRate = *req.HourlyRate
	}
	if req.SalaryVerification != nil {
		user.SalaryVerification = *req.SalaryVerification
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := us.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := us.RedisRepo.Invalidate(ctx, cacheUserKey(id)); err != nil {
		log.Printf("Warning: failed to invalidate user cache for %s: %v", id, err)
	}
	return user, nil
}

func cacheUserKey(id string) string {
	return "claimbot:user:" + id
}

func (us *UserService) GetUserCached(ctx context.Context, id string) (*models.User, error) {
	var cached models.User
	if err := us.RedisRepo.GetStructCached(ctx, cacheUserKey(id), &cached); err == nil {
		return &cached, nil
	}

	user, err := us.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := us.RedisRepo.SaveStructCached(ctx, cacheUserKey(id), user, 5*time.Minute); err != nil {
		log.Printf("Warning: failed to cache user %s: %v", id, err)
	}
	return user, nil
}
