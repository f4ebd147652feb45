package service

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/repository"
)

type RegisterUserRequest struct {
	DisplayName string
	Email       string
	Phone       string
	Role        models.UserRole
}

type UserService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*models.User, *apperrors.AppError)
	GetUser(ctx context.Context, userId string) (*models.User, *apperrors.AppError)
	SetApproval(ctx context.Context, callerId, userId string, status models.ApprovalStatus) (*models.User, *apperrors.AppError)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a user account. Players are usable immediately;
// owner accounts start pending and must be approved before they can
// manage grounds.
func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, *apperrors.AppError) {
	if req.DisplayName == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "display name is required")
	}
	if req.Role != models.UserRolePlayer && req.Role != models.UserRoleOwner {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "role must be player or owner")
	}

	approval := models.ApprovalStatusApproved
	if req.Role == models.UserRoleOwner {
		approval = models.ApprovalStatusPending
	}

	user := &models.User{
		UserId:         uuid.New().String(),
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           req.Role,
		ApprovalStatus: approval,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.UserId, "role", string(user.Role))

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userId string) (*models.User, *apperrors.AppError) {
	return s.userRepo.GetById(ctx, userId)
}

// SetApproval resolves a pending owner account. An account can never
// rule on its own approval, and the caller's own account must already
// be approved.
func (s *userService) SetApproval(ctx context.Context, callerId, userId string, status models.ApprovalStatus) (*models.User, *apperrors.AppError) {
	if status != models.ApprovalStatusApproved && status != models.ApprovalStatusRejected {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "approval status must be approved or rejected")
	}

	if callerId == userId {
		return nil, apperrors.New(apperrors.CodeForbidden, "cannot change own approval status")
	}

	caller, err := s.userRepo.GetById(ctx, callerId)
	if err != nil {
		return nil, err
	}
	if caller.ApprovalStatus != models.ApprovalStatusApproved {
		return nil, apperrors.New(apperrors.CodeForbidden, "caller account is not approved")
	}

	user, err := s.userRepo.GetById(ctx, userId)
	if err != nil {
		return nil, err
	}

	if user.Role != models.UserRoleOwner {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "only owner accounts require approval")
	}

	if err := s.userRepo.UpdateApprovalStatus(ctx, userId, status); err != nil {
		return nil, err
	}

	user.ApprovalStatus = status

	s.logger.Info("Owner approval updated", "user_id", userId, "status", string(status))

	return user, nil
}
