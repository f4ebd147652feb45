package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/availability"
	"github.com/farhanms/playfield/services/booking-service/internal/cache"
	bookingerrors "github.com/farhanms/playfield/services/booking-service/internal/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/repository"
)

// GroundEventPublisher is the subset of the events publisher the ground
// service needs.
type GroundEventPublisher interface {
	PublishGroundUpdated(ctx context.Context, ground *models.Ground) error
	PublishGroundDeleted(ctx context.Context, ground *models.Ground) error
}

// ImageDeleter removes an uploaded image by its public URL.
type ImageDeleter interface {
	DeleteImage(ctx context.Context, imageURL string) error
}

type CreateGroundRequest struct {
	Name           string
	Address        string
	PricePerHour   int64
	Facilities     []string
	WeeklyTemplate models.WeeklyTemplate
	ImageURLs      []string
}

type GroundService interface {
	CreateGround(ctx context.Context, ownerId string, req CreateGroundRequest) (*models.Ground, *apperrors.AppError)
	GetGround(ctx context.Context, groundId string) (*models.Ground, *apperrors.AppError)
	ListOwnerGrounds(ctx context.Context, ownerId string) ([]models.Ground, *apperrors.AppError)
	ListOpenGrounds(ctx context.Context) ([]models.Ground, *apperrors.AppError)
	UpdateGround(ctx context.Context, ownerId, groundId string, req CreateGroundRequest) (*models.Ground, *apperrors.AppError)
	SetGroundStatus(ctx context.Context, ownerId, groundId string, status models.GroundStatus) (*models.Ground, *apperrors.AppError)
	AddTemplateSlot(ctx context.Context, ownerId, groundId, weekday, timeSlot string) (*models.Ground, *apperrors.AppError)
	RemoveTemplateSlot(ctx context.Context, ownerId, groundId, weekday, timeSlot string) (*models.Ground, *apperrors.AppError)
	DeleteGround(ctx context.Context, ownerId, groundId string) *apperrors.AppError
}

type groundService struct {
	groundRepo        repository.GroundRepository
	userRepo          repository.UserRepository
	availabilityCache *cache.AvailabilityCache
	eventPublisher    GroundEventPublisher
	imageDeleter      ImageDeleter
	logger            *logger.Logger
}

func NewGroundService(
	groundRepo repository.GroundRepository,
	userRepo repository.UserRepository,
	availabilityCache *cache.AvailabilityCache,
	eventPublisher GroundEventPublisher,
	imageDeleter ImageDeleter,
	logger *logger.Logger,
) GroundService {
	return &groundService{
		groundRepo:        groundRepo,
		userRepo:          userRepo,
		availabilityCache: availabilityCache,
		eventPublisher:    eventPublisher,
		imageDeleter:      imageDeleter,
		logger:            logger,
	}
}

var weekdayNames = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

func (s *groundService) CreateGround(ctx context.Context, ownerId string, req CreateGroundRequest) (*models.Ground, *apperrors.AppError) {
	if err := s.validateApprovedOwner(ctx, ownerId); err != nil {
		return nil, err
	}

	if err := validateGroundRequest(req); err != nil {
		return nil, err
	}

	ground := &models.Ground{
		GroundId:       uuid.New().String(),
		Name:           req.Name,
		Address:        req.Address,
		PricePerHour:   req.PricePerHour,
		Facilities:     req.Facilities,
		WeeklyTemplate: req.WeeklyTemplate,
		Status:         models.GroundStatusOpen,
		OwnerId:        ownerId,
		ImageURLs:      req.ImageURLs,
	}

	if err := s.groundRepo.Create(ctx, ground); err != nil {
		return nil, err
	}

	s.logger.Info("Ground created", "ground_id", ground.GroundId, "owner_id", ownerId)

	return ground, nil
}

func (s *groundService) GetGround(ctx context.Context, groundId string) (*models.Ground, *apperrors.AppError) {
	return s.groundRepo.GetById(ctx, groundId)
}

func (s *groundService) ListOwnerGrounds(ctx context.Context, ownerId string) ([]models.Ground, *apperrors.AppError) {
	if err := s.validateApprovedOwner(ctx, ownerId); err != nil {
		return nil, err
	}

	return s.groundRepo.ListByOwner(ctx, ownerId)
}

func (s *groundService) ListOpenGrounds(ctx context.Context) ([]models.Ground, *apperrors.AppError) {
	return s.groundRepo.ListOpen(ctx)
}

func (s *groundService) UpdateGround(ctx context.Context, ownerId, groundId string, req CreateGroundRequest) (*models.Ground, *apperrors.AppError) {
	ground, err := s.getOwnedGround(ctx, ownerId, groundId)
	if err != nil {
		return nil, err
	}

	if err := validateGroundRequest(req); err != nil {
		return nil, err
	}

	ground.Name = req.Name
	ground.Address = req.Address
	ground.PricePerHour = req.PricePerHour
	ground.Facilities = req.Facilities
	ground.WeeklyTemplate = req.WeeklyTemplate
	ground.ImageURLs = req.ImageURLs

	return s.saveGround(ctx, ground)
}

func (s *groundService) SetGroundStatus(ctx context.Context, ownerId, groundId string, status models.GroundStatus) (*models.Ground, *apperrors.AppError) {
	if status != models.GroundStatusOpen && status != models.GroundStatusClosed {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "ground status must be open or closed")
	}

	ground, err := s.getOwnedGround(ctx, ownerId, groundId)
	if err != nil {
		return nil, err
	}

	ground.Status = status

	return s.saveGround(ctx, ground)
}

func (s *groundService) AddTemplateSlot(ctx context.Context, ownerId, groundId, weekday, timeSlot string) (*models.Ground, *apperrors.AppError) {
	if !weekdayNames[weekday] {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "unknown weekday name")
	}
	if timeSlot == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "time slot is required")
	}

	ground, err := s.getOwnedGround(ctx, ownerId, groundId)
	if err != nil {
		return nil, err
	}

	ground.WeeklyTemplate = availability.AddSlot(ground.WeeklyTemplate, weekday, timeSlot)

	return s.saveGround(ctx, ground)
}

func (s *groundService) RemoveTemplateSlot(ctx context.Context, ownerId, groundId, weekday, timeSlot string) (*models.Ground, *apperrors.AppError) {
	ground, err := s.getOwnedGround(ctx, ownerId, groundId)
	if err != nil {
		return nil, err
	}

	ground.WeeklyTemplate = availability.RemoveSlot(ground.WeeklyTemplate, weekday, timeSlot)

	return s.saveGround(ctx, ground)
}

// DeleteGround removes the ground record, then deletes its uploaded
// images best effort: a failed image delete is logged, never fatal.
func (s *groundService) DeleteGround(ctx context.Context, ownerId, groundId string) *apperrors.AppError {
	ground, err := s.getOwnedGround(ctx, ownerId, groundId)
	if err != nil {
		return err
	}

	if err := s.groundRepo.Delete(ctx, groundId); err != nil {
		return err
	}

	for _, imageURL := range ground.ImageURLs {
		if delErr := s.imageDeleter.DeleteImage(ctx, imageURL); delErr != nil {
			s.logger.Warn(fmt.Sprintf("Failed to delete ground image %s: %v", imageURL, delErr))
		}
	}

	s.invalidateAvailability(ctx, groundId)

	if pubErr := s.eventPublisher.PublishGroundDeleted(ctx, ground); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish ground deleted event: %v", pubErr))
	}

	s.logger.Info("Ground deleted", "ground_id", groundId, "owner_id", ownerId)

	return nil
}

// Private methods

func (s *groundService) validateApprovedOwner(ctx context.Context, ownerId string) *apperrors.AppError {
	user, err := s.userRepo.GetById(ctx, ownerId)
	if err != nil {
		return err
	}

	if !user.IsApprovedOwner() {
		return bookingerrors.OwnerNotApprovedError()
	}

	return nil
}

func (s *groundService) getOwnedGround(ctx context.Context, ownerId, groundId string) (*models.Ground, *apperrors.AppError) {
	if err := s.validateApprovedOwner(ctx, ownerId); err != nil {
		return nil, err
	}

	ground, err := s.groundRepo.GetById(ctx, groundId)
	if err != nil {
		return nil, err
	}

	if ground.OwnerId != ownerId {
		return nil, bookingerrors.NotGroundOwnerError()
	}

	return ground, nil
}

func (s *groundService) saveGround(ctx context.Context, ground *models.Ground) (*models.Ground, *apperrors.AppError) {
	if err := s.groundRepo.Update(ctx, ground); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, ground.GroundId)

	if pubErr := s.eventPublisher.PublishGroundUpdated(ctx, ground); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish ground updated event: %v", pubErr))
	}

	return ground, nil
}

func (s *groundService) invalidateAvailability(ctx context.Context, groundId string) {
	if err := s.availabilityCache.Invalidate(ctx, groundId); err != nil {
		s.logger.Warn(fmt.Sprintf("Failed to invalidate availability cache for ground %s: %v", groundId, err))
	}
}

func validateGroundRequest(req CreateGroundRequest) *apperrors.AppError {
	if req.Name == "" {
		return apperrors.New(apperrors.CodeInvalidInput, "ground name is required")
	}
	if req.PricePerHour <= 0 {
		return apperrors.New(apperrors.CodeInvalidInput, "price per hour must be positive")
	}
	for weekday := range req.WeeklyTemplate {
		if !weekdayNames[weekday] {
			return apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("unknown weekday name: %s", weekday))
		}
	}
	return nil
}
