package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	bookingerrors "github.com/farhanms/playfield/services/booking-service/internal/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/repository"
)

type CreatePaymentMethodRequest struct {
	Label         string
	AccountName   string
	AccountNumber string
	QRImageURL    string
}

type PaymentMethodService interface {
	CreatePaymentMethod(ctx context.Context, ownerId string, req CreatePaymentMethodRequest) (*models.OwnerPaymentMethod, *apperrors.AppError)
	ListPaymentMethods(ctx context.Context, ownerId string) ([]models.OwnerPaymentMethod, *apperrors.AppError)
	DeletePaymentMethod(ctx context.Context, ownerId, methodId string) *apperrors.AppError
}

type paymentMethodService struct {
	paymentMethodRepo repository.PaymentMethodRepository
	userRepo          repository.UserRepository
	imageDeleter      ImageDeleter
	logger            *logger.Logger
}

func NewPaymentMethodService(
	paymentMethodRepo repository.PaymentMethodRepository,
	userRepo repository.UserRepository,
	imageDeleter ImageDeleter,
	logger *logger.Logger,
) PaymentMethodService {
	return &paymentMethodService{
		paymentMethodRepo: paymentMethodRepo,
		userRepo:          userRepo,
		imageDeleter:      imageDeleter,
		logger:            logger,
	}
}

func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, ownerId string, req CreatePaymentMethodRequest) (*models.OwnerPaymentMethod, *apperrors.AppError) {
	if err := s.validateApprovedOwner(ctx, ownerId); err != nil {
		return nil, err
	}

	if req.Label == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "payment method label is required")
	}

	method := &models.OwnerPaymentMethod{
		MethodId:      uuid.New().String(),
		OwnerId:       ownerId,
		Label:         req.Label,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		QRImageURL:    req.QRImageURL,
	}

	if err := s.paymentMethodRepo.Create(ctx, method); err != nil {
		return nil, err
	}

	s.logger.Info("Payment method created", "method_id", method.MethodId, "owner_id", ownerId)

	return method, nil
}

// ListPaymentMethods is readable by anyone so players can see where to
// send a transfer.
func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, ownerId string) ([]models.OwnerPaymentMethod, *apperrors.AppError) {
	return s.paymentMethodRepo.ListByOwner(ctx, ownerId)
}

func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, ownerId, methodId string) *apperrors.AppError {
	if err := s.validateApprovedOwner(ctx, ownerId); err != nil {
		return err
	}

	methods, err := s.paymentMethodRepo.ListByOwner(ctx, ownerId)
	if err != nil {
		return err
	}

	var qrImageURL string
	found := false
	for _, method := range methods {
		if method.MethodId == methodId {
			qrImageURL = method.QRImageURL
			found = true
			break
		}
	}
	if !found {
		return apperrors.New(apperrors.CodeNotFound, "payment method not found")
	}

	if err := s.paymentMethodRepo.Delete(ctx, ownerId, methodId); err != nil {
		return err
	}

	if qrImageURL != "" {
		if delErr := s.imageDeleter.DeleteImage(ctx, qrImageURL); delErr != nil {
			s.logger.Warn(fmt.Sprintf("Failed to delete QR image %s: %v", qrImageURL, delErr))
		}
	}

	return nil
}

func (s *paymentMethodService) validateApprovedOwner(ctx context.Context, ownerId string) *apperrors.AppError {
	user, err := s.userRepo.GetById(ctx, ownerId)
	if err != nil {
		return err
	}

	if !user.IsApprovedOwner() {
		return bookingerrors.OwnerNotApprovedError()
	}

	return nil
}
