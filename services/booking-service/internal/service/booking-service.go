package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farhanms/playfield/common/database"
	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/availability"
	"github.com/farhanms/playfield/services/booking-service/internal/cache"
	bookingerrors "github.com/farhanms/playfield/services/booking-service/internal/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/repository"
)

// EventPublisher is the subset of the events publisher the booking
// service needs.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *models.Booking) error
	PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error
	PublishBookingRejected(ctx context.Context, booking *models.Booking) error
	PublishBookingCancelled(ctx context.Context, booking *models.Booking) error
	PublishPaymentRecorded(ctx context.Context, payment *models.Payment) error
}

type CreateBookingRequest struct {
	GroundId      string
	Date          string
	TimeSlot      string
	DurationHours int
	UserId        string
}

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, *apperrors.AppError)
	GetBooking(ctx context.Context, bookingId string) (*models.Booking, *apperrors.AppError)
	ListUserBookings(ctx context.Context, userId string) ([]models.Booking, *apperrors.AppError)
	ListGroundBookings(ctx context.Context, ownerId, groundId string) ([]models.Booking, *apperrors.AppError)
	GetAvailability(ctx context.Context, groundId string) (map[string][]string, *apperrors.AppError)
	ApproveBooking(ctx context.Context, ownerId, bookingId string) (*models.Booking, *apperrors.AppError)
	RejectBooking(ctx context.Context, ownerId, bookingId, reason string) (*models.Booking, *apperrors.AppError)
	CancelBooking(ctx context.Context, userId, bookingId string) (*models.Booking, *apperrors.AppError)
	MarkPaid(ctx context.Context, userId, bookingId, transactionRef, proofImageURL string) (*models.Payment, *apperrors.AppError)
	MarkCash(ctx context.Context, userId, bookingId string) (*models.Payment, *apperrors.AppError)
	ExpireStaleBookings(ctx context.Context, today time.Time) (int, *apperrors.AppError)
}

type bookingService struct {
	groundRepo        repository.GroundRepository
	bookingRepo       repository.BookingRepository
	slotClaimRepo     repository.SlotClaimRepository
	paymentRepo       repository.PaymentRepository
	transactionRepo   database.TransactionRepository
	availabilityCache *cache.AvailabilityCache
	eventPublisher    EventPublisher
	windowDays        int
	logger            *logger.Logger
}

func NewBookingService(
	groundRepo repository.GroundRepository,
	bookingRepo repository.BookingRepository,
	slotClaimRepo repository.SlotClaimRepository,
	paymentRepo repository.PaymentRepository,
	transactionRepo database.TransactionRepository,
	availabilityCache *cache.AvailabilityCache,
	eventPublisher EventPublisher,
	windowDays int,
	logger *logger.Logger,
) BookingService {
	if windowDays <= 0 {
		windowDays = availability.DefaultWindowDays
	}

	return &bookingService{
		groundRepo:        groundRepo,
		bookingRepo:       bookingRepo,
		slotClaimRepo:     slotClaimRepo,
		paymentRepo:       paymentRepo,
		transactionRepo:   transactionRepo,
		availabilityCache: availabilityCache,
		eventPublisher:    eventPublisher,
		windowDays:        windowDays,
		logger:            logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, *apperrors.AppError) {
	if req.DurationHours <= 0 {
		return nil, bookingerrors.InvalidDurationError()
	}

	ground, err := s.groundRepo.GetById(ctx, req.GroundId)
	if err != nil {
		return nil, err
	}

	if ground.Status != models.GroundStatusOpen {
		return nil, bookingerrors.GroundClosedError()
	}

	weekday, err := s.validateBookingDate(req.Date)
	if err != nil {
		return nil, err
	}

	if !slotInTemplate(ground.WeeklyTemplate, weekday, req.TimeSlot) {
		return nil, bookingerrors.SlotNotInTemplateError(weekday, req.TimeSlot)
	}

	booking := &models.Booking{
		BookingId:     uuid.New().String(),
		GroundId:      ground.GroundId,
		OwnerId:       ground.OwnerId,
		UserId:        req.UserId,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		DurationHours: req.DurationHours,
		TotalAmount:   ground.PricePerHour * int64(req.DurationHours),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	putBooking, err := s.bookingRepo.GetCreateTransaction(ctx, booking)
	if err != nil {
		return nil, err
	}

	claim := &models.SlotClaim{
		GroundId:  booking.GroundId,
		Date:      booking.Date,
		TimeSlot:  booking.TimeSlot,
		BookingId: booking.BookingId,
	}
	putClaim, err := s.slotClaimRepo.GetClaimTransaction(ctx, claim)
	if err != nil {
		return nil, err
	}

	transactionBuilder := database.NewTransactionBuilder()
	transactionBuilder.AddPut(putClaim)
	transactionBuilder.AddPut(putBooking)

	if txErr := s.transactionRepo.Execute(ctx, transactionBuilder); txErr != nil {
		if database.IsConditionFailure(txErr) {
			return nil, bookingerrors.SlotAlreadyBookedError(booking.Date, booking.TimeSlot)
		}
		return nil, apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to create booking")
	}

	s.afterBookingWrite(ctx, booking.GroundId)

	if pubErr := s.eventPublisher.PublishBookingCreated(ctx, booking); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish booking created event: %v", pubErr))
	}

	s.logger.Info("Booking created",
		"booking_id", booking.BookingId,
		"ground_id", booking.GroundId,
		"date", booking.Date,
		"time_slot", booking.TimeSlot,
	)

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingId string) (*models.Booking, *apperrors.AppError) {
	return s.bookingRepo.GetById(ctx, bookingId)
}

func (s *bookingService) ListUserBookings(ctx context.Context, userId string) ([]models.Booking, *apperrors.AppError) {
	return s.bookingRepo.ListByUser(ctx, userId)
}

func (s *bookingService) ListGroundBookings(ctx context.Context, ownerId, groundId string) ([]models.Booking, *apperrors.AppError) {
	ground, err := s.groundRepo.GetById(ctx, groundId)
	if err != nil {
		return nil, err
	}
	if ground.OwnerId != ownerId {
		return nil, bookingerrors.NotGroundOwnerError()
	}

	return s.bookingRepo.ListByGround(ctx, groundId)
}

func (s *bookingService) GetAvailability(ctx context.Context, groundId string) (map[string][]string, *apperrors.AppError) {
	if cached, err := s.availabilityCache.Get(ctx, groundId); err == nil && cached != nil {
		return cached, nil
	}

	ground, err := s.groundRepo.GetById(ctx, groundId)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListActiveByGround(ctx, groundId)
	if err != nil {
		return nil, err
	}

	result := availability.Resolve(ground.WeeklyTemplate, bookings, time.Now(), s.windowDays)

	if cacheErr := s.availabilityCache.Set(ctx, groundId, result); cacheErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to cache availability for ground %s: %v", groundId, cacheErr))
	}

	return result, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, ownerId, bookingId string) (*models.Booking, *apperrors.AppError) {
	booking, err := s.getOwnedBooking(ctx, ownerId, bookingId)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.BookingStatusPending {
		return nil, bookingerrors.InvalidTransitionError(string(booking.Status), string(models.BookingStatusConfirmed))
	}

	updateStatus := s.bookingRepo.GetUpdateStatusTransaction(ctx, bookingId, models.BookingStatusPending, models.BookingStatusConfirmed, "")

	transactionBuilder := database.NewTransactionBuilder()
	transactionBuilder.AddUpdate(updateStatus)

	if txErr := s.transactionRepo.Execute(ctx, transactionBuilder); txErr != nil {
		if database.IsConditionFailure(txErr) {
			return nil, bookingerrors.InvalidTransitionError(string(booking.Status), string(models.BookingStatusConfirmed))
		}
		return nil, apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to approve booking")
	}

	booking.Status = models.BookingStatusConfirmed

	s.afterBookingWrite(ctx, booking.GroundId)

	if pubErr := s.eventPublisher.PublishBookingConfirmed(ctx, booking); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish booking confirmed event: %v", pubErr))
	}

	return booking, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, ownerId, bookingId, reason string) (*models.Booking, *apperrors.AppError) {
	if reason == "" {
		return nil, bookingerrors.RejectionReasonRequiredError()
	}

	booking, err := s.getOwnedBooking(ctx, ownerId, bookingId)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.BookingStatusPending {
		return nil, bookingerrors.InvalidTransitionError(string(booking.Status), string(models.BookingStatusRejected))
	}

	if txErr := s.releaseSlotTransition(ctx, booking, models.BookingStatusRejected, reason); txErr != nil {
		return nil, txErr
	}

	booking.Status = models.BookingStatusRejected
	booking.RejectionReason = reason

	s.afterBookingWrite(ctx, booking.GroundId)

	if pubErr := s.eventPublisher.PublishBookingRejected(ctx, booking); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish booking rejected event: %v", pubErr))
	}

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userId, bookingId string) (*models.Booking, *apperrors.AppError) {
	booking, err := s.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return nil, err
	}

	if booking.UserId != userId {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the requesting player may cancel a booking")
	}

	if !booking.IsActive() {
		return nil, bookingerrors.InvalidTransitionError(string(booking.Status), string(models.BookingStatusCancelled))
	}

	if txErr := s.releaseSlotTransition(ctx, booking, models.BookingStatusCancelled, ""); txErr != nil {
		return nil, txErr
	}

	booking.Status = models.BookingStatusCancelled

	s.afterBookingWrite(ctx, booking.GroundId)

	if pubErr := s.eventPublisher.PublishBookingCancelled(ctx, booking); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish booking cancelled event: %v", pubErr))
	}

	return booking, nil
}

func (s *bookingService) MarkPaid(ctx context.Context, userId, bookingId, transactionRef, proofImageURL string) (*models.Payment, *apperrors.AppError) {
	return s.recordPayment(ctx, userId, bookingId, models.PaymentMethodTransfer, models.PaymentStatusPaid, transactionRef, proofImageURL)
}

func (s *bookingService) MarkCash(ctx context.Context, userId, bookingId string) (*models.Payment, *apperrors.AppError) {
	return s.recordPayment(ctx, userId, bookingId, models.PaymentMethodCash, models.PaymentStatusCash, "", "")
}

// ExpireStaleBookings cancels pending bookings whose date has already
// passed, releasing their slot claims. Returns the number of bookings
// swept.
func (s *bookingService) ExpireStaleBookings(ctx context.Context, today time.Time) (int, *apperrors.AppError) {
	stale, err := s.bookingRepo.ListStalePending(ctx, today.Format(models.BookingDateLayout))
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		booking := stale[i]
		if txErr := s.releaseSlotTransition(ctx, &booking, models.BookingStatusCancelled, "expired"); txErr != nil {
			s.logger.Warn(fmt.Sprintf("Failed to expire booking %s: %v", booking.BookingId, txErr))
			continue
		}

		expired++
		s.afterBookingWrite(ctx, booking.GroundId)
	}

	return expired, nil
}

// Private methods

func (s *bookingService) validateBookingDate(date string) (string, *apperrors.AppError) {
	parsed, err := time.Parse(models.BookingDateLayout, date)
	if err != nil {
		return "", apperrors.New(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	last := today.AddDate(0, 0, s.windowDays-1)

	if parsed.Before(today) || parsed.After(last) {
		return "", bookingerrors.DateOutOfWindowError(s.windowDays)
	}

	return parsed.Weekday().String(), nil
}

func slotInTemplate(template models.WeeklyTemplate, weekday, timeSlot string) bool {
	for _, slot := range template[weekday] {
		if slot == timeSlot {
			return true
		}
	}
	return false
}

func (s *bookingService) getOwnedBooking(ctx context.Context, ownerId, bookingId string) (*models.Booking, *apperrors.AppError) {
	booking, err := s.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return nil, err
	}

	if booking.OwnerId != ownerId {
		return nil, bookingerrors.NotGroundOwnerError()
	}

	return booking, nil
}

// releaseSlotTransition moves a booking out of its slot: the status
// update and the slot-claim delete commit together or not at all.
func (s *bookingService) releaseSlotTransition(ctx context.Context, booking *models.Booking, to models.BookingStatus, reason string) *apperrors.AppError {
	updateStatus := s.bookingRepo.GetUpdateStatusTransaction(ctx, booking.BookingId, booking.Status, to, reason)
	releaseClaim := s.slotClaimRepo.GetReleaseTransaction(ctx, booking.GroundId, booking.Date, booking.TimeSlot)

	transactionBuilder := database.NewTransactionBuilder()
	transactionBuilder.AddUpdate(updateStatus)
	transactionBuilder.AddDelete(releaseClaim)

	if txErr := s.transactionRepo.Execute(ctx, transactionBuilder); txErr != nil {
		if database.IsConditionFailure(txErr) {
			return bookingerrors.InvalidTransitionError(string(booking.Status), string(to))
		}
		return apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to transition booking")
	}

	return nil
}

// recordPayment writes the payment record and the booking payment-status
// update in a single transaction so the two can never diverge.
func (s *bookingService) recordPayment(
	ctx context.Context,
	userId, bookingId string,
	method models.PaymentMethod,
	paymentStatus models.PaymentStatus,
	transactionRef, proofImageURL string,
) (*models.Payment, *apperrors.AppError) {
	booking, err := s.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return nil, err
	}

	if booking.UserId != userId {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the requesting player may pay for a booking")
	}

	if booking.Status != models.BookingStatusConfirmed || booking.PaymentStatus != models.PaymentStatusPending {
		return nil, bookingerrors.InvalidTransitionError(
			fmt.Sprintf("%s/%s", booking.Status, booking.PaymentStatus),
			string(paymentStatus),
		)
	}

	payment := &models.Payment{
		PaymentId:      models.PaymentCompositeID(booking.GroundId, booking.Date, booking.TimeSlot, booking.UserId),
		BookingId:      booking.BookingId,
		GroundId:       booking.GroundId,
		OwnerId:        booking.OwnerId,
		UserId:         booking.UserId,
		Amount:         booking.TotalAmount,
		Method:         method,
		TransactionRef: transactionRef,
		ProofImageURL:  proofImageURL,
		Status:         paymentStatusForMethod(method),
	}

	putPayment, err := s.paymentRepo.GetUpsertTransaction(ctx, payment)
	if err != nil {
		return nil, err
	}

	updateBooking := s.bookingRepo.GetUpdatePaymentStatusTransaction(ctx, bookingId, paymentStatus)

	transactionBuilder := database.NewTransactionBuilder()
	transactionBuilder.AddPut(putPayment)
	transactionBuilder.AddUpdate(updateBooking)

	if txErr := s.transactionRepo.Execute(ctx, transactionBuilder); txErr != nil {
		if database.IsConditionFailure(txErr) {
			return nil, bookingerrors.InvalidTransitionError(
				fmt.Sprintf("%s/%s", booking.Status, booking.PaymentStatus),
				string(paymentStatus),
			)
		}
		return nil, apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to record payment")
	}

	booking.PaymentStatus = paymentStatus

	if pubErr := s.eventPublisher.PublishPaymentRecorded(ctx, payment); pubErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to publish payment recorded event: %v", pubErr))
	}

	s.logger.Info("Payment recorded",
		"payment_id", payment.PaymentId,
		"booking_id", booking.BookingId,
		"method", string(method),
	)

	return payment, nil
}

// paymentStatusForMethod: a transfer is settled when recorded, cash is
// settled at the venue.
func paymentStatusForMethod(method models.PaymentMethod) models.PaymentStatus {
	if method == models.PaymentMethodCash {
		return models.PaymentStatusPending
	}
	return models.PaymentStatusPaid
}

func (s *bookingService) afterBookingWrite(ctx context.Context, groundId string) {
	if err := s.availabilityCache.Invalidate(ctx, groundId); err != nil {
		s.logger.Warn(fmt.Sprintf("Failed to invalidate availability cache for ground %s: %v", groundId, err))
	}
}
