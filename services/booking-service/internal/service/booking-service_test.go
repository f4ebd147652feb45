package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanms/playfield/common/database"
	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/cache"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

// Fakes

type fakeGroundRepo struct {
	grounds map[string]*models.Ground
}

func (f *fakeGroundRepo) Create(ctx context.Context, ground *models.Ground) *apperrors.AppError {
	f.grounds[ground.GroundId] = ground
	return nil
}

func (f *fakeGroundRepo) GetById(ctx context.Context, groundId string) (*models.Ground, *apperrors.AppError) {
	ground, ok := f.grounds[groundId]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "ground not found")
	}
	copied := *ground
	return &copied, nil
}

func (f *fakeGroundRepo) ListByOwner(ctx context.Context, ownerId string) ([]models.Ground, *apperrors.AppError) {
	var out []models.Ground
	for _, g := range f.grounds {
		if g.OwnerId == ownerId {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGroundRepo) ListOpen(ctx context.Context) ([]models.Ground, *apperrors.AppError) {
	var out []models.Ground
	for _, g := range f.grounds {
		if g.Status == models.GroundStatusOpen {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGroundRepo) Update(ctx context.Context, ground *models.Ground) *apperrors.AppError {
	f.grounds[ground.GroundId] = ground
	return nil
}

func (f *fakeGroundRepo) Delete(ctx context.Context, groundId string) *apperrors.AppError {
	delete(f.grounds, groundId)
	return nil
}

func (f *fakeGroundRepo) GetAddRatingTransaction(ctx context.Context, groundId string, rating int) types.Update {
	return types.Update{}
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	byGround []models.Booking
	active   []models.Booking
	stale    []models.Booking
}

func (f *fakeBookingRepo) GetById(ctx context.Context, bookingId string) (*models.Booking, *apperrors.AppError) {
	booking, ok := f.bookings[bookingId]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "booking not found")
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) ListByGround(ctx context.Context, groundId string) ([]models.Booking, *apperrors.AppError) {
	return f.byGround, nil
}

func (f *fakeBookingRepo) ListActiveByGround(ctx context.Context, groundId string) ([]models.Booking, *apperrors.AppError) {
	return f.active, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userId string) ([]models.Booking, *apperrors.AppError) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserId == userId {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListStalePending(ctx context.Context, before string) ([]models.Booking, *apperrors.AppError) {
	return f.stale, nil
}

func (f *fakeBookingRepo) GetCreateTransaction(ctx context.Context, booking *models.Booking) (types.Put, *apperrors.AppError) {
	return types.Put{}, nil
}

func (f *fakeBookingRepo) GetUpdateStatusTransaction(ctx context.Context, bookingId string, from, to models.BookingStatus, reason string) types.Update {
	return types.Update{}
}

func (f *fakeBookingRepo) GetUpdatePaymentStatusTransaction(ctx context.Context, bookingId string, to models.PaymentStatus) types.Update {
	return types.Update{}
}

type fakeSlotClaimRepo struct{}

func (f *fakeSlotClaimRepo) GetByKey(ctx context.Context, groundId, date, timeSlot string) (*models.SlotClaim, *apperrors.AppError) {
	return nil, apperrors.New(apperrors.CodeNotFound, "slot claim not found")
}

func (f *fakeSlotClaimRepo) GetClaimTransaction(ctx context.Context, claim *models.SlotClaim) (types.Put, *apperrors.AppError) {
	return types.Put{}, nil
}

func (f *fakeSlotClaimRepo) GetReleaseTransaction(ctx context.Context, groundId, date, timeSlot string) types.Delete {
	return types.Delete{}
}

type fakePaymentRepo struct {
	upserted []*models.Payment
}

func (f *fakePaymentRepo) GetById(ctx context.Context, paymentId string) (*models.Payment, *apperrors.AppError) {
	return nil, apperrors.New(apperrors.CodeNotFound, "payment not found")
}

func (f *fakePaymentRepo) GetUpsertTransaction(ctx context.Context, payment *models.Payment) (types.Put, *apperrors.AppError) {
	f.upserted = append(f.upserted, payment)
	return types.Put{}, nil
}

type fakeTransactionRepo struct {
	err      error
	builders []*database.TransactionBuilder
}

func (f *fakeTransactionRepo) Execute(ctx context.Context, transactionBuilder *database.TransactionBuilder) error {
	f.builders = append(f.builders, transactionBuilder)
	return f.err
}

type fakePublisher struct {
	created   int
	confirmed int
	rejected  int
	cancelled int
	payments  int
}

func (f *fakePublisher) PublishBookingCreated(ctx context.Context, booking *models.Booking) error {
	f.created++
	return nil
}

func (f *fakePublisher) PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	f.confirmed++
	return nil
}

func (f *fakePublisher) PublishBookingRejected(ctx context.Context, booking *models.Booking) error {
	f.rejected++
	return nil
}

func (f *fakePublisher) PublishBookingCancelled(ctx context.Context, booking *models.Booking) error {
	f.cancelled++
	return nil
}

func (f *fakePublisher) PublishPaymentRecorded(ctx context.Context, payment *models.Payment) error {
	f.payments++
	return nil
}

// Fixtures

type bookingFixture struct {
	svc         service.BookingService
	groundRepo  *fakeGroundRepo
	bookingRepo *fakeBookingRepo
	paymentRepo *fakePaymentRepo
	txRepo      *fakeTransactionRepo
	publisher   *fakePublisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	redisClient, _ := redismock.NewClientMock()

	f := &bookingFixture{
		groundRepo:  &fakeGroundRepo{grounds: map[string]*models.Ground{}},
		bookingRepo: &fakeBookingRepo{bookings: map[string]*models.Booking{}},
		paymentRepo: &fakePaymentRepo{},
		txRepo:      &fakeTransactionRepo{},
		publisher:   &fakePublisher{},
	}

	f.svc = service.NewBookingService(
		f.groundRepo,
		f.bookingRepo,
		&fakeSlotClaimRepo{},
		f.paymentRepo,
		f.txRepo,
		cache.NewAvailabilityCache(redisClient, time.Minute),
		f.publisher,
		7,
		logger.Development("booking-service-test"),
	)

	return f
}

func todayDate() (date, weekday string) {
	now := time.Now()
	return now.Format(models.BookingDateLayout), now.Weekday().String()
}

func (f *bookingFixture) addGround(weekday string, slots ...string) *models.Ground {
	ground := &models.Ground{
		GroundId:       "ground-1",
		Name:           "Center Court",
		PricePerHour:   500,
		WeeklyTemplate: models.WeeklyTemplate{weekday: slots},
		Status:         models.GroundStatusOpen,
		OwnerId:        "owner-1",
	}
	f.groundRepo.grounds[ground.GroundId] = ground
	return ground
}

func (f *bookingFixture) addBooking(status models.BookingStatus, paymentStatus models.PaymentStatus) *models.Booking {
	date, _ := todayDate()
	booking := &models.Booking{
		BookingId:     "booking-1",
		GroundId:      "ground-1",
		OwnerId:       "owner-1",
		UserId:        "player-1",
		Date:          date,
		TimeSlot:      "07:00 PM",
		DurationHours: 1,
		TotalAmount:   500,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	f.bookingRepo.bookings[booking.BookingId] = booking
	return booking
}

func conditionFailure() error {
	return &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}
}

// Tests

func TestCreateBookingStartsPendingWithComputedTotal(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 PM", "08:00 PM")

	booking, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          date,
		TimeSlot:      "07:00 PM",
		DurationHours: 2,
		UserId:        "player-1",
	})

	require.Nil(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, int64(1000), booking.TotalAmount)
	assert.Equal(t, "owner-1", booking.OwnerId)
	assert.Equal(t, 1, f.publisher.created)
}

func TestCreateBookingWritesClaimAndBookingTogether(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 PM")

	_, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          date,
		TimeSlot:      "07:00 PM",
		DurationHours: 1,
		UserId:        "player-1",
	})

	require.Nil(t, err)
	require.Len(t, f.txRepo.builders, 1)
	assert.Equal(t, 2, f.txRepo.builders[0].Count())
}

func TestCreateBookingTakenSlotConflicts(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 PM")
	f.txRepo.err = conditionFailure()

	_, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          date,
		TimeSlot:      "07:00 PM",
		DurationHours: 1,
		UserId:        "player-2",
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeConflict, err.Code)
	assert.Equal(t, 0, f.publisher.created)
}

func TestCreateBookingRejectsClosedGround(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	ground := f.addGround(weekday, "07:00 PM")
	ground.Status = models.GroundStatusClosed

	_, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          date,
		TimeSlot:      "07:00 PM",
		DurationHours: 1,
		UserId:        "player-1",
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestCreateBookingRejectsSlotOutsideTemplate(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 PM")

	_, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          date,
		TimeSlot:      "09:00 PM",
		DurationHours: 1,
		UserId:        "player-1",
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestCreateBookingRejectsDateBeyondWindow(t *testing.T) {
	f := newBookingFixture(t)
	beyond := time.Now().AddDate(0, 0, 7)
	f.addGround(beyond.Weekday().String(), "07:00 PM")

	_, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          beyond.Format(models.BookingDateLayout),
		TimeSlot:      "07:00 PM",
		DurationHours: 1,
		UserId:        "player-1",
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestCreateBookingRejectsNonPositiveDuration(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 PM")

	_, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		GroundId:      "ground-1",
		Date:          date,
		TimeSlot:      "07:00 PM",
		DurationHours: 0,
		UserId:        "player-1",
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestApproveBookingConfirmsPending(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusPending, models.PaymentStatusPending)

	booking, err := f.svc.ApproveBooking(context.Background(), "owner-1", "booking-1")

	require.Nil(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 1, f.publisher.confirmed)
}

func TestApproveBookingRequiresPendingStatus(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusCancelled, models.PaymentStatusPending)

	_, err := f.svc.ApproveBooking(context.Background(), "owner-1", "booking-1")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeConflict, err.Code)
	assert.Empty(t, f.txRepo.builders)
}

func TestApproveBookingRequiresOwner(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusPending, models.PaymentStatusPending)

	_, err := f.svc.ApproveBooking(context.Background(), "owner-2", "booking-1")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestRejectBookingRequiresReason(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusPending, models.PaymentStatusPending)

	_, err := f.svc.RejectBooking(context.Background(), "owner-1", "booking-1", "")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestRejectBookingReleasesSlot(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusPending, models.PaymentStatusPending)

	booking, err := f.svc.RejectBooking(context.Background(), "owner-1", "booking-1", "double booked offline")

	require.Nil(t, err)
	assert.Equal(t, models.BookingStatusRejected, booking.Status)
	assert.Equal(t, "double booked offline", booking.RejectionReason)
	// status update plus claim delete in one transaction
	require.Len(t, f.txRepo.builders, 1)
	assert.Equal(t, 2, f.txRepo.builders[0].Count())
	assert.Equal(t, 1, f.publisher.rejected)
}

func TestCancelBookingOnlyByBooker(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusConfirmed, models.PaymentStatusPending)

	_, err := f.svc.CancelBooking(context.Background(), "player-2", "booking-1")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestCancelBookingReleasesSlot(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusConfirmed, models.PaymentStatusPending)

	booking, err := f.svc.CancelBooking(context.Background(), "player-1", "booking-1")

	require.Nil(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	require.Len(t, f.txRepo.builders, 1)
	assert.Equal(t, 2, f.txRepo.builders[0].Count())
	assert.Equal(t, 1, f.publisher.cancelled)
}

func TestCancelBookingRejectsInactive(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusRejected, models.PaymentStatusPending)

	_, err := f.svc.CancelBooking(context.Background(), "player-1", "booking-1")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeConflict, err.Code)
}

func TestMarkPaidRecordsSettledTransfer(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.addBooking(models.BookingStatusConfirmed, models.PaymentStatusPending)

	payment, err := f.svc.MarkPaid(context.Background(), "player-1", "booking-1", "TRX-123", "https://media/proof.jpg")

	require.Nil(t, err)
	assert.Equal(t, models.PaymentMethodTransfer, payment.Method)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, booking.TotalAmount, payment.Amount)
	assert.Equal(t, "TRX-123", payment.TransactionRef)
	// payment put plus booking payment-status update commit together
	require.Len(t, f.txRepo.builders, 1)
	assert.Equal(t, 2, f.txRepo.builders[0].Count())
	assert.Equal(t, 1, f.publisher.payments)
}

func TestMarkPaidPaymentIdIsDeterministic(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.addBooking(models.BookingStatusConfirmed, models.PaymentStatusPending)

	payment, err := f.svc.MarkPaid(context.Background(), "player-1", "booking-1", "TRX-123", "")

	require.Nil(t, err)
	expected := models.PaymentCompositeID(booking.GroundId, booking.Date, booking.TimeSlot, booking.UserId)
	assert.Equal(t, expected, payment.PaymentId)
}

func TestMarkCashStaysUnsettledUntilVenue(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusConfirmed, models.PaymentStatusPending)

	payment, err := f.svc.MarkCash(context.Background(), "player-1", "booking-1")

	require.Nil(t, err)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
}

func TestMarkPaidRequiresConfirmedBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusPending, models.PaymentStatusPending)

	_, err := f.svc.MarkPaid(context.Background(), "player-1", "booking-1", "TRX-123", "")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeConflict, err.Code)
	assert.Empty(t, f.paymentRepo.upserted)
}

func TestMarkPaidRejectsAlreadyPaid(t *testing.T) {
	f := newBookingFixture(t)
	f.addBooking(models.BookingStatusConfirmed, models.PaymentStatusPaid)

	_, err := f.svc.MarkPaid(context.Background(), "player-1", "booking-1", "TRX-456", "")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeConflict, err.Code)
}

func TestGetAvailabilityExcludesActiveBookings(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 AM", "08:00 AM")
	f.bookingRepo.active = []models.Booking{
		{Date: date, TimeSlot: "07:00 AM", Status: models.BookingStatusConfirmed},
	}

	result, err := f.svc.GetAvailability(context.Background(), "ground-1")

	require.Nil(t, err)
	assert.Equal(t, []string{"08:00 AM"}, result[date])
}

func TestListGroundBookingsRequiresOwner(t *testing.T) {
	f := newBookingFixture(t)
	_, weekday := todayDate()
	f.addGround(weekday, "07:00 PM")

	_, err := f.svc.ListGroundBookings(context.Background(), "owner-2", "ground-1")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestListGroundBookingsIncludesInactiveHistory(t *testing.T) {
	f := newBookingFixture(t)
	date, weekday := todayDate()
	f.addGround(weekday, "07:00 PM", "08:00 PM")
	f.bookingRepo.byGround = []models.Booking{
		{BookingId: "b-1", Date: date, TimeSlot: "07:00 PM", Status: models.BookingStatusConfirmed},
		{BookingId: "b-2", Date: date, TimeSlot: "08:00 PM", Status: models.BookingStatusCancelled},
		{BookingId: "b-3", Date: date, TimeSlot: "08:00 PM", Status: models.BookingStatusRejected},
	}

	bookings, err := f.svc.ListGroundBookings(context.Background(), "owner-1", "ground-1")

	require.Nil(t, err)
	require.Len(t, bookings, 3)
	statuses := []models.BookingStatus{bookings[0].Status, bookings[1].Status, bookings[2].Status}
	assert.Contains(t, statuses, models.BookingStatusCancelled)
	assert.Contains(t, statuses, models.BookingStatusRejected)
}

func TestExpireStaleBookingsSweepsPending(t *testing.T) {
	f := newBookingFixture(t)
	yesterday := time.Now().AddDate(0, 0, -1).Format(models.BookingDateLayout)
	f.bookingRepo.stale = []models.Booking{
		{BookingId: "stale-1", GroundId: "ground-1", Date: yesterday, TimeSlot: "07:00 PM", Status: models.BookingStatusPending},
		{BookingId: "stale-2", GroundId: "ground-1", Date: yesterday, TimeSlot: "08:00 PM", Status: models.BookingStatusPending},
	}

	expired, err := f.svc.ExpireStaleBookings(context.Background(), time.Now())

	require.Nil(t, err)
	assert.Equal(t, 2, expired)
	// each expiry releases its claim alongside the status update
	require.Len(t, f.txRepo.builders, 2)
	for _, builder := range f.txRepo.builders {
		assert.Equal(t, 2, builder.Count())
	}
}
