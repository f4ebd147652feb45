package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/cache"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) *apperrors.AppError {
	f.users[user.UserId] = user
	return nil
}

func (f *fakeUserRepo) GetById(ctx context.Context, userId string) (*models.User, *apperrors.AppError) {
	user, ok := f.users[userId]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateApprovalStatus(ctx context.Context, userId string, status models.ApprovalStatus) *apperrors.AppError {
	user, ok := f.users[userId]
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	user.ApprovalStatus = status
	return nil
}

type fakeGroundPublisher struct {
	updated int
	deleted int
}

func (f *fakeGroundPublisher) PublishGroundUpdated(ctx context.Context, ground *models.Ground) error {
	f.updated++
	return nil
}

func (f *fakeGroundPublisher) PublishGroundDeleted(ctx context.Context, ground *models.Ground) error {
	f.deleted++
	return nil
}

type fakeImageDeleter struct {
	deleted []string
}

func (f *fakeImageDeleter) DeleteImage(ctx context.Context, imageURL string) error {
	f.deleted = append(f.deleted, imageURL)
	return nil
}

type groundFixture struct {
	svc        service.GroundService
	groundRepo *fakeGroundRepo
	userRepo   *fakeUserRepo
	publisher  *fakeGroundPublisher
	images     *fakeImageDeleter
}

func newGroundFixture(t *testing.T) *groundFixture {
	t.Helper()

	redisClient, _ := redismock.NewClientMock()

	f := &groundFixture{
		groundRepo: &fakeGroundRepo{grounds: map[string]*models.Ground{}},
		userRepo:   &fakeUserRepo{users: map[string]*models.User{}},
		publisher:  &fakeGroundPublisher{},
		images:     &fakeImageDeleter{},
	}

	f.svc = service.NewGroundService(
		f.groundRepo,
		f.userRepo,
		cache.NewAvailabilityCache(redisClient, time.Minute),
		f.publisher,
		f.images,
		logger.Development("ground-service-test"),
	)

	return f
}

func (f *groundFixture) addOwner(userId string, approval models.ApprovalStatus) {
	f.userRepo.users[userId] = &models.User{
		UserId:         userId,
		Role:           models.UserRoleOwner,
		ApprovalStatus: approval,
	}
}

func validGroundRequest() service.CreateGroundRequest {
	return service.CreateGroundRequest{
		Name:         "Center Court",
		Address:      "12 Stadium Road",
		PricePerHour: 500,
		Facilities:   []string{"parking", "showers"},
		WeeklyTemplate: models.WeeklyTemplate{
			"Monday": {"07:00 AM", "08:00 AM"},
		},
	}
}

func TestCreateGroundRequiresApprovedOwner(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusPending)

	_, err := f.svc.CreateGround(context.Background(), "owner-1", validGroundRequest())

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestCreateGroundStartsOpen(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)

	ground, err := f.svc.CreateGround(context.Background(), "owner-1", validGroundRequest())

	require.Nil(t, err)
	assert.Equal(t, models.GroundStatusOpen, ground.Status)
	assert.Equal(t, "owner-1", ground.OwnerId)
	assert.NotEmpty(t, ground.GroundId)
}

func TestCreateGroundRejectsUnknownWeekday(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)

	req := validGroundRequest()
	req.WeeklyTemplate = models.WeeklyTemplate{"Funday": {"07:00 AM"}}

	_, err := f.svc.CreateGround(context.Background(), "owner-1", req)

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestUpdateGroundRequiresOwnership(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)
	f.addOwner("owner-2", models.ApprovalStatusApproved)

	ground, err := f.svc.CreateGround(context.Background(), "owner-1", validGroundRequest())
	require.Nil(t, err)

	_, err = f.svc.UpdateGround(context.Background(), "owner-2", ground.GroundId, validGroundRequest())

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestAddTemplateSlotKeepsOrder(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)

	ground, err := f.svc.CreateGround(context.Background(), "owner-1", validGroundRequest())
	require.Nil(t, err)

	updated, err := f.svc.AddTemplateSlot(context.Background(), "owner-1", ground.GroundId, "Monday", "06:00 AM")

	require.Nil(t, err)
	assert.Equal(t, []string{"06:00 AM", "07:00 AM", "08:00 AM"}, updated.WeeklyTemplate["Monday"])
	assert.Equal(t, 1, f.publisher.updated)
}

func TestRemoveTemplateSlotDropsEmptyWeekday(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)

	req := validGroundRequest()
	req.WeeklyTemplate = models.WeeklyTemplate{"Monday": {"07:00 AM"}}
	ground, err := f.svc.CreateGround(context.Background(), "owner-1", req)
	require.Nil(t, err)

	updated, err := f.svc.RemoveTemplateSlot(context.Background(), "owner-1", ground.GroundId, "Monday", "07:00 AM")

	require.Nil(t, err)
	assert.NotContains(t, updated.WeeklyTemplate, "Monday")
}

func TestSetGroundStatusValidatesValue(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)

	ground, err := f.svc.CreateGround(context.Background(), "owner-1", validGroundRequest())
	require.Nil(t, err)

	_, err = f.svc.SetGroundStatus(context.Background(), "owner-1", ground.GroundId, models.GroundStatus("paused"))

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestDeleteGroundRemovesImages(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusApproved)

	req := validGroundRequest()
	req.ImageURLs = []string{"https://media/a.jpg", "https://media/b.jpg"}
	ground, err := f.svc.CreateGround(context.Background(), "owner-1", req)
	require.Nil(t, err)

	err = f.svc.DeleteGround(context.Background(), "owner-1", ground.GroundId)

	require.Nil(t, err)
	assert.Equal(t, []string{"https://media/a.jpg", "https://media/b.jpg"}, f.images.deleted)
	assert.Equal(t, 1, f.publisher.deleted)
	_, getErr := f.svc.GetGround(context.Background(), ground.GroundId)
	assert.NotNil(t, getErr)
}

func TestListOwnerGroundsRequiresApproval(t *testing.T) {
	f := newGroundFixture(t)
	f.addOwner("owner-1", models.ApprovalStatusRejected)

	_, err := f.svc.ListOwnerGrounds(context.Background(), "owner-1")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}
