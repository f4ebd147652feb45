package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type fakePaymentMethodRepo struct {
	methods map[string]*models.OwnerPaymentMethod
}

func (f *fakePaymentMethodRepo) Create(ctx context.Context, method *models.OwnerPaymentMethod) *apperrors.AppError {
	f.methods[method.MethodId] = method
	return nil
}

func (f *fakePaymentMethodRepo) ListByOwner(ctx context.Context, ownerId string) ([]models.OwnerPaymentMethod, *apperrors.AppError) {
	var out []models.OwnerPaymentMethod
	for _, m := range f.methods {
		if m.OwnerId == ownerId {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakePaymentMethodRepo) Delete(ctx context.Context, ownerId, methodId string) *apperrors.AppError {
	delete(f.methods, methodId)
	return nil
}

func newPaymentMethodFixture(t *testing.T) (service.PaymentMethodService, *fakePaymentMethodRepo, *fakeUserRepo, *fakeImageDeleter) {
	t.Helper()

	methodRepo := &fakePaymentMethodRepo{methods: map[string]*models.OwnerPaymentMethod{}}
	userRepo := &fakeUserRepo{users: map[string]*models.User{}}
	images := &fakeImageDeleter{}

	svc := service.NewPaymentMethodService(methodRepo, userRepo, images, logger.Development("payment-method-service-test"))

	return svc, methodRepo, userRepo, images
}

func TestCreatePaymentMethodRequiresApprovedOwner(t *testing.T) {
	svc, _, userRepo, _ := newPaymentMethodFixture(t)
	userRepo.users["owner-1"] = &models.User{
		UserId:         "owner-1",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusPending,
	}

	_, err := svc.CreatePaymentMethod(context.Background(), "owner-1", service.CreatePaymentMethodRequest{
		Label: "Bank transfer",
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
}

func TestDeletePaymentMethodRemovesQRImage(t *testing.T) {
	svc, _, userRepo, images := newPaymentMethodFixture(t)
	userRepo.users["owner-1"] = &models.User{
		UserId:         "owner-1",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusApproved,
	}

	method, err := svc.CreatePaymentMethod(context.Background(), "owner-1", service.CreatePaymentMethodRequest{
		Label:      "Bank transfer",
		QRImageURL: "https://media/qr.png",
	})
	require.Nil(t, err)

	require.Nil(t, svc.DeletePaymentMethod(context.Background(), "owner-1", method.MethodId))

	assert.Equal(t, []string{"https://media/qr.png"}, images.deleted)
}

func TestDeletePaymentMethodUnknownIdFails(t *testing.T) {
	svc, _, userRepo, _ := newPaymentMethodFixture(t)
	userRepo.users["owner-1"] = &models.User{
		UserId:         "owner-1",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusApproved,
	}

	err := svc.DeletePaymentMethod(context.Background(), "owner-1", "missing")

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeNotFound, err.Code)
}
