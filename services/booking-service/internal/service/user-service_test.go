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

func newUserService(t *testing.T) (service.UserService, *fakeUserRepo) {
	t.Helper()

	userRepo := &fakeUserRepo{users: map[string]*models.User{}}
	return service.NewUserService(userRepo, logger.Development("user-service-test")), userRepo
}

func TestRegisterPlayerIsApprovedImmediately(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Register(context.Background(), service.RegisterUserRequest{
		DisplayName: "Amira",
		Role:        models.UserRolePlayer,
	})

	require.Nil(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, user.ApprovalStatus)
}

func TestRegisterOwnerStartsPending(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Register(context.Background(), service.RegisterUserRequest{
		DisplayName: "Bilal",
		Role:        models.UserRoleOwner,
	})

	require.Nil(t, err)
	assert.Equal(t, models.ApprovalStatusPending, user.ApprovalStatus)
	assert.False(t, user.IsApprovedOwner())
}

func TestRegisterValidatesRole(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Register(context.Background(), service.RegisterUserRequest{
		DisplayName: "Casey",
		Role:        models.UserRole("admin"),
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func approver(repo *fakeUserRepo) string {
	repo.users["staff-1"] = &models.User{
		UserId:         "staff-1",
		Role:           models.UserRolePlayer,
		ApprovalStatus: models.ApprovalStatusApproved,
	}
	return "staff-1"
}

func TestSetApprovalPromotesOwner(t *testing.T) {
	svc, repo := newUserService(t)
	repo.users["owner-1"] = &models.User{
		UserId:         "owner-1",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusPending,
	}

	user, err := svc.SetApproval(context.Background(), approver(repo), "owner-1", models.ApprovalStatusApproved)

	require.Nil(t, err)
	assert.True(t, user.IsApprovedOwner())
}

func TestSetApprovalRejectsPlayers(t *testing.T) {
	svc, repo := newUserService(t)
	repo.users["player-1"] = &models.User{
		UserId:         "player-1",
		Role:           models.UserRolePlayer,
		ApprovalStatus: models.ApprovalStatusApproved,
	}

	_, err := svc.SetApproval(context.Background(), approver(repo), "player-1", models.ApprovalStatusApproved)

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestSetApprovalValidatesStatus(t *testing.T) {
	svc, repo := newUserService(t)
	repo.users["owner-1"] = &models.User{
		UserId: "owner-1",
		Role:   models.UserRoleOwner,
	}

	_, err := svc.SetApproval(context.Background(), approver(repo), "owner-1", models.ApprovalStatusPending)

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestSetApprovalCannotApproveSelf(t *testing.T) {
	svc, repo := newUserService(t)
	repo.users["owner-1"] = &models.User{
		UserId:         "owner-1",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusPending,
	}

	_, err := svc.SetApproval(context.Background(), "owner-1", "owner-1", models.ApprovalStatusApproved)

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
	assert.Equal(t, models.ApprovalStatusPending, repo.users["owner-1"].ApprovalStatus)
}

func TestSetApprovalRequiresApprovedCaller(t *testing.T) {
	svc, repo := newUserService(t)
	repo.users["owner-1"] = &models.User{
		UserId:         "owner-1",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusPending,
	}
	repo.users["owner-2"] = &models.User{
		UserId:         "owner-2",
		Role:           models.UserRoleOwner,
		ApprovalStatus: models.ApprovalStatusPending,
	}

	_, err := svc.SetApproval(context.Background(), "owner-2", "owner-1", models.ApprovalStatusApproved)

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeForbidden, err.Code)
	assert.Equal(t, models.ApprovalStatusPending, repo.users["owner-1"].ApprovalStatus)
}
