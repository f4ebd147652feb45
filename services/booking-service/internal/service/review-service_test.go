package service_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type reviewFixture struct {
	svc        service.ReviewService
	reviewRepo *fakeReviewRepo
	groundRepo *fakeGroundRepo
	txRepo     *fakeTransactionRepo
}

type fakeReviewRepo struct {
	reviews []models.Review
	created []*models.Review
}

func (f *fakeReviewRepo) ListByGround(ctx context.Context, groundId string) ([]models.Review, *apperrors.AppError) {
	return f.reviews, nil
}

func (f *fakeReviewRepo) GetCreateTransaction(ctx context.Context, review *models.Review) (types.Put, *apperrors.AppError) {
	f.created = append(f.created, review)
	return types.Put{}, nil
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	f := &reviewFixture{
		reviewRepo: &fakeReviewRepo{},
		groundRepo: &fakeGroundRepo{grounds: map[string]*models.Ground{}},
		txRepo:     &fakeTransactionRepo{},
	}

	f.groundRepo.grounds["ground-1"] = &models.Ground{
		GroundId: "ground-1",
		OwnerId:  "owner-1",
		Status:   models.GroundStatusOpen,
	}

	f.svc = service.NewReviewService(f.reviewRepo, f.groundRepo, f.txRepo, logger.Development("review-service-test"))

	return f
}

func TestCreateReviewWritesReviewAndAggregateTogether(t *testing.T) {
	f := newReviewFixture(t)

	review, err := f.svc.CreateReview(context.Background(), service.CreateReviewRequest{
		GroundId: "ground-1",
		UserId:   "player-1",
		Rating:   4,
		Comment:  "good lighting",
	})

	require.Nil(t, err)
	assert.NotEmpty(t, review.ReviewId)
	assert.Equal(t, 4, review.Rating)
	// review put plus rating-counter update in one transaction
	require.Len(t, f.txRepo.builders, 1)
	assert.Equal(t, 2, f.txRepo.builders[0].Count())
}

func TestCreateReviewValidatesRatingRange(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{0, -1, 6} {
		_, err := f.svc.CreateReview(context.Background(), service.CreateReviewRequest{
			GroundId: "ground-1",
			UserId:   "player-1",
			Rating:   rating,
		})

		require.NotNil(t, err)
		assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
	}

	assert.Empty(t, f.txRepo.builders)
}

func TestCreateReviewRequiresExistingGround(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.CreateReview(context.Background(), service.CreateReviewRequest{
		GroundId: "ground-missing",
		UserId:   "player-1",
		Rating:   5,
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeNotFound, err.Code)
}

func TestListReviewsReturnsGroundReviews(t *testing.T) {
	f := newReviewFixture(t)
	f.reviewRepo.reviews = []models.Review{
		{ReviewId: "r1", GroundId: "ground-1", Rating: 5},
		{ReviewId: "r2", GroundId: "ground-1", Rating: 3},
	}

	reviews, err := f.svc.ListReviews(context.Background(), "ground-1")

	require.Nil(t, err)
	assert.Len(t, reviews, 2)
}
