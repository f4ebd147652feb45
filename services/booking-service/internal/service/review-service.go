package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/farhanms/playfield/common/database"
	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/models"
	bookingerrors "github.com/farhanms/playfield/services/booking-service/internal/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/repository"
)

type CreateReviewRequest struct {
	GroundId string
	UserId   string
	Rating   int
	Comment  string
}

type ReviewService interface {
	CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, *apperrors.AppError)
	ListReviews(ctx context.Context, groundId string) ([]models.Review, *apperrors.AppError)
}

type reviewService struct {
	reviewRepo      repository.ReviewRepository
	groundRepo      repository.GroundRepository
	transactionRepo database.TransactionRepository
	logger          *logger.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	groundRepo repository.GroundRepository,
	transactionRepo database.TransactionRepository,
	logger *logger.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		groundRepo:      groundRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CreateReview writes the review and bumps the ground's rating
// aggregate in a single transaction, so the average can never drift
// from the stored reviews.
func (s *reviewService) CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, *apperrors.AppError) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, bookingerrors.RatingRangeError()
	}

	if _, err := s.groundRepo.GetById(ctx, req.GroundId); err != nil {
		return nil, err
	}

	review := &models.Review{
		ReviewId: uuid.New().String(),
		GroundId: req.GroundId,
		UserId:   req.UserId,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	putReview, err := s.reviewRepo.GetCreateTransaction(ctx, review)
	if err != nil {
		return nil, err
	}

	addRating := s.groundRepo.GetAddRatingTransaction(ctx, req.GroundId, req.Rating)

	transactionBuilder := database.NewTransactionBuilder()
	transactionBuilder.AddPut(putReview)
	transactionBuilder.AddUpdate(addRating)

	if txErr := s.transactionRepo.Execute(ctx, transactionBuilder); txErr != nil {
		return nil, apperrors.Wrap(txErr, apperrors.CodeTransactionError, "failed to create review")
	}

	s.logger.Info("Review created", "review_id", review.ReviewId, "ground_id", req.GroundId, "rating", req.Rating)

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, groundId string) ([]models.Review, *apperrors.AppError) {
	return s.reviewRepo.ListByGround(ctx, groundId)
}
