package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), service.CreateReviewRequest{
		GroundId: c.Param("id"),
		UserId:   currentUserID(c),
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
