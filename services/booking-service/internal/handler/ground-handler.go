package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type GroundHandler struct {
	groundService  service.GroundService
	bookingService service.BookingService
}

func NewGroundHandler(groundService service.GroundService, bookingService service.BookingService) *GroundHandler {
	return &GroundHandler{
		groundService:  groundService,
		bookingService: bookingService,
	}
}

type groundRequest struct {
	Name           string                `json:"name" binding:"required"`
	Address        string                `json:"address"`
	PricePerHour   int64                 `json:"price_per_hour" binding:"required"`
	Facilities     []string              `json:"facilities"`
	WeeklyTemplate models.WeeklyTemplate `json:"weekly_template"`
	ImageURLs      []string              `json:"image_urls"`
}

type groundResponse struct {
	*models.Ground
	AverageRating float64 `json:"average_rating"`
}

func toGroundResponse(ground *models.Ground) groundResponse {
	return groundResponse{Ground: ground, AverageRating: ground.AverageRating()}
}

func (h *GroundHandler) CreateGround(c *gin.Context) {
	var req groundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ground, err := h.groundService.CreateGround(c.Request.Context(), currentUserID(c), service.CreateGroundRequest{
		Name:           req.Name,
		Address:        req.Address,
		PricePerHour:   req.PricePerHour,
		Facilities:     req.Facilities,
		WeeklyTemplate: req.WeeklyTemplate,
		ImageURLs:      req.ImageURLs,
	})
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGroundResponse(ground))
}

func (h *GroundHandler) GetGround(c *gin.Context) {
	ground, err := h.groundService.GetGround(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroundResponse(ground))
}

func (h *GroundHandler) ListOpenGrounds(c *gin.Context) {
	grounds, err := h.groundService.ListOpenGrounds(c.Request.Context())
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	out := make([]groundResponse, 0, len(grounds))
	for i := range grounds {
		out = append(out, toGroundResponse(&grounds[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *GroundHandler) ListOwnerGrounds(c *gin.Context) {
	grounds, err := h.groundService.ListOwnerGrounds(c.Request.Context(), currentUserID(c))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, grounds)
}

func (h *GroundHandler) UpdateGround(c *gin.Context) {
	var req groundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ground, err := h.groundService.UpdateGround(c.Request.Context(), currentUserID(c), c.Param("id"), service.CreateGroundRequest{
		Name:           req.Name,
		Address:        req.Address,
		PricePerHour:   req.PricePerHour,
		Facilities:     req.Facilities,
		WeeklyTemplate: req.WeeklyTemplate,
		ImageURLs:      req.ImageURLs,
	})
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroundResponse(ground))
}

type groundStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *GroundHandler) SetGroundStatus(c *gin.Context) {
	var req groundStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ground, err := h.groundService.SetGroundStatus(c.Request.Context(), currentUserID(c), c.Param("id"), models.GroundStatus(req.Status))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroundResponse(ground))
}

type templateSlotRequest struct {
	Weekday  string `json:"weekday" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

func (h *GroundHandler) AddTemplateSlot(c *gin.Context) {
	var req templateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ground, err := h.groundService.AddTemplateSlot(c.Request.Context(), currentUserID(c), c.Param("id"), req.Weekday, req.TimeSlot)
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroundResponse(ground))
}

func (h *GroundHandler) RemoveTemplateSlot(c *gin.Context) {
	var req templateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ground, err := h.groundService.RemoveTemplateSlot(c.Request.Context(), currentUserID(c), c.Param("id"), req.Weekday, req.TimeSlot)
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroundResponse(ground))
}

func (h *GroundHandler) DeleteGround(c *gin.Context) {
	if err := h.groundService.DeleteGround(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ground deleted"})
}

func (h *GroundHandler) GetAvailability(c *gin.Context) {
	availability, err := h.bookingService.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ground_id": c.Param("id"), "availability": availability})
}

func (h *GroundHandler) ListGroundBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListGroundBookings(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}
