package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type createBookingRequest struct {
	GroundId      string `json:"ground_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	TimeSlot      string `json:"time_slot" binding:"required"`
	DurationHours int    `json:"duration_hours" binding:"required"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		GroundId:      req.GroundId,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		DurationHours: req.DurationHours,
		UserId:        currentUserID(c),
	})
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListUserBookings(c.Request.Context(), currentUserID(c))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	booking, err := h.bookingService.ApproveBooking(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

type rejectBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	var req rejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.RejectBooking(c.Request.Context(), currentUserID(c), c.Param("id"), req.Reason)
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

type markPaidRequest struct {
	TransactionRef string `json:"transaction_ref"`
	ProofImageURL  string `json:"proof_image_url"`
}

func (h *BookingHandler) MarkPaid(c *gin.Context) {
	var req markPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.bookingService.MarkPaid(c.Request.Context(), currentUserID(c), c.Param("id"), req.TransactionRef, req.ProofImageURL)
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *BookingHandler) MarkCash(c *gin.Context) {
	payment, err := h.bookingService.MarkCash(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}
