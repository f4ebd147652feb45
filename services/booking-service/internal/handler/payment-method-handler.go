package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type PaymentMethodHandler struct {
	paymentMethodService service.PaymentMethodService
}

func NewPaymentMethodHandler(paymentMethodService service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodService: paymentMethodService}
}

type createPaymentMethodRequest struct {
	Label         string `json:"label" binding:"required"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	QRImageURL    string `json:"qr_image_url"`
}

func (h *PaymentMethodHandler) CreatePaymentMethod(c *gin.Context) {
	var req createPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), currentUserID(c), service.CreatePaymentMethodRequest{
		Label:         req.Label,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		QRImageURL:    req.QRImageURL,
	})
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, method)
}

// ListPaymentMethods returns the payout methods of the owner in the
// path, so a paying player can see where to send a transfer.
func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, methods)
}

func (h *PaymentMethodHandler) DeletePaymentMethod(c *gin.Context) {
	if err := h.paymentMethodService.DeletePaymentMethod(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment method deleted"})
}
