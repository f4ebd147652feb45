package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhanms/playfield/common/logger"
)

type Handlers struct {
	User          *UserHandler
	Ground        *GroundHandler
	Booking       *BookingHandler
	Review        *ReviewHandler
	PaymentMethod *PaymentMethodHandler
}

// NewRouter wires the HTTP surface. Everything under /api/v1 except
// registration and public ground reads requires a caller identity.
func NewRouter(h Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// public
	api.POST("/users", h.User.Register)
	api.GET("/users/:id", h.User.GetUser)
	api.GET("/grounds", h.Ground.ListOpenGrounds)
	api.GET("/grounds/:id", h.Ground.GetGround)
	api.GET("/grounds/:id/availability", h.Ground.GetAvailability)
	api.GET("/grounds/:id/reviews", h.Review.ListReviews)
	api.GET("/owners/:id/payment-methods", h.PaymentMethod.ListPaymentMethods)

	authed := api.Group("")
	authed.Use(RequireUser())

	authed.PUT("/users/:id/approval", h.User.SetApproval)

	authed.POST("/grounds", h.Ground.CreateGround)
	authed.PUT("/grounds/:id", h.Ground.UpdateGround)
	authed.DELETE("/grounds/:id", h.Ground.DeleteGround)
	authed.PUT("/grounds/:id/status", h.Ground.SetGroundStatus)
	authed.POST("/grounds/:id/template-slots", h.Ground.AddTemplateSlot)
	authed.DELETE("/grounds/:id/template-slots", h.Ground.RemoveTemplateSlot)
	authed.GET("/grounds/:id/bookings", h.Ground.ListGroundBookings)
	authed.GET("/me/grounds", h.Ground.ListOwnerGrounds)

	authed.POST("/grounds/:id/reviews", h.Review.CreateReview)

	authed.POST("/bookings", h.Booking.CreateBooking)
	authed.GET("/bookings/:id", h.Booking.GetBooking)
	authed.GET("/me/bookings", h.Booking.ListMyBookings)
	authed.POST("/bookings/:id/approve", h.Booking.ApproveBooking)
	authed.POST("/bookings/:id/reject", h.Booking.RejectBooking)
	authed.POST("/bookings/:id/cancel", h.Booking.CancelBooking)
	authed.POST("/bookings/:id/pay", h.Booking.MarkPaid)
	authed.POST("/bookings/:id/cash", h.Booking.MarkCash)

	authed.POST("/payment-methods", h.PaymentMethod.CreatePaymentMethod)
	authed.DELETE("/payment-methods/:id", h.PaymentMethod.DeletePaymentMethod)

	return router
}
