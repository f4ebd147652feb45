package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/models"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerUserRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterUserRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        models.UserRole(req.Role),
	})
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type setApprovalRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *UserHandler) SetApproval(c *gin.Context) {
	var req setApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.SetApproval(c.Request.Context(), currentUserID(c), c.Param("id"), models.ApprovalStatus(req.Status))
	if err != nil {
		apperrors.WriteHTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
