package handlers

import (
	"errors"
	"net/http"

	"taskplanner/internal/adapter/http/dto"
	"taskplanner/internal/adapter/http/mapper"
	"taskplanner/internal/adapter/http/middleware"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidAuthPayload, lang),
		)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(
				http.StatusConflict,
				apierrors.CreateFieldError(http.StatusConflict, apierrors.MsgEmailTaken, "email", lang),
			)
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(
				http.StatusConflict,
				apierrors.CreateFieldError(http.StatusConflict, apierrors.MsgUsernameTaken, "username", lang),
			)
		default:
			zap.L().Error("failed to register user", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailRegister, lang),
			)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		OK:      true,
		Message: apierrors.GetTransErrorMsg(apierrors.MsgUserRegistered, lang),
		User:    mapper.ToUserItem(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidAuthPayload, lang),
		)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
			)
			return
		}

		zap.L().Error("failed to log in", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLogin, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{OK: true, User: mapper.ToUserItem(user)})
}
