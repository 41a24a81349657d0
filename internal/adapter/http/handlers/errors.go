package handlers

import (
	"errors"
	"net/http"

	"taskplanner/internal/adapter/http/middleware"
	"taskplanner/internal/adapter/http/validation"
	"taskplanner/internal/core/domain"
	"taskplanner/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// taskErrorKey maps client errors to their status and message key. ok is false for
// anything that is not the caller's fault.
func taskErrorKey(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound, true
	case errors.Is(err, domain.ErrEmptyTitle):
		return http.StatusBadRequest, apierrors.MsgEmptyTitle, true
	case errors.Is(err, domain.ErrReminderAfterDue):
		return http.StatusBadRequest, apierrors.MsgReminderAfterDue, true
	case errors.Is(err, domain.ErrReminderInPast):
		return http.StatusBadRequest, apierrors.MsgReminderInPast, true
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, validation.ErrInvalidTaskPayload):
		return http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, true
	}
	return 0, "", false
}

func renderTaskError(c *gin.Context, err error, failKey string) {
	lang := middleware.GetLang(c)

	if status, key, ok := taskErrorKey(err); ok {
		c.JSON(status, apierrors.CreateFieldError(status, key, fieldFor(err), lang))
		return
	}

	zap.L().Error("task request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("message_id", failKey),
		zap.Error(err),
	)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
	)
}

func fieldFor(err error) string {
	if field := validation.FieldOf(err); field != "" {
		return field
	}
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		return "title"
	case errors.Is(err, domain.ErrReminderAfterDue), errors.Is(err, domain.ErrReminderInPast):
		return "reminder_time"
	case errors.Is(err, domain.ErrInvalidDate):
		return "work_date"
	}
	return ""
}
