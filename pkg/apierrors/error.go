package apierrors

import (
	"fmt"
	"taskplanner/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code and message.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// JsonMessage is the body of responses that only confirm an action.
type JsonMessage struct {
	Message string `json:"message"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	if e.ErrDetails.Field != "" {
		return fmt.Sprintf("Code: %d, Message: %s, Field: %s", e.ErrDetails.Code, e.ErrDetails.Message, e.ErrDetails.Field)
	}
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	message := GetTransErrorMsg(msgKey, lang)
	return JsonErr{ErrDetails: Err{Code: code, Message: message}}
}

// CreateFieldError is CreateError pointing at the offending payload field.
func CreateFieldError(code int, msgKey, field, lang string) JsonErr {
	e := CreateError(code, msgKey, lang)
	e.ErrDetails.Field = field
	return e
}

// CreateMessage generates a translated confirmation body.
func CreateMessage(msgKey string, lang string) JsonMessage {
	return JsonMessage{Message: GetTransErrorMsg(msgKey, lang)}
}

// GetTransErrorMsg retrieves the translated message.
func GetTransErrorMsg(msgKey string, lang string) string {
	if translator.Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(translator.Translator, lang, "en")
	m := i18n.LocalizeConfig{}
	m.MessageID = msgKey
	msg, err := l.Localize(&m)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
