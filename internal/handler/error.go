package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/capstone-api/internal/domain"
)

// ErrorDetail содержит код ошибки и, при наличии, ошибки по полям
type ErrorDetail struct {
	Code   string      `json:"code"`
	Fields interface{} `json:"fields,omitempty"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string, fields interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, Envelope{
		Message: message,
		Error: &ErrorDetail{
			Code:   string(code),
			Fields: fields,
		},
		Meta: newMeta(),
	})
}

// statusByCode задает HTTP статус для каждого кода ошибки
var statusByCode = map[domain.ErrorCode]int{
	domain.CodeValidationFailed:   http.StatusBadRequest,
	domain.CodeDoubleSubmission:   http.StatusBadRequest,
	domain.CodeInvalidMemberID:    http.StatusBadRequest,
	domain.CodeInvalidComposition: http.StatusBadRequest,
	domain.CodeInvalidRole:        http.StatusBadRequest,
	domain.CodeInvalidCredentials: http.StatusUnauthorized,
	domain.CodeUnauthorized:       http.StatusUnauthorized,
	domain.CodeForbidden:          http.StatusForbidden,
	domain.CodeNotFound:           http.StatusNotFound,
	domain.CodeEmailExists:        http.StatusConflict,
	domain.CodeInternal:           http.StatusInternalServerError,
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	var (
		validationErr  *domain.ValidationError
		doubleErr      *domain.DoubleSubmissionError
		unknownErr     *domain.UnknownMemberError
		compositionErr *domain.CompositionViolationError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, r, status, code, validationErr.Message, validationErr.Fields)
	case errors.As(err, &doubleErr):
		RespondWithError(w, r, status, code, "some members are already registered in another valid team",
			map[string][]string{"doubleUserIds": doubleErr.UserIDs})
	case errors.As(err, &unknownErr):
		RespondWithError(w, r, status, code, "some member ids were not found",
			map[string][]string{"unknownUserIds": unknownErr.UserIDs})
	case errors.As(err, &compositionErr):
		RespondWithError(w, r, status, code,
			"team composition does not satisfy rule: "+compositionErr.Rule.Describe(), nil)
	case code == domain.CodeInternal:
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		RespondWithError(w, r, status, code, "internal server error", nil)
	default:
		RespondWithError(w, r, status, code, err.Error(), nil)
	}
}
