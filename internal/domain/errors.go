package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Доменные ошибки
var (
	// ErrValidationFailed возвращается при отсутствии или некорректности полей запроса
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidMemberID возвращается когда часть ID участников не найдена среди пользователей
	ErrInvalidMemberID = errors.New("some member ids were not found")

	// ErrDoubleSubmission возвращается когда участник уже состоит в другой активной группе
	ErrDoubleSubmission = errors.New("members already registered in another team")

	// ErrInvalidComposition возвращается когда состав команды нарушает правило
	ErrInvalidComposition = errors.New("team composition does not satisfy rules")

	// ErrMalformedRule возвращается когда правило невозможно вычислить
	ErrMalformedRule = errors.New("malformed composition rule")

	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrGroupNotFound возвращается когда группа не найдена
	ErrGroupNotFound = errors.New("group not found")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden возвращается когда роли недостаточно для операции
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailExists возвращается при регистрации с уже занятым email
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidRole возвращается при регистрации с неизвестной ролью
	ErrInvalidRole = errors.New("invalid role")

	// ErrPersistence возвращается при ошибке записи в хранилище
	ErrPersistence = errors.New("persistence failure")
)

// ErrorCode представляет машиночитаемый код ошибки API
type ErrorCode string

// Коды ошибок API
const (
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeDoubleSubmission   ErrorCode = "DOUBLE_SUBMISSION"
	CodeInvalidMemberID    ErrorCode = "INVALID_MEMBER_ID"
	CodeInvalidComposition ErrorCode = "INVALID_COMPOSITION"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailExists        ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeInvalidRole        ErrorCode = "INVALID_ROLE"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeInternal           ErrorCode = "INTERNAL_SERVER_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return CodeValidationFailed
	case errors.Is(err, ErrDoubleSubmission):
		return CodeDoubleSubmission
	case errors.Is(err, ErrInvalidMemberID):
		return CodeInvalidMemberID
	case errors.Is(err, ErrInvalidComposition):
		return CodeInvalidComposition
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrEmailExists):
		return CodeEmailExists
	case errors.Is(err, ErrInvalidRole):
		return CodeInvalidRole
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrGroupNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// ValidationError содержит ошибки по отдельным полям запроса
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError создает ValidationError
func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// DoubleSubmissionError перечисляет всех кандидатов, уже занятых в активных группах
type DoubleSubmissionError struct {
	UserIDs []string
}

func (e *DoubleSubmissionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDoubleSubmission, strings.Join(e.UserIDs, ", "))
}

func (e *DoubleSubmissionError) Unwrap() error { return ErrDoubleSubmission }

// UnknownMemberError перечисляет ID кандидатов, отсутствующих среди пользователей
type UnknownMemberError struct {
	UserIDs []string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidMemberID, strings.Join(e.UserIDs, ", "))
}

func (e *UnknownMemberError) Unwrap() error { return ErrInvalidMemberID }

// CompositionViolationError описывает первое нарушенное правило
type CompositionViolationError struct {
	Rule        Rule
	ActualCount int
}

func (e *CompositionViolationError) Error() string {
	return fmt.Sprintf("team composition does not satisfy rule: %s (actual %d)", e.Rule.Describe(), e.ActualCount)
}

func (e *CompositionViolationError) Unwrap() error { return ErrInvalidComposition }

// MalformedRuleError возвращается для правила с нечисловым значением или неизвестным оператором
type MalformedRuleError struct {
	Rule   Rule
	Reason string
}

func (e *MalformedRuleError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedRule, e.Rule.Describe(), e.Reason)
}

func (e *MalformedRuleError) Unwrap() error { return ErrMalformedRule }
