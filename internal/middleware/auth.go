package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/aidar/capstone-api/internal/domain"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// PrincipalKey ключ контекста для аутентифицированного пользователя
const PrincipalKey ContextKey = "principal"

// Authenticator преобразует bearer токен в Principal
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

type errorBody struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
	Meta    map[string]string `json:"meta"`
}

// AuthMiddleware создает middleware для проверки bearer токенов
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "missing authorization header")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				writeError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "invalid authorization header format")
				return
			}

			principal, err := auth.Authenticate(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrUnauthorized) {
					writeError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "invalid or expired token")
					return
				}
				writeError(w, r, http.StatusInternalServerError, domain.CodeInternal, "failed to authenticate request")
				return
			}

			// Добавляем principal в контекст
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole пропускает только пользователей с указанной ролью.
// Должен стоять после AuthMiddleware.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "authentication required")
				return
			}
			if principal.Role != role {
				writeError(w, r, http.StatusForbidden, domain.CodeForbidden, "access denied for role "+string(principal.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal добавляет Principal в контекст
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// PrincipalFromContext извлекает Principal из контекста
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(domain.Principal)
	return principal, ok
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code domain.ErrorCode, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorBody{
		Message: message,
		Error:   map[string]string{"code": string(code)},
		Meta:    map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)},
	})
}
