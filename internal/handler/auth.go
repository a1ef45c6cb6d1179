package handler

import (
	"net/http"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest представляет тело запроса на регистрацию
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// RegisterResponse представляет данные ответа на регистрацию
type RegisterResponse struct {
	User *domain.User `json:"user"`
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "invalid request body", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "login successful", result)
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "invalid request body", nil)
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, "registration successful, please log in", RegisterResponse{User: user})
}

// Logout обрабатывает POST /api/auth/logout.
// Токены не хранятся на сервере, клиент просто удаляет свой токен.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, "logout successful, discard the token on the client", struct{}{})
}
