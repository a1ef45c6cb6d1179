package handler

import (
	"net/http"

	"github.com/aidar/capstone-api/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователя
type UserHandler struct {
	userService    *service.UserService
	contentService *service.ContentService
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService, contentService *service.ContentService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		contentService: contentService,
	}
}

// Profile обрабатывает GET /api/user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	profile, err := h.userService.Profile(r.Context(), principal)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "user profile retrieved", profile)
}

// Docs обрабатывает GET /api/user/docs
func (h *UserHandler) Docs(w http.ResponseWriter, r *http.Request) {
	docs, err := h.contentService.Docs(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "documents retrieved", docs)
}

// Timeline обрабатывает GET /api/user/timeline
func (h *UserHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.contentService.Timeline(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "project timeline retrieved", timeline)
}

// UseCases обрабатывает GET /api/user/use-cases
func (h *UserHandler) UseCases(w http.ResponseWriter, r *http.Request) {
	useCases, err := h.contentService.UseCases(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "use cases retrieved", useCases)
}
