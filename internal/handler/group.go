package handler

import (
	"net/http"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/middleware"
	"github.com/aidar/capstone-api/internal/service"
)

// GroupHandler обрабатывает эндпоинты команд для студентов
type GroupHandler struct {
	registrationService *service.RegistrationService
	ruleService         *service.RuleService
	contentService      *service.ContentService
}

// NewGroupHandler создает новый GroupHandler
func NewGroupHandler(
	registrationService *service.RegistrationService,
	ruleService *service.RuleService,
	contentService *service.ContentService,
) *GroupHandler {
	return &GroupHandler{
		registrationService: registrationService,
		ruleService:         ruleService,
		contentService:      contentService,
	}
}

// RegisterTeamRequest представляет тело запроса на регистрацию команды
type RegisterTeamRequest struct {
	GroupName string   `json:"group_name"`
	MemberIDs []string `json:"member_ids"`
}

// UploadDocRequest представляет тело запроса на загрузку документа
type UploadDocRequest struct {
	GroupID string `json:"group_id"`
	URL     string `json:"url"`
}

// UploadDocResponse представляет данные ответа на загрузку документа
type UploadDocResponse struct {
	DocID string `json:"doc_id"`
}

// RegisterTeam обрабатывает POST /api/group/register
func (h *GroupHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req RegisterTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "group name and member list are required", nil)
		return
	}

	result, err := h.registrationService.RegisterTeam(r.Context(), principal, req.GroupName, req.MemberIDs)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, "team registration submitted and awaiting validation", result)
}

// ListRules обрабатывает GET /api/group/rules
func (h *GroupHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleService.ListActive(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "group rules retrieved", rules)
}

// UploadDoc обрабатывает POST /api/group/docs
func (h *GroupHandler) UploadDoc(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req UploadDocRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "group_id and url are required", nil)
		return
	}

	doc, err := h.contentService.UploadDoc(r.Context(), principal, req.GroupID, req.URL)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, "document created", UploadDocResponse{DocID: doc.ID})
}

// requirePrincipal извлекает Principal, установленный AuthMiddleware
func requirePrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "authentication required", nil)
		return domain.Principal{}, false
	}
	return principal, true
}
