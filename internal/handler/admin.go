package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/service"
)

// AdminHandler обрабатывает административные эндпоинты групп и правил
type AdminHandler struct {
	groupService *service.GroupService
	ruleService  *service.RuleService
}

// NewAdminHandler создает новый AdminHandler
func NewAdminHandler(groupService *service.GroupService, ruleService *service.RuleService) *AdminHandler {
	return &AdminHandler{
		groupService: groupService,
		ruleService:  ruleService,
	}
}

// CreateGroupRequest представляет тело запроса на создание группы
type CreateGroupRequest struct {
	GroupName string `json:"group_name"`
	BatchID   string `json:"batch_id"`
}

// UpdateGroupRequest представляет тело запроса на изменение группы
type UpdateGroupRequest struct {
	GroupName string             `json:"group_name"`
	BatchID   string             `json:"batch_id"`
	Status    domain.GroupStatus `json:"status"`
}

// ValidateGroupRequest представляет решение администратора по команде
type ValidateGroupRequest struct {
	Status domain.GroupStatus `json:"status"`
}

// SetRulesRequest представляет тело запроса на установку правил
type SetRulesRequest struct {
	BatchID string        `json:"batch_id"`
	Rules   []domain.Rule `json:"rules"`
}

// CreateGroup обрабатывает POST /api/admin/groups
func (h *AdminHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "invalid request body", nil)
		return
	}

	group, err := h.groupService.Create(r.Context(), principal, req.GroupName, req.BatchID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, "group created", group)
}

// UpdateGroup обрабатывает PUT /api/admin/groups/{groupId}
func (h *AdminHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	var req UpdateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "invalid request body", nil)
		return
	}

	group, err := h.groupService.Update(r.Context(), groupID, service.GroupPatch{
		GroupName: req.GroupName,
		BatchID:   req.BatchID,
		Status:    req.Status,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "group "+groupID+" updated", group)
}

// ValidateGroup обрабатывает POST /api/admin/groups/{groupId}/validate
func (h *AdminHandler) ValidateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	var req ValidateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "invalid request body", nil)
		return
	}

	group, err := h.groupService.Validate(r.Context(), groupID, req.Status)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "group "+groupID+" marked as "+string(group.Status), group)
}

// StartProject обрабатывает PUT /api/admin/project/{groupId}
func (h *AdminHandler) StartProject(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	group, err := h.groupService.StartProject(r.Context(), groupID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "project status for group "+groupID+" changed to 'in_progress'", group)
}

// ListGroups обрабатывает GET /api/admin/groups
func (h *AdminHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "groups retrieved", groups)
}

// SetRules обрабатывает POST /api/admin/rules
func (h *AdminHandler) SetRules(w http.ResponseWriter, r *http.Request) {
	var req SetRulesRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidationFailed, "invalid request body", nil)
		return
	}

	rules, err := h.ruleService.SetRules(r.Context(), req.BatchID, req.Rules)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, "group rules saved", rules)
}
