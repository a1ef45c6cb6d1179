package domain

import "time"

// GroupStatus представляет статус проектной группы
type GroupStatus string

// Возможные статусы группы
const (
	StatusDraft             GroupStatus = "draft"              // Создана администратором
	StatusPendingValidation GroupStatus = "pending_validation" // Зарегистрирована студентами, ждет проверки
	StatusAccepted          GroupStatus = "accepted"
	StatusRejected          GroupStatus = "rejected" // Участники освобождаются для повторной регистрации
	StatusInProgress        GroupStatus = "in_progress"
)

// IsValid проверяет, что статус входит в список допустимых
func (s GroupStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingValidation, StatusAccepted, StatusRejected, StatusInProgress:
		return true
	}
	return false
}

// Group представляет проектную группу (команду)
type Group struct {
	ID             string      `json:"id"`
	GroupName      string      `json:"group_name"`
	BatchID        string      `json:"batch_id,omitempty"`
	Members        []string    `json:"members,omitempty"` // ID пользователей в порядке добавления
	CreatorUserRef string      `json:"creator_user_ref"`
	Status         GroupStatus `json:"status"`
	CreatedAt      *time.Time  `json:"created_at,omitempty"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}

// IsActive возвращает true если группа удерживает своих участников (статус не rejected)
func (g *Group) IsActive() bool {
	return g.Status != StatusRejected
}

// HasMember проверяет, состоит ли пользователь в группе
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// GroupSummary представляет группу в списке для администратора
type GroupSummary struct {
	ID          string      `json:"id"`
	GroupName   string      `json:"group_name"`
	BatchID     string      `json:"batch_id,omitempty"`
	Status      GroupStatus `json:"status"`
	Members     []string    `json:"members"`
	CreatorName string      `json:"creator_name"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
}
