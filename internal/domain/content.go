package domain

import "time"

// Record - запись справочной коллекции (документы, таймлайн, use cases),
// которая отдается клиенту как есть
type Record map[string]any

// GroupDoc представляет документ, загруженный группой
type GroupDoc struct {
	ID         string     `json:"id"`
	GroupID    string     `json:"group_id"`
	URL        string     `json:"url"`
	UploadedBy string     `json:"uploaded_by"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// Profile представляет профиль текущего пользователя
type Profile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	University    string `json:"university"`
	LearningGroup string `json:"learning_group"`
}
