package domain

import (
	"encoding/json"
	"time"
)

// Role представляет роль пользователя в системе
type Role string

// Возможные роли пользователя
const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// IsValid проверяет, что роль входит в список допустимых
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User представляет пользователя платформы.
// Произвольные строковые атрибуты (learning_path, university и т.п.) хранятся
// в Attributes и сериализуются на верхнем уровне JSON объекта.
type User struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Password   string            `json:"password,omitempty"`
	FullName   string            `json:"full_name"`
	Role       Role              `json:"role"`
	Attributes map[string]string `json:"-"`
	CreatedAt  *time.Time        `json:"created_at,omitempty"`
}

// userFields - поля User с фиксированной схемой
type userFields struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	FullName  string     `json:"full_name"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

var knownUserKeys = map[string]struct{}{
	"id":         {},
	"email":      {},
	"password":   {},
	"full_name":  {},
	"role":       {},
	"created_at": {},
}

// Attribute возвращает значение атрибута пользователя по имени.
// Фиксированные поля (email, full_name, role) доступны наравне с произвольными атрибутами.
func (u *User) Attribute(name string) (string, bool) {
	switch name {
	case "email":
		return u.Email, true
	case "full_name":
		return u.FullName, true
	case "role":
		return string(u.Role), true
	}
	v, ok := u.Attributes[name]
	return v, ok
}

// Public возвращает копию пользователя без пароля
func (u *User) Public() *User {
	cp := *u
	cp.Password = ""
	if u.Attributes != nil {
		cp.Attributes = make(map[string]string, len(u.Attributes))
		for k, v := range u.Attributes {
			cp.Attributes[k] = v
		}
	}
	return &cp
}

// MarshalJSON разворачивает Attributes на верхний уровень объекта
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Attributes)+len(knownUserKeys))
	for k, v := range u.Attributes {
		if _, reserved := knownUserKeys[k]; reserved {
			continue
		}
		out[k] = v
	}

	out["id"] = u.ID
	out["email"] = u.Email
	out["full_name"] = u.FullName
	out["role"] = u.Role
	if u.Password != "" {
		out["password"] = u.Password
	}
	if u.CreatedAt != nil {
		out["created_at"] = u.CreatedAt
	}

	return json.Marshal(out)
}

// UnmarshalJSON собирает все неизвестные строковые поля в Attributes.
// Нестроковые значения неизвестных полей игнорируются.
func (u *User) UnmarshalJSON(data []byte) error {
	var fields userFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	attrs := make(map[string]string)
	for k, v := range raw {
		if _, known := knownUserKeys[k]; known {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			attrs[k] = s
		}
	}

	*u = User{
		ID:         fields.ID,
		Email:      fields.Email,
		Password:   fields.Password,
		FullName:   fields.FullName,
		Role:       fields.Role,
		Attributes: attrs,
		CreatedAt:  fields.CreatedAt,
	}
	return nil
}
