package domain

// Principal представляет аутентифицированного пользователя запроса
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin возвращает true для администратора
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
