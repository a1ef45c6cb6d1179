package domain

import "fmt"

// Operator представляет оператор сравнения в правиле состава команды
type Operator string

// Поддерживаемые операторы
const (
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpEqual          Operator = "=="
)

// IsValid проверяет, что оператор поддерживается
func (o Operator) IsValid() bool {
	return o == OpGreaterOrEqual || o == OpLessOrEqual || o == OpEqual
}

// Rule описывает ограничение на состав команды: количество участников,
// у которых UserAttribute равен AttributeValue, должно удовлетворять Operator Value.
type Rule struct {
	ID             string   `json:"id,omitempty"`
	BatchID        string   `json:"batch_id,omitempty"`
	UserAttribute  string   `json:"user_attribute"`
	AttributeValue string   `json:"attribute_value"`
	Operator       Operator `json:"operator"`
	Value          string   `json:"value"`              // Десятичное целое число
	IsActive       *bool    `json:"is_active,omitempty"` // Отсутствие поля означает активное правило
}

// Active возвращает true если правило участвует в проверке
func (r Rule) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// Describe возвращает человекочитаемое описание правила
func (r Rule) Describe() string {
	return fmt.Sprintf("%s must be %s %s", r.AttributeValue, r.Operator, r.Value)
}
