package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_UnmarshalJSON_CollectsAttributes(t *testing.T) {
	raw := `{
		"id": "u1",
		"email": "damar@kampus.com",
		"password": "12345678",
		"full_name": "Damar",
		"role": "student",
		"learning_path": "Machine Learning",
		"university": "UI",
		"semester": 5
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "damar@kampus.com", u.Email)
	assert.Equal(t, "12345678", u.Password)
	assert.Equal(t, RoleStudent, u.Role)
	assert.Equal(t, map[string]string{
		"learning_path": "Machine Learning",
		"university":    "UI",
	}, u.Attributes, "нестроковые поля не попадают в атрибуты")
}

func TestUser_MarshalJSON_FlattensAttributes(t *testing.T) {
	u := User{
		ID:       "u1",
		Email:    "a@b.c",
		FullName: "A",
		Role:     RoleStudent,
		Attributes: map[string]string{
			"learning_path": "Machine Learning",
			"id":            "spoofed",
		},
	}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "u1", out["id"], "атрибут не может перезаписать фиксированное поле")
	assert.Equal(t, "Machine Learning", out["learning_path"])
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "created_at")
}

func TestUser_Attribute(t *testing.T) {
	u := &User{
		Email:      "a@b.c",
		FullName:   "A",
		Role:       RoleAdmin,
		Attributes: map[string]string{"learning_path": "Cloud"},
	}

	tests := []struct {
		name   string
		attr   string
		want   string
		wantOK bool
	}{
		{"custom attribute", "learning_path", "Cloud", true},
		{"email", "email", "a@b.c", true},
		{"full name", "full_name", "A", true},
		{"role", "role", "admin", true},
		{"missing", "university", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := u.Attribute(tt.attr)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_Public(t *testing.T) {
	u := &User{ID: "u1", Password: "secret", Attributes: map[string]string{"k": "v"}}

	pub := u.Public()
	pub.Attributes["k"] = "changed"

	assert.Empty(t, pub.Password)
	assert.Equal(t, "secret", u.Password)
	assert.Equal(t, "v", u.Attributes["k"], "копия не разделяет карту атрибутов")
}
