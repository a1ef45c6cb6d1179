package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Envelope представляет общий формат ответа API
type Envelope struct {
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    Meta         `json:"meta"`
}

// Meta содержит служебные данные ответа
type Meta struct {
	Timestamp string `json:"timestamp"`
}

// RespondWithJSON отправляет успешный ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, message string, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, Envelope{
		Message: message,
		Data:    data,
		Meta:    newMeta(),
	})
}

// decodeJSON декодирует тело запроса, пустое тело не является ошибкой
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func newMeta() Meta {
	return Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)}
}
