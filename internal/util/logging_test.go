package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError_Wraps(t *testing.T) {
	base := errors.New("boom")
	err := LogError("[Test] ошибка", base)

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "[Test] ошибка: boom", err.Error())
}

func TestHandleErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleErrorDetail(rec, "invalid-permission", http.StatusBadRequest, map[string]any{"field": "permission"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body["error"])
	assert.Equal(t, "invalid-permission", body["message"])
	assert.Equal(t, float64(400), body["code"])
	assert.Equal(t, "permission", body["detail"].(map[string]any)["field"])
}

func TestInitLogger_BadLevel(t *testing.T) {
	_, err := InitLogger("loud", true)
	assert.Error(t, err)
}
