package apierrors

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorInterface(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_PARAMETER", "bad position")
	assert.Equal(t, "bad position", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestHandleErrorRendersAPIError(t *testing.T) {
	handler := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/board", nil)

	handler.HandleError(w, r, NotFoundError("position DST"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["error_code"])
	assert.Equal(t, "position DST not found", body["message"])
	assert.Equal(t, "position DST", body["details"])
}

func TestHandleErrorMasksUnknownErrors(t *testing.T) {
	handler := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/board", nil)

	handler.HandleError(w, r, errors.New("sensitive internals"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "sensitive internals")
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestHandleErrorNil(t *testing.T) {
	handler := NewErrorHandler(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/board", nil)

	handler.HandleError(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
