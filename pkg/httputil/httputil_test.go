package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessdesk/pkg/domerrors"
)

func TestWriteError(t *testing.T) {
	t.Run("client errors carry the description", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, domerrors.New(domerrors.CodeNotFound, "user doesn't exist"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"not_found"`)
		assert.Contains(t, rr.Body.String(), "user doesn't exist")
	})

	t.Run("server errors omit the description", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, domerrors.Wrap(errors.New("pg: connection refused"), domerrors.CodeAuditFailure, "cannot create action log"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"audit_failure"`)
		assert.NotContains(t, rr.Body.String(), "connection refused")
		assert.NotContains(t, rr.Body.String(), "error_description")
	})

	t.Run("unclassified errors map to internal", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"internal_error"`)
		assert.NotContains(t, rr.Body.String(), "boom")
	})
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"jdoe"}`))
		rr := httptest.NewRecorder()

		got, ok := Decode[payload](rr, req)
		require.True(t, ok)
		assert.Equal(t, "jdoe", got.Name)
	})

	t.Run("malformed body writes bad_request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		rr := httptest.NewRecorder()

		_, ok := Decode[payload](rr, req)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"bad_request"`)
	})
}
