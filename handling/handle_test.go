package handling

import (
	"encoding/json"
	"errors"
	"fmt"
	"lojastreet_server/lib"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

func TestHandleServiceError_Status(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", lib.NewValidationError("price", "must be greater than or equal to 0"), http.StatusBadRequest},
		{"not found", fmt.Errorf("lookup: %w", lib.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: duplicate", lib.ErrConflict), http.StatusConflict},
		{"credentials", lib.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token", lib.ErrInvalidToken, http.StatusUnauthorized},
		{"expired", lib.ErrExpiredToken, http.StatusUnauthorized},
		{"provider not configured", lib.ErrPaymentNotConfigured, http.StatusServiceUnavailable},
		{"provider", fmt.Errorf("%w: 400", lib.ErrPaymentProvider), http.StatusInternalServerError},
		{"store", fmt.Errorf("%w: connection reset", lib.ErrStore), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			assert.NoError(t, HandleServiceError(w, newTestLogger(), tc.err, "test"))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestHandleServiceError_ValidationCarriesFields(t *testing.T) {
	w := httptest.NewRecorder()
	HandleServiceError(w, newTestLogger(), lib.NewValidationError("discountPrice", "must be lower than price"), "test")

	var body struct {
		Data []lib.FieldError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "discountPrice", body.Data[0].Field)
	assert.Equal(t, "must be lower than price", body.Data[0].Message)
}

func TestHandleServiceError_StoreFailureIsOpaque(t *testing.T) {
	w := httptest.NewRecorder()
	HandleServiceError(w, newTestLogger(), fmt.Errorf("%w: password authentication failed for user postgres", lib.ErrStore), "test")

	assert.NotContains(t, w.Body.String(), "postgres")
}

func TestHandleError_WritesInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()
	err := HandleError(errors.New("boom"), "test", newTestLogger(), w)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
