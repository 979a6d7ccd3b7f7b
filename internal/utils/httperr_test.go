package utils_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feijonts/aps-5-api/internal/utils"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			"Validation Error",
			fmt.Errorf("name is required: %w", errdefs.ErrInvalidArgument),
			http.StatusBadRequest,
			"name is required: invalid argument",
		},
		{
			"Not Found",
			fmt.Errorf("user not found: %w", errdefs.ErrNotFound),
			http.StatusNotFound,
			"user not found: not found",
		},
		{
			"Conflict Maps To 400",
			fmt.Errorf("bicycle already in use: %w", errdefs.ErrConflict),
			http.StatusBadRequest,
			"bicycle already in use: conflict",
		},
		{
			"Partial Failure Is Generic 500",
			fmt.Errorf("loan x recorded on bike but not on user: %w", errdefs.ErrUnavailable),
			http.StatusInternalServerError,
			"internal server error",
		},
		{
			"Unclassified Is Generic 500",
			errors.New("connection reset"),
			http.StatusInternalServerError,
			"internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			utils.WriteError(w, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}
