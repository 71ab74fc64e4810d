package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		limit       int64
		body        string
		wantTooBig  bool
		wantReadLen int
	}{
		{
			name:        "body under limit",
			limit:       16,
			body:        `{"a":"b"}`,
			wantReadLen: 9,
		},
		{
			name:        "body at limit",
			limit:       9,
			body:        `{"a":"b"}`,
			wantReadLen: 9,
		},
		{
			name:       "body over limit",
			limit:      8,
			body:       strings.Repeat("x", 64),
			wantTooBig: true,
		},
		{
			name:        "limit disabled",
			limit:       0,
			body:        strings.Repeat("x", 64),
			wantReadLen: 64,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				readErr error
				readLen int
			)
			h := MaxBytes(tt.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				readErr = err
				readLen = len(b)
			}))

			h.ServeHTTP(httptest.NewRecorder(),
				httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body)))

			if tt.wantTooBig {
				var tooLarge *http.MaxBytesError
				assert.True(t, errors.As(readErr, &tooLarge))
				assert.Equal(t, tt.limit, tooLarge.Limit)
				return
			}
			assert.NoError(t, readErr)
			assert.Equal(t, tt.wantReadLen, readLen)
		})
	}
}
