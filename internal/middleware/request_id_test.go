package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	e := echo.New()

	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, h(c))

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h(c))

		assert.Equal(t, "upstream-id", seen)
		assert.Equal(t, "upstream-id", rec.Header().Get(RequestIDHeader))
	})
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	logger := GetLogger(c)

	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info().Msg("dropped") })
}

func TestRequestID_RejectsUnsafeIncomingIDs(t *testing.T) {
	e := echo.New()
	h := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for name, incoming := range map[string]string{
		"newline":   "abc\ninjected=1",
		"space":     "abc def",
		"oversized": strings.Repeat("a", maxRequestIDLength+1),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, incoming)
			rec := httptest.NewRecorder()

			require.NoError(t, h(e.NewContext(req, rec)))

			got := rec.Header().Get(RequestIDHeader)
			assert.NotEqual(t, incoming, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
