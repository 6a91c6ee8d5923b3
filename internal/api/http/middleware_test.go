package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/docrequest-service/internal/observability"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

func newMiddlewareFixture() (*fiber.App, *observability.Metrics) {
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app, metrics
}

func decodeError(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	return errBody
}

func TestFailedRequestsMeterWithMappedStatus(t *testing.T) {
	app, metrics := newMiddlewareFixture()
	app.Get("/broken", func(*fiber.Ctx) error {
		return apperrors.NewValidationError("bad input", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/broken", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	// The failure must not be metered as a success.
	assert.Equal(t, int64(1), metrics.RequestCount("/broken", http.MethodGet, http.StatusBadRequest))
	assert.Equal(t, int64(0), metrics.RequestCount("/broken", http.MethodGet, http.StatusOK))
}

func TestUpstreamFailureRendersBadGateway(t *testing.T) {
	app, metrics := newMiddlewareFixture()
	app.Get("/storage", func(*fiber.Ctx) error {
		return apperrors.NewUpstreamError("object storage", assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/storage", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	errBody := decodeError(t, resp)
	assert.Equal(t, apperrors.CodeUpstreamError, errBody["code"])
	assert.Equal(t, int64(1), metrics.RequestCount("/storage", http.MethodGet, http.StatusBadGateway))
}

func TestPanicIsRecoveredAsInternalError(t *testing.T) {
	app, _ := newMiddlewareFixture()
	app.Get("/panic", func(*fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	errBody := decodeError(t, resp)
	assert.Equal(t, apperrors.CodeInternalError, errBody["code"])
}

func TestRequestIDAssignedAndPreserved(t *testing.T) {
	app, _ := newMiddlewareFixture()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-Id", "trace-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get("X-Request-Id"))
}
