package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/docrequest-service/internal/config"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

func TestSendPostsMessageToEndpoint(t *testing.T) {
	var received sendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewHTTPMailer(config.NotificationConfig{
		EndpointURL: srv.URL,
		APIKey:      "token-123",
		SenderEmail: "noreply@example.com",
		SenderAlias: "Solicitudes",
	})

	err := m.Send(context.Background(), Message{
		Subject:   "Nueva Solicitud de Documentación - Factura (Ref: PED-2024-001)",
		HTMLBody:  "<p>hola</p>",
		Recipient: "contabilidadutrerana@gmail.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-123", received.DeploymentToken)
	assert.Equal(t, "contabilidadutrerana@gmail.com", received.RecipientEmail)
	assert.Equal(t, "noreply@example.com", received.SenderEmail)
	assert.True(t, received.IsHTML)
}

func TestSendMapsProviderErrorToUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewHTTPMailer(config.NotificationConfig{EndpointURL: srv.URL})

	err := m.Send(context.Background(), Message{Recipient: "x@example.com"})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUpstreamError, apperrors.ToDomainError(err).Code)
}

func TestSendFailsWithoutEndpoint(t *testing.T) {
	m := NewHTTPMailer(config.NotificationConfig{})

	err := m.Send(context.Background(), Message{Recipient: "x@example.com"})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUpstreamError, apperrors.ToDomainError(err).Code)
}
