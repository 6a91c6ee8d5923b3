package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/docrequest-service/internal/config"
	"github.com/spec-kit/docrequest-service/internal/events"
	"github.com/spec-kit/docrequest-service/internal/mailer"
)

// NotificationService emails the operations mailbox when a request is created.
// Delivery is best effort: failures are logged and swallowed so the submission
// itself never fails on a notification.
type NotificationService struct {
	dispatcher events.Dispatcher
	mail       mailer.Mailer
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mail mailer.Mailer, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mail:       mail,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for request_created", zap.String("request_id", event.RequestID))
		return nil
	}

	msg := mailer.Message{
		Subject:   fmt.Sprintf("Nueva Solicitud de Documentación - %s (Ref: %s)", payload.Type, payload.Reference),
		HTMLBody:  composeRequestCreatedBody(payload),
		Recipient: n.cfg.RecipientEmail,
	}

	if err := n.mail.Send(ctx, msg); err != nil {
		n.logger.Error("notification email failed",
			zap.String("request_id", event.RequestID),
			zap.Error(err))
	}
	return nil
}

func composeRequestCreatedBody(p events.RequestCreatedPayload) string {
	var b strings.Builder
	b.WriteString("<h2>Nueva Solicitud de Documentación</h2>")
	writeField(&b, "Usuario", p.OwnerName)
	writeField(&b, "Email", p.OwnerEmail)
	writeField(&b, "Tipo de Documento", string(p.Type))
	writeField(&b, "Número de Referencia", p.Reference)
	writeField(&b, "Fecha", p.Date.Format("02/01/2006"))
	writeField(&b, "Descripción", p.Description)

	if len(p.AttachmentFileNames) > 0 {
		fmt.Fprintf(&b, "<p><strong>Archivos Adjuntos: %d</strong></p><ul>", len(p.AttachmentFileNames))
		for _, name := range p.AttachmentFileNames {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(name))
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
}
