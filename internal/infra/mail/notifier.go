package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PaintToxic22/sistema-rastreo/config"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
)

// statusLabels maps wire status values to the wording used in emails.
var statusLabels = map[string]string{
	"registrada":  "Registrada",
	"en_transito": "En tránsito",
	"en_reparto":  "En reparto",
	"entregada":   "Entregada",
	"devuelta":    "Devuelta",
	"pendiente":   "Pendiente",
	"confirmada":  "Confirmada",
	"cancelada":   "Cancelada",
}

func kindLabel(kind entity.TrackableKind) string {
	if kind == entity.KindFreightOrder {
		return "orden de flete"
	}

	return "encomienda"
}

// smtpNotifier renders the Spanish templates and enqueues them on the
// dispatcher. It never blocks on SMTP.
type smtpNotifier struct {
	dispatcher  *Dispatcher
	trackingURL string
}

// NewNotifier builds the production notifier. When SMTP is not configured it
// degrades to a logging no-op so environments without a relay still work.
func NewNotifier(cfg *config.Config, logger *slog.Logger) service.Notifier {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		logger.Info("SMTP not configured, email notifications disabled")

		return &logNotifier{logger: logger}
	}

	return &smtpNotifier{
		dispatcher:  NewDispatcher(cfg.SMTP, logger),
		trackingURL: cfg.SMTP.TrackingURL,
	}
}

// Dispatcher exposes the queue worker so the application lifecycle can start
// and stop it. Nil for the logging no-op.
func DispatcherOf(n service.Notifier) *Dispatcher {
	if s, ok := n.(*smtpNotifier); ok {
		return s.dispatcher
	}

	return nil
}

func (n *smtpNotifier) NotifyRegistered(_ context.Context, to, code string, kind entity.TrackableKind) error {
	subject := fmt.Sprintf("Tu %s %s fue registrada", kindLabel(kind), code)
	body := fmt.Sprintf(
		"<h2>LonquiExpress</h2>"+
			"<p>Hemos registrado tu %s con el código <strong>%s</strong>.</p>"+
			"<p>Puedes seguir su estado en cualquier momento:</p>"+
			"<p><a href=\"%s/%s\">Seguir mi envío</a></p>",
		kindLabel(kind), code, n.trackingURL, code)

	return n.dispatcher.Enqueue(message{To: to, Subject: subject, Body: body})
}

func (n *smtpNotifier) NotifyStatusChange(_ context.Context, to, code, status string, kind entity.TrackableKind) error {
	label := statusLabels[status]
	if label == "" {
		label = status
	}

	subject := fmt.Sprintf("Tu %s %s cambió de estado: %s", kindLabel(kind), code, label)
	body := fmt.Sprintf(
		"<h2>LonquiExpress</h2>"+
			"<p>Tu %s <strong>%s</strong> ahora está: <strong>%s</strong>.</p>"+
			"<p><a href=\"%s/%s\">Ver el detalle del seguimiento</a></p>",
		kindLabel(kind), code, label, n.trackingURL, code)

	return n.dispatcher.Enqueue(message{To: to, Subject: subject, Body: body})
}

// logNotifier records notification intents in the log and drops them.
type logNotifier struct {
	logger *slog.Logger
}

func (n *logNotifier) NotifyRegistered(_ context.Context, to, code string, kind entity.TrackableKind) error {
	n.logger.Info("Notification skipped (SMTP disabled)",
		slog.String("event", "registered"), slog.String("to", to), slog.String("code", code), slog.String("kind", string(kind)))

	return nil
}

func (n *logNotifier) NotifyStatusChange(_ context.Context, to, code, status string, kind entity.TrackableKind) error {
	n.logger.Info("Notification skipped (SMTP disabled)",
		slog.String("event", "status"), slog.String("to", to), slog.String("code", code), slog.String("status", status))

	return nil
}
