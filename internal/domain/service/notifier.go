package service

import (
	"context"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// Notifier informs a recipient by email about tracking events. It is an
// external collaborator: lifecycle operations hand it work best-effort and
// never wait on delivery nor fail because of it.
type Notifier interface {
	// NotifyRegistered tells the recipient a new shipment or order exists.
	NotifyRegistered(ctx context.Context, to, code string, kind entity.TrackableKind) error

	// NotifyStatusChange tells the recipient the record moved to a new status.
	NotifyStatusChange(ctx context.Context, to, code, status string, kind entity.TrackableKind) error
}
