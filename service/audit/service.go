package audit

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the audit log interface.
type Service interface {
	Append(ctx context.Context, e model.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
