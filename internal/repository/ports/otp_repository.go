package ports

import (
	"context"

	"github.com/moizrehman/portfolio-api/internal/domain"
)

// OTPRepository persists at most one pending OTP record per email address.
// FindByEmail returns (nil, nil) when no record exists.
type OTPRepository interface {
	Upsert(ctx context.Context, record *domain.OTPRecord) error
	FindByEmail(ctx context.Context, email string) (*domain.OTPRecord, error)
	DeleteByEmail(ctx context.Context, email string) error
}
