package memory

import (
	"context"
	"sync"

	"github.com/moizrehman/portfolio-api/internal/domain"
)

// OTPRepository is an in-process store for pending OTP records. Records do
// not survive a restart; it exists for local development and tests where a
// database is not available. All methods are safe for concurrent use.
type OTPRepository struct {
	mu      sync.Mutex
	records map[string]domain.OTPRecord
}

func NewOTPRepo() *OTPRepository {
	return &OTPRepository{records: make(map[string]domain.OTPRecord)}
}

func (r *OTPRepository) Upsert(ctx context.Context, record *domain.OTPRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Email] = *record
	return nil
}

func (r *OTPRepository) FindByEmail(ctx context.Context, email string) (*domain.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[email]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, email)
	return nil
}
