package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/moizrehman/portfolio-api/internal/domain"
)

type OTPRepository struct {
	db *sqlx.DB
}

func NewOTPRepo(db *sqlx.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Upsert(ctx context.Context, record *domain.OTPRecord) error {
	const query = `
        INSERT INTO contact_otps (email, code, name, message, file_name, created_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (email) DO UPDATE SET
            code       = EXCLUDED.code,
            name       = EXCLUDED.name,
            message    = EXCLUDED.message,
            file_name  = EXCLUDED.file_name,
            created_at = EXCLUDED.created_at,
            expires_at = EXCLUDED.expires_at
    `
	_, err := r.db.ExecContext(ctx, query,
		record.Email, record.Code, record.Name, record.Message,
		record.FileName, record.CreatedAt, record.ExpiresAt)
	return err
}

func (r *OTPRepository) FindByEmail(ctx context.Context, email string) (*domain.OTPRecord, error) {
	const query = `
        SELECT email, code, name, message, file_name, created_at, expires_at
        FROM contact_otps
        WHERE email = $1
    `
	var record domain.OTPRecord
	if err := r.db.GetContext(ctx, &record, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	const query = `DELETE FROM contact_otps WHERE email = $1`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}
