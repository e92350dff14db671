package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type OTPRepository struct {
	db *sqlx.DB
}

func NewOTPRepo(db *sqlx.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(ctx context.Context, email string, purpose domain.OTPPurpose, codeHash, codeSalt, payload []byte, expiresAt time.Time) (*domain.OTPCode, error) {
	const query = `
        INSERT INTO otp_code (email, purpose, code_hash, code_salt, payload, expires_at)
        VALUES (lower($1), $2, $3, $4, $5, $6)
        RETURNING id, email, purpose, code_hash, code_salt, payload, expires_at, consumed_at, attempts, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, email, purpose, codeHash, codeSalt, payload, expiresAt)
	var code domain.OTPCode
	if err := row.StructScan(&code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *OTPRepository) InvalidateActive(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	const query = `
        UPDATE otp_code
        SET consumed_at = NOW()
        WHERE email = lower($1) AND purpose = $2 AND consumed_at IS NULL
    `
	_, err := r.db.ExecContext(ctx, query, email, purpose)
	return err
}

func (r *OTPRepository) FindLatest(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPCode, error) {
	const query = `
        SELECT id, email, purpose, code_hash, code_salt, payload, expires_at, consumed_at, attempts, created_at
        FROM otp_code
        WHERE email = lower($1) AND purpose = $2 AND consumed_at IS NULL
        ORDER BY created_at DESC
        LIMIT 1
    `
	var code domain.OTPCode
	if err := r.db.GetContext(ctx, &code, query, email, purpose); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	const query = `
        UPDATE otp_code
        SET attempts = attempts + 1
        WHERE id = $1
        RETURNING attempts
    `
	var attempts int
	if err := r.db.GetContext(ctx, &attempts, query, id); err != nil {
		return 0, err
	}
	return attempts, nil
}

// Consume relies on the conditional WHERE to stay exactly-once: concurrent
// verifies race on the same row and only one UPDATE reports an affected row.
func (r *OTPRepository) Consume(ctx context.Context, id int64) (bool, error) {
	const query = `
        UPDATE otp_code
        SET consumed_at = NOW()
        WHERE id = $1 AND consumed_at IS NULL
    `
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
