package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type ResetTokenRepository struct {
	db *sqlx.DB
}

func NewResetTokenRepo(db *sqlx.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.ResetToken, error) {
	const query = `
        INSERT INTO reset_token (email, token_hash, expires_at)
        VALUES (lower($1), $2, $3)
        RETURNING id, email, token_hash, expires_at, consumed_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, email, tokenHash, expiresAt)
	var token domain.ResetToken
	if err := row.StructScan(&token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *ResetTokenRepository) InvalidateActive(ctx context.Context, email string) error {
	const query = `
        UPDATE reset_token
        SET consumed_at = NOW()
        WHERE email = lower($1) AND consumed_at IS NULL
    `
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}

func (r *ResetTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.ResetToken, error) {
	const query = `
        SELECT id, email, token_hash, expires_at, consumed_at, created_at
        FROM reset_token
        WHERE token_hash = $1
    `
	var token domain.ResetToken
	if err := r.db.GetContext(ctx, &token, query, tokenHash); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *ResetTokenRepository) Consume(ctx context.Context, id int64) (bool, error) {
	const query = `
        UPDATE reset_token
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
