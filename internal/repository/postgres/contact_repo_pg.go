package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepo(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	const query = `
        INSERT INTO contact_message (name, email, message)
        VALUES ($1, lower($2), $3)
        RETURNING id, name, email, message, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, name, email, message)
	var msg domain.ContactMessage
	if err := row.StructScan(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
