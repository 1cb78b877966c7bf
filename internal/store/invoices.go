package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/resumeforge/resumeforge/internal/invoice"
)

// CreateInvoice inserts a new invoice document.
func (s *Store) CreateInvoice(ctx context.Context, doc *invoice.Document) (*invoice.Document, error) {
	doc.Normalize()
	content, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice content: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO invoices (owner_id, content)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		doc.OwnerID, content,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return doc, nil
}

// GetInvoice fetches one invoice scoped to its owner.
func (s *Store) GetInvoice(ctx context.Context, ownerID, id uuid.UUID) (*invoice.Document, error) {
	doc := &invoice.Document{}
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, content, created_at, updated_at
		 FROM invoices WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&doc.ID, &doc.OwnerID, &content, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if err := json.Unmarshal(content, &doc.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoice content: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// ListInvoices returns all of a user's invoices, most recently updated
// first.
func (s *Store) ListInvoices(ctx context.Context, ownerID uuid.UUID) ([]invoice.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, content, created_at, updated_at
		 FROM invoices WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	docs := []invoice.Document{}
	for rows.Next() {
		var doc invoice.Document
		var content []byte
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &content, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if err := json.Unmarshal(content, &doc.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invoice content: %w", err)
		}
		doc.Normalize()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return docs, nil
}

// UpdateInvoice overwrites an invoice's content as a whole.
func (s *Store) UpdateInvoice(ctx context.Context, doc *invoice.Document) (*invoice.Document, error) {
	doc.Normalize()
	content, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice content: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE invoices
		 SET content = $3, updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING created_at, updated_at`,
		doc.ID, doc.OwnerID, content,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return doc, nil
}

// DeleteInvoice removes an invoice scoped to its owner.
func (s *Store) DeleteInvoice(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM invoices WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
