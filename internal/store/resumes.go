package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/resumeforge/resumeforge/internal/resume"
)

// CreateResume inserts a new resume document. The database assigns the ID
// and both timestamps.
func (s *Store) CreateResume(ctx context.Context, doc *resume.Document) (*resume.Document, error) {
	doc.Normalize()
	content, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume content: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO resumes (owner_id, title, template_id, theme_id, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		doc.OwnerID, doc.Title, doc.TemplateID, doc.ThemeID, content,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return doc, nil
}

// GetResume fetches one resume scoped to its owner. Another user's document
// is indistinguishable from a missing one.
func (s *Store) GetResume(ctx context.Context, ownerID, id uuid.UUID) (*resume.Document, error) {
	doc := &resume.Document{}
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, template_id, theme_id, content, created_at, updated_at
		 FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.TemplateID, &doc.ThemeID, &content, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if err := json.Unmarshal(content, &doc.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume content: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// ListResumes returns all of a user's resumes, most recently updated first.
func (s *Store) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]resume.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, title, template_id, theme_id, content, created_at, updated_at
		 FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	docs := []resume.Document{}
	for rows.Next() {
		var doc resume.Document
		var content []byte
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.TemplateID, &doc.ThemeID, &content, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if err := json.Unmarshal(content, &doc.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume content: %w", err)
		}
		doc.Normalize()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resumes: %w", err)
	}
	return docs, nil
}

// UpdateResume overwrites a resume's title, template, theme, and content as
// a whole. Last write wins; there is no merge.
func (s *Store) UpdateResume(ctx context.Context, doc *resume.Document) (*resume.Document, error) {
	doc.Normalize()
	content, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume content: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET title = $3, template_id = $4, theme_id = $5, content = $6, updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING created_at, updated_at`,
		doc.ID, doc.OwnerID, doc.Title, doc.TemplateID, doc.ThemeID, content,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return doc, nil
}

// DeleteResume removes a resume scoped to its owner.
func (s *Store) DeleteResume(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
