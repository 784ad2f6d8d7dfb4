package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateInstitution inserts a new institution and returns its ID
func (db *DB) CreateInstitution(ctx context.Context, inst *Institution) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO institutions (name, city, type, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		inst.Name, inst.City, inst.Type, inst.Description,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create institution: %w", err)
	}
	return id, nil
}

// GetInstitution retrieves an institution by ID, or nil when absent
func (db *DB) GetInstitution(ctx context.Context, institutionID uuid.UUID) (*Institution, error) {
	var inst Institution
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, city, type, description, created_at
		 FROM institutions WHERE id = $1`,
		institutionID,
	).Scan(&inst.ID, &inst.Name, &inst.City, &inst.Type, &inst.Description, &inst.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get institution: %w", err)
	}
	return &inst, nil
}

// ListInstitutions retrieves institutions, optionally filtered by city or type
func (db *DB) ListInstitutions(ctx context.Context, city, institutionType string) ([]Institution, error) {
	query := `SELECT id, name, city, type, description, created_at
		FROM institutions WHERE 1=1`
	args := []any{}
	argNum := 1

	if city != "" {
		query += fmt.Sprintf(" AND city ILIKE $%d", argNum)
		args = append(args, city)
		argNum++
	}
	if institutionType != "" {
		query += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, institutionType)
	}

	query += " ORDER BY name ASC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	var institutions []Institution
	for rows.Next() {
		var inst Institution
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.City, &inst.Type, &inst.Description, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan institution: %w", err)
		}
		institutions = append(institutions, inst)
	}
	return institutions, nil
}

// UpdateInstitution replaces an institution's mutable attributes
func (db *DB) UpdateInstitution(ctx context.Context, inst *Institution) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE institutions SET name = $1, city = $2, type = $3, description = $4
		 WHERE id = $5`,
		inst.Name, inst.City, inst.Type, inst.Description, inst.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update institution: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("institution not found: %s", inst.ID)
	}
	return nil
}

// DeleteInstitution deletes an institution and its field links (via cascade)
func (db *DB) DeleteInstitution(ctx context.Context, institutionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, institutionID)
	if err != nil {
		return fmt.Errorf("failed to delete institution: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("institution not found: %s", institutionID)
	}
	return nil
}
