package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const fieldColumns = `id, name, description, duration_years, career_opportunities,
	required_skills, admission_criteria, tuition_fees_min, tuition_fees_max, created_at`

func scanField(row pgx.Row) (*Field, error) {
	var f Field
	err := row.Scan(&f.ID, &f.Name, &f.Description, &f.DurationYears, &f.CareerOpportunities,
		&f.RequiredSkills, &f.AdmissionCriteria, &f.TuitionFeesMin, &f.TuitionFeesMax, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateField inserts a new field and returns its ID
func (db *DB) CreateField(ctx context.Context, field *Field) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO fields (name, description, duration_years, career_opportunities,
		 required_skills, admission_criteria, tuition_fees_min, tuition_fees_max)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		field.Name, field.Description, field.DurationYears, field.CareerOpportunities,
		field.RequiredSkills, field.AdmissionCriteria, field.TuitionFeesMin, field.TuitionFeesMax,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create field: %w", err)
	}

	if len(field.InstitutionIDs) > 0 {
		if err := db.SetFieldInstitutions(ctx, id, field.InstitutionIDs); err != nil {
			return uuid.Nil, err
		}
	}
	return id, nil
}

// GetField retrieves a field by ID with its institution links, or nil when absent
func (db *DB) GetField(ctx context.Context, fieldID uuid.UUID) (*Field, error) {
	field, err := scanField(db.pool.QueryRow(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE id = $1`, fieldID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get field: %w", err)
	}

	field.InstitutionIDs, err = db.listFieldInstitutionIDs(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return field, nil
}

// ListFields retrieves fields with optional search, filter and ordering
func (db *DB) ListFields(ctx context.Context, filters FieldFilters) ([]Field, error) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}

	query := `SELECT ` + fieldColumns + ` FROM fields WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Search != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d OR required_skills::text ILIKE $%d)`,
			argNum, argNum, argNum)
		args = append(args, "%"+filters.Search+"%")
		argNum++
	}
	if filters.DurationYears > 0 {
		query += fmt.Sprintf(" AND duration_years = $%d", argNum)
		args = append(args, filters.DurationYears)
		argNum++
	}

	switch filters.OrderBy {
	case "duration_years":
		query += " ORDER BY duration_years ASC, name ASC"
	case "tuition_fees_min":
		query += " ORDER BY tuition_fees_min ASC NULLS LAST, name ASC"
	default:
		query += " ORDER BY name ASC"
	}

	query += fmt.Sprintf(" LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	defer rows.Close()

	var fields []Field
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		fields = append(fields, *field)
	}
	return fields, nil
}

// UpdateField replaces a field's mutable attributes and institution links
func (db *DB) UpdateField(ctx context.Context, field *Field) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE fields SET name = $1, description = $2, duration_years = $3,
		 career_opportunities = $4, required_skills = $5, admission_criteria = $6,
		 tuition_fees_min = $7, tuition_fees_max = $8
		 WHERE id = $9`,
		field.Name, field.Description, field.DurationYears, field.CareerOpportunities,
		field.RequiredSkills, field.AdmissionCriteria, field.TuitionFeesMin, field.TuitionFeesMax,
		field.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update field: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("field not found: %s", field.ID)
	}

	if field.InstitutionIDs != nil {
		return db.SetFieldInstitutions(ctx, field.ID, field.InstitutionIDs)
	}
	return nil
}

// DeleteField deletes a field, its favorites and institution links (via cascade)
func (db *DB) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM fields WHERE id = $1`, fieldID)
	if err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("field not found: %s", fieldID)
	}
	return nil
}

// SetFieldInstitutions replaces the institution links of a field
func (db *DB) SetFieldInstitutions(ctx context.Context, fieldID uuid.UUID, institutionIDs []uuid.UUID) error {
	if _, err := db.pool.Exec(ctx,
		`DELETE FROM field_institutions WHERE field_id = $1`, fieldID); err != nil {
		return fmt.Errorf("failed to clear field institutions: %w", err)
	}
	for _, instID := range institutionIDs {
		if _, err := db.pool.Exec(ctx,
			`INSERT INTO field_institutions (field_id, institution_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			fieldID, instID); err != nil {
			return fmt.Errorf("failed to link institution %s: %w", instID, err)
		}
	}
	return nil
}

func (db *DB) listFieldInstitutionIDs(ctx context.Context, fieldID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT institution_id FROM field_institutions WHERE field_id = $1`, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to list field institutions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan institution link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
