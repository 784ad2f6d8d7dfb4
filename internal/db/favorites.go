package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddFavorite bookmarks a field for a user. Returns the favorite ID, or
// uuid.Nil with created=false when the field is already bookmarked.
func (db *DB) AddFavorite(ctx context.Context, userID, fieldID uuid.UUID) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO favorites (user_id, field_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, field_id) DO NOTHING
		 RETURNING id`,
		userID, fieldID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: already favorited.
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return id, true, nil
}

// ListFavorites retrieves a user's favorites, newest first
func (db *DB) ListFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, field_id, added_at
		 FROM favorites WHERE user_id = $1 ORDER BY added_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.FieldID, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, nil
}

// DeleteFavorite removes a favorite, scoped to its owner
func (db *DB) DeleteFavorite(ctx context.Context, favoriteID, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM favorites WHERE id = $1 AND user_id = $2`,
		favoriteID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("favorite not found: %s", favoriteID)
	}
	return nil
}
