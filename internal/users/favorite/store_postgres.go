// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package favorite

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/database/schema"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the users.favorite table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var favoriteColumns = strings.Join(schema.UserFavorite.Columns(), ", ")

// ListByUser returns the favorites of userID, newest first.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string) (Favorites, error) {
	table := schema.UserFavorite
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC;
	`, favoriteColumns, table.Table, table.UserID, table.AddedAt)

	favorites := Favorites{}
	if err := pgxscan.Select(context, repository.db, &favorites, query, userID); err != nil {
		return nil, dberr.Wrap(err, "list_favorites")
	}
	return favorites, nil
}

/*
Insert saves a favorite with ON CONFLICT DO NOTHING on the primary key.

The affected row count tells a fresh insert from a duplicate, so a request
that loses a race against a concurrent identical add still reports it.
*/
func (repository *PostgresRepository) Insert(context context.Context, favorite Favorite) (bool, error) {
	table := schema.UserFavorite
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s, %s) DO NOTHING;
	`, table.Table, favoriteColumns, table.UserID, table.Origin, table.Destination)

	tag, err := repository.db.Exec(context, query,
		favorite.UserID,
		favorite.Origin,
		favorite.Destination,
		favorite.AddedAt,
	)
	if err != nil {
		return false, dberr.Wrap(err, "insert_favorite")
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a saved pair.
func (repository *PostgresRepository) Delete(context context.Context, userID, origin, destination string) (bool, error) {
	table := schema.UserFavorite
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3;
	`, table.Table, table.UserID, table.Origin, table.Destination)

	tag, err := repository.db.Exec(context, query, userID, origin, destination)
	if err != nil {
		return false, dberr.Wrap(err, "delete_favorite")
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the pair is saved for userID.
func (repository *PostgresRepository) Exists(context context.Context, userID, origin, destination string) (bool, error) {
	table := schema.UserFavorite
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3
		);
	`, table.Table, table.UserID, table.Origin, table.Destination)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, origin, destination).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "favorite_exists")
	}
	return exists, nil
}

// CountByUser returns the number of favorites of userID.
func (repository *PostgresRepository) CountByUser(context context.Context, userID string) (int, error) {
	table := schema.UserFavorite
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1;`, table.Table, table.UserID)

	var count int
	if err := repository.db.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_favorites")
	}
	return count, nil
}
