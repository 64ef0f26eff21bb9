// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package country

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/database/schema"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the core.country table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns is the projection matching [scanCountry].
var selectColumns = strings.Join(schema.CoreCountry.Columns(), ", ")

// scanCountry hydrates a country from a row produced with [selectColumns].
func scanCountry(row pgx.Row) (*Country, error) {
	c := &Country{}
	var continent *string

	err := row.Scan(
		&c.Code,
		&c.Name,
		&c.Flag,
		&continent,
		&c.Capital,
		&c.Population,
		&c.Region,
		&c.Subregion,
		&c.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if continent != nil {
		c.Continent = Continent(*continent)
	}
	return c, nil
}

/*
FindActiveByCode retrieves an active country by its code.

Returns:
  - *Country: Hydrated entity
  - error: ErrCountryNotFound or wrapped database errors
*/
func (repository *PostgresRepository) FindActiveByCode(context context.Context, code string) (*Country, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE;
	`,
		selectColumns,
		schema.CoreCountry.Table,
		schema.CoreCountry.Code,
		schema.CoreCountry.IsActive,
	)

	c, err := scanCountry(repository.db.QueryRow(context, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, dberr.Wrap(err, "find_country")
	}

	return c, nil
}

/*
ListActive returns all active countries ordered by name.

The database order is only a first pass; the service re-sorts with collation.
*/
func (repository *PostgresRepository) ListActive(context context.Context) ([]*Country, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = TRUE
		ORDER BY %s ASC;
	`,
		selectColumns,
		schema.CoreCountry.Table,
		schema.CoreCountry.IsActive,
		schema.CoreCountry.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_countries")
	}
	defer rows.Close()

	countries := make([]*Country, 0, 256)
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_country")
		}
		countries = append(countries, c)
	}

	return countries, dberr.Wrap(rows.Err(), "iterate_countries")
}

// Counts returns total, active and inactive counts in a single scan.
func (repository *PostgresRepository) Counts(context context.Context) (Counts, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE %s)
		FROM %s;
	`,
		schema.CoreCountry.IsActive,
		schema.CoreCountry.Table,
	)

	var counts Counts
	if err := repository.db.QueryRow(context, query).Scan(&counts.Total, &counts.Active); err != nil {
		return Counts{}, dberr.Wrap(err, "count_countries")
	}
	counts.Inactive = counts.Total - counts.Active

	return counts, nil
}

/*
Upsert inserts a country or overwrites the stored one with the same code.
*/
func (repository *PostgresRepository) Upsert(context context.Context, country *Country) error {
	table := schema.CoreCountry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = NOW();
	`,
		table.Table,
		table.Code, table.Name, table.Flag, table.Continent, table.Capital,
		table.Population, table.Region, table.Subregion, table.IsActive,
		table.Code,
		table.Name, table.Name, table.Flag, table.Flag, table.Continent, table.Continent, table.Capital, table.Capital,
		table.Population, table.Population, table.Region, table.Region, table.Subregion, table.Subregion, table.IsActive, table.IsActive,
		table.UpdatedAt,
	)

	var continent *string
	if country.Continent != "" {
		value := string(country.Continent)
		continent = &value
	}

	_, err := repository.db.Exec(context, query,
		country.Code,
		country.Name,
		country.Flag,
		continent,
		country.Capital,
		country.Population,
		country.Region,
		country.Subregion,
		country.IsActive,
	)
	return dberr.Wrap(err, "upsert_country")
}
