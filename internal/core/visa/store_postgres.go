// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package visa

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/database/schema"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on core.visarequirement.
type PostgresRepository struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// qualified prefixes every requirement column with the table alias.
func qualified(alias string) []string {
	columns := schema.CoreVisaRequirement.Columns()
	for i, column := range columns {
		columns[i] = alias + "." + column
	}
	return columns
}

// FindByPair looks up a single directed edge.
func (repository *PostgresRepository) FindByPair(context context.Context, origin, destination string) (*Requirement, error) {
	table := schema.CoreVisaRequirement

	query, args, err := repository.psql.
		Select(table.Columns()...).
		From(table.Table).
		Where(squirrel.Eq{table.Origin: origin, table.Destination: destination}).
		ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_find_requirement")
	}

	var requirement Requirement
	if err := pgxscan.Get(context, repository.db, &requirement, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequirementNotFound
		}
		return nil, dberr.Wrap(err, "find_requirement")
	}

	return &requirement, nil
}

// ListFromOrigin joins each outgoing edge with its active destination.
func (repository *PostgresRepository) ListFromOrigin(context context.Context, origin string) ([]*Destination, error) {
	table := schema.CoreVisaRequirement
	countryTable := schema.CoreCountry

	columns := append(qualified("v"),
		"c."+countryTable.Name+" AS destinationname",
		"c."+countryTable.Flag+" AS destinationflag",
	)

	query, args, err := repository.psql.
		Select(columns...).
		From(table.Table + " v").
		Join(countryTable.Table + " c ON c." + countryTable.Code + " = v." + table.Destination).
		Where(squirrel.Eq{"v." + table.Origin: origin, "c." + countryTable.IsActive: true}).
		OrderBy("c." + countryTable.Name + " ASC").
		ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_from_origin")
	}

	var destinations []*Destination
	if err := pgxscan.Select(context, repository.db, &destinations, query, args...); err != nil {
		return nil, dberr.Wrap(err, "list_from_origin")
	}

	return destinations, nil
}

// CountByLevel aggregates the requirement table by level.
func (repository *PostgresRepository) CountByLevel(context context.Context) (LevelCounts, error) {
	table := schema.CoreVisaRequirement

	query, args, err := repository.psql.
		Select(table.Requirement+" AS level", "COUNT(*) AS total").
		From(table.Table).
		GroupBy(table.Requirement).
		ToSql()
	if err != nil {
		return LevelCounts{}, dberr.Wrap(err, "build_count_by_level")
	}

	var rows []struct {
		Level Level `db:"level"`
		Total int   `db:"total"`
	}
	if err := pgxscan.Select(context, repository.db, &rows, query, args...); err != nil {
		return LevelCounts{}, dberr.Wrap(err, "count_by_level")
	}

	var counts LevelCounts
	for _, row := range rows {
		counts.add(row.Level, row.Total)
	}
	return counts, nil
}

// Upsert inserts or refreshes an edge and stamps lastUpdated.
func (repository *PostgresRepository) Upsert(context context.Context, requirement *Requirement) error {
	table := schema.CoreVisaRequirement
	requirement.LastUpdated = time.Now().UTC()

	query, args, err := repository.psql.
		Insert(table.Table).
		Columns(table.Columns()...).
		Values(
			requirement.Origin,
			requirement.Destination,
			string(requirement.Level),
			requirement.Text,
			requirement.MaxStay,
			requirement.ProcessingTime,
			requirement.Cost,
			requirement.Notes,
			requirement.LastUpdated,
		).
		Suffix("ON CONFLICT (" + table.Origin + ", " + table.Destination + ") DO UPDATE SET " +
			table.Requirement + " = EXCLUDED." + table.Requirement + ", " +
			table.RequirementText + " = EXCLUDED." + table.RequirementText + ", " +
			table.MaxStay + " = EXCLUDED." + table.MaxStay + ", " +
			table.ProcessingTime + " = EXCLUDED." + table.ProcessingTime + ", " +
			table.Cost + " = EXCLUDED." + table.Cost + ", " +
			table.Notes + " = EXCLUDED." + table.Notes + ", " +
			table.LastUpdated + " = EXCLUDED." + table.LastUpdated).
		ToSql()
	if err != nil {
		return dberr.Wrap(err, "build_upsert_requirement")
	}

	_, err = repository.db.Exec(context, query, args...)
	return dberr.Wrap(err, "upsert_requirement")
}

// Delete removes an edge.
func (repository *PostgresRepository) Delete(context context.Context, origin, destination string) error {
	table := schema.CoreVisaRequirement

	query, args, err := repository.psql.
		Delete(table.Table).
		Where(squirrel.Eq{table.Origin: origin, table.Destination: destination}).
		ToSql()
	if err != nil {
		return dberr.Wrap(err, "build_delete_requirement")
	}

	_, err = repository.db.Exec(context, query, args...)
	return dberr.Wrap(err, "delete_requirement")
}
