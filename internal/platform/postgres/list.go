package postgres

import (
	"context"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"

	"github.com/rmachado/library-api/internal/platform/logger"
	"github.com/rmachado/library-api/internal/store"
)

const dialectPostgres = "postgres"

// buildListQueries turns a normalized PaginationSpec into the COUNT query
// and the page query for the given table. Filters become case-insensitive
// substring predicates (column::text ILIKE %value%) combined with AND; every
// value is a bound parameter, never interpolated. Without an explicit
// OrderBy the page is sorted by primary key ascending so repeated queries
// return stable pages.
//
// The caller must already have validated the spec's columns against the
// entity allow-list.
func buildListQueries(
	table string,
	columns []any,
	spec store.PaginationSpec,
) (countSQL string, countArgs []any, pageSQL string, pageArgs []any, err error) {
	base := goqu.Dialect(dialectPostgres).From(table)
	for field, value := range spec.Filters {
		// Predicates AND together, so map iteration order does not matter.
		base = base.Where(goqu.L("?::text", goqu.C(field)).ILike("%" + value + "%"))
	}

	countSQL, countArgs, err = base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return "", nil, "", nil, err
	}

	order := goqu.C("id").Asc()
	if spec.OrderBy != "" {
		if spec.OrderDirection == store.OrderDesc {
			order = goqu.C(spec.OrderBy).Desc()
		} else {
			order = goqu.C(spec.OrderBy).Asc()
		}
	}

	pageSQL, pageArgs, err = base.Select(columns...).
		Order(order).
		Limit(uint(spec.PerPage)).
		Offset(uint(spec.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, "", nil, err
	}

	return countSQL, countArgs, pageSQL, pageArgs, nil
}

// listPage is the shared pagination/filter engine behind every entity's
// List operation. It validates the spec against the entity's column
// allow-list, runs the COUNT and page queries, and scans the page rows
// with sqlx into the entity type.
func listPage[T any](
	ctx context.Context,
	db store.DBTX,
	table string,
	columns []any,
	allowed map[string]bool,
	spec store.PaginationSpec,
) (store.Page[T], error) {
	var zero store.Page[T]
	log := logger.FromContext(ctx)

	spec = spec.Normalize()
	if err := spec.ValidateColumns(allowed); err != nil {
		return zero, err
	}

	countSQL, countArgs, pageSQL, pageArgs, err := buildListQueries(table, columns, spec)
	if err != nil {
		return zero, store.NewStoreError(table, "list", "failed to build queries", err)
	}

	var total int64
	if err := db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count rows for page",
			slog.String("table", table),
			slog.String("error", err.Error()))
		return zero, store.NewStoreError(table, "list", "count query failed", err)
	}

	rows, err := db.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		log.Error("failed to query page",
			slog.String("table", table),
			slog.String("error", err.Error()))
		return zero, store.NewStoreError(table, "list", "page query failed", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var items []T
	if err := sqlx.StructScan(rows, &items); err != nil {
		return zero, store.NewStoreError(table, "list", "failed to scan page rows", err)
	}

	log.Debug("listed page",
		slog.String("table", table),
		slog.Int("count", len(items)),
		slog.Int64("total", total),
		slog.Int("page", spec.Page))

	return store.NewPage(items, total, spec), nil
}
