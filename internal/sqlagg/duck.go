// Package sqlagg aggregates the dataset with SQL GROUP BY inside an
// in-process DuckDB database.
package sqlagg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb/v2"

	"vgsales/internal/engine"
	"vgsales/internal/logging"
	"vgsales/internal/models"
)

// Tables are named per call so concurrent aggregations on the shared
// in-memory database never collide.
const (
	createTable = `
		CREATE TABLE %s (
			idx    BIGINT,
			key    VARCHAR,
			na     DOUBLE,
			eu     DOUBLE,
			jp     DOUBLE,
			other  DOUBLE,
			global DOUBLE
		)`
	groupRows = `
		SELECT key, SUM(na), SUM(eu), SUM(jp), SUM(other), SUM(global)
		FROM %s
		WHERE key <> ''
		GROUP BY key
		ORDER BY MIN(idx)`
	dropTable = `DROP TABLE IF EXISTS %s`

	appendCheckEvery = 4096
)

// DuckAggregator implements engine.Aggregator on DuckDB.
type DuckAggregator struct {
	db *sql.DB
}

// Open starts an in-memory DuckDB database.
func Open() (*DuckAggregator, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return &DuckAggregator{db: db}, nil
}

func (a *DuckAggregator) Close() error {
	return a.db.Close()
}

// Aggregate bulk-loads the grouping key and sales columns into a scratch
// table and groups it. Output order matches engine.Aggregate.
func (a *DuckAggregator) Aggregate(ctx context.Context, store *engine.ColumnStore, by engine.GroupBy) ([]models.AggregatedRow, error) {
	conn, err := a.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("duckdb conn: %w", err)
	}
	defer conn.Close()

	table := "sales_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := conn.ExecContext(ctx, fmt.Sprintf(createTable, table)); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), fmt.Sprintf(dropTable, table)); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("table", table).Msg("drop scratch table")
		}
	}()

	if err := appendStore(ctx, conn, table, store, by); err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, fmt.Sprintf(groupRows, table))
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", by, err)
	}
	defer rows.Close()

	out := []models.AggregatedRow{}
	for rows.Next() {
		var r models.AggregatedRow
		if err := rows.Scan(&r.Key, &r.NA, &r.EU, &r.JP, &r.Other, &r.Global); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("group by %s: %w", by, err)
	}
	return out, nil
}

// appendStore streams the store into table through a DuckDB appender.
func appendStore(ctx context.Context, conn *sql.Conn, table string, store *engine.ColumnStore, by engine.GroupBy) error {
	ids, dict := store.TitleIDs, store.TitleDict
	if by == engine.GroupByGenre {
		ids, dict = store.GenreIDs, store.GenreDict
	}

	return conn.Raw(func(raw any) error {
		dc, ok := raw.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", raw)
		}
		app, err := duckdb.NewAppenderFromConn(dc, "", table)
		if err != nil {
			return fmt.Errorf("appender: %w", err)
		}

		for i := 0; i < store.Len(); i++ {
			if i%appendCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return errors.Join(err, app.Close())
				}
			}
			if err := app.AppendRow(int64(i), dict[ids[i]],
				store.NA[i], store.EU[i], store.JP[i], store.Other[i], store.Global[i]); err != nil {
				return errors.Join(fmt.Errorf("append row %d: %w", i, err), app.Close())
			}
		}
		if err := app.Close(); err != nil {
			return fmt.Errorf("flush appender: %w", err)
		}
		return nil
	})
}
