package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/config"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/geo"
)

// ErrDataUnavailable signals that the source could not serve a relation
// (connectivity failure, unknown or missing table). Callers receive an
// empty table alongside it and must render a "no data" state, never crash.
var ErrDataUnavailable = errors.New("data unavailable")

// Store loads pulse relations into analytics.Tables, normalizing and
// memoizing per table name. The reporting snapshot is static, so entries
// live until their TTL expires; there is no invalidation path.
type Store struct {
	db    *sql.DB
	cache *cache.Cache
	group singleflight.Group
}

// NewStore wires a Store over an open database handle and a cache instance.
func NewStore(db *sql.DB, c *cache.Cache) *Store {
	return &Store{db: db, cache: c}
}

// Load returns the named relation. Results are cached; concurrent loads of
// the same table collapse into a single fetch. On failure the returned
// table is empty and the error wraps ErrDataUnavailable.
func (s *Store) Load(ctx context.Context, name string) (analytics.Table, error) {
	schema, ok := Schema(name)
	if !ok {
		log.Printf("Store: no schema declared for table %q", name)
		return analytics.Table{Name: name}, fmt.Errorf("%w: unknown table %q", ErrDataUnavailable, name)
	}

	key := config.GetCacheKey("table", name)
	if cached, found := s.cache.Get(key); found {
		return cached.(analytics.Table), nil
	}

	// The fetch is shared by every collapsed caller, so it must not die
	// with whichever request happened to start it. Cancellation of one
	// request never fails the others.
	fetchCtx := context.WithoutCancel(ctx)
	result, err, _ := s.group.Do(name, func() (interface{}, error) {
		if cached, found := s.cache.Get(key); found {
			return cached.(analytics.Table), nil
		}
		table, err := s.fetch(fetchCtx, schema)
		if err != nil {
			return analytics.Table{Name: name}, err
		}
		s.cache.Set(key, table, cache.DefaultExpiration)
		return table, nil
	})
	if err != nil {
		return analytics.Table{Name: name}, err
	}
	return result.(analytics.Table), nil
}

// fetch reads and normalizes one relation. Region names are trimmed,
// lower-cased and aliased here, once, so every aggregation downstream joins
// cleanly against the boundary index.
func (s *Store) fetch(ctx context.Context, schema TableSchema) (analytics.Table, error) {
	table := analytics.Table{Name: schema.Name}

	query := buildSelect(schema)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Store: query failed for %s: %v", schema.Name, err)
		return table, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, schema.Name, err)
	}
	defer rows.Close()

	nDims := len(schema.Dims)
	nMeasures := len(schema.Measures)
	for rows.Next() {
		var (
			year    sql.NullInt64
			quarter sql.NullInt64
			region  sql.NullString
		)
		dims := make([]sql.NullString, nDims)
		measures := make([]sql.NullFloat64, nMeasures)

		dest := make([]interface{}, 0, 3+nDims+nMeasures)
		dest = append(dest, &year, &quarter, &region)
		for i := range dims {
			dest = append(dest, &dims[i])
		}
		for i := range measures {
			dest = append(dest, &measures[i])
		}

		if err := rows.Scan(dest...); err != nil {
			log.Printf("Store: scan failed for %s: %v", schema.Name, err)
			return analytics.Table{Name: schema.Name}, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, schema.Name, err)
		}

		record := analytics.Record{
			Year:    int(year.Int64),
			Quarter: int(quarter.Int64),
			Dims:    make(map[string]string, 1+nDims),
			Vals:    make(map[string]float64, nMeasures),
		}
		record.Dims[schema.RegionCol.Name] = geo.NormalizeRegion(region.String)
		for i, c := range schema.Dims {
			record.Dims[c.Name] = strings.TrimSpace(dims[i].String)
		}
		for i, c := range schema.Measures {
			record.Vals[c.Name] = measures[i].Float64
		}
		table.Records = append(table.Records, record)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Store: row iteration failed for %s: %v", schema.Name, err)
		return analytics.Table{Name: schema.Name}, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, schema.Name, err)
	}

	log.Printf("Store: loaded %s (%d rows)", schema.Name, table.Len())
	return table, nil
}

// buildSelect assembles the typed column list for a relation.
func buildSelect(schema TableSchema) string {
	cols := []string{"years", "quarter", schema.RegionCol.Source}
	for _, c := range schema.Dims {
		cols = append(cols, strings.ToLower(c.Source))
	}
	for _, c := range schema.Measures {
		cols = append(cols, strings.ToLower(c.Source))
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + schema.Name
}
