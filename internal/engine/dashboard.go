package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"vgsales/internal/models"
)

// DashboardOptions configures NewDashboard.
type DashboardOptions struct {
	// TitleMinGlobalSales is the inclusive global sales floor of the title view.
	// Zero means DefaultTitleMinGlobalSales.
	TitleMinGlobalSales float64
}

// Dashboard holds the two aggregated tables and answers view queries.
// It is immutable after construction and safe for concurrent use.
type Dashboard struct {
	titles   []models.AggregatedRow
	genres   []models.AggregatedRow
	titleMin float64
	records  int
}

// NewDashboard aggregates store by title and by genre. Both tables are built
// before it returns.
func NewDashboard(ctx context.Context, store *ColumnStore, agg Aggregator, opts DashboardOptions) (*Dashboard, error) {
	if agg == nil {
		agg = MemoryAggregator{}
	}
	d := &Dashboard{
		titleMin: opts.TitleMinGlobalSales,
		records:  store.Len(),
	}
	if d.titleMin == 0 {
		d.titleMin = DefaultTitleMinGlobalSales
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := agg.Aggregate(gctx, store, GroupByTitle)
		if err != nil {
			return fmt.Errorf("aggregate by title: %w", err)
		}
		d.titles = rows
		return nil
	})
	g.Go(func() error {
		rows, err := agg.Aggregate(gctx, store, GroupByGenre)
		if err != nil {
			return fmt.Errorf("aggregate by genre: %w", err)
		}
		d.genres = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().
		Int("titles", len(d.titles)).
		Int("genres", len(d.genres)).
		Dur("elapsed", time.Since(start)).
		Msg("aggregated tables built")
	return d, nil
}

// TitleView returns titles with global sales at or above the threshold,
// sorted by the region named by label. The filter column is always global.
func (d *Dashboard) TitleView(label string) ([]models.AggregatedRow, error) {
	_, rows, err := d.Query(ViewTitle, label)
	return rows, err
}

// GenreView returns every genre sorted by the region named by label.
func (d *Dashboard) GenreView(label string) ([]models.AggregatedRow, error) {
	_, rows, err := d.Query(ViewGenre, label)
	return rows, err
}

// View dispatches to TitleView or GenreView.
func (d *Dashboard) View(view View, label string) ([]models.AggregatedRow, error) {
	_, rows, err := d.Query(view, label)
	return rows, err
}

// Query resolves label for view once and returns the selected region along
// with the sorted rows. An unknown view or label yields *InvalidRegionError.
func (d *Dashboard) Query(view View, label string) (models.Region, []models.AggregatedRow, error) {
	region, err := Resolve(label, view)
	if err != nil {
		return 0, nil, err
	}
	if view == ViewTitle {
		return region, FilterSort(d.titles, region, &Threshold{Region: models.RegionGlobal, Min: d.titleMin}), nil
	}
	return region, FilterSort(d.genres, region, nil), nil
}

// Stats reports table sizes.
func (d *Dashboard) Stats() models.DashboardStats {
	titleView := 0
	for _, r := range d.titles {
		if r.Global >= d.titleMin {
			titleView++
		}
	}
	return models.DashboardStats{
		Records:   d.records,
		Titles:    len(d.titles),
		Genres:    len(d.genres),
		TitleView: titleView,
		Threshold: d.titleMin,
	}
}
