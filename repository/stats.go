package repository

import (
	"context"
	"fmt"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/jmoiron/sqlx"
)

type groupCount struct {
	Label string `db:"label"`
	Count int64  `db:"count"`
}

// StatsRepository runs the aggregate queries behind the dashboard and the
// location dropdown.
type StatsRepository struct {
	X *sqlx.DB
}

func NewStatsRepository(x *sqlx.DB) *StatsRepository {
	return &StatsRepository{X: x}
}

func (r *StatsRepository) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.X.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *StatsRepository) groupBy(ctx context.Context, table, column string) (map[string]int64, error) {
	var rows []groupCount
	q := "SELECT " + column + " AS label, COUNT(*) AS count FROM " + table + " GROUP BY " + column
	if err := r.X.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", table, column, err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Count
	}
	return out, nil
}

func (r *StatsRepository) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	st := &models.DashboardStats{}
	counts := []struct {
		table string
		dst   *int64
	}{
		{"properties", &st.Properties},
		{"agents", &st.Agents},
		{"banks", &st.Banks},
		{"categories", &st.Categories},
		{"customers", &st.Customers},
		{"sales", &st.Leads},
		{"reviews", &st.Reviews},
	}
	for _, c := range counts {
		n, err := r.count(ctx, c.table)
		if err != nil {
			return nil, fmt.Errorf("StatsRepository.Dashboard: %w", err)
		}
		*c.dst = n
	}

	if err := r.X.GetContext(ctx, &st.Hotspots,
		r.X.Rebind("SELECT COUNT(*) FROM properties WHERE is_hotspot = ?"), true); err != nil {
		return nil, fmt.Errorf("StatsRepository.Dashboard hotspots: %w", err)
	}

	var err error
	if st.PropertiesByState, err = r.groupBy(ctx, "properties", "status"); err != nil {
		return nil, fmt.Errorf("StatsRepository.Dashboard: %w", err)
	}
	if st.LeadsByStatus, err = r.groupBy(ctx, "sales", "status"); err != nil {
		return nil, fmt.Errorf("StatsRepository.Dashboard: %w", err)
	}
	for _, s := range models.PropertyStatuses {
		if _, ok := st.PropertiesByState[string(s)]; !ok {
			st.PropertiesByState[string(s)] = 0
		}
	}
	for _, s := range models.LeadStatuses {
		if _, ok := st.LeadsByStatus[string(s)]; !ok {
			st.LeadsByStatus[string(s)] = 0
		}
	}
	return st, nil
}

// Locations lists distinct property locations with how many properties each has.
func (r *StatsRepository) Locations(ctx context.Context) ([]models.LocationCount, error) {
	list := []models.LocationCount{}
	const q = `SELECT location, COUNT(*) AS count FROM properties
		GROUP BY location ORDER BY count DESC, location ASC`
	if err := r.X.SelectContext(ctx, &list, q); err != nil {
		return nil, fmt.Errorf("StatsRepository.Locations: %w", err)
	}
	return list, nil
}
