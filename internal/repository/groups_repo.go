package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// GroupRepository reads the synoptic configuration tree. The configuration is
// managed elsewhere (admin screens); this repository only reads it at the
// start of a run.
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository returns repository.
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListGroups returns all synoptic groups with their recipient addresses.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]models.SynopticGroup, error) {
	const query = `
		SELECT id, name, slug, time_zone, fresh_time_limit_minutes
		FROM synoptic_groups
		ORDER BY slug
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.SynopticGroup
	for rows.Next() {
		var (
			g       models.SynopticGroup
			minutes int64
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.TimeZone, &minutes); err != nil {
			return nil, err
		}
		g.FreshTimeLimit = time.Duration(minutes) * time.Minute
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		recipients, err := r.listRecipients(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Recipients = recipients
	}

	return groups, nil
}

func (r *GroupRepository) listRecipients(ctx context.Context, groupID int64) ([]string, error) {
	const query = `
		SELECT email
		FROM synoptic_group_recipients
		WHERE group_id = $1
		ORDER BY email
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		recipients = append(recipients, email)
	}
	return recipients, rows.Err()
}

// ListStations returns the stations of a group in display order, without
// their series.
func (r *GroupRepository) ListStations(ctx context.Context, groupID int64) ([]models.GroupStation, error) {
	const query = `
		SELECT sgs.id, sgs.group_id, sgs.station_id, s.name, sgs."order"
		FROM synoptic_group_stations sgs
		JOIN stations s ON s.id = sgs.station_id
		WHERE sgs.group_id = $1
		ORDER BY sgs."order"
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.GroupStation
	for rows.Next() {
		var st models.GroupStation
		if err := rows.Scan(&st.ID, &st.GroupID, &st.StationID, &st.StationName, &st.Order); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// ListSeries returns the synoptic series of one group station in display
// order, joined with the underlying time series attributes.
func (r *GroupRepository) ListSeries(ctx context.Context, groupStationID int64) ([]models.SynopticSeries, error) {
	const query = `
		SELECT st.id, st.group_station_id, st.timeseries_id, st."order",
		       ts.name, ts.unit_symbol, ts.precision,
		       st.title, st.subtitle, st.group_with_id,
		       st.low_limit, st.high_limit,
		       st.default_chart_min, st.default_chart_max
		FROM synoptic_timeseries st
		JOIN timeseries ts ON ts.id = st.timeseries_id
		WHERE st.group_station_id = $1
		ORDER BY st."order"
	`
	rows, err := r.db.QueryContext(ctx, query, groupStationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []models.SynopticSeries
	for rows.Next() {
		var (
			s                  models.SynopticSeries
			title, subtitle    sql.NullString
			groupWith          sql.NullInt64
			lowLimit, highLim  sql.NullFloat64
			chartMin, chartMax sql.NullFloat64
		)
		if err := rows.Scan(
			&s.ID, &s.GroupStationID, &s.TimeseriesID, &s.Order,
			&s.SeriesName, &s.UnitSymbol, &s.Precision,
			&title, &subtitle, &groupWith,
			&lowLimit, &highLim,
			&chartMin, &chartMax,
		); err != nil {
			return nil, err
		}
		s.Title = title.String
		s.Subtitle = subtitle.String
		if groupWith.Valid {
			s.GroupWith = &groupWith.Int64
		}
		if lowLimit.Valid {
			s.LowLimit = &lowLimit.Float64
		}
		if highLim.Valid {
			s.HighLimit = &highLim.Float64
		}
		if chartMin.Valid {
			s.DefaultChartMin = &chartMin.Float64
		}
		if chartMax.Valid {
			s.DefaultChartMax = &chartMax.Float64
		}
		series = append(series, s)
	}
	return series, rows.Err()
}
