package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openmeteo/enhydris-synoptic/internal/aggregator"
	"github.com/openmeteo/enhydris-synoptic/internal/cache"
	"github.com/openmeteo/enhydris-synoptic/internal/models"
	"github.com/openmeteo/enhydris-synoptic/internal/notifier"
	"github.com/openmeteo/enhydris-synoptic/internal/warning"
)

// ErrIncompleteGroup marks a group whose configuration is missing a time
// zone or fresh time limit. It is fatal for that group's run only.
var ErrIncompleteGroup = errors.New("synoptic group configuration incomplete")

// GroupSource provides the configuration tree at the start of a run.
type GroupSource interface {
	ListGroups(ctx context.Context) ([]models.SynopticGroup, error)
	ListStations(ctx context.Context, groupID int64) ([]models.GroupStation, error)
	ListSeries(ctx context.Context, groupStationID int64) ([]models.SynopticSeries, error)
}

// Renderer consumes computed aggregates and produces report documents.
type Renderer interface {
	RenderGroup(group *models.SynopticGroup, reports []models.StationReport) error
	RenderStation(group *models.SynopticGroup, report models.StationReport) error
}

// SynopticService runs the synoptic computation: per group, it aggregates
// every station, renders the report artifacts, publishes aggregates to the
// cache, and flushes accumulated early warnings.
type SynopticService struct {
	groups         GroupSource
	stationAgg     *aggregator.StationAggregator
	renderer       Renderer
	notif          notifier.Notifier
	cache          *cache.Manager // nil when no cache is configured
	stationTimeout time.Duration
	logger         *zap.Logger

	// now is a hook for tests; defaults to time.Now.
	now func() time.Time
}

// NewSynopticService wires the run orchestrator.
func NewSynopticService(
	groups GroupSource,
	stationAgg *aggregator.StationAggregator,
	renderer Renderer,
	notif notifier.Notifier,
	cacheManager *cache.Manager,
	stationTimeout time.Duration,
	logger *zap.Logger,
) *SynopticService {
	if stationTimeout <= 0 {
		stationTimeout = time.Minute
	}
	return &SynopticService{
		groups:         groups,
		stationAgg:     stationAgg,
		renderer:       renderer,
		notif:          notif,
		cache:          cacheManager,
		stationTimeout: stationTimeout,
		logger:         logger,
		now:            time.Now,
	}
}

// SetNowFunc replaces the clock used for freshness evaluation.
func (s *SynopticService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// RunAll processes every configured group. A failing group is logged and
// does not affect the others.
func (s *SynopticService) RunAll(ctx context.Context) error {
	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	for i := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		group := groups[i]
		if err := s.RunGroup(ctx, &group); err != nil {
			s.logger.Error("group run failed",
				zap.String("group", group.Slug),
				zap.Error(err),
			)
		}
	}
	return nil
}

// RunGroup processes all stations of one group. Stations are aggregated
// concurrently; a station whose store queries fail is skipped without
// aborting its siblings. After all stations are processed, pending early
// warnings are flushed as one notification.
func (s *SynopticService) RunGroup(ctx context.Context, group *models.SynopticGroup) error {
	loc, err := group.Location()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncompleteGroup, err)
	}
	if group.FreshTimeLimit <= 0 {
		return fmt.Errorf("%w: group %q has no fresh time limit", ErrIncompleteGroup, group.Slug)
	}

	stations, err := s.loadStations(ctx, group.ID)
	if err != nil {
		return err
	}

	queue := warning.NewQueue()
	reports := make([]*models.StationReport, len(stations))

	var wg sync.WaitGroup
	for i := range stations {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			stationCtx, cancel := context.WithTimeout(ctx, s.stationTimeout)
			defer cancel()

			agg, err := s.stationAgg.Aggregate(stationCtx, stations[i], queue)
			if err != nil {
				s.logger.Error("station aggregation failed",
					zap.String("group", group.Slug),
					zap.String("station", stations[i].StationName),
					zap.Error(err),
				)
				return
			}
			reports[i] = &models.StationReport{
				Aggregate: agg,
				Freshness: aggregator.EvaluateFreshness(agg.CommonDate, loc, group.FreshTimeLimit, s.now()),
			}
		}(i)
	}
	wg.Wait()

	// Slice order follows station display order, so the rendered sequence is
	// deterministic regardless of completion order.
	rendered := make([]models.StationReport, 0, len(reports))
	for _, report := range reports {
		if report == nil {
			continue
		}
		if err := s.renderer.RenderStation(group, *report); err != nil {
			s.logger.Error("station render failed",
				zap.String("group", group.Slug),
				zap.String("station", report.Aggregate.Station.StationName),
				zap.Error(err),
			)
		}
		if s.cache != nil {
			if err := s.cache.StoreStationAggregate(ctx, group.Slug, *report); err != nil {
				s.logger.Warn("aggregate cache update failed",
					zap.String("group", group.Slug),
					zap.Error(err),
				)
			}
		}
		rendered = append(rendered, *report)
	}

	if err := s.renderer.RenderGroup(group, rendered); err != nil {
		s.logger.Error("group render failed", zap.String("group", group.Slug), zap.Error(err))
	}

	if err := queue.Flush(ctx, s.notif, group.Recipients); err != nil {
		return fmt.Errorf("flush early warnings for group %q: %w", group.Slug, err)
	}
	return nil
}

func (s *SynopticService) loadStations(ctx context.Context, groupID int64) ([]models.GroupStation, error) {
	stations, err := s.groups.ListStations(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	for i := range stations {
		series, err := s.groups.ListSeries(ctx, stations[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list series of station %q: %w", stations[i].StationName, err)
		}
		stations[i].Series = series
	}
	return stations, nil
}
