package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// FileRenderer writes the synoptic report as static artifacts under the
// output directory:
//
//	<dir>/<slug>/index.html               group page
//	<dir>/<slug>/station/<id>/index.html  station page
//	<dir>/<slug>/chart/<id>.png           chart of a series (or series group)
//
// Artifacts are regenerated on every run, so a run aborted half-way leaves
// stale but consistent files behind.
type FileRenderer struct {
	outputDir string
	palette   Palette
	templates *template.Template
	logger    *zap.Logger
}

// NewFileRenderer returns a renderer writing under outputDir.
func NewFileRenderer(outputDir string, palette Palette, logger *zap.Logger) (*FileRenderer, error) {
	templates, err := newTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &FileRenderer{
		outputDir: outputDir,
		palette:   palette,
		templates: templates,
		logger:    logger,
	}, nil
}

// RenderGroup writes the group page listing all station panels in display
// order.
func (r *FileRenderer) RenderGroup(group *models.SynopticGroup, reports []models.StationReport) error {
	data := struct {
		Group   *models.SynopticGroup
		Reports []models.StationReport
	}{Group: group, Reports: reports}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "group", data); err != nil {
		return fmt.Errorf("render group %q: %w", group.Slug, err)
	}

	path := filepath.Join(r.outputDir, group.Slug, "index.html")
	return r.writeFile(path, buf.Bytes())
}

// RenderStation writes the station page and the chart PNG of every chart
// group of the station.
func (r *FileRenderer) RenderStation(group *models.SynopticGroup, report models.StationReport) error {
	agg := report.Aggregate

	chartGroups := agg.ChartGroups()
	chartIDs := make([]int64, 0, len(chartGroups))
	for _, cg := range chartGroups {
		leader := cg[0].Series
		png, err := renderChart(cg, r.palette)
		if err != nil {
			return fmt.Errorf("render chart %d: %w", leader.ID, err)
		}
		if png == nil {
			continue
		}
		path := filepath.Join(r.outputDir, group.Slug, "chart", strconv.FormatInt(leader.ID, 10)+".png")
		if err := r.writeFile(path, png); err != nil {
			return err
		}
		chartIDs = append(chartIDs, leader.ID)
	}

	data := struct {
		Report    models.StationReport
		Aggregate *models.StationAggregate
		Freshness models.Freshness
		Charts    []int64
	}{Report: report, Aggregate: agg, Freshness: report.Freshness, Charts: chartIDs}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "station", data); err != nil {
		return fmt.Errorf("render station %q: %w", agg.Station.StationName, err)
	}

	path := filepath.Join(r.outputDir, group.Slug, "station", strconv.FormatInt(agg.Station.ID, 10), "index.html")
	return r.writeFile(path, buf.Bytes())
}

// writeFile writes under a temporary name and renames into place, so a
// reader never sees a half-written artifact.
func (r *FileRenderer) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := path + ".1"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	r.logger.Debug("wrote output file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
