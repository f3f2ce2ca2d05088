package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/scrape"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/logger"
)

// VideoMode controls how cached HTML and JSON are reused
type VideoMode string

const (
	// VideoModeAuto skips IDs whose JSON exists and reuses cached HTML
	VideoModeAuto VideoMode = "auto"
	// VideoModeRebuild re-parses JSON from cached HTML even when it exists
	VideoModeRebuild VideoMode = "rebuild"
	// VideoModeRefetch always re-downloads the HTML and rewrites the JSON
	VideoModeRefetch VideoMode = "refetch"
)

// ParseVideoMode validates a mode flag value
func ParseVideoMode(s string) (VideoMode, error) {
	switch VideoMode(s) {
	case VideoModeAuto, VideoModeRebuild, VideoModeRefetch:
		return VideoMode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q (want auto, rebuild or refetch)", s)
}

// VideoSource is the Shugiin TV site adapter
type VideoSource interface {
	Name() string
	// ListDeliIDs returns the deli_ids linked from one day's list page
	ListDeliIDs(ctx context.Context, day string) ([]int, error)
	// FetchDetailHTML downloads one video session's detail page
	FetchDetailHTML(ctx context.Context, deliID int) (string, error)
	// ParseDetail extracts the video record from a detail page
	ParseDetail(html string, deliID int) (record.VideoRecord, error)
}

// VideoJob harvests video session metadata over a day range, then re-fetches
// numeric gaps and purges empty pages
type VideoJob struct {
	Source      VideoSource
	Store       *store.Store
	Log         *logger.Logger
	ListDelay   time.Duration
	DetailDelay time.Duration
	Mode        VideoMode
}

func (j *VideoJob) space() store.Space {
	return j.Store.Space(j.Source.Name())
}

func (j *VideoJob) htmlPath(id int) string {
	return filepath.Join(j.space().Dir(), "html", fmt.Sprintf("%d.html", id))
}

func (j *VideoJob) jsonPath(id int) string {
	return filepath.Join(j.space().Dir(), "json", fmt.Sprintf("%d.json", id))
}

// Run processes each day's list page, then the gap list, then the cleanup
// pass. A failed list page aborts only that day.
func (j *VideoJob) Run(ctx context.Context, days []string) (Summary, error) {
	markers := store.LoadMarkers(j.space().MarkerPath())
	driver := NewDriver(j.Log, j.DetailDelay)
	var summary Summary

	for i, day := range days {
		if ctx.Err() != nil {
			break
		}
		j.Log.Info().Str("day", day).Msgf("[%d/%d] listing", i+1, len(days))
		SleepFor(ctx, j.ListDelay)

		ids, err := j.Source.ListDeliIDs(ctx, day)
		if err != nil {
			j.Log.Error().Err(err).Str("day", day).Msg("list page failed, skipping day")
			continue
		}
		summary.Merge(driver.Run(ctx, j.steps(ids, markers)))
	}

	// Re-fetch IDs missing from the otherwise contiguous numeric range.
	missing := Missing(j.CachedIDs(), markers)
	if len(missing) > 0 {
		j.Log.Info().Int("count", len(missing)).Msg("re-fetching gap IDs")
		summary.Merge(driver.Run(ctx, j.steps(missing, markers)))
	}

	// The marker set is persisted even when cleanup fails part-way, so IDs
	// recorded during the main pass are never lost.
	removed, cleanupErr := j.Cleanup(markers)
	if len(removed) > 0 {
		j.Log.Info().Ints("ids", removed).Msg("purged empty cached pages")
	}
	if err := markers.Save(); err != nil {
		return summary, err
	}
	return summary, cleanupErr
}

func (j *VideoJob) steps(ids []int, markers *store.MarkerSet) []Step {
	steps := make([]Step, 0, len(ids))
	for _, id := range ids {
		id := id
		steps = append(steps, Step{
			ID: strconv.Itoa(id),
			Do: func(ctx context.Context) (Outcome, error) {
				return j.processID(ctx, id, markers)
			},
		})
	}
	return steps
}

// processID ensures the HTML artifact, purges invalid content into the
// marker set, and derives the JSON record
func (j *VideoJob) processID(ctx context.Context, id int, markers *store.MarkerSet) (Outcome, error) {
	htmlPath, jsonPath := j.htmlPath(id), j.jsonPath(id)

	if j.Mode == VideoModeAuto && store.Exists(jsonPath) {
		return OutcomeSkipped, nil
	}

	acted := false
	var html string
	if j.Mode == VideoModeRefetch || !store.Exists(htmlPath) {
		fetched, err := j.Source.FetchDetailHTML(ctx, id)
		if err != nil {
			return OutcomeErrored, err
		}
		acted = true
		html = fetched
		if err := store.WriteText(htmlPath, html); err != nil {
			return OutcomeErrored, err
		}
	} else {
		cached, err := store.ReadText(htmlPath)
		if err != nil {
			return OutcomeErrored, err
		}
		html = cached
	}

	if scrape.IsInvalid(html, scrape.DefaultEmptyThreshold) {
		j.Log.Info().Int("deli_id", id).Msg("empty page, recording in marker set")
		if err := store.Delete(htmlPath); err != nil {
			return OutcomeErrored, err
		}
		if err := store.Delete(jsonPath); err != nil {
			return OutcomeErrored, err
		}
		markers.Add(id)
		if acted {
			return OutcomeFetched, nil
		}
		return OutcomeSkipped, nil
	}

	// A real fetch for a previously-empty ID clears its marker.
	if acted && markers.Has(id) {
		markers.Remove(id)
	}

	if j.Mode != VideoModeAuto || !store.Exists(jsonPath) {
		rec, err := j.Source.ParseDetail(html, id)
		if err != nil {
			return OutcomeErrored, err
		}
		if err := store.WriteJSON(jsonPath, rec); err != nil {
			return OutcomeErrored, err
		}
	}

	if acted {
		return OutcomeFetched, nil
	}
	return OutcomeSkipped, nil
}

// CachedIDs lists the numerically-named JSON artifacts in ascending order
func (j *VideoJob) CachedIDs() []int {
	dir := filepath.Join(j.space().Dir(), "json")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var ids []int
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		if id, err := strconv.Atoi(strings.TrimSuffix(name, ".json")); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Cleanup scans cached HTML for empty pages, removes them together with
// their JSON, and records the IDs in the marker set
func (j *VideoJob) Cleanup(markers *store.MarkerSet) ([]int, error) {
	dir := filepath.Join(j.space().Dir(), "html")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var removed []int
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".html") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, ".html"))
		if err != nil {
			continue
		}
		html, err := store.ReadText(filepath.Join(dir, name))
		if err != nil {
			j.Log.Error().Err(err).Str("file", name).Msg("cleanup read failed")
			continue
		}
		if !scrape.IsEmptyHTML(html, scrape.DefaultEmptyThreshold) {
			continue
		}
		if err := store.Delete(filepath.Join(dir, name)); err != nil {
			return removed, err
		}
		if err := store.Delete(j.jsonPath(id)); err != nil {
			return removed, err
		}
		markers.Add(id)
		removed = append(removed, id)
	}
	return removed, nil
}
