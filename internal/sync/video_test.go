package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/logger"
)

func realDetailHTML(deliID int) string {
	return fmt.Sprintf("<html><body><h1>会議詳細 %d</h1><p>%s</p></body></html>",
		deliID, strings.Repeat("開会日や案件などの十分な本文。", 10))
}

// fakeVideoSource serves canned list pages and detail HTML per day
type fakeVideoSource struct {
	days        map[string][]int
	detail      map[int]string
	listCalls   int
	detailCalls int
}

func (f *fakeVideoSource) Name() string { return "shugiintv" }

func (f *fakeVideoSource) ListDeliIDs(ctx context.Context, day string) ([]int, error) {
	f.listCalls++
	ids, ok := f.days[day]
	if !ok {
		return nil, fmt.Errorf("no list for %s", day)
	}
	return ids, nil
}

func (f *fakeVideoSource) FetchDetailHTML(ctx context.Context, deliID int) (string, error) {
	f.detailCalls++
	html, ok := f.detail[deliID]
	if !ok {
		return "", fmt.Errorf("no detail for %d", deliID)
	}
	return html, nil
}

func (f *fakeVideoSource) ParseDetail(html string, deliID int) (record.VideoRecord, error) {
	return record.VideoRecord{DeliID: deliID, MeetingName: "本会議"}, nil
}

func newVideoJob(t *testing.T, src VideoSource, mode VideoMode) *VideoJob {
	t.Helper()
	return &VideoJob{
		Source: src,
		Store:  store.New(t.TempDir()),
		Log:    logger.ForComponent("test"),
		Mode:   mode,
	}
}

func TestParseVideoMode(t *testing.T) {
	for _, valid := range []string{"auto", "rebuild", "refetch"} {
		mode, err := ParseVideoMode(valid)
		assert.NoError(t, err)
		assert.Equal(t, VideoMode(valid), mode)
	}
	_, err := ParseVideoMode("always")
	assert.Error(t, err)
}

func TestVideoJobAutoSkipsCached(t *testing.T) {
	src := &fakeVideoSource{
		days:   map[string][]int{"20250603": {100, 101}},
		detail: map[int]string{100: realDetailHTML(100), 101: realDetailHTML(101)},
	}
	job := newVideoJob(t, src, VideoModeAuto)

	first, err := job.Run(context.Background(), []string{"20250603"})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Fetched)
	assert.Equal(t, 2, src.detailCalls)
	assert.Equal(t, []int{100, 101}, job.CachedIDs())

	second, err := job.Run(context.Background(), []string{"20250603"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 2, src.detailCalls)
}

func TestVideoJobRefetchesGaps(t *testing.T) {
	src := &fakeVideoSource{
		days: map[string][]int{"20250603": {100, 103}},
		detail: map[int]string{
			100: realDetailHTML(100), 101: realDetailHTML(101),
			102: realDetailHTML(102), 103: realDetailHTML(103),
		},
	}
	job := newVideoJob(t, src, VideoModeAuto)

	_, err := job.Run(context.Background(), []string{"20250603"})
	require.NoError(t, err)
	// The gap pass fills 101 and 102
	assert.Equal(t, []int{100, 101, 102, 103}, job.CachedIDs())
}

func TestVideoJobMarksEmptyPages(t *testing.T) {
	src := &fakeVideoSource{
		days: map[string][]int{"20250603": {100, 101}},
		detail: map[int]string{
			100: realDetailHTML(100),
			101: "<html><body></body></html>",
		},
	}
	job := newVideoJob(t, src, VideoModeAuto)

	_, err := job.Run(context.Background(), []string{"20250603"})
	require.NoError(t, err)
	assert.Equal(t, []int{100}, job.CachedIDs())

	markers := store.LoadMarkers(job.Store.Space(src.Name()).MarkerPath())
	assert.True(t, markers.Has(101))
	assert.False(t, markers.Has(100))

	// The marked ID is not treated as a gap on later runs
	calls := src.detailCalls
	_, err = job.Run(context.Background(), []string{"20250603"})
	require.NoError(t, err)
	assert.Equal(t, calls+1, src.detailCalls)
}

func TestVideoJobFailedDayIsSkipped(t *testing.T) {
	src := &fakeVideoSource{
		days:   map[string][]int{"20250604": {200}},
		detail: map[int]string{200: realDetailHTML(200)},
	}
	job := newVideoJob(t, src, VideoModeAuto)

	summary, err := job.Run(context.Background(), []string{"20250603", "20250604"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, []int{200}, job.CachedIDs())
}

func TestVideoJobSavesMarkersWhenCleanupFails(t *testing.T) {
	src := &fakeVideoSource{days: map[string][]int{}, detail: map[int]string{}}
	job := newVideoJob(t, src, VideoModeAuto)

	// A regular file where the html directory belongs makes the cleanup scan
	// fail after the main pass.
	space := job.Store.Space(src.Name())
	require.NoError(t, store.WriteText(filepath.Join(space.Dir(), "html"), "in the way"))

	_, err := job.Run(context.Background(), nil)
	assert.Error(t, err)
	assert.True(t, store.Exists(space.MarkerPath()))
}

func TestVideoJobCleanupPurgesEmptyHTML(t *testing.T) {
	src := &fakeVideoSource{days: map[string][]int{}, detail: map[int]string{}}
	job := newVideoJob(t, src, VideoModeAuto)

	// Seed a stale cache pair whose HTML is effectively empty
	require.NoError(t, store.WriteText(job.htmlPath(300), "<html><body> </body></html>"))
	require.NoError(t, store.WriteJSON(job.jsonPath(300), record.VideoRecord{DeliID: 300}))

	markers := store.LoadMarkers(job.Store.Space(src.Name()).MarkerPath())
	removed, err := job.Cleanup(markers)
	require.NoError(t, err)
	assert.Equal(t, []int{300}, removed)
	assert.False(t, store.Exists(job.htmlPath(300)))
	assert.False(t, store.Exists(job.jsonPath(300)))
	assert.True(t, markers.Has(300))
}
