package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/logger"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

// MinutesSpace is the resource-space name of the minutes API cache
const MinutesSpace = "minutes_api"

// MinutesAPI is the Diet minutes search API adapter
type MinutesAPI interface {
	// CollectIssueIDs pages through the meeting_list endpoint and returns
	// the matching issue IDs, at most limit when limit > 0
	CollectIssueIDs(ctx context.Context, params map[string]string, limit int) ([]string, error)
	// FetchMeeting retrieves the full meeting record response for one issue
	FetchMeeting(ctx context.Context, issueID string) ([]byte, error)
}

// MinutesJob downloads meeting records keyed by issueID, skipping IDs that
// are already cached
type MinutesJob struct {
	API       MinutesAPI
	Store     *store.Store
	Log       *logger.Logger
	Delay     time.Duration
	Overwrite bool
	Limit     int
}

// Run collects issue IDs for the search params and downloads each record.
// Failure to resolve the ID list is fatal; per-issue failures are counted.
func (j *MinutesJob) Run(ctx context.Context, params map[string]string) (Summary, error) {
	ids, err := j.API.CollectIssueIDs(ctx, params, j.Limit)
	if err != nil {
		return Summary{}, fmt.Errorf("collect issue IDs: %w", err)
	}
	j.Log.Info().Int("hits", len(ids)).Msg("issue IDs collected")

	dir := j.Store.Space(MinutesSpace).Dir()
	steps := make([]Step, 0, len(ids))
	for _, id := range ids {
		id := id
		steps = append(steps, Step{
			ID: id,
			Do: func(ctx context.Context) (Outcome, error) {
				path := filepath.Join(dir, id+".json")
				if !j.Overwrite && store.Exists(path) {
					return OutcomeSkipped, nil
				}
				data, err := j.API.FetchMeeting(ctx, id)
				if err != nil {
					return OutcomeErrored, err
				}
				if err := store.WriteRawJSON(path, data); err != nil {
					return OutcomeErrored, kerrors.NewStore(MinutesSpace, id, err)
				}
				return OutcomeFetched, nil
			},
		})
	}

	driver := NewDriver(j.Log, j.Delay)
	return driver.Run(ctx, steps), nil
}

// DefaultDateRange infers the search window when no parameters are given:
// from the newest cached meeting date through today. With an empty cache it
// starts from 1900-01-01.
func (j *MinutesJob) DefaultDateRange(now time.Time) (string, string) {
	latest := "1900-01-01"
	dir := j.Store.Space(MinutesSpace).Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return latest, now.Format("2006-01-02")
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var resp record.MeetingResponse
		if err := store.ReadJSON(filepath.Join(dir, entry.Name()), &resp); err != nil {
			continue
		}
		if len(resp.MeetingRecord) > 0 && resp.MeetingRecord[0].Date > latest {
			latest = resp.MeetingRecord[0].Date
		}
	}
	return latest, now.Format("2006-01-02")
}
