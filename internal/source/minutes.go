package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/sync"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

// minutesPageSize is the maximumRecords value the API allows per list call
const minutesPageSize = 100

// Minutes is the adapter for the Diet minutes search API
// (kokkai.ndl.go.jp). Responses are JSON; pagination runs through
// nextRecordPosition.
type Minutes struct {
	client    *helpers.Client
	baseURL   string
	pageDelay time.Duration
}

// NewMinutes creates the adapter; pageDelay paces the list pagination calls
func NewMinutes(client *helpers.Client, baseURL string, pageDelay time.Duration) *Minutes {
	return &Minutes{client: client, baseURL: strings.TrimSuffix(baseURL, "/"), pageDelay: pageDelay}
}

// Name returns the resource-space name
func (m *Minutes) Name() string {
	return "minutes_api"
}

// CollectIssueIDs pages through meeting_list and returns the matching issue
// IDs, at most limit when limit > 0
func (m *Minutes) CollectIssueIDs(ctx context.Context, params map[string]string, limit int) ([]string, error) {
	query := map[string]string{
		"recordPacking":  "json",
		"maximumRecords": strconv.Itoa(minutesPageSize),
	}
	for k, v := range params {
		query[k] = v
	}

	var ids []string
	start := 1
	for {
		query["startRecord"] = strconv.Itoa(start)
		body, err := m.client.GetBytes(ctx, m.baseURL+"/meeting_list", query)
		if err != nil {
			return nil, kerrors.NewFetch(m.Name(), "meeting_list", err)
		}
		var resp struct {
			NextRecordPosition *int `json:"nextRecordPosition"`
			MeetingRecord      []struct {
				IssueID string `json:"issueID"`
			} `json:"meetingRecord"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, kerrors.NewParse(m.Name(), "meeting_list response", err)
		}
		for _, rec := range resp.MeetingRecord {
			ids = append(ids, rec.IssueID)
			if limit > 0 && len(ids) >= limit {
				return ids, nil
			}
		}
		if resp.NextRecordPosition == nil {
			break
		}
		start = *resp.NextRecordPosition
		if err := ctx.Err(); err != nil {
			return ids, err
		}
		sync.SleepFor(ctx, m.pageDelay)
	}
	return ids, nil
}

// FetchMeeting retrieves the full meeting record response for one issue ID.
// The raw response is returned so it can be cached verbatim.
func (m *Minutes) FetchMeeting(ctx context.Context, issueID string) ([]byte, error) {
	body, err := m.client.GetBytes(ctx, m.baseURL+"/meeting", map[string]string{
		"issueID":        issueID,
		"recordPacking":  "json",
		"maximumRecords": "1",
	})
	if err != nil {
		return nil, kerrors.NewFetch(m.Name(), "meeting "+issueID, err)
	}
	var resp record.MeetingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, kerrors.NewParse(m.Name(), "meeting response "+issueID, err)
	}
	if len(resp.MeetingRecord) == 0 {
		return nil, kerrors.NewParse(m.Name(), fmt.Sprintf("no meeting record for %s", issueID), nil)
	}
	return body, nil
}
