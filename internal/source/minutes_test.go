package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMinutesServer serves a paginated meeting_list of n records and a meeting
// endpoint answering per issue ID
func newMinutesServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/meeting_list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("recordPacking"))
		pageSize, err := strconv.Atoi(r.URL.Query().Get("maximumRecords"))
		require.NoError(t, err)
		start, err := strconv.Atoi(r.URL.Query().Get("startRecord"))
		require.NoError(t, err)

		resp := map[string]any{}
		var records []map[string]string
		for i := start; i < start+pageSize && i <= n; i++ {
			records = append(records, map[string]string{"issueID": fmt.Sprintf("issue%03d", i)})
		}
		resp["meetingRecord"] = records
		if next := start + pageSize; next <= n {
			resp["nextRecordPosition"] = next
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/meeting", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("issueID")
		if id == "missing" {
			w.Write([]byte(`{"meetingRecord":[]}`))
			return
		}
		fmt.Fprintf(w, `{"meetingRecord":[{"issueID":%q,"date":"2025-06-03","nameOfHouse":"衆議院","nameOfMeeting":"本会議"}]}`, id)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestMinutesCollectIssueIDsPaginates(t *testing.T) {
	server := newMinutesServer(t, 230)
	m := NewMinutes(newTestClient(t), server.URL, 0)

	ids, err := m.CollectIssueIDs(context.Background(), map[string]string{"from": "2025-01-01"}, 0)
	require.NoError(t, err)
	assert.Len(t, ids, 230)
	assert.Equal(t, "issue001", ids[0])
	assert.Equal(t, "issue230", ids[229])
}

func TestMinutesCollectIssueIDsLimit(t *testing.T) {
	server := newMinutesServer(t, 230)
	m := NewMinutes(newTestClient(t), server.URL, 0)

	ids, err := m.CollectIssueIDs(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestMinutesFetchMeeting(t *testing.T) {
	server := newMinutesServer(t, 1)
	m := NewMinutes(newTestClient(t), server.URL, 0)

	body, err := m.FetchMeeting(context.Background(), "issue001")
	require.NoError(t, err)
	assert.Contains(t, string(body), `"issueID":"issue001"`)

	// An empty record set means the ID does not exist upstream
	_, err = m.FetchMeeting(context.Background(), "missing")
	assert.Error(t, err)
}
