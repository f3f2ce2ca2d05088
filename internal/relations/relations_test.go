package relations

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/internal/sync"
	"jpdiet/kokkaiharvester/logger"
)

func writeMeeting(t *testing.T, st *store.Store, issueID, date, house, name string) {
	t.Helper()
	resp := record.MeetingResponse{MeetingRecord: []record.MeetingRecord{
		{IssueID: issueID, Date: date, NameOfHouse: house, NameOfMeeting: name},
	}}
	path := filepath.Join(st.Space(sync.MinutesSpace).Dir(), issueID+".json")
	require.NoError(t, store.WriteJSON(path, resp))
}

func writeVideo(t *testing.T, st *store.Store, video record.VideoRecord) {
	t.Helper()
	path := filepath.Join(st.Space("shugiintv").Dir(), "json", strconv.Itoa(video.DeliID)+".json")
	require.NoError(t, store.WriteJSON(path, video))
}

func TestBuildJoinsOnDateAndName(t *testing.T) {
	st := store.New(t.TempDir())
	log := logger.ForComponent("test")

	writeMeeting(t, st, "issueA", "2025-06-03", "衆議院", "法務委員会")
	writeMeeting(t, st, "issueB", "2025-06-03", "参議院", "法務委員会")
	writeMeeting(t, st, "issueC", "2025-06-04", "衆議院", "本会議")

	writeVideo(t, st, record.VideoRecord{DeliID: 55008, DateTime: "2025-06-03", MeetingName: "法務委員会"})
	writeVideo(t, st, record.VideoRecord{DeliID: 55012, DateTime: "2025-06-04", MeetingName: "本会議"})
	writeVideo(t, st, record.VideoRecord{DeliID: 55099, DateTime: "2025-06-05", MeetingName: "予算委員会"})

	rels, err := Build(st, log)
	require.NoError(t, err)

	require.Len(t, rels, 2)
	assert.Equal(t, record.Relation{Date: "2025-06-03", Name: "法務委員会", IssueID: "issueA", DeliID: 55008}, rels[0])
	assert.Equal(t, record.Relation{Date: "2025-06-04", Name: "本会議", IssueID: "issueC", DeliID: 55012}, rels[1])
}

func TestBuildEmptyCaches(t *testing.T) {
	st := store.New(t.TempDir())
	rels, err := Build(st, logger.ForComponent("test"))
	require.NoError(t, err)
	assert.Empty(t, rels)
}
