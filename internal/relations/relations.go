// Package relations joins cached minutes records to cached Shugiin TV video
// records on meeting date and name.
package relations

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/internal/sync"
	"jpdiet/kokkaiharvester/logger"
)

type meetingKey struct {
	date string
	name string
}

// Build scans both caches and returns one relation per video record whose
// (date, meeting name) pair matches a House of Representatives minutes
// record. Unmatched videos are logged and skipped.
func Build(st *store.Store, log *logger.Logger) ([]record.Relation, error) {
	minutes, err := loadMinutes(st)
	if err != nil {
		return nil, err
	}
	log.Info().Int("meetings", len(minutes)).Msg("minutes cache indexed")

	relations := []record.Relation{}
	videoDir := filepath.Join(st.Space("shugiintv").Dir(), "json")
	entries, err := os.ReadDir(videoDir)
	if err != nil {
		if os.IsNotExist(err) {
			return relations, nil
		}
		return nil, err
	}
	unmatched := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var video record.VideoRecord
		if err := store.ReadJSON(filepath.Join(videoDir, entry.Name()), &video); err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("unreadable video record, skipping")
			continue
		}
		key := meetingKey{date: videoDate(video.DateTime), name: video.MeetingName}
		issueID, ok := minutes[key]
		if !ok {
			unmatched++
			continue
		}
		relations = append(relations, record.Relation{
			Date:    key.date,
			Name:    key.name,
			IssueID: issueID,
			DeliID:  video.DeliID,
		})
	}
	if unmatched > 0 {
		log.Info().Int("count", unmatched).Msg("videos without a matching minutes record")
	}

	sort.Slice(relations, func(i, j int) bool {
		return relations[i].DeliID < relations[j].DeliID
	})
	return relations, nil
}

// loadMinutes indexes cached meeting records of the House of Representatives
// by (date, meeting name)
func loadMinutes(st *store.Store) (map[meetingKey]string, error) {
	dir := st.Space(sync.MinutesSpace).Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[meetingKey]string{}, nil
		}
		return nil, err
	}
	minutes := make(map[meetingKey]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var resp record.MeetingResponse
		if err := store.ReadJSON(filepath.Join(dir, entry.Name()), &resp); err != nil {
			continue
		}
		for _, rec := range resp.MeetingRecord {
			if rec.NameOfHouse != "衆議院" {
				continue
			}
			minutes[meetingKey{date: rec.Date, name: rec.NameOfMeeting}] = rec.IssueID
		}
	}
	return minutes, nil
}

// videoDate reduces a video's date_time to its date part
func videoDate(dateTime string) string {
	if len(dateTime) >= 10 {
		return dateTime[:10]
	}
	return dateTime
}
