package source

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/record"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

var deliIDPattern = regexp.MustCompile(`deli_id=(\d+)`)

// ShugiinTV harvests video session metadata from the House of
// Representatives streaming site. The site serves EUC-JP.
type ShugiinTV struct {
	client  *helpers.Client
	baseURL string
}

// NewShugiinTV creates the adapter; baseURL is the index.php endpoint
func NewShugiinTV(client *helpers.Client, baseURL string) *ShugiinTV {
	return &ShugiinTV{client: client, baseURL: baseURL}
}

// Name returns the resource-space name
func (s *ShugiinTV) Name() string {
	return "shugiintv"
}

// DetailURL returns the detail page URL for one deli_id
func (s *ShugiinTV) DetailURL(deliID int) string {
	return fmt.Sprintf("%s?ex=VL&deli_id=%d", s.baseURL, deliID)
}

// ListDeliIDs returns the deli_ids linked from one day's list page, deduped
// and sorted numerically. day is in YYYYMMDD form.
func (s *ShugiinTV) ListDeliIDs(ctx context.Context, day string) ([]int, error) {
	url := fmt.Sprintf("%s?ex=VL&u_day=%s", s.baseURL, day)
	html, err := s.client.GetDecoded(ctx, url, "euc-jp", nil)
	if err != nil {
		return nil, kerrors.NewFetch(s.Name(), "day list "+day, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kerrors.NewParse(s.Name(), "day list "+day, err)
	}

	seen := make(map[int]struct{})
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if m := deliIDPattern.FindStringSubmatch(href); m != nil {
			if id, err := strconv.Atoi(m[1]); err == nil {
				seen[id] = struct{}{}
			}
		}
	})
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// FetchDetailHTML downloads one video session's detail page as UTF-8 text
func (s *ShugiinTV) FetchDetailHTML(ctx context.Context, deliID int) (string, error) {
	html, err := s.client.GetDecoded(ctx, s.DetailURL(deliID), "euc-jp", nil)
	if err != nil {
		return "", kerrors.NewFetch(s.Name(), fmt.Sprintf("detail %d", deliID), err)
	}
	return html, nil
}

// ParseDetail extracts the meeting date, name, topics and speakers from a
// detail page
func (s *ShugiinTV) ParseDetail(html string, deliID int) (record.VideoRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.VideoRecord{}, kerrors.NewParse(s.Name(), fmt.Sprintf("detail %d", deliID), err)
	}

	rec := record.VideoRecord{
		DeliID:   deliID,
		URL:      s.DetailURL(deliID),
		Topics:   []string{},
		Speakers: []string{},
	}

	// Header table: key cells at offset 1, values at offset 3.
	doc.Find("#library table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		key := strings.TrimSpace(cells.Eq(1).Text())
		value := strings.TrimSpace(cells.Eq(3).Text())
		switch key {
		case "開会日":
			rec.DateTime = helpers.ConvertWesternDate(value)
		case "会議名":
			name, _, _ := strings.Cut(value, " (")
			rec.MeetingName = name
		}
	})

	// Topics live in the table whose first cell is 案件：.
	doc.Find("#library2 table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		found := false
		table.Find("td").Each(func(_ int, td *goquery.Selection) {
			if strings.TrimSpace(td.Text()) == "案件：" {
				found = true
			}
		})
		if !found {
			return true
		}
		table.Find("td").Each(func(_ int, td *goquery.Selection) {
			text := strings.TrimSpace(td.Text())
			if text != "" && text != "案件：" {
				rec.Topics = append(rec.Topics, text)
			}
		})
		return false
	})

	topicSet := make(map[string]struct{}, len(rec.Topics))
	for _, t := range rec.Topics {
		topicSet[t] = struct{}{}
	}

	speakerSet := make(map[string]struct{})
	doc.Find("#library2 table").Each(func(i int, table *goquery.Selection) {
		if i < 2 {
			return
		}
		table.Find("a.play_vod").Each(func(_ int, a *goquery.Selection) {
			if name := strings.TrimSpace(a.Text()); name != "" {
				speakerSet[name] = struct{}{}
			}
		})
	})
	doc.Find("#library2 table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		if text := strings.TrimSpace(cells.Eq(1).Text()); text != "" && strings.Contains(text, "（") {
			speakerSet[text] = struct{}{}
		}
	})
	for name := range speakerSet {
		if _, isTopic := topicSet[name]; !isTopic {
			rec.Speakers = append(rec.Speakers, name)
		}
	}
	sort.Strings(rec.Speakers)

	return rec, nil
}
