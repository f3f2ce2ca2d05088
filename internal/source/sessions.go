package source

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/record"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

var (
	sessionNumberPattern = regexp.MustCompile(`第(\d+)回（(.+?)）`)
	sessionEndPattern    = regexp.MustCompile(`(明治|大正|昭和|平成|令和)\s*(\d+|元)年\s*(\d+)月\s*(\d+)日`)
)

// Sessions harvests the Diet session calendar that indexes every sitting
// period. The page serves Shift-JIS.
type Sessions struct {
	client *helpers.Client
	url    string
}

// NewSessions creates the adapter for the calendar page URL
func NewSessions(client *helpers.Client, url string) *Sessions {
	return &Sessions{client: client, url: url}
}

// Name returns the resource-space name
func (s *Sessions) Name() string {
	return "session"
}

// FetchAll retrieves and parses the full session calendar
func (s *Sessions) FetchAll(ctx context.Context) ([]record.SessionEntry, error) {
	html, err := s.client.GetDecoded(ctx, s.url, "shift_jis", nil)
	if err != nil {
		return nil, kerrors.NewFetch(s.Name(), "session calendar", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kerrors.NewParse(s.Name(), "session calendar", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, kerrors.NewParse(s.Name(), "calendar table not found", nil)
	}

	var sessions []record.SessionEntry
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() != 6 {
			return
		}

		m := sessionNumberPattern.FindStringSubmatch(strings.TrimSpace(cells.Eq(0).Text()))
		if m == nil {
			return
		}
		number, _ := strconv.Atoi(m[1])

		// A dissolution row carries extra text around the end date.
		endText := strings.TrimSpace(cells.Eq(2).Text())
		dissolved := strings.Contains(endText, "解散")
		if dissolved {
			endText = sessionEndPattern.FindString(endText)
		}

		sessions = append(sessions, record.SessionEntry{
			SessionNumber: number,
			SessionType:   m[2],
			StartDate:     helpers.ConvertEraDate(cells.Eq(1).Text()),
			EndDate:       helpers.ConvertEraDate(endText),
			Dissolved:     dissolved,
			TotalDays:     helpers.ParseDays(cells.Eq(3).Text()),
			InitialDays:   helpers.ParseDays(cells.Eq(4).Text()),
			ExtensionDays: helpers.ParseDays(cells.Eq(5).Text()),
		})
	})
	return sessions, nil
}

// LatestSession returns the highest session number in the calendar, or 0
// when the calendar is empty
func LatestSession(entries []record.SessionEntry) int {
	latest := 0
	for _, e := range entries {
		if e.SessionNumber > latest {
			latest = e.SessionNumber
		}
	}
	return latest
}
