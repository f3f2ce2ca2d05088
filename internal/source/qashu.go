package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/scrape"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

// The list page moved to a new database at session 148; older sessions live
// under itdb_shitsumona.
const qaShuNewFormatSession = 148

// Progress-table column names mapped to record fields
var qaShuColumns = map[string]string{
	"国会回次":        "session_number",
	"国会区別":        "session_type",
	"質問番号":        "question_number",
	"質問件名":        "question_subject",
	"提出者名":        "submitter_name",
	"会派名":         "party_name",
	"質問主意書提出年月日":  "submitted_date",
	"内閣転送年月日":     "cabinet_transfer_date",
	"答弁延期通知受領年月日": "reply_delay_notice_date",
	"答弁延期期限年月日":   "reply_delay_deadline",
	"答弁書受領年月日":    "reply_received_date",
	"撤回年月日":       "withdrawal_date",
	"撤回通知年月日":     "withdrawal_notice_date",
}

// Layout divs stripped from body pages, old format and new format
var qaShuBodyDivClasses = map[string][2]string{
	"q": {"gh31divr", "gh21divr"},
	"a": {"gh32divr", "gh22divr"},
}

// Navigation link labels stripped from extracted body text
var qaShuNavLines = map[string]struct{}{
	"経過へ":        {},
	"質問本文(PDF)へ": {},
	"答弁本文(HTML)へ": {},
	"答弁本文(PDF)へ": {},
}

// QaShu harvests House of Representatives written questions. The site
// serves Shift-JIS.
type QaShu struct {
	client  *helpers.Client
	baseURL string
}

// NewQaShu creates the adapter; baseURL is the shugiin.go.jp internet root
func NewQaShu(client *helpers.Client, baseURL string) *QaShu {
	return &QaShu{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name returns the resource-space name
func (q *QaShu) Name() string {
	return "qa_shu"
}

// ListURL returns the question list page URL for one session
func (q *QaShu) ListURL(session int) string {
	dir := "itdb_shitsumon"
	if session < qaShuNewFormatSession {
		dir = "itdb_shitsumona"
	}
	return fmt.Sprintf("%s/%s.nsf/html/shitsumon/kaiji%03d_l.htm", q.baseURL, dir, session)
}

// FetchList retrieves and parses the question list table for one session
func (q *QaShu) FetchList(ctx context.Context, session int) (record.InquiryList, error) {
	pageURL := q.ListURL(session)
	html, err := q.client.GetDecoded(ctx, pageURL, "shift_jis", nil)
	if err != nil {
		return record.InquiryList{}, kerrors.NewFetch(q.Name(), "question list", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.InquiryList{}, kerrors.NewParse(q.Name(), "question list", err)
	}
	table := doc.Find("table#shitsumontable")
	if table.Length() == 0 {
		return record.InquiryList{}, kerrors.NewParse(q.Name(),
			fmt.Sprintf("question table not found for session %d", session), nil)
	}

	// Column positions come from the header row, not fixed offsets.
	colIdx := make(map[string]int)
	table.Find("th").Each(func(i int, th *goquery.Selection) {
		colIdx[scrape.CellText(th)] = i
	})

	list := record.InquiryList{Session: session, Source: pageURL}
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		cellText := func(key string) string {
			idx, ok := colIdx[key]
			if !ok || idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}
		cellHref := func(key string) string {
			idx, ok := colIdx[key]
			if !ok || idx >= cells.Length() {
				return ""
			}
			href, _ := cells.Eq(idx).Find("a").First().Attr("href")
			return resolveURL(pageURL, href)
		}

		number, err := strconv.Atoi(cellText("番号"))
		if err != nil {
			return
		}
		list.Items = append(list.Items, record.InquiryItem{
			Number:           number,
			Subject:          cellText("質問件名"),
			Submitter:        cellText("提出者氏名"),
			ProgressStatus:   cellText("経過状況"),
			ProgressLink:     cellHref("経過情報"),
			QuestionHTMLLink: cellHref("質問情報(HTML)"),
			AnswerHTMLLink:   cellHref("答弁情報(HTML)"),
		})
	})
	return list, nil
}

// FetchStatus retrieves the progress page of one question and derives its
// lifecycle status from the dated fields
func (q *QaShu) FetchStatus(ctx context.Context, session int, item record.InquiryItem) (record.InquiryStatus, error) {
	html, err := q.client.GetDecoded(ctx, item.ProgressLink, "shift_jis", nil)
	if err != nil {
		return record.InquiryStatus{}, kerrors.NewFetch(q.Name(), "progress page", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.InquiryStatus{}, kerrors.NewParse(q.Name(), "progress page", err)
	}
	table := doc.Find("div#mainlayout table")
	if table.Length() == 0 {
		return record.InquiryStatus{}, kerrors.NewParse(q.Name(),
			fmt.Sprintf("progress table not found for question %d", item.Number), nil)
	}

	fields := make(map[string]string)
	table.First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}
		key, ok := qaShuColumns[scrape.CellText(cells.Eq(0))]
		if !ok {
			return
		}
		fields[key] = strings.TrimSpace(cells.Eq(1).Text())
	})

	status := record.InquiryStatus{
		SessionNumber:        session,
		SessionType:          fields["session_type"],
		QuestionNumber:       item.Number,
		Subject:              fields["question_subject"],
		SubmitterName:        helpers.SubmitterName(fields["submitter_name"]),
		SubmitterCount:       helpers.SubmitterCount(fields["submitter_name"]),
		PartyName:            fields["party_name"],
		SubmittedDate:        helpers.ConvertEraDate(fields["submitted_date"]),
		CabinetTransferDate:  helpers.ConvertEraDate(fields["cabinet_transfer_date"]),
		ReplyDelayNoticeDate: helpers.ConvertEraDate(fields["reply_delay_notice_date"]),
		ReplyDelayDeadline:   helpers.ConvertEraDate(fields["reply_delay_deadline"]),
		ReplyReceivedDate:    helpers.ConvertEraDate(fields["reply_received_date"]),
		WithdrawalDate:       helpers.ConvertEraDate(fields["withdrawal_date"]),
		WithdrawalNoticeDate: helpers.ConvertEraDate(fields["withdrawal_notice_date"]),
	}
	if n, err := strconv.Atoi(fields["session_number"]); err == nil {
		status.SessionNumber = n
	}
	if n, err := strconv.Atoi(fields["question_number"]); err == nil {
		status.QuestionNumber = n
	}
	status.Status = status.Classify()
	return status, nil
}

// FetchBody retrieves a question or answer page and extracts its main text,
// dropping breadcrumbs, layout chrome and navigation links
func (q *QaShu) FetchBody(ctx context.Context, url, kind string) (string, error) {
	html, err := q.client.GetDecoded(ctx, url, "shift_jis", nil)
	if err != nil {
		return "", kerrors.NewFetch(q.Name(), "body page", err)
	}
	if scrape.IsInvalid(html, scrape.DefaultEmptyThreshold) {
		return "", kerrors.NewInvalidContent(q.Name(), url)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", kerrors.NewParse(q.Name(), "body page", err)
	}
	main := doc.Find("div#mainlayout")
	if main.Length() == 0 {
		return "", kerrors.NewInvalidContent(q.Name(), url)
	}

	main.Find("#breadcrumb, #TopContents").Remove()

	classes, ok := qaShuBodyDivClasses[kind]
	if !ok {
		return "", kerrors.NewParse(q.Name(), fmt.Sprintf("unknown body kind %q", kind), nil)
	}
	class := classes[1]
	if strings.Contains(url, "itdb_shitsumona.nsf") {
		class = classes[0]
	}
	// The first and third layout divs repeat the title block.
	divs := main.Find("div." + class)
	for _, idx := range []int{0, 2} {
		if idx < divs.Length() {
			divs.Eq(idx).Remove()
		}
	}

	return stripNavLines(scrape.TextLines(main)), nil
}

func stripNavLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if _, ok := qaShuNavLines[line]; ok {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
