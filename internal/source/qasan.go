package source

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/scrape"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

var qaSanHeaderPattern = regexp.MustCompile(`第(\d+)回国会（(.+?)）`)

// QaSan harvests House of Councillors written questions. The site serves
// UTF-8; rows come in groups of three (title, HTML links, PDF links).
type QaSan struct {
	client  *helpers.Client
	baseURL string
}

// NewQaSan creates the adapter; baseURL is the sangiin.go.jp root
func NewQaSan(client *helpers.Client, baseURL string) *QaSan {
	return &QaSan{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name returns the resource-space name
func (q *QaSan) Name() string {
	return "qa_san"
}

// ListURL returns the question list page URL for one session
func (q *QaSan) ListURL(session int) string {
	return fmt.Sprintf("%s/japanese/joho1/kousei/syuisyo/%d/syuisyo.htm", q.baseURL, session)
}

// FetchList retrieves and parses the question list for one session
func (q *QaSan) FetchList(ctx context.Context, session int) (record.InquiryList, error) {
	pageURL := q.ListURL(session)
	html, err := q.client.GetDecoded(ctx, pageURL, "utf-8", nil)
	if err != nil {
		return record.InquiryList{}, kerrors.NewFetch(q.Name(), "question list", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.InquiryList{}, kerrors.NewParse(q.Name(), "question list", err)
	}
	table := doc.Find("table.list_c").First()
	if table.Length() == 0 {
		return record.InquiryList{}, kerrors.NewParse(q.Name(),
			fmt.Sprintf("question table not found for session %d", session), nil)
	}

	list := record.InquiryList{Session: session, Source: pageURL}
	rows := table.Find("tr")
	for i := 0; i+2 < rows.Length(); i += 3 {
		header, htmlRow, pdfRow := rows.Eq(i), rows.Eq(i+1), rows.Eq(i+2)

		titleLink := header.Find("a.Graylink").First()
		subject := strings.TrimSpace(titleLink.Text())
		progressHref, _ := titleLink.Attr("href")

		cells := htmlRow.Find("th, td")
		number, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			continue
		}
		submitter := ""
		if cells.Length() > 2 {
			submitter = strings.TrimSpace(cells.Eq(2).Text())
		}

		item := record.InquiryItem{
			Number:       number,
			Subject:      subject,
			Submitter:    submitter,
			ProgressLink: resolveURL(pageURL, progressHref),
		}
		htmlRow.AddSelection(pdfRow).Find("a").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			switch strings.TrimSpace(a.Text()) {
			case "質問本文（html）":
				item.QuestionHTMLLink = resolveURL(pageURL, href)
			case "質問本文（PDF）":
				item.QuestionPDFLink = resolveURL(pageURL, href)
			case "答弁本文（html）":
				item.AnswerHTMLLink = resolveURL(pageURL, href)
			case "答弁本文（PDF）":
				item.AnswerPDFLink = resolveURL(pageURL, href)
			}
		})
		list.Items = append(list.Items, item)
	}
	return list, nil
}

// FetchStatus retrieves the progress page of one question and derives its
// lifecycle status from the dated fields
func (q *QaSan) FetchStatus(ctx context.Context, session int, item record.InquiryItem) (record.InquiryStatus, error) {
	html, err := q.client.GetDecoded(ctx, item.ProgressLink, "utf-8", nil)
	if err != nil {
		return record.InquiryStatus{}, kerrors.NewFetch(q.Name(), "progress page", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.InquiryStatus{}, kerrors.NewParse(q.Name(), "progress page", err)
	}
	tables := doc.Find("table.list_c")
	if tables.Length() == 0 {
		return record.InquiryStatus{}, kerrors.NewParse(q.Name(),
			fmt.Sprintf("progress tables not found for question %d", item.Number), nil)
	}

	status := record.InquiryStatus{
		SessionNumber:  session,
		QuestionNumber: item.Number,
		Subject:        item.Subject,
	}
	if m := qaSanHeaderPattern.FindStringSubmatch(strings.TrimSpace(doc.Find("p.exp").First().Text())); m != nil {
		status.SessionNumber, _ = strconv.Atoi(m[1])
		status.SessionType = m[2]
	}

	// Key/value cells alternate inside each table row.
	tables.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		for i := 0; i+1 < cells.Length(); i += 2 {
			key := scrape.CellText(cells.Eq(i))
			value := strings.TrimSpace(cells.Eq(i + 1).Text())
			switch key {
			case "件名":
				status.Subject = value
			case "提出回次":
				if n, err := strconv.Atoi(strings.TrimSuffix(value, "回")); err == nil {
					status.SessionNumber = n
				}
			case "提出番号":
				if n, err := strconv.Atoi(value); err == nil {
					status.QuestionNumber = n
				}
			case "提出日":
				status.SubmittedDate = helpers.ConvertEraDate(value)
			case "提出者":
				status.SubmitterName = helpers.SubmitterName(scrape.CellText(cells.Eq(i + 1)))
				status.SubmitterCount = helpers.SubmitterCount(value)
			case "転送日":
				status.CabinetTransferDate = helpers.ConvertEraDate(value)
			case "答弁書受領日":
				status.ReplyReceivedDate = helpers.ConvertEraDate(value)
			}
		}
	})
	status.Status = status.Classify()
	return status, nil
}

// FetchBody retrieves a question or answer page and extracts its text
func (q *QaSan) FetchBody(ctx context.Context, url, kind string) (string, error) {
	html, err := q.client.GetDecoded(ctx, url, "utf-8", nil)
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
	return scrape.TextLines(doc.Selection), nil
}
