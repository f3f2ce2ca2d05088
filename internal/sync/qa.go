package sync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/scrape"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/logger"
	kerrors "jpdiet/kokkaiharvester/pkg/errors"
)

// QuestionSource is a written-question site adapter (one per house)
type QuestionSource interface {
	// Name is the resource-space name inside the cache tree
	Name() string
	// FetchList retrieves the question list page for one session
	FetchList(ctx context.Context, session int) (record.InquiryList, error)
	// FetchStatus retrieves the progress record of one question
	FetchStatus(ctx context.Context, session int, item record.InquiryItem) (record.InquiryStatus, error)
	// FetchBody retrieves a question ("q") or answer ("a") page as cleaned
	// text. It returns an invalid_content error for placeholder or empty
	// pages.
	FetchBody(ctx context.Context, url, kind string) (string, error)
}

// QuestionJob synchronizes one session's written questions: the list, each
// question's status JSON, and the question/answer body text
type QuestionJob struct {
	Source QuestionSource
	Store  *store.Store
	Log    *logger.Logger
	Delay  time.Duration
	Force  bool
	Limit  int
}

// Run harvests one session. Failure to obtain the list is fatal for the
// scope; per-question failures are logged and counted.
func (j *QuestionJob) Run(ctx context.Context, session int) (Summary, error) {
	list, err := j.Source.FetchList(ctx, session)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve question list for session %d: %w", session, err)
	}
	j.Log.Info().Int("session", session).Int("items", len(list.Items)).Msg("question list resolved")

	sp := j.Store.Space(j.Source.Name())
	scope := strconv.Itoa(session)
	if err := store.WriteJSON(sp.ListPath(scope), list); err != nil {
		return Summary{}, err
	}

	items := list.Items
	if j.Limit > 0 && len(items) > j.Limit {
		items = items[:j.Limit]
	}

	steps := make([]Step, 0, len(items))
	for _, item := range items {
		item := item
		steps = append(steps, Step{
			ID: fmt.Sprintf("%d/%d", session, item.Number),
			Do: func(ctx context.Context) (Outcome, error) {
				return j.processItem(ctx, sp, scope, session, item)
			},
		})
	}

	driver := NewDriver(j.Log, j.Delay)
	return driver.Run(ctx, steps), nil
}

// processItem applies the per-identifier decision to each sub-artifact of
// one question: status JSON, question body, answer body. Each is
// independently cacheable and independently skippable.
func (j *QuestionJob) processItem(ctx context.Context, sp store.Space, scope string, session int, item record.InquiryItem) (Outcome, error) {
	acted := false
	var firstErr error

	statusActed, err := j.syncStatus(ctx, sp, scope, session, item)
	acted = acted || statusActed
	if err != nil {
		firstErr = err
	}

	// Question before answer, always
	bodies := []struct{ kind, link string }{
		{"q", item.QuestionHTMLLink},
		{"a", item.AnswerHTMLLink},
	}
	for _, body := range bodies {
		bodyActed, err := j.syncBody(ctx, sp, scope, body.kind, item.Number, body.link)
		acted = acted || bodyActed
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return OutcomeErrored, firstErr
	}
	if acted {
		return OutcomeFetched, nil
	}
	return OutcomeSkipped, nil
}

// syncStatus refetches the progress record until it reaches the terminal
// 答弁受理 status; terminal records are immutable unless forced
func (j *QuestionJob) syncStatus(ctx context.Context, sp store.Space, scope string, session int, item record.InquiryItem) (bool, error) {
	if item.ProgressLink == "" {
		j.Log.Warn().Int("number", item.Number).Msg("no progress link, skipping status")
		return false, nil
	}
	path := sp.ArtifactPath(scope, "status", fmt.Sprintf("%d.json", item.Number))

	var existing record.InquiryStatus
	readErr := store.ReadJSON(path, &existing)
	exists := readErr == nil
	if !exists && store.Exists(path) {
		j.Log.Warn().Err(kerrors.NewCorruptCache(j.Source.Name(), path, readErr)).
			Msg("corrupt status cache, refetching")
	}

	if !Decide(exists, existing.Status.Terminal(), j.Force, false) {
		return false, nil
	}

	status, err := j.Source.FetchStatus(ctx, session, item)
	if err != nil {
		return true, err
	}
	if err := store.WriteJSON(path, status); err != nil {
		return true, kerrors.NewStore(j.Source.Name(), path, err)
	}
	return true, nil
}

// syncBody downloads a question or answer page once; the saved text is
// treated as immutable, except that cached placeholder content is purged
// and refetched
func (j *QuestionJob) syncBody(ctx context.Context, sp store.Space, scope, kind string, number int, link string) (bool, error) {
	if link == "" {
		return false, nil
	}
	path := sp.ArtifactPath(scope, kind, fmt.Sprintf("%d.md", number))

	if store.Exists(path) {
		text, err := store.ReadText(path)
		if err == nil && !scrape.IsPlaceholder(text) {
			return false, nil
		}
		j.Log.Info().Str("path", path).Msg("purging cached placeholder body")
		if err := store.Delete(path); err != nil {
			return false, err
		}
	}

	text, err := j.Source.FetchBody(ctx, link, kind)
	if err != nil {
		if kerrors.TypeOf(err) == kerrors.ErrorTypeInvalidContent {
			j.Log.Info().Str("url", link).Msg("body not ready upstream, not cached")
			return true, nil
		}
		return true, err
	}
	if err := store.WriteText(path, text); err != nil {
		return true, kerrors.NewStore(j.Source.Name(), path, err)
	}
	return true, nil
}
