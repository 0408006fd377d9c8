// Package runner drives sessions through fetch and translate, joins their
// results and runs the word frequency analysis over them.
package runner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tschuyebuhl/opinion-scraper/browser"
	"github.com/tschuyebuhl/opinion-scraper/data"
	"github.com/tschuyebuhl/opinion-scraper/scraper"
	"github.com/tschuyebuhl/opinion-scraper/translate"
	"github.com/tschuyebuhl/opinion-scraper/wordfreq"
)

type Fetcher interface {
	Fetch(ctx context.Context, page scraper.Page) ([]data.Article, []*data.ArticleError, error)
}

type Runner struct {
	Acquirer   browser.Acquirer
	Fetcher    Fetcher
	Translator translate.Translator
	Source     string
	Target     string
}

func New(acq browser.Acquirer, fetcher Fetcher, translator translate.Translator) *Runner {
	return &Runner{
		Acquirer:   acq,
		Fetcher:    fetcher,
		Translator: translator,
		Source:     translate.SourceLanguage,
		Target:     translate.TargetLanguage,
	}
}

// Result is the outcome of a whole run.
type Result struct {
	// Sessions holds one entry per capability, in capability order.
	Sessions []data.SessionResult
	// Articles are the translated articles of all sessions, first
	// occurrence of each URL only.
	Articles  []data.Article
	Frequency wordfreq.Table
}

// Run executes one session per capability concurrently and waits for all of
// them. A failing session never stops the others.
func (r *Runner) Run(ctx context.Context, capabilities []data.Capability) Result {
	sessions := make([]data.SessionResult, len(capabilities))

	var g errgroup.Group
	for i, c := range capabilities {
		g.Go(func() error {
			sessions[i] = r.RunSession(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	return Summarize(sessions)
}

// RunSession acquires a browser for capability, fetches the articles,
// releases the browser and translates the titles.
func (r *Runner) RunSession(ctx context.Context, capability data.Capability) data.SessionResult {
	res := data.SessionResult{Session: capability.Label()}
	start := time.Now()
	slog.Info("session starting", "session", res.Session)

	var articles []data.Article
	err := browser.With(ctx, r.Acquirer, capability, func(sess browser.Session) error {
		fetched, failures, err := r.Fetcher.Fetch(ctx, sess)
		res.Errors = append(res.Errors, failures...)
		if err != nil {
			return err
		}
		articles = fetched
		return nil
	})
	if err != nil {
		res.Err = err
		slog.Error("session failed", "session", res.Session, "error", err, "elapsed", time.Since(start))
		return res
	}

	for _, article := range articles {
		translated, err := r.Translator.Translate(ctx, article.Title, r.Source, r.Target)
		if err != nil {
			slog.Error("translation failed", "session", res.Session, "url", article.URL, "error", err)
			res.Errors = append(res.Errors, &data.ArticleError{URL: article.URL, Stage: data.StageTranslate, Err: err})
			continue
		}
		article.TranslatedTitle = translated
		res.Articles = append(res.Articles, article)
	}

	slog.Info("session finished", "session", res.Session,
		"articles", len(res.Articles), "errors", len(res.Errors), "elapsed", time.Since(start))
	return res
}

// Summarize merges session results and analyses the translated titles.
func Summarize(sessions []data.SessionResult) Result {
	articles := Merge(sessions)
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, a.TranslatedTitle)
	}
	return Result{
		Sessions:  sessions,
		Articles:  articles,
		Frequency: wordfreq.Analyze(titles),
	}
}

// Merge concatenates the sessions' articles in order, keeping the first
// article seen for each URL.
func Merge(sessions []data.SessionResult) []data.Article {
	var merged []data.Article
	seen := make(map[string]bool)
	for _, s := range sessions {
		for _, a := range s.Articles {
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			merged = append(merged, a)
		}
	}
	return merged
}

// Failed counts the sessions that produced nothing.
func (r Result) Failed() int {
	n := 0
	for _, s := range r.Sessions {
		if s.Failed() {
			n++
		}
	}
	return n
}
