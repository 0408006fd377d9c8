package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

var (
	NoArticles = errors.New("no article links found on listing page")
	BadRequest = errors.New("error during get")
	BadStatus  = errors.New("unexpected status")
	BadBody    = errors.New("cannot parse body")
)

const (
	MaxArticles = 5

	// HeadlineLocator matches the headline links on a listing page.
	HeadlineLocator = "h2 a, h3 a"
	TitleLocator    = "h1"

	DefaultWaitTimeout = 15 * time.Second
)

// Page is the part of a browser session the fetcher drives.
type Page interface {
	Name() string
	Navigate(ctx context.Context, url string) error
	PageSource(ctx context.Context) (string, error)
	WaitFor(ctx context.Context, css string, timeout time.Duration) error
}

// Fetcher pulls the first articles of a listing page through a browser.
type Fetcher struct {
	ListingURL  string
	Limit       int
	WaitTimeout time.Duration
	// Images saves cover images locally when set.
	Images *ImageSaver
}

func NewFetcher(listingURL string, images *ImageSaver) *Fetcher {
	return &Fetcher{
		ListingURL:  listingURL,
		Limit:       MaxArticles,
		WaitTimeout: DefaultWaitTimeout,
		Images:      images,
	}
}

/*
Fetch - a high level overview: open the listing, wait for its headlines,
collect up to Limit article links, then visit each one and extract it.
A listing failure fails the whole fetch. A failing article is recorded and
skipped, and so is a failing image download, which keeps the article.
*/
func (f *Fetcher) Fetch(ctx context.Context, page Page) ([]data.Article, []*data.ArticleError, error) {
	slog.Info("opening listing", "session", page.Name(), "url", f.ListingURL)

	links, err := f.listing(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("found article links", "session", page.Name(), "count", len(links))

	var (
		articles []data.Article
		failures []*data.ArticleError
	)
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return articles, failures, err
		}

		slog.Info("scraping article", "session", page.Name(), "url", link)
		article, err := f.article(ctx, page, link)
		if err != nil {
			slog.Error("article failed", "session", page.Name(), "url", link, "error", err)
			failures = append(failures, &data.ArticleError{URL: link, Stage: data.StageFetch, Err: err})
			continue
		}

		if f.Images != nil && article.CoverImage.URL != "" {
			path, err := f.Images.Save(ctx, link, article.CoverImage.URL)
			if err != nil {
				slog.Error("cover image download failed", "session", page.Name(), "url", article.CoverImage.URL, "error", err)
				failures = append(failures, &data.ArticleError{URL: link, Stage: data.StageImage, Err: err})
			} else {
				article.CoverImage.Path = path
			}
		}
		articles = append(articles, article)
	}
	return articles, failures, nil
}

func (f *Fetcher) listing(ctx context.Context, page Page) ([]string, error) {
	if err := page.Navigate(ctx, f.ListingURL); err != nil {
		return nil, err
	}
	if err := page.WaitFor(ctx, HeadlineLocator, f.waitTimeout()); err != nil {
		return nil, fmt.Errorf("listing %s: %w", f.ListingURL, err)
	}
	src, err := page.PageSource(ctx)
	if err != nil {
		return nil, err
	}
	links, err := FindArticleLinks(strings.NewReader(src), f.ListingURL, f.limit())
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: %s", NoArticles, f.ListingURL)
	}
	return links, nil
}

func (f *Fetcher) article(ctx context.Context, page Page, link string) (data.Article, error) {
	if err := page.Navigate(ctx, link); err != nil {
		return data.Article{}, err
	}
	if err := page.WaitFor(ctx, TitleLocator, f.waitTimeout()); err != nil {
		return data.Article{}, err
	}
	src, err := page.PageSource(ctx)
	if err != nil {
		return data.Article{}, err
	}
	return ParseArticle(link, src)
}

func (f *Fetcher) limit() int {
	if f.Limit <= 0 || f.Limit > MaxArticles {
		return MaxArticles
	}
	return f.Limit
}

func (f *Fetcher) waitTimeout() time.Duration {
	if f.WaitTimeout <= 0 {
		return DefaultWaitTimeout
	}
	return f.WaitTimeout
}
