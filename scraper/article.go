package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

const (
	// fallbackParagraphs bounds the body taken from <main> when the page has
	// no recognizable article container.
	fallbackParagraphs = 40
)

var bodyClass = regexp.MustCompile(`article_body|articulo|cuerpo`)

// ParseArticle extracts an article from the page source of pageURL. The
// title and body are required; a missing one yields data.ErrElementNotFound.
// The cover image is optional.
func ParseArticle(pageURL, source string) (data.Article, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return data.Article{}, fmt.Errorf("parse article url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return data.Article{}, fmt.Errorf("%w: %v", BadBody, err)
	}

	title := collapse(doc.Find("h1").First().Text())
	if title == "" {
		return data.Article{}, fmt.Errorf("%w: title (h1)", data.ErrElementNotFound)
	}
	body := extractBody(doc)
	if body == "" {
		return data.Article{}, fmt.Errorf("%w: article body", data.ErrElementNotFound)
	}

	return data.Article{
		URL:        pageURL,
		Title:      title,
		Body:       body,
		CoverImage: data.ImageRef{URL: coverImageURL(doc, base)},
	}, nil
}

func extractBody(doc *goquery.Document) string {
	container := doc.Find(`[itemprop="articleBody"]`).First()
	if container.Length() == 0 {
		container = doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			return bodyClass.MatchString(class)
		}).First()
	}
	if container.Length() > 0 {
		return joinParagraphs(container.Find("p"), 0)
	}
	if main := doc.Find("main").First(); main.Length() > 0 {
		return joinParagraphs(main.Find("p"), fallbackParagraphs)
	}
	return ""
}

func joinParagraphs(paragraphs *goquery.Selection, limit int) string {
	var parts []string
	paragraphs.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}
		if text := collapse(s.Text()); text != "" {
			parts = append(parts, text)
		}
		return true
	})
	return strings.Join(parts, "\n\n")
}

// coverImageURL prefers the OpenGraph image, then the first image inside the
// first figure, including lazily loaded ones.
func coverImageURL(doc *goquery.Document, base *url.URL) string {
	raw, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	if strings.TrimSpace(raw) == "" {
		img := doc.Find("figure").First().Find("img").First()
		raw, _ = img.Attr("src")
		if strings.TrimSpace(raw) == "" {
			raw, _ = img.Attr("data-src")
		}
	}
	return absolute(base, raw)
}

func absolute(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := base.Parse(raw)
	if err != nil {
		return ""
	}
	return u.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
