package data

import (
	"errors"
	"fmt"
)

// ErrElementNotFound is returned when a locator matches nothing on a page.
var ErrElementNotFound = errors.New("element not found")

// Stage names the step of the pipeline an article failed in.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageTranslate Stage = "translate"
	StageImage     Stage = "image"
)

// ImageRef points at an article's cover image. URL is where it was found,
// Path is set once the image has been saved locally.
type ImageRef struct {
	URL  string
	Path string
}

func (r ImageRef) IsZero() bool {
	return r.URL == "" && r.Path == ""
}

func (r ImageRef) String() string {
	if r.Path != "" {
		return r.Path
	}
	return r.URL
}

// Article is one scraped opinion piece. TranslatedTitle stays empty until
// the title has been translated.
type Article struct {
	URL             string
	Title           string
	Body            string
	CoverImage      ImageRef
	TranslatedTitle string
}

// ArticleError ties a failure to the article it affected.
type ArticleError struct {
	URL   string
	Stage Stage
	Err   error
}

func (e *ArticleError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *ArticleError) Unwrap() error {
	return e.Err
}

// SessionResult is everything one browser session produced. Err is set when
// the session as a whole failed (acquisition or listing fetch).
type SessionResult struct {
	Session  string
	Articles []Article
	Errors   []*ArticleError
	Err      error
}

func (r SessionResult) Failed() bool {
	return r.Err != nil
}
