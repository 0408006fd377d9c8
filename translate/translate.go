// Package translate renders article titles into another language.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	translateapi "cloud.google.com/go/translate/apiv3"
	"cloud.google.com/go/translate/apiv3/translatepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/tschuyebuhl/opinion-scraper/cache"
)

var (
	ErrEmptyText        = errors.New("nothing to translate")
	ErrEmptyTranslation = errors.New("translation service returned no text")
)

const (
	SourceLanguage = "es"
	TargetLanguage = "en"
)

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type textClient interface {
	TranslateText(ctx context.Context, req *translatepb.TranslateTextRequest, opts ...gax.CallOption) (*translatepb.TranslateTextResponse, error)
	Close() error
}

// Google calls the Cloud Translation v3 API.
type Google struct {
	client textClient
	parent string
}

func NewGoogle(ctx context.Context, projectID, credentialsFile string) (*Google, error) {
	client, err := translateapi.NewTranslationClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create translation client: %w", err)
	}
	return newGoogle(client, projectID), nil
}

func newGoogle(client textClient, projectID string) *Google {
	return &Google{
		client: client,
		parent: fmt.Sprintf("projects/%s/locations/global", projectID),
	}
}

func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	resp, err := g.client.TranslateText(ctx, &translatepb.TranslateTextRequest{
		Parent:             g.parent,
		Contents:           []string{text},
		MimeType:           "text/plain",
		SourceLanguageCode: source,
		TargetLanguageCode: target,
	})
	if err != nil {
		return "", fmt.Errorf("translate %q: %w", text, err)
	}
	for _, t := range resp.GetTranslations() {
		if translated := strings.TrimSpace(t.GetTranslatedText()); translated != "" {
			return translated, nil
		}
	}
	return "", fmt.Errorf("translate %q: %w", text, ErrEmptyTranslation)
}

func (g *Google) Close() error {
	return g.client.Close()
}

// Memo translates each distinct text once and serves repeats from a cache.
// Failures are not cached.
type Memo struct {
	next  Translator
	cache cache.Cache[string]
}

func NewMemo(next Translator, c cache.Cache[string]) *Memo {
	return &Memo{next: next, cache: c}
}

func (m *Memo) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := source + ">" + target + ":" + text
	if translated, ok := m.cache.Get(key); ok {
		slog.Debug("translation cache hit", "text", text)
		return translated, nil
	}
	translated, err := m.next.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}
	m.cache.Put(key, translated)
	return translated, nil
}
