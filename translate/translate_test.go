package translate

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/translate/apiv3/translatepb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tschuyebuhl/opinion-scraper/cache"
)

type fakeClient struct {
	requests []*translatepb.TranslateTextRequest
	resp     *translatepb.TranslateTextResponse
	err      error
	closed   bool
}

func (f *fakeClient) TranslateText(_ context.Context, req *translatepb.TranslateTextRequest, _ ...gax.CallOption) (*translatepb.TranslateTextResponse, error) {
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestGoogleTranslate(t *testing.T) {
	client := &fakeClient{resp: &translatepb.TranslateTextResponse{
		Translations: []*translatepb.Translation{{TranslatedText: " The housing crisis "}},
	}}
	g := newGoogle(client, "opinion-translate")

	got, err := g.Translate(context.Background(), "La crisis de la vivienda", SourceLanguage, TargetLanguage)
	require.NoError(t, err)
	assert.Equal(t, "The housing crisis", got)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "projects/opinion-translate/locations/global", req.GetParent())
	assert.Equal(t, []string{"La crisis de la vivienda"}, req.GetContents())
	assert.Equal(t, "text/plain", req.GetMimeType())
	assert.Equal(t, "es", req.GetSourceLanguageCode())
	assert.Equal(t, "en", req.GetTargetLanguageCode())

	require.NoError(t, g.Close())
	assert.True(t, client.closed)
}

func TestGoogleTranslateFailures(t *testing.T) {
	quota := errors.New("rpc error: code = ResourceExhausted")
	g := newGoogle(&fakeClient{err: quota}, "p")
	_, err := g.Translate(context.Background(), "Hola", SourceLanguage, TargetLanguage)
	assert.ErrorIs(t, err, quota)

	g = newGoogle(&fakeClient{resp: &translatepb.TranslateTextResponse{}}, "p")
	_, err = g.Translate(context.Background(), "Hola", SourceLanguage, TargetLanguage)
	assert.ErrorIs(t, err, ErrEmptyTranslation)

	client := &fakeClient{}
	g = newGoogle(client, "p")
	_, err = g.Translate(context.Background(), "  ", SourceLanguage, TargetLanguage)
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, client.requests, "blank text never reaches the API")
}

type countingTranslator struct {
	calls int
	err   error
}

func (c *countingTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "EN " + text, nil
}

func TestMemo(t *testing.T) {
	next := &countingTranslator{}
	m := NewMemo(next, cache.NewInMemoryCache[string]())

	for i := 0; i < 3; i++ {
		got, err := m.Translate(context.Background(), "Hola", "es", "en")
		require.NoError(t, err)
		assert.Equal(t, "EN Hola", got)
	}
	assert.Equal(t, 1, next.calls)

	_, err := m.Translate(context.Background(), "Hola", "es", "fr")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "language pair is part of the key")
}

func TestMemoDoesNotCacheFailures(t *testing.T) {
	next := &countingTranslator{err: errors.New("quota")}
	m := NewMemo(next, cache.NewInMemoryCache[string]())

	_, err := m.Translate(context.Background(), "Hola", "es", "en")
	assert.Error(t, err)
	next.err = nil
	got, err := m.Translate(context.Background(), "Hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "EN Hola", got)
	assert.Equal(t, 2, next.calls)
}
