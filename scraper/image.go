package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

const (
	maxSlugRunes  = 50
	maxImageBytes = 20 << 20
)

// ImageSaver downloads cover images into Dir.
type ImageSaver struct {
	Dir    string
	Client data.HTTPRequester
}

func NewImageSaver(dir string, client data.HTTPRequester) *ImageSaver {
	return &ImageSaver{Dir: dir, Client: client}
}

// Save fetches imageURL and stores it under a name derived from articleURL,
// returning the saved path.
func (s *ImageSaver) Save(ctx context.Context, articleURL, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", BadRequest, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", BadRequest, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %s", BadStatus, imageURL, resp.Status)
	}
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", BadBody, err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	target := filepath.Join(s.Dir, Slug(articleURL)+ImageExtension(resp.Header.Get("Content-Type")))

	// sessions may save the same article at once, so write then rename
	tmp, err := os.CreateTemp(s.Dir, ".cover-*")
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	if _, err := tmp.Write(bodyBytes); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("save image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("save image: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("save image: %w", err)
	}
	slog.Debug("saved cover image", "url", imageURL, "path", target, "bytes", len(bodyBytes))
	return target, nil
}

// Slug names a saved image after the last path segment of its article.
func Slug(articleURL string) string {
	segment := articleURL
	if u, err := url.Parse(articleURL); err == nil {
		segment = path.Base(u.Path)
	}
	segment = strings.TrimSuffix(segment, ".html")
	segment = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, segment)
	if segment == "" || segment == "." || segment == "-" {
		return "cover"
	}
	if runes := []rune(segment); len(runes) > maxSlugRunes {
		segment = string(runes[:maxSlugRunes])
	}
	return segment
}

// ImageExtension picks a file extension for a Content-Type, defaulting to .jpg.
func ImageExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(contentType)
	}
	switch {
	case strings.Contains(mediaType, "png"):
		return ".png"
	case strings.Contains(mediaType, "gif"):
		return ".gif"
	case strings.Contains(mediaType, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
