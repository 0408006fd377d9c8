package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

const listingURL = "https://elpais.com/opinion/"

const listingHTML = `<html><body>
<header><a href="/opinion/2024-05-01/not-a-headline.html">nav</a></header>
<main>
  <article><h2><a href="/opinion/2024-05-01/la-crisis-de-la-vivienda.html">La crisis de la vivienda</a></h2></article>
  <article><h2><a href="https://elpais.com/opinion/2024-05-01/la-crisis-de-la-vivienda.html#comentarios">dup</a></h2></article>
  <article><h3><a href="https://elpais.com/opinion/2024-05-02/europa-ante-las-urnas.html">Europa ante las urnas</a></h3></article>
  <article><h2><a href="https://elpais.com/espana/2024-05-02/politica.html">other section</a></h2></article>
  <article><h2><a href="https://other.example/opinion/2024-05-02/x.html">other site</a></h2></article>
  <article><h2><a href="/opinion/editoriales/">section index</a></h2></article>
  <article><h2><span><a href="//elpais.com/opinion/2024-05-03/el-futuro-del-clima.html">El futuro del clima</a></span></h2></article>
  <article><h3><a href="/opinion/2024-05-04/la-economia-crece.html">La economía crece</a></h3></article>
  <article><h3><a href="/opinion/2024-05-05/cartas-al-director.html">Cartas</a></h3></article>
  <article><h3><a href="/opinion/2024-05-06/sexta.html">Sexta</a></h3></article>
  <article><h2><a href="mailto:opinion@elpais.es">mail</a></h2></article>
</main>
</body></html>`

func articleHTML(title, image string) string {
	meta := ""
	if image != "" {
		meta = fmt.Sprintf(`<meta property="og:image" content="%s">`, image)
	}
	return fmt.Sprintf(`<html><head>%s</head><body><main>
<h1> %s </h1>
<div itemprop="articleBody"><p>Primer párrafo.</p><p></p><p>Segundo   párrafo.</p></div>
</main></body></html>`, meta, title)
}

// fakePage serves canned page sources keyed by URL.
type fakePage struct {
	name    string
	pages   map[string]string
	current string
	visited []string
	navErr  map[string]error
}

func (p *fakePage) Name() string { return p.name }

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.visited = append(p.visited, url)
	if err := p.navErr[url]; err != nil {
		return err
	}
	p.current = url
	return nil
}

func (p *fakePage) PageSource(context.Context) (string, error) {
	src, ok := p.pages[p.current]
	if !ok {
		return "", errors.New("404")
	}
	return src, nil
}

func (p *fakePage) WaitFor(_ context.Context, css string, timeout time.Duration) error {
	src := p.pages[p.current]
	var found bool
	switch css {
	case TitleLocator:
		found = strings.Contains(src, "<h1")
	case HeadlineLocator:
		found = strings.Contains(src, "<h2") || strings.Contains(src, "<h3")
	default:
		found = strings.Contains(src, css)
	}
	if !found {
		return fmt.Errorf("%w: %q within %s", data.ErrElementNotFound, css, timeout)
	}
	return nil
}
