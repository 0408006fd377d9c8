package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// FindArticleLinks walks a listing page and returns the article links found
// in its h2/h3 headlines, in page order and without duplicates. Only links
// on the listing's site, under the listing's section path and ending in
// .html are kept. A limit of zero or less keeps them all.
func FindArticleLinks(body io.Reader, listingURL string, limit int) ([]string, error) {
	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}
	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", BadBody, err)
	}

	var links []string
	seen := make(map[string]bool)

	var f func(n *html.Node, inHeadline bool)
	f = func(n *html.Node, inHeadline bool) {
		if limit > 0 && len(links) >= limit {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2", "h3":
				inHeadline = true
			case "a":
				if inHeadline {
					if link, ok := articleLink(base, attr(n, "href")); ok && !seen[link] {
						seen[link] = true
						links = append(links, link)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c, inHeadline)
		}
	}
	f(doc, false)
	return links, nil
}

func articleLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	link, err := base.Parse(href)
	if err != nil {
		return "", false
	}
	if link.Scheme != "http" && link.Scheme != "https" {
		return "", false
	}
	if !sameSite(link.Hostname(), base.Hostname()) {
		return "", false
	}
	if section := strings.TrimSuffix(base.Path, "/"); section != "" && !strings.Contains(link.Path, section+"/") {
		return "", false
	}
	if !strings.HasSuffix(link.Path, ".html") {
		return "", false
	}
	link.Fragment = ""
	return link.String(), true
}

func sameSite(host, site string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	site = strings.TrimPrefix(strings.ToLower(site), "www.")
	return host == site || strings.HasSuffix(host, "."+site)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
