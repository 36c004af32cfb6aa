// Package post holds scraped search results and the sinks they are written to.
package post

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Selectors used to pull structured fields out of a result's HTML. They are
// kept together because the site changes its markup often.
const (
	BodySelector      = `[data-testid="tweetText"], div[lang]`
	AuthorSelector    = `[data-testid="User-Name"]`
	TimeSelector      = `time[datetime]`
	PermalinkSelector = `a[href*="/status/"]`
)

// Post is one matched result element.
type Post struct {
	// Text is the visible text the browser renders for the element.
	Text string

	Body      string
	Author    string
	Permalink string
	PostedAt  time.Time
	ScrapedAt time.Time
}

// Key identifies a post by the hash of its visible text.
func (p Post) Key() string {
	sum := sha256.Sum256([]byte(p.Text))
	return hex.EncodeToString(sum[:])
}

// Parse builds a Post from the element's visible text and outer HTML. Fields
// that cannot be found are left empty. Relative permalinks are resolved
// against base.
func Parse(text, html, base string) Post {
	p := Post{Text: text, ScrapedAt: time.Now().UTC()}
	if strings.TrimSpace(html) == "" {
		return p
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return p
	}

	p.Body = collapse(doc.Find(BodySelector).First().Text())
	p.Author = collapse(doc.Find(AuthorSelector).First().Text())

	if dt, ok := doc.Find(TimeSelector).First().Attr("datetime"); ok {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			p.PostedAt = t.UTC()
		}
	}

	if href, ok := doc.Find(PermalinkSelector).First().Attr("href"); ok {
		p.Permalink = resolve(base, href)
	}

	return p
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Line renders text for a one-item-per-line file. Every line break becomes a
// single space; other spacing is kept.
func Line(text string) string {
	return lineBreaks.Replace(text)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolve(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" {
		return href
	}
	return b.ResolveReference(ref).String()
}
