package post

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

type csvRow struct {
	Key       string `csv:"key"`
	Author    string `csv:"author"`
	PostedAt  string `csv:"posted_at"`
	Permalink string `csv:"permalink"`
	Body      string `csv:"body"`
	Text      string `csv:"text"`
	ScrapedAt string `csv:"scraped_at"`
}

// WriteCSV writes posts with a header row.
func WriteCSV(w io.Writer, posts []Post) error {
	rows := make([]*csvRow, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, &csvRow{
			Key:       p.Key(),
			Author:    p.Author,
			PostedAt:  formatTime(p.PostedAt),
			Permalink: p.Permalink,
			Body:      p.Body,
			Text:      p.Text,
			ScrapedAt: formatTime(p.ScrapedAt),
		})
	}
	return gocsv.Marshal(rows, w)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
