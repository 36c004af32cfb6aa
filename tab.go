package tweetgrab

import (
	"time"

	"github.com/go-rod/rod"
)

// tab is the part of a page the login, restore and search flows drive.
type tab interface {
	Navigate(url string) error
	WaitLoad() error
	// URL is the current address, empty when it cannot be read.
	URL() string
	// Wait blocks until js returns true or timeout passes.
	Wait(js string, timeout time.Duration) error
	// Element blocks until sel matches or timeout passes.
	Element(sel string, timeout time.Duration) error
}

type rodTab struct {
	page *rod.Page
}

func (t rodTab) Navigate(url string) error { return t.page.Navigate(url) }

func (t rodTab) WaitLoad() error { return t.page.WaitLoad() }

func (t rodTab) URL() string {
	info, err := t.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (t rodTab) Wait(js string, timeout time.Duration) error {
	return t.page.Timeout(timeout).Wait(rod.Eval(js))
}

func (t rodTab) Element(sel string, timeout time.Duration) error {
	_, err := t.page.Timeout(timeout).Element(sel)
	return err
}
