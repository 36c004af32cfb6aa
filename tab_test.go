package tweetgrab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/ysmood/got"
	"go.uber.org/zap"
)

type fakeTab struct {
	calls      *[]string
	url        string
	loadedAt   time.Time
	waitErr    error
	elementErr error
}

func (f *fakeTab) Navigate(url string) error {
	*f.calls = append(*f.calls, "navigate "+url)
	return nil
}

func (f *fakeTab) WaitLoad() error {
	*f.calls = append(*f.calls, "wait load")
	f.loadedAt = time.Now()
	return nil
}

func (f *fakeTab) URL() string { return f.url }

func (f *fakeTab) Wait(js string, _ time.Duration) error {
	*f.calls = append(*f.calls, "wait "+js)
	return f.waitErr
}

func (f *fakeTab) Element(sel string, _ time.Duration) error {
	*f.calls = append(*f.calls, "element "+sel)
	return f.elementErr
}

func newTestSession(cfg *config.Config) *Session {
	return &Session{cfg: cfg, log: zap.NewNop()}
}

func siteCookies() []*proto.NetworkCookie {
	return []*proto.NetworkCookie{
		{Name: "auth_token", Value: "a", Domain: ".twitter.com", Path: "/", Secure: true, Session: true},
		{Name: "other", Value: "o", Domain: ".example.com", Path: "/"},
	}
}

func TestLoginDelayOrder(t *testing.T) {
	g := got.T(t)

	cfg := config.Default()
	cfg.LoginWait = 30 * time.Millisecond

	var calls []string
	tb := &fakeTab{calls: &calls, url: "https://twitter.com/home"}
	var gotAt time.Time
	store := &fakeStore{got: siteCookies(), calls: &calls}

	s := newTestSession(cfg)
	cookies, err := s.login(context.Background(), tb, recordTime(store, &gotAt))
	g.Nil(err)

	g.Eq(calls, []string{"navigate https://twitter.com/login", "wait load", "get cookies"})
	g.True(gotAt.Sub(tb.loadedAt) >= cfg.LoginWait)
	g.Len(cookies, 1)
	g.Eq(cookies[0].Name, "auth_token")
}

func TestLoginSelector(t *testing.T) {
	g := got.T(t)

	cfg := config.Default()
	cfg.LoginSelector = `[data-testid="SideNav_NewTweet_Button"]`

	var calls []string
	tb := &fakeTab{calls: &calls}
	s := newTestSession(cfg)

	_, err := s.login(context.Background(), tb, &fakeStore{calls: &calls})
	g.Nil(err)
	g.Eq(calls[2], "element "+cfg.LoginSelector)
	g.Eq(calls[3], "get cookies")

	calls = nil
	tb.elementErr = context.DeadlineExceeded
	_, err = s.login(context.Background(), tb, &fakeStore{calls: &calls})
	g.True(errors.Is(err, ErrLoginTimeout))
	g.Len(calls, 3)

	tb.elementErr = errors.New("target closed")
	_, err = s.login(context.Background(), tb, &fakeStore{})
	g.False(errors.Is(err, ErrLoginTimeout))
	g.Has(err.Error(), "target closed")
}

func TestLoginCanceled(t *testing.T) {
	g := got.T(t)

	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSession(config.Default()).login(ctx, &fakeTab{calls: &calls}, &fakeStore{calls: &calls})
	g.Eq(err, context.Canceled)
	g.Eq(calls, []string{"navigate https://twitter.com/login", "wait load"})
}

func TestRestoreOrder(t *testing.T) {
	g := got.T(t)

	var calls []string
	store := &fakeStore{calls: &calls}
	n, err := newTestSession(config.Default()).restore(&fakeTab{calls: &calls}, store, []jar.Cookie{
		{Name: "auth_token", Value: "a", Domain: ".twitter.com", Path: "/"},
	})
	g.Nil(err)
	g.Eq(n, 1)
	g.Eq(calls, []string{"navigate https://twitter.com", "wait load", "set cookies"})
}

func TestWaitReady(t *testing.T) {
	g := got.T(t)

	var calls []string
	tb := &fakeTab{calls: &calls}
	g.Nil(waitReady(context.Background(), tb, time.Second))
	g.Eq(calls, []string{"wait " + readyJS})

	tb.waitErr = context.DeadlineExceeded
	err := waitReady(context.Background(), tb, time.Second)
	g.True(errors.Is(err, ErrNotReady))
	g.Has(err.Error(), "1s")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g.False(errors.Is(waitReady(ctx, tb, time.Second), ErrNotReady))

	tb.waitErr = errors.New("execution context destroyed")
	g.False(errors.Is(waitReady(context.Background(), tb, time.Second), ErrNotReady))
}

func TestWaitItems(t *testing.T) {
	g := got.T(t)

	var calls []string
	tb := &fakeTab{calls: &calls}
	g.Nil(waitItems(context.Background(), tb, "article", time.Second))

	tb.elementErr = context.DeadlineExceeded
	g.True(errors.Is(waitItems(context.Background(), tb, "article", time.Second), ErrNoItems))
}

// recordTime wraps store so the moment cookies are read is kept in at.
func recordTime(store *fakeStore, at *time.Time) cookieStore {
	return timedStore{store, at}
}

type timedStore struct {
	*fakeStore
	at *time.Time
}

func (s timedStore) GetCookies() ([]*proto.NetworkCookie, error) {
	*s.at = time.Now()
	return s.fakeStore.GetCookies()
}
