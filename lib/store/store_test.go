package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xyjwsj/tweetgrab/lib/post"
	"github.com/xyjwsj/tweetgrab/lib/store"
	"github.com/ysmood/got"
)

func open(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "db", "posts.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveDedupes(t *testing.T) {
	g := got.T(t)
	ctx := context.Background()
	s := open(t)

	posted := time.Date(2026, 10, 13, 8, 30, 0, 0, time.UTC)
	p := post.Post{Text: "hello", Author: "me", PostedAt: posted, ScrapedAt: posted.Add(time.Hour)}

	inserted, err := s.Save(ctx, "#whatsapp", p)
	g.Nil(err)
	g.True(inserted)

	inserted, err = s.Save(ctx, "#other", post.Post{Text: "hello"})
	g.Nil(err)
	g.False(inserted)

	n, err := s.Count(ctx)
	g.Nil(err)
	g.Eq(n, 1)

	list, err := s.List(ctx, "#whatsapp")
	g.Nil(err)
	g.Len(list, 1)
	g.Eq(list[0].Author, "me")
	g.True(list[0].PostedAt.Equal(posted))
	g.True(list[0].ScrapedAt.Equal(posted.Add(time.Hour)))

	list, err = s.List(ctx, "#other")
	g.Nil(err)
	g.Len(list, 0)
}

func TestListOrderAndSink(t *testing.T) {
	g := got.T(t)
	ctx := context.Background()
	s := open(t)

	base := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	sink := s.Sink(ctx, "q")
	g.Nil(sink.Write(post.Post{Text: "second", ScrapedAt: base.Add(time.Minute)}))
	g.Nil(sink.Write(post.Post{Text: "first", ScrapedAt: base}))
	g.Nil(sink.Write(post.Post{Text: "first", ScrapedAt: base.Add(time.Hour)}))

	list, err := s.List(ctx, "")
	g.Nil(err)
	g.Len(list, 2)
	g.Eq(list[0].Text, "first")
	g.Eq(list[1].Text, "second")
	g.True(list[0].PostedAt.IsZero())
}

func TestReopenKeepsData(t *testing.T) {
	g := got.T(t)
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "posts.sqlite")

	s, err := store.Open(p)
	g.Nil(err)
	_, err = s.Save(ctx, "q", post.Post{Text: "kept"})
	g.Nil(err)
	g.Nil(s.Close())

	s, err = store.Open(p)
	g.Nil(err)
	defer func() { _ = s.Close() }()
	n, err := s.Count(ctx)
	g.Nil(err)
	g.Eq(n, 1)
}
