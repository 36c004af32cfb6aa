package tweetgrab

import (
	"context"

	"github.com/go-rod/rod/lib/utils"
	"github.com/xyjwsj/tweetgrab/lib/config"
	"github.com/xyjwsj/tweetgrab/lib/jar"
	"github.com/xyjwsj/tweetgrab/lib/post"
	"go.uber.org/zap"
)

// MustOpen is similar to Open.
func MustOpen(cfg *config.Config, log *zap.Logger, opts ...Option) *Session {
	s, err := Open(cfg, log, opts...)
	utils.E(err)
	return s
}

// MustLogin is similar to Session.Login.
func (s *Session) MustLogin(ctx context.Context) []jar.Cookie {
	cookies, err := s.Login(ctx)
	utils.E(err)
	return cookies
}

// MustRestore is similar to Session.Restore.
func (s *Session) MustRestore(ctx context.Context, cookies []jar.Cookie) int {
	n, err := s.Restore(ctx, cookies)
	utils.E(err)
	return n
}

// MustSearch is similar to Session.Search.
func (s *Session) MustSearch(ctx context.Context, emit func(post.Post)) int {
	n, err := s.Search(ctx, emit)
	utils.E(err)
	return n
}

// MustClose is similar to Session.Close.
func (s *Session) MustClose() {
	utils.E(s.Close())
}
