package search

import (
	"context"
	"iter"
)

// Service runs a search query and yields matching posts lazily.
// A sequence is finite and cannot be restarted; an error ends it.
type Service interface {
	Search(ctx context.Context, query string) iter.Seq2[Post, error]
}

// Static is an in-memory Service that serves a fixed list of posts
type Static struct {
	Posts []Post
	Err   error
}

// Search yields every post, then Err if it is set
func (s *Static) Search(ctx context.Context, query string) iter.Seq2[Post, error] {
	return func(yield func(Post, error) bool) {
		for _, p := range s.Posts {
			if err := ctx.Err(); err != nil {
				yield(Post{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if s.Err != nil {
			yield(Post{}, s.Err)
		}
	}
}
