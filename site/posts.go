package site

import (
	"context"

	"socialblog/store"
)

// PostView is a post as the listing page shows it.
type PostView struct {
	Author     string
	Title      string
	Content    string
	DatePosted string
}

// PostLister supplies the posts for the home page, oldest first.
type PostLister interface {
	ListPosts(ctx context.Context) ([]PostView, error)
}

// StaticPosts is the fixed list shown before posts are stored.
type StaticPosts []PostView

func DefaultStaticPosts() StaticPosts {
	return StaticPosts{
		{
			Author:     "John Smith",
			Title:      "first post",
			Content:    "1st post content",
			DatePosted: "Jan 14 1996",
		},
		{
			Author:     "Jane Doe",
			Title:      "2nd post",
			Content:    "2nd post content",
			DatePosted: "Jan 14 1996",
		},
	}
}

func (s StaticPosts) ListPosts(context.Context) ([]PostView, error) {
	out := make([]PostView, len(s))
	copy(out, s)
	return out, nil
}

// StorePosts lists posts persisted through a PostStore.
type StorePosts struct {
	posts store.PostStore
}

func NewStorePosts(posts store.PostStore) *StorePosts {
	return &StorePosts{posts: posts}
}

func (s *StorePosts) ListPosts(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, PostView{
			Author:     p.Author.Username,
			Title:      p.Title,
			Content:    p.Content,
			DatePosted: p.DatePosted.Format(dateLayout),
		})
	}
	return views, nil
}

const dateLayout = "Jan 02 2006"
