package usecase

import (
	postdomain "blog-backend/internal/post/domain"
	postdto "blog-backend/internal/post/dto"
)

// PostUsecase defines the interface for post business logic
type PostUsecase interface {
	// CreatePost creates a post owned by authorID
	CreatePost(authorID string, req *postdto.CreatePostRequest) (*postdomain.Post, error)

	// GetPostByID retrieves a single post with its author joined
	GetPostByID(id string) (*postdomain.Post, error)

	// ListPosts runs the public feed query: search, sort, page window
	ListPosts(q postdomain.ListQuery) ([]*postdomain.Post, int64, error)

	// ListMyPosts retrieves one page of the requester's own posts
	ListMyPosts(authorID string, skip, limit int) ([]*postdomain.Post, int64, error)

	// UpdatePost applies a partial patch after the ownership check
	UpdatePost(id, requesterID string, req *postdto.UpdatePostRequest) (*postdomain.Post, error)

	// DeletePost permanently removes a post after the ownership check
	DeletePost(id, requesterID string) error
}
