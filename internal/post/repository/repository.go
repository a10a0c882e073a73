package repository

import postdomain "blog-backend/internal/post/domain"

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create inserts a new post and loads its author for the response
	Create(post *postdomain.Post) error

	// FindByID finds a post by ID with its author joined, nil when absent
	FindByID(id string) (*postdomain.Post, error)

	// List returns one page of the public feed plus the total count of rows
	// matching the same search predicate
	List(q postdomain.ListQuery) ([]*postdomain.Post, int64, error)

	// FindByAuthor returns one page of an author's posts plus that author's
	// total post count
	FindByAuthor(authorID string, skip, limit int) ([]*postdomain.Post, int64, error)

	// Update persists title/content changes and reloads the author join
	Update(post *postdomain.Post) error

	// Delete permanently removes a post
	Delete(id string) error
}
