package repository

import (
	"errors"
	"strings"
	"time"

	postdomain "blog-backend/internal/post/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormPostRepository implements PostRepository using GORM
type gormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based PostRepository
func NewGormPostRepository(db *gorm.DB) PostRepository {
	return &gormPostRepository{db: db}
}

func (r *gormPostRepository) Create(post *postdomain.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if err := r.db.Create(post).Error; err != nil {
		return err
	}
	return r.loadAuthor(post)
}

func (r *gormPostRepository) FindByID(id string) (*postdomain.Post, error) {
	var post postdomain.Post
	err := r.db.Preload("Author").Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *gormPostRepository) List(q postdomain.ListQuery) ([]*postdomain.Post, int64, error) {
	var posts []*postdomain.Post
	var total int64

	query := r.db.Model(&postdomain.Post{})

	// The count query and the page query share this predicate; building it
	// once keeps total_elements consistent with the returned page.
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(orderClause(q.Sort)).
		Offset(q.Skip).Limit(q.Limit).
		Preload("Author").
		Find(&posts).Error

	return posts, total, err
}

func (r *gormPostRepository) FindByAuthor(authorID string, skip, limit int) ([]*postdomain.Post, int64, error) {
	var posts []*postdomain.Post
	var total int64

	query := r.db.Model(&postdomain.Post{}).Where("author_id = ?", authorID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *gormPostRepository) Update(post *postdomain.Post) error {
	post.UpdatedAt = time.Now()
	result := r.db.Model(post).Updates(map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	// The row can vanish between the ownership read and this write; zero
	// affected rows means a concurrent delete won, and the operation
	// reports NotFound rather than succeeding against nothing.
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.loadAuthor(post)
}

func (r *gormPostRepository) Delete(id string) error {
	result := r.db.Delete(&postdomain.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormPostRepository) loadAuthor(post *postdomain.Post) error {
	var author postdomain.Author
	if err := r.db.Where("id = ?", post.AuthorID).First(&author).Error; err != nil {
		return err
	}
	post.Author = &author
	return nil
}

// escapeLike neutralizes LIKE metacharacters so the search term is matched
// literally: "100%" must match "100%", not every row containing "100".
// Postgres treats backslash as the escape character by default.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// orderClause maps a sort order onto a stable total order; id breaks
// created_at ties so consecutive page windows never overlap.
func orderClause(sort postdomain.SortOrder) string {
	switch sort {
	case postdomain.SortOldest:
		return "created_at ASC, id ASC"
	case postdomain.SortTitle:
		return "title ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}
