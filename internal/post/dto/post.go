package dto

import (
	"strconv"
	"strings"
	"unicode/utf8"

	postdomain "blog-backend/internal/post/domain"
	"blog-backend/pkg/apperror"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxPageSize  = 100

	minTitleLen   = 3
	minContentLen = 10
)

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=3"`
	Content string `json:"content" binding:"required"`
}

// Validate enforces the content rule the binder cannot express: at least
// ten characters once markup is removed.
func (r *CreatePostRequest) Validate() error {
	if plainTextLen(r.Content) < minContentLen {
		return apperror.NewValidation("", apperror.FieldError{
			Field:   "content",
			Message: "Content is required and must be at least 10 characters",
		})
	}
	return nil
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r *UpdatePostRequest) Validate() error {
	var details []apperror.FieldError
	if r.Title != nil && len(strings.TrimSpace(*r.Title)) < minTitleLen {
		details = append(details, apperror.FieldError{
			Field:   "title",
			Message: "Title is required and must be at least 3 characters",
		})
	}
	if r.Content != nil && plainTextLen(*r.Content) < minContentLen {
		details = append(details, apperror.FieldError{
			Field:   "content",
			Message: "Content is required and must be at least 10 characters",
		})
	}
	if len(details) > 0 {
		return apperror.NewValidation("", details...)
	}
	return nil
}

// ParseListQuery turns raw query strings into a normalized ListQuery. The
// parse is total: anything non-numeric becomes the default, negatives clamp
// to the floor and limit is capped at MaxPageSize.
func ParseListQuery(search, sort, skip, limit string) postdomain.ListQuery {
	return postdomain.ListQuery{
		Search: strings.TrimSpace(search),
		Sort:   NormalizeSort(sort),
		Skip:   ParseSkip(skip),
		Limit:  ParseLimit(limit),
	}
}

// NormalizeSort maps unknown or missing values to newest, never errors.
func NormalizeSort(sort string) postdomain.SortOrder {
	switch postdomain.SortOrder(sort) {
	case postdomain.SortOldest:
		return postdomain.SortOldest
	case postdomain.SortTitle:
		return postdomain.SortTitle
	default:
		return postdomain.SortNewest
	}
}

func ParseSkip(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return DefaultSkip
	}
	return n
}

func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// plainTextLen counts characters with HTML tags removed, so "<p>hi</p>"
// measures as 2.
func plainTextLen(content string) int {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return utf8.RuneCountInString(strings.TrimSpace(b.String()))
}
