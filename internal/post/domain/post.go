package domain

import "time"

// Author is the slice of the user joined onto post read paths. Only the
// display fields are ever selected; the password hash has no column here.
type Author struct {
	ID    string `json:"-" gorm:"primaryKey"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (Author) TableName() string { return "users" }

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  string    `json:"author_id" gorm:"index;not null"`
	Author    *Author   `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortOrder selects the feed ordering.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortTitle  SortOrder = "title"
)

// ListQuery is a fully normalized page request: Sort is always one of the
// three known orders, Skip is >= 0 and Limit is within [1, MaxPageSize].
type ListQuery struct {
	Search string
	Sort   SortOrder
	Skip   int
	Limit  int
}
