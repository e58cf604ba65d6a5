package blogservice

import (
	"database/sql"
	"time"

	"github.com/moonhalo/blogapi/internal/common"
)

type Blog struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Slug is derived from the title on every write. It is not unique.
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
	// Content is stored in Markdown format.
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	UserID    int      `json:"user_id"`
	Username  string   `json:"username"`
	// Comments and Likes are the blog's reference lists. They are mutated
	// only inside engagement transactions and inside the cascade delete.
	Comments  []int64   `json:"comments"`
	Likes     []int64   `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
