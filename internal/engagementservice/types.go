package engagementservice

import (
	"database/sql"
	"time"

	"github.com/moonhalo/blogapi/internal/common"
	"github.com/moonhalo/blogapi/internal/mediaservice"
)

type EngagementService struct {
	m     *EngagementModel
	media *mediaservice.MediaService
	c     *common.Cache
}

type EngagementModel struct {
	db *sql.DB
}

// Like is a ledger entry tying one user to one blog. At most one entry exists
// per (blog, user) pair; the entry is deleted on unlike, never flipped.
type Like struct {
	ID        int       `json:"id"`
	BlogID    int       `json:"blog_id"`
	UserID    int       `json:"user_id"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url"`
	BlogID    int       `json:"blog_id"`
	UserID    int       `json:"user_id"`
	Votes     int       `json:"votes"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
