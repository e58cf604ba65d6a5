package engagementservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moonhalo/blogapi/internal/common"
)

var (
	ErrAlreadyLiked = errors.New("already liked this blog")
	ErrNotLiked     = errors.New("have not liked this blog")
)

func newEngagementModel(db *sql.DB) *EngagementModel {
	return &EngagementModel{db: db}
}

func (m *EngagementModel) userExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (m *EngagementModel) blogExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (m *EngagementModel) getLike(ctx context.Context, blogID, userID int) (*Like, error) {
	query := `
		SELECT id, blog_id, user_id, liked, created_at
		FROM likes
		WHERE blog_id = $1 AND user_id = $2`

	var like Like
	err := m.db.QueryRowContext(ctx, query, blogID, userID).Scan(&like.ID, &like.BlogID, &like.UserID, &like.Liked, &like.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &like, nil
}

// insertLike writes the ledger entry. A concurrent like of the same pair is
// caught here by the unique constraint even when the pre-check passed.
func (m *EngagementModel) insertLike(tx *sql.Tx, ctx context.Context, like *Like) error {
	query := `
		INSERT INTO likes (blog_id, user_id, liked)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := tx.QueryRowContext(ctx, query, like.BlogID, like.UserID, like.Liked).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "likes_blog_id_user_id_key"):
			return ErrAlreadyLiked
		default:
			return err
		}
	}

	return nil
}

func (m *EngagementModel) deleteLike(tx *sql.Tx, ctx context.Context, id int) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *EngagementModel) appendBlogLike(tx *sql.Tx, ctx context.Context, blogID, likeID int) error {
	query := `
		UPDATE blogs
		SET likes = array_append(likes, $1), updated_at = now()
		WHERE id = $2`

	res, err := tx.ExecContext(ctx, query, likeID, blogID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *EngagementModel) removeBlogLike(tx *sql.Tx, ctx context.Context, blogID, likeID int) error {
	query := `
		UPDATE blogs
		SET likes = array_remove(likes, $1), updated_at = now()
		WHERE id = $2`

	res, err := tx.ExecContext(ctx, query, likeID, blogID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *EngagementModel) insertComment(tx *sql.Tx, ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (content, image_url, blog_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, votes, likes, created_at, updated_at`

	err := tx.QueryRowContext(ctx, query, c.Content, c.ImageURL, c.BlogID, c.UserID).Scan(&c.ID, &c.Votes, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_blog_id_fkey"):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *EngagementModel) appendBlogComment(tx *sql.Tx, ctx context.Context, blogID, commentID int) error {
	query := `
		UPDATE blogs
		SET comments = array_append(comments, $1), updated_at = now()
		WHERE id = $2`

	res, err := tx.ExecContext(ctx, query, commentID, blogID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

// getCommentsByBlogId returns a blog's comments ordered by creation.
func (m *EngagementModel) getCommentsByBlogId(ctx context.Context, blogID int) ([]Comment, error) {
	query := `
		SELECT id, content, image_url, blog_id, user_id, votes, likes, created_at, updated_at
		FROM comments
		WHERE blog_id = $1
		ORDER BY created_at ASC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Content, &c.ImageURL, &c.BlogID, &c.UserID, &c.Votes, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
