package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/moonhalo/blogapi/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, slug, content, tags, published, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		b.Title,
		b.Slug,
		b.Content,
		pq.Array(b.Tags),
		b.Published,
		b.UserID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogById joins the users table so the response carries the author's username.
func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.slug, b.image_url, b.content, b.tags, b.published, b.user_id, b.comments, b.likes, b.created_at, b.updated_at, b.version, u.username
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.Slug, &blog.ImageURL, &blog.Content, pq.Array(&blog.Tags), &blog.Published, &blog.UserID, pq.Array(&blog.Comments), pq.Array(&blog.Likes), &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, slug = $2, content = $3, tags = $4, published = $5, updated_at = now(), version = version + 1
		WHERE id = $6 AND version = $7 AND user_id = $8
		RETURNING created_at, updated_at, version`

	args := []any{
		blog.Title,
		blog.Slug,
		blog.Content,
		pq.Array(blog.Tags),
		blog.Published,
		blog.ID,
		blog.Version,
		blog.UserID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// deleteBlog removes the blog row together with its comments and like ledger
// entries in one transaction, so a delete never leaves orphaned engagement
// rows behind.
func (m *BlogModel) deleteBlog(ctx context.Context, blogId, userId int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE blog_id = $1`, blogId)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM likes WHERE blog_id = $1`, blogId)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1 AND user_id = $2`, blogId, userId)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if rows != 1 {
		_ = tx.Rollback()
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return tx.Commit()
}

func (m *BlogModel) getBlogsByUserId(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT id, title, slug, image_url, content, tags, published, user_id, comments, likes, created_at, updated_at, version
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Slug, &blog.ImageURL, &blog.Content, pq.Array(&blog.Tags), &blog.Published, &blog.UserID, pq.Array(&blog.Comments), pq.Array(&blog.Likes), &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return blogs, nil
}

// getBlogs returns published and draft blogs paginated by created_at descending order.
func (m *BlogModel) getBlogs(ctx context.Context, limit, offset int) ([]Blog, error) {
	query := `
		SELECT id, title, slug, image_url, content, tags, published, user_id, comments, likes, created_at, updated_at, version
		FROM blogs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Slug, &blog.ImageURL, &blog.Content, pq.Array(&blog.Tags), &blog.Published, &blog.UserID, pq.Array(&blog.Comments), pq.Array(&blog.Likes), &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	return blogs, rows.Err()
}

func (m *BlogModel) getTags(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT unnest(tags)
		FROM blogs
		ORDER BY 1`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}
