package blogservice

import (
	"context"
	"database/sql"

	"github.com/moonhalo/blogapi/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	UserID  int      `json:"user_id"`
}

// CreateBlog creates a new blog post owned by the given user. The post starts
// unpublished and its slug is derived from the title.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateTags(v, req.Tags)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b := Blog{
		Title:     req.Title,
		Slug:      slugify(req.Title),
		Content:   sanitizeMarkdown(req.Content),
		Tags:      normalizeTags(req.Tags),
		Published: false,
		UserID:    req.UserID,
	}

	if err := s.m.insert(ctx, &b); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyTags())

	return &b, nil
}

// GetBlogByID returns a blog post by its ID, serving repeated reads from cache.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

type UpdateBlogRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// UpdateBlog updates a blog post. Only the user who created the blog post can
// update it; the slug is re-derived from the new title.
func (s *BlogService) UpdateBlog(ctx context.Context, blog *Blog, req *UpdateBlogRequest) error {
	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Content != "" {
		blog.Content = sanitizeMarkdown(req.Content)
	}
	if req.Tags != nil {
		blog.Tags = normalizeTags(req.Tags)
	}
	if req.Published != nil {
		blog.Published = *req.Published
	}
	blog.Slug = slugify(blog.Title)

	v := common.NewValidator()
	validateTitle(v, blog.Title)
	validateContent(v, blog.Content)
	validateTags(v, blog.Tags)
	validateInt(v, blog.ID, "id")
	validateInt(v, blog.UserID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.updateBlog(ctx, blog); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blog.ID))
	s.c.Delete(common.CacheKeyTags())

	return nil
}

// DeleteBlog deletes a blog post together with its comments and likes. Only
// the user who created the blog post can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, blogId, userId int) error {
	v := common.NewValidator()
	validateInt(v, blogId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteBlog(ctx, blogId, userId); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogId))
	s.c.Delete(common.CacheKeyCommentsByBlog(blogId))
	s.c.Delete(common.CacheKeyTags())

	return nil
}

// GetBlogsByUserId returns all blog posts by a user.
func (s *BlogService) GetBlogsByUserId(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserId(ctx, userID)
}

// GetBlogs returns all blog posts. Default limit is 10 and default offset is 0.
func (s *BlogService) GetBlogs(ctx context.Context, limit, offset *int) ([]Blog, error) {
	l, o := 10, 0
	if limit != nil && *limit >= 1 {
		l = *limit
	}
	if offset != nil && *offset >= 0 {
		o = *offset
	}

	return s.m.getBlogs(ctx, l, o)
}

// GetTags returns the distinct set of tags used across all blogs.
func (s *BlogService) GetTags(ctx context.Context) ([]string, error) {
	if cached, ok := s.c.Get(common.CacheKeyTags()); ok {
		return cached.([]string), nil
	}

	tags, err := s.m.getTags(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyTags(), tags)

	return tags, nil
}
