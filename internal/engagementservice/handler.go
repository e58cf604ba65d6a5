package engagementservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moonhalo/blogapi/internal/common"
	"github.com/moonhalo/blogapi/internal/mediaservice"
	"github.com/moonhalo/blogapi/internal/userservice"
)

func NewEngagementService(db *sql.DB, media *mediaservice.MediaService, c *common.Cache) *EngagementService {
	return &EngagementService{
		m:     newEngagementModel(db),
		media: media,
		c:     c,
	}
}

// checkPreconditions runs the shared like/unlike gates in order: blog id
// present, caller identity resolved, then both the user and the blog exist.
// Each failure stops before any later store access.
func (s *EngagementService) checkPreconditions(ctx context.Context, blogID int, claims *userservice.Claims) error {
	v := common.NewValidator()
	v.Check(blogID > 0, "blog_id", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	if claims == nil {
		return userservice.ErrAuthenticationFailure
	}

	exists, err := s.m.userExists(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrRecordNotFound
	}

	exists, err = s.m.blogExists(ctx, blogID)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrRecordNotFound
	}

	return nil
}

// LikeBlog records that the caller likes the blog. The ledger insert and the
// append to the blog's likes list commit together or not at all; a concurrent
// like of the same pair by the same user is rejected with ErrAlreadyLiked by
// either the pre-check or the ledger's unique constraint.
func (s *EngagementService) LikeBlog(ctx context.Context, blogID int, claims *userservice.Claims) (*Like, error) {
	if err := s.checkPreconditions(ctx, blogID, claims); err != nil {
		return nil, err
	}

	_, err := s.m.getLike(ctx, blogID, claims.UserID)
	if err == nil {
		return nil, ErrAlreadyLiked
	}
	if !errors.Is(err, common.ErrRecordNotFound) {
		return nil, err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	like := &Like{
		BlogID: blogID,
		UserID: claims.UserID,
		Liked:  true,
	}

	if err := s.m.insertLike(tx, ctx, like); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := s.m.appendBlogLike(tx, ctx, blogID, like.ID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))

	return like, nil
}

// UnlikeBlog removes the caller's like. Deleting the ledger entry and pulling
// its id out of the blog's likes list happen in one transaction so the two
// never diverge. When two unlikes of the same pair race, the loser gets
// ErrNotLiked whether it fails the read or the delete.
func (s *EngagementService) UnlikeBlog(ctx context.Context, blogID int, claims *userservice.Claims) (*Like, error) {
	if err := s.checkPreconditions(ctx, blogID, claims); err != nil {
		return nil, err
	}

	like, err := s.m.getLike(ctx, blogID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrNotLiked
		default:
			return nil, err
		}
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := s.m.deleteLike(tx, ctx, like.ID); err != nil {
		_ = tx.Rollback()
		// a concurrent unlike can win between the read and the delete
		if errors.Is(err, common.ErrRecordNotFound) {
			return nil, ErrNotLiked
		}
		return nil, err
	}

	if err := s.m.removeBlogLike(tx, ctx, blogID, like.ID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))

	return like, nil
}

type CreateCommentRequest struct {
	BlogID  int
	Content string
	Image   *mediaservice.File
}

// CreateComment attaches a comment to a blog. An image payload, if present,
// is validated and pushed through the media pipeline before any store write,
// so an upload failure leaves the stores untouched. The comment insert and
// the append to the blog's comments list then commit in one transaction.
// If that transaction fails after a successful upload the remote image is
// orphaned; no compensating delete is attempted.
func (s *EngagementService) CreateComment(ctx context.Context, req *CreateCommentRequest, claims *userservice.Claims) (*Comment, error) {
	v := common.NewValidator()
	v.Check(req.BlogID > 0, "blog_id", "must be provided")
	v.Check(req.Content != "", "content", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if claims == nil {
		return nil, userservice.ErrAuthenticationFailure
	}

	exists, err := s.m.userExists(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrRecordNotFound
	}

	var imageURL *string
	if req.Image != nil && req.Image.Size > 0 {
		url, err := s.media.Upload(ctx, req.Image, "comments", fmt.Sprintf("%d-%d", claims.UserID, req.BlogID))
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		Content:  req.Content,
		ImageURL: imageURL,
		BlogID:   req.BlogID,
		UserID:   claims.UserID,
	}

	if err := s.m.insertComment(tx, ctx, comment); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := s.m.appendBlogComment(tx, ctx, req.BlogID, comment.ID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(req.BlogID))
	s.c.Delete(common.CacheKeyCommentsByBlog(req.BlogID))

	return comment, nil
}

// GetCommentsByBlogID returns a blog's comments ordered by creation.
func (s *EngagementService) GetCommentsByBlogID(ctx context.Context, blogID int) ([]Comment, error) {
	v := common.NewValidator()
	v.Check(blogID > 0, "blog_id", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyCommentsByBlog(blogID)); ok {
		return cached.([]Comment), nil
	}

	comments, err := s.m.getCommentsByBlogId(ctx, blogID)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyCommentsByBlog(blogID), comments)

	return comments, nil
}
