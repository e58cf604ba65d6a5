package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache(50*time.Millisecond, time.Minute)

	t.Run("set and get", func(t *testing.T) {
		c.Set("key", "value")

		got, ok := c.Get("key")
		assert.True(t, ok)
		assert.Equal(t, "value", got)
	})

	t.Run("delete", func(t *testing.T) {
		c.Set("key", "value")
		c.Delete("key")

		_, ok := c.Get("key")
		assert.False(t, ok)
	})

	t.Run("expiration", func(t *testing.T) {
		c.Set("key", "value")

		time.Sleep(80 * time.Millisecond)

		_, ok := c.Get("key")
		assert.False(t, ok)
	})

	t.Run("custom expiration", func(t *testing.T) {
		c.Set("key", "value", time.Minute)

		time.Sleep(80 * time.Millisecond)

		got, ok := c.Get("key")
		assert.True(t, ok)
		assert.Equal(t, "value", got)
	})

	t.Run("flush", func(t *testing.T) {
		c.Set("a", 1)
		c.Set("b", 2)
		c.Flush()

		_, ok := c.Get("a")
		assert.False(t, ok)
	})
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "blog:7", CacheKeyBlog(7))
	assert.Equal(t, "comments_by_blog:7", CacheKeyCommentsByBlog(7))
	assert.Equal(t, "blog_tags", CacheKeyTags())
}
