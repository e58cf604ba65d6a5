package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("valid config file", func(t *testing.T) {
		cfg, err := loadConfig("../.test.env")
		assert.NoError(t, err)

		assert.Equal(t, ":4000", cfg.Port)
		assert.Equal(t, "test", cfg.Environment)
		assert.NotEmpty(t, cfg.AuthSecret)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, 1025, cfg.MailPort)
		assert.Equal(t, "https://img.example.com/upload", cfg.UploadEndpoint)
		assert.False(t, cfg.LimiterEnabled)
	})

	t.Run("missing config file", func(t *testing.T) {
		cfg, err := loadConfig("does-not-exist.env")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}
