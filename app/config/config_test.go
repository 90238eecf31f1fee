package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverBadger, cfg.StoreDriver)
	assert.Equal(t, "data/badger", cfg.BadgerPath)
	assert.Equal(t, "console", cfg.MailBackend)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MYSITE_ADDR", "127.0.0.1:9000")
	t.Setenv("MYSITE_STORE", "sqlite")
	t.Setenv("MYSITE_SQLITE_PATH", "/tmp/blog.db")
	t.Setenv("MYSITE_MAIL_BACKEND", "smtp")
	t.Setenv("MYSITE_SMTP_PORT", "2525")
	t.Setenv("MYSITE_SMTP_USER", "mailer")
	t.Setenv("MYSITE_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/blog.db", cfg.SQLitePath)
	assert.Equal(t, "smtp", cfg.MailBackend)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "mailer", cfg.SMTPUser)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("MYSITE_SMTP_PORT", "not-a-port")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("MYSITE_STORE", "postgres")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown store driver")
	})

	t.Run("zero shutdown timeout", func(t *testing.T) {
		t.Setenv("MYSITE_SHUTDOWN_TIMEOUT", "0s")
		_, err := Load()
		assert.ErrorContains(t, err, "shutdown timeout")
	})
}
