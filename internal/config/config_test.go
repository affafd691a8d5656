package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Server.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.Chat.ReplyDelay)
	assert.Equal(t, TicketBackendMock, cfg.Ticket.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestParse_Durations(t *testing.T) {
	cfg, err := Parse([]byte(`
chat:
  replyDelay: 250ms
  articleDelay: 2s
ticket:
  backend: redis
  ttl: 24h
`))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, 2*time.Second, cfg.Chat.ArticleDelay)
	assert.Equal(t, 24*time.Hour, cfg.Ticket.TTL)
	assert.Equal(t, TicketBackendRedis, cfg.Ticket.Backend)
}

func TestValidate(t *testing.T) {
	cfg, err := Parse([]byte("ticket:\n  backend: http\n"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Ticket.APIURL = "http://tickets.local"
	assert.NoError(t, cfg.Validate())

	cfg.Ticket.Backend = "carrier-pigeon"
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admin:\n  accessCode: from-file\n"), 0o600))

	t.Setenv("SUPPORT_ADMIN_CODE", "from-env")
	t.Setenv("SUPPORT_PORT", "9090")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Admin.AccessCode)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
