package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, `{
		"address": "nas.local",
		"port": 9091,
		"username": "admin",
		"password": "secret",
		"incomplete_dir": "/volume1/incomplete/",
		"torrents_dir": "/var/lib/transmission/torrents",
		"filter": {"ignore": ["HasAnyLabel(\"keep\")"]},
		"notifications": {"skip_empty_run": true, "service": {"discord": {"webhook_url": "https://discord.test/api/webhooks/1/x"}}}
	}`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "nas.local", cfg.Address)
	assert.Equal(t, 9091, cfg.Port)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "/volume1/incomplete", cfg.IncompleteDir)
	assert.Equal(t, "/var/lib/transmission/torrents", cfg.TorrentsDir)
	assert.Equal(t, defaultRPCPath, cfg.RPCPath)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.False(t, cfg.DeleteData)
	assert.Equal(t, []string{`HasAnyLabel("keep")`}, cfg.Filter.Ignore)
	assert.True(t, cfg.Notifications.SkipEmptyRun)
	assert.Equal(t, "https://discord.test/api/webhooks/1/x", cfg.Notifications.Service.Discord.WebhookURL)
	assert.Equal(t, "http://nas.local:9091/transmission/rpc", cfg.RPCURL())
}

func TestLoadOverrides(t *testing.T) {
	p := writeConfig(t, `{
		"address": "localhost",
		"port": 9091,
		"incomplete_dir": "/data/incomplete",
		"rpc_path": "/rpc",
		"https": true,
		"timeout": "5s",
		"delete_data": true
	}`)

	t.Setenv("TRANSMISSION_ADDRESS", "10.0.0.2")
	t.Setenv("TRANSMISSION_PORT", "19091")
	t.Setenv("TRANSMISSION_INCOMPLETEDIR", "/mnt/incomplete")
	t.Setenv("TRANSMISSION_UNRELATED", "ignored")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2", cfg.Address)
	assert.Equal(t, 19091, cfg.Port)
	assert.Equal(t, "/mnt/incomplete", cfg.IncompleteDir)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.DeleteData)
	assert.Equal(t, "https://10.0.0.2:19091/rpc", cfg.RPCURL())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed_json", `{"address": `},
		{"missing_address", `{"port": 9091, "incomplete_dir": "/data"}`},
		{"port_zero", `{"address": "localhost", "port": 0, "incomplete_dir": "/data"}`},
		{"port_too_large", `{"address": "localhost", "port": 70000, "incomplete_dir": "/data"}`},
		{"port_not_number", `{"address": "localhost", "port": "abc", "incomplete_dir": "/data"}`},
		{"missing_incomplete_dir", `{"address": "localhost", "port": 9091}`},
		{"incomplete_dir_not_string", `{"address": "localhost", "port": 9091, "incomplete_dir": ["/a", "/b"]}`},
		{"bad_rpc_path", `{"address": "localhost", "port": 9091, "incomplete_dir": "/data", "rpc_path": "rpc"}`},
		{"bad_timeout", `{"address": "localhost", "port": 9091, "incomplete_dir": "/data", "timeout": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigInvalid), "unexpected error: %v", err)
		})
	}
}
