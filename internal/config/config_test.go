package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("ADMIN_ID", "1000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, int64(1000), cfg.OperatorID)
	assert.Equal(t, 100, cfg.MailboxCapacity)
	assert.Equal(t, 10, cfg.RecentOrders)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "orderbot.yaml")
	yaml := "env: prod\noperator_id: 5\ndb_path: /tmp/x.db\nrecent_orders: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv(ConfigPathEnv, path)
	t.Setenv("ADMIN_ID", "77")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, int64(77), cfg.OperatorID)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 3, cfg.RecentOrders)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnv, "")

	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv("ORDERBOT_RECENT_ORDERS"))
	t.Cleanup(func() { _ = os.Unsetenv("ORDERBOT_RECENT_ORDERS") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ORDERBOT_RECENT_ORDERS=4\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.RecentOrders)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{RecentOrders: 10}, false},
		{"http without token", Config{HTTPAddr: ":8080", RecentOrders: 10}, true},
		{"http with token", Config{HTTPAddr: ":8080", BotToken: "secret", RecentOrders: 10}, false},
		{"negative capacity", Config{MailboxCapacity: -1, RecentOrders: 10}, true},
		{"zero recent orders", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()

	cfg := Config{DBPath: filepath.Join(dir, "nested", "restaurant.db")}
	path, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, path)
	assert.DirExists(t, filepath.Join(dir, "nested"))

	mem := Config{DBPath: ":memory:"}
	path, err = mem.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, ":memory:", path)
}

func TestResolveDBPath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Config{DBPath: "~/.orderbot/restaurant.db"}
	path, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".orderbot", "restaurant.db"), path)
}
