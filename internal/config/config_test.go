package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, args []string, env map[string]string) (*Options, error) {
	t.Helper()
	o := &Options{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	register(fs, o)
	require.NoError(t, fs.Parse(args))
	return o, resolve(o, func(k string) string { return env[k] })
}

func TestResolve_Defaults(t *testing.T) {
	o, err := parseWith(t, []string{"-c", filepath.Join(t.TempDir(), "missing.json")}, nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", o.Port)
	assert.Equal(t, StorageFile, o.Storage)
	assert.Equal(t, "data", o.DataDir)
	assert.Equal(t, "info", o.LogLevel)
	assert.Zero(t, o.Latency)
}

func TestResolve_Precedence(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{
		"address": "0.0.0.0:9000",
		"storage": "badger",
		"data_dir": "/var/lib/noteshare",
		"latency": "500ms"
	}`), 0o600))

	o, err := parseWith(t, []string{"-c", cfg, "-a", "flag:1", "-s", "memory"}, map[string]string{
		"SERVER_ADDRESS": "env:2",
		"LOG_LEVEL":      "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "env:2", o.Port, "env overrides file and flags")
	assert.Equal(t, StorageBadger, o.Storage, "file overrides flags")
	assert.Equal(t, "/var/lib/noteshare", o.DataDir)
	assert.Equal(t, 500*time.Millisecond, o.Latency)
	assert.Equal(t, "debug", o.LogLevel)
}

func TestResolve_ConfigFromEnv(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"storage":"memory"}`), 0o600))

	o, err := parseWith(t, nil, map[string]string{"CONFIG": cfg, "LATENCY": "300ms"})
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, o.Storage)
	assert.Equal(t, 300*time.Millisecond, o.Latency)
}

func TestResolve_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"unknown backend", []string{"-c", missing, "-s", "mongo"}, nil},
		{"postgres without dsn", []string{"-c", missing, "-s", "postgres"}, nil},
		{"bad latency", []string{"-c", missing}, map[string]string{"LATENCY": "soon"}},
		{"negative latency", []string{"-c", missing, "-latency", "-1s"}, nil},
		{"broken config file", []string{"-c", broken}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWith(t, tt.args, tt.env)
			assert.Error(t, err)
		})
	}
}

func TestResolve_PostgresWithDSN(t *testing.T) {
	o, err := parseWith(t, []string{"-c", filepath.Join(t.TempDir(), "x.json"), "-s", "Postgres"},
		map[string]string{"DATABASE_DSN": "postgres://localhost/noteshare"})
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, o.Storage)
}
