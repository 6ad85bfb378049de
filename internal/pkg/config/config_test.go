package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, "10000", cfg.Server.Port)
	require.Equal(t, "/tmp/uploads", cfg.Scratch.UploadsDir)
	require.Equal(t, "/tmp/outputs", cfg.Scratch.OutputsDir)
	require.Equal(t, 3*time.Minute, cfg.Media.Timeout)
	require.Equal(t, 1, cfg.Media.Workers)
	require.Equal(t, 60, cfg.Media.MaxDuration)
	require.True(t, cfg.Media.ProbeEnabled)
	require.Equal(t, time.Hour, cfg.Scratch.MaxAge)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("MEDIA_TIMEOUT", "90s")
	t.Setenv("MEDIA_WORKERS", "3")
	t.Setenv("SCRATCH_UPLOADS_DIR", "/var/tmp/in")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Server.Port)
	require.Equal(t, 90*time.Second, cfg.Media.Timeout)
	require.Equal(t, 3, cfg.Media.Workers)
	require.Equal(t, "/var/tmp/in", cfg.Scratch.UploadsDir)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MEDIA_PRESET=ultrafast\nMEDIA_CRF=28\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("MEDIA_PRESET")
		os.Unsetenv("MEDIA_CRF")
	})

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, "ultrafast", cfg.Media.Preset)
	require.Equal(t, 28, cfg.Media.CRF)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Media.Workers = 0 }, true},
		{"zero timeout", func(c *Config) { c.Media.Timeout = 0 }, true},
		{"negative max duration", func(c *Config) { c.Media.MaxDuration = -1 }, true},
		{"empty outputs dir", func(c *Config) { c.Scratch.OutputsDir = "" }, true},
		{"zero max age", func(c *Config) { c.Scratch.MaxAge = 0 }, true},
		{"negative max age", func(c *Config) { c.Scratch.MaxAge = -time.Minute }, true},
		{"max age shorter than two timeouts", func(c *Config) { c.Scratch.MaxAge = 90 * time.Second }, true},
		{"max age exactly two timeouts", func(c *Config) { c.Scratch.MaxAge = 2 * time.Minute }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Scratch: ScratchConfig{UploadsDir: "u", OutputsDir: "o", MaxAge: time.Hour},
				Media:   MediaConfig{Workers: 1, Timeout: time.Minute, MaxDuration: 60},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{Scratch: ScratchConfig{
		UploadsDir: filepath.Join(root, "a", "uploads"),
		OutputsDir: filepath.Join(root, "b", "outputs"),
	}}
	require.NoError(t, cfg.EnsureDirs())

	for _, dir := range []string{cfg.Scratch.UploadsDir, cfg.Scratch.OutputsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}
