package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Scratch ScratchConfig
	Media   MediaConfig
	Log     LogConfig
	Locale  string `env:"APP_LOCALE" envDefault:"en"`
}

type ServerConfig struct {
	Host      string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port      string `env:"SERVER_PORT" envDefault:"10000"`
	BodyLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"524288000"` // 500MB
}

// ScratchConfig holds the request-lifetime directories. Nothing in them outlives a request
// except orphans left behind by a crash, which the sweeper removes after MaxAge.
// MaxAge must stay well above Timeout; in-flight files are skipped regardless.
type ScratchConfig struct {
	UploadsDir    string        `env:"SCRATCH_UPLOADS_DIR" envDefault:"/tmp/uploads"`
	OutputsDir    string        `env:"SCRATCH_OUTPUTS_DIR" envDefault:"/tmp/outputs"`
	MaxAge        time.Duration `env:"SCRATCH_MAX_AGE" envDefault:"1h"`
	SweepSchedule string        `env:"SCRATCH_SWEEP_SCHEDULE" envDefault:"0 */10 * * * *"`
}

type MediaConfig struct {
	FFmpegPath      string        `env:"MEDIA_FFMPEG_PATH" envDefault:"ffmpeg"`
	FFprobePath     string        `env:"MEDIA_FFPROBE_PATH" envDefault:"ffprobe"`
	Timeout         time.Duration `env:"MEDIA_TIMEOUT" envDefault:"3m"`
	ProbeTimeout    time.Duration `env:"MEDIA_PROBE_TIMEOUT" envDefault:"30s"`
	Workers         int           `env:"MEDIA_WORKERS" envDefault:"1"`
	DefaultAudio    string        `env:"MEDIA_DEFAULT_AUDIO" envDefault:"assets/audio/default.mp3"`
	AudioLibraryDir string        `env:"MEDIA_AUDIO_LIBRARY_DIR" envDefault:"assets/audio"`
	FontFile        string        `env:"MEDIA_FONT_FILE"`
	Preset          string        `env:"MEDIA_PRESET" envDefault:"veryfast"`
	CRF             int           `env:"MEDIA_CRF" envDefault:"23"`
	AudioBitrate    string        `env:"MEDIA_AUDIO_BITRATE" envDefault:"128k"`
	MaxDuration     int           `env:"MEDIA_MAX_DURATION" envDefault:"60"` // seconds, 0 = unbounded
	ProbeEnabled    bool          `env:"MEDIA_PROBE_ENABLED" envDefault:"true"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text | json
	File   string `env:"LOG_FILE"`                     // empty = stdout only
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Media.Workers < 1 {
		return fmt.Errorf("MEDIA_WORKERS must be >= 1, got %d", c.Media.Workers)
	}
	if c.Media.Timeout <= 0 {
		return fmt.Errorf("MEDIA_TIMEOUT must be positive, got %s", c.Media.Timeout)
	}
	if c.Media.MaxDuration < 0 {
		return fmt.Errorf("MEDIA_MAX_DURATION must be >= 0, got %d", c.Media.MaxDuration)
	}
	if c.Scratch.MaxAge <= 0 {
		return fmt.Errorf("SCRATCH_MAX_AGE must be positive, got %s", c.Scratch.MaxAge)
	}
	if c.Scratch.MaxAge < 2*c.Media.Timeout {
		return fmt.Errorf("SCRATCH_MAX_AGE (%s) must be at least twice MEDIA_TIMEOUT (%s)", c.Scratch.MaxAge, c.Media.Timeout)
	}
	if c.Scratch.UploadsDir == "" || c.Scratch.OutputsDir == "" {
		return fmt.Errorf("scratch directories must be set")
	}
	return nil
}

// EnsureDirs creates both scratch directories. Relative paths are resolved against
// the working directory.
func (c *Config) EnsureDirs() error {
	for _, dir := range []*string{&c.Scratch.UploadsDir, &c.Scratch.OutputsDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(abs, 0755); err != nil {
			return fmt.Errorf("create %s: %w", abs, err)
		}
		*dir = abs
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
