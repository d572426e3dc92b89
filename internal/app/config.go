package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/spf13/viper"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. COVERFLOW_CAROUSEL_SHOW_DOTS.
const EnvPrefix = "COVERFLOW"

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier (also scopes Fyne preferences)
	AppID string `mapstructure:"app_id"`

	// AppName is the display name
	AppName string `mapstructure:"app_name"`

	Carousel CarouselSettings `mapstructure:"carousel"`
	Library  LibrarySettings  `mapstructure:"library"`
	Log      LogSettings      `mapstructure:"log"`

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App `mapstructure:"-"`
}

// CarouselSettings seeds the carousel attributes and the widget motion.
type CarouselSettings struct {
	StartIndex      int  `mapstructure:"start_index"`
	ShowDots        bool `mapstructure:"show_dots"`
	ShowArrows      bool `mapstructure:"show_arrows"`
	AnnounceChanges bool `mapstructure:"announce_changes"`
	ReducedMotion   bool `mapstructure:"reduced_motion"`

	// Transition is the card transform duration; zero disables animation
	Transition time.Duration `mapstructure:"transition"`

	// FallbackTransition is the card fallback duration, e.g. "400ms"
	FallbackTransition string `mapstructure:"fallback_transition"`

	// FallbackBuffer is added to the fallback timer
	FallbackBuffer time.Duration `mapstructure:"fallback_buffer"`
}

// LibrarySettings selects where slides come from.
type LibrarySettings struct {
	// Path is the slide directory; empty shows numbered placeholder slides
	Path string `mapstructure:"path"`

	// Watch refreshes the carousel when the directory changes
	Watch bool `mapstructure:"watch"`

	// Debounce is the quiet period before a change is reported
	Debounce time.Duration `mapstructure:"debounce"`

	// Placeholders is the number of placeholder slides without a path
	Placeholders int `mapstructure:"placeholders"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:   "com.coverflow.app",
		AppName: "Coverflow",
		Carousel: CarouselSettings{
			ShowDots:           true,
			ShowArrows:         true,
			AnnounceChanges:    true,
			Transition:         450 * time.Millisecond,
			FallbackTransition: "400ms",
			FallbackBuffer:     60 * time.Millisecond,
		},
		Library: LibrarySettings{
			Watch:        true,
			Debounce:     250 * time.Millisecond,
			Placeholders: 7,
		},
		Log: LogSettings{
			Level:  loggerCfg.Level.String(),
			Format: loggerCfg.Format,
		},
	}
}

// LoadConfig reads coverflow.yaml from the working directory (or path when
// given) and applies COVERFLOW_* environment overrides. A missing default
// file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("app_id", def.AppID)
	v.SetDefault("app_name", def.AppName)
	v.SetDefault("carousel.start_index", def.Carousel.StartIndex)
	v.SetDefault("carousel.show_dots", def.Carousel.ShowDots)
	v.SetDefault("carousel.show_arrows", def.Carousel.ShowArrows)
	v.SetDefault("carousel.announce_changes", def.Carousel.AnnounceChanges)
	v.SetDefault("carousel.reduced_motion", def.Carousel.ReducedMotion)
	v.SetDefault("carousel.transition", def.Carousel.Transition)
	v.SetDefault("carousel.fallback_transition", def.Carousel.FallbackTransition)
	v.SetDefault("carousel.fallback_buffer", def.Carousel.FallbackBuffer)
	v.SetDefault("library.path", def.Library.Path)
	v.SetDefault("library.watch", def.Library.Watch)
	v.SetDefault("library.debounce", def.Library.Debounce)
	v.SetDefault("library.placeholders", def.Library.Placeholders)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("coverflow")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration and returns the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.AppID == "":
		return domain.NewValidationError("app_id", c.AppID, "must not be empty")
	case c.Carousel.Transition < 0:
		return domain.NewValidationError("carousel.transition", c.Carousel.Transition, "must not be negative")
	case c.Carousel.FallbackBuffer < 0:
		return domain.NewValidationError("carousel.fallback_buffer", c.Carousel.FallbackBuffer, "must not be negative")
	case c.Carousel.FallbackTransition != "" && domain.ParseDurationMs(c.Carousel.FallbackTransition, -1) < 0:
		return domain.NewValidationError("carousel.fallback_transition", c.Carousel.FallbackTransition, "must be a duration such as 400ms or 0.4s")
	case c.Library.Debounce < 0:
		return domain.NewValidationError("library.debounce", c.Library.Debounce, "must not be negative")
	case c.Library.Placeholders < 0:
		return domain.NewValidationError("library.placeholders", c.Library.Placeholders, "must not be negative")
	case c.Log.Format != "text" && c.Log.Format != "json":
		return domain.NewValidationError("log.format", c.Log.Format, "must be text or json")
	case logger.ParseLevel(c.Log.Level, slog.Level(-100)) == slog.Level(-100):
		return domain.NewValidationError("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	return nil
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() slog.Level {
	return logger.ParseLevel(c.Log.Level, slog.LevelInfo)
}
