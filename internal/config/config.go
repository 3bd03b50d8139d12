package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/spf13/viper"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/quiz"
)

// Settings holds user-tunable application settings.
type Settings struct {
	// QuestionsPerQuiz caps an attempt when its category has no cap.
	QuestionsPerQuiz int `mapstructure:"questions_per_quiz"`

	// ShowTimer enables the per-question countdown.
	ShowTimer bool `mapstructure:"show_timer"`

	// SubTopicLimit caps sub-topic attempts.
	SubTopicLimit int `mapstructure:"subtopic_limit"`

	// DefaultTimeLimit is the countdown in seconds for questions without
	// their own time limit.
	DefaultTimeLimit int `mapstructure:"default_time_limit"`

	// CatalogPath is an optional YAML/JSON catalog merged over the
	// embedded one.
	CatalogPath string `mapstructure:"catalog"`

	// DBPath is the result store DSN. Empty means store.DefaultDBPath().
	DBPath string `mapstructure:"db"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	q := quiz.DefaultSettings()
	return Settings{
		QuestionsPerQuiz: q.QuestionsPerQuiz,
		ShowTimer:        q.ShowTimer,
		SubTopicLimit:    q.SubTopicLimit,
		DefaultTimeLimit: q.DefaultTimeLimit,
	}
}

// Quiz returns the engine settings.
func (s Settings) Quiz() quiz.Settings {
	return quiz.Settings{
		QuestionsPerQuiz: s.QuestionsPerQuiz,
		ShowTimer:        s.ShowTimer,
		SubTopicLimit:    s.SubTopicLimit,
		DefaultTimeLimit: s.DefaultTimeLimit,
	}
}

// Validate rejects non-positive limits.
func (s Settings) Validate() error {
	var errs []error
	if s.QuestionsPerQuiz <= 0 {
		errs = append(errs, fmt.Errorf("questions_per_quiz must be positive, got %d", s.QuestionsPerQuiz))
	}
	if s.SubTopicLimit <= 0 {
		errs = append(errs, fmt.Errorf("subtopic_limit must be positive, got %d", s.SubTopicLimit))
	}
	if s.DefaultTimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("default_time_limit must be positive, got %d", s.DefaultTimeLimit))
	}
	return errors.Join(errs...)
}

// Load builds Settings from defaults, EXAMDRILL_* environment variables and
// an optional config file (YAML, JSON or TOML, chosen by extension).
// Environment variables win over the file.
func Load(path string) (*Settings, error) {
	vip := viper.New()

	d := Defaults()
	vip.SetDefault("questions_per_quiz", d.QuestionsPerQuiz)
	vip.SetDefault("show_timer", d.ShowTimer)
	vip.SetDefault("subtopic_limit", d.SubTopicLimit)
	vip.SetDefault("default_time_limit", d.DefaultTimeLimit)
	vip.SetDefault("catalog", "")
	vip.SetDefault("db", "")

	vip.BindEnv("questions_per_quiz", "EXAMDRILL_QUESTIONS_PER_QUIZ")
	vip.BindEnv("show_timer", "EXAMDRILL_SHOW_TIMER")
	vip.BindEnv("subtopic_limit", "EXAMDRILL_SUBTOPIC_LIMIT")
	vip.BindEnv("default_time_limit", "EXAMDRILL_DEFAULT_TIME_LIMIT")
	vip.BindEnv("catalog", "EXAMDRILL_CATALOG")
	vip.BindEnv("db", "EXAMDRILL_DB")

	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			log.Printf("config file %s not found, using defaults and environment", path)
		}
	}

	var s Settings
	if err := vip.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// LoadCatalog returns the embedded catalog, merged with the file at
// CatalogPath when one is configured.
func (s Settings) LoadCatalog() (*catalog.Catalog, error) {
	base := catalog.Default()
	if s.CatalogPath == "" {
		return base, nil
	}
	extra, err := catalog.Load(s.CatalogPath)
	if err != nil {
		return nil, err
	}
	return base.Merge(extra)
}
