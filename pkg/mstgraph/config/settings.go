package config

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
)

// Settings is the typed editor configuration.
type Settings struct {
	// WeightScale is the distance per weight unit.
	WeightScale float64 `json:"weight_scale" yaml:"weight_scale" validate:"gt=0,finite"`

	// TickInterval is the time between MST edge reveals.
	TickInterval time.Duration `json:"tick_interval" yaml:"tick_interval" validate:"gt=0"`

	// Seeds are the nodes restored by a clear.
	Seeds []SeedSettings `json:"seeds" yaml:"seeds" validate:"unique=ID,dive"`

	Journal   JournalSettings   `json:"journal" yaml:"journal"`
	Log       LogSettings       `json:"log" yaml:"log"`
	Telemetry TelemetrySettings `json:"telemetry" yaml:"telemetry"`
}

// SeedSettings places one seed node.
type SeedSettings struct {
	ID string  `json:"id" yaml:"id" validate:"required,alpha,uppercase"`
	X  float64 `json:"x" yaml:"x" validate:"finite"`
	Y  float64 `json:"y" yaml:"y" validate:"finite"`
}

// JournalSettings selects the solve journal backend.
type JournalSettings struct {
	Driver string `json:"driver" yaml:"driver" validate:"oneof=none memory sqlite"`
	Path   string `json:"path" yaml:"path" validate:"required_if=Driver sqlite"`
}

// LogSettings configures the slog handler.
type LogSettings struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`
}

// TelemetrySettings selects OpenTelemetry exporters.
type TelemetrySettings struct {
	ServiceName  string `json:"service_name" yaml:"service_name" validate:"required"`
	Traces       string `json:"traces" yaml:"traces" validate:"oneof=none stdout otlp"`
	Metrics      string `json:"metrics" yaml:"metrics" validate:"oneof=none stdout prometheus"`
	OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint" validate:"required_if=Traces otlp"`
	MetricsAddr  string `json:"metrics_addr" yaml:"metrics_addr" validate:"required_if=Metrics prometheus"`
}

var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New()
	_ = settingsValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite rejects NaN and infinite floats.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DefaultSettings returns the reference configuration: scale 50, a 2s tick,
// seeds A(100,200) and B(300,200), no journal, info-level text logs and no
// telemetry.
func DefaultSettings() Settings {
	seeds := graph.DefaultSeeds()
	s := Settings{
		WeightScale:  geometry.DefaultScale,
		TickInterval: 2 * time.Second,
		Seeds:        make([]SeedSettings, len(seeds)),
		Journal:      JournalSettings{Driver: "none"},
		Log:          LogSettings{Level: "info", Format: "text"},
		Telemetry: TelemetrySettings{
			ServiceName: "mstgraph",
			Traces:      "none",
			Metrics:     "none",
			MetricsAddr: ":9464",
		},
	}
	for i, seed := range seeds {
		s.Seeds[i] = SeedSettings{ID: seed.ID, X: seed.Position.X, Y: seed.Position.Y}
	}
	return s
}

// FromConfig overlays cfg on DefaultSettings and validates the result.
func FromConfig(cfg Config) (Settings, error) {
	s := DefaultSettings()

	s.WeightScale = cfg.Float("weight_scale", s.WeightScale)
	s.TickInterval = cfg.Duration("tick_interval", s.TickInterval)

	if cfg.Has("seeds") {
		raw := cfg.Slice("seeds")
		if raw == nil {
			return Settings{}, fmt.Errorf("seeds: expected a list")
		}
		s.Seeds = make([]SeedSettings, 0, len(raw))
		for i, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				return Settings{}, fmt.Errorf("seeds[%d]: expected a mapping", i)
			}
			seed := New(m)
			s.Seeds = append(s.Seeds, SeedSettings{
				ID: seed.String("id", ""),
				X:  seed.Float("x", math.NaN()),
				Y:  seed.Float("y", math.NaN()),
			})
		}
	}

	journal := cfg.Sub("journal")
	s.Journal.Driver = journal.String("driver", s.Journal.Driver)
	s.Journal.Path = journal.String("path", s.Journal.Path)

	log := cfg.Sub("log")
	s.Log.Level = log.String("level", s.Log.Level)
	s.Log.Format = log.String("format", s.Log.Format)

	tel := cfg.Sub("telemetry")
	s.Telemetry.ServiceName = tel.String("service_name", s.Telemetry.ServiceName)
	s.Telemetry.Traces = tel.String("traces", s.Telemetry.Traces)
	s.Telemetry.Metrics = tel.String("metrics", s.Telemetry.Metrics)
	s.Telemetry.OTLPEndpoint = tel.String("otlp_endpoint", s.Telemetry.OTLPEndpoint)
	s.Telemetry.MetricsAddr = tel.String("metrics_addr", s.Telemetry.MetricsAddr)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every field constraint.
func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// GraphSeeds converts the seed settings for graph.WithSeeds.
func (s Settings) GraphSeeds() []graph.Seed {
	seeds := make([]graph.Seed, len(s.Seeds))
	for i, seed := range s.Seeds {
		seeds[i] = graph.Seed{ID: seed.ID, Position: geometry.Pos(seed.X, seed.Y)}
	}
	return seeds
}
