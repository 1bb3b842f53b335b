// Package config loads kairos.toml: project scheduling defaults and the
// replicated document's transport/persistence settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/kairos/internal/domain"
)

// Config is kairos.toml's top-level shape.
type Config struct {
	Project ProjectDefaults `toml:"project"`
	Sync    SyncConfig      `toml:"sync"`
}

// ProjectDefaults seeds domain.NewProject when the CLI doesn't override them.
type ProjectDefaults struct {
	WorkingDays      []string `toml:"working_days"`
	DefaultWorkHours int      `toml:"default_work_hours"`
}

// SyncConfig configures a SyncSession's transport and local persistence.
type SyncConfig struct {
	DocumentID   string            `toml:"document_id"`
	TransportURL string            `toml:"transport_url"`
	Persistence  PersistenceConfig `toml:"persistence"`
	Awareness    map[string]string `toml:"awareness"`
}

// PersistenceConfig toggles the replicated document's local persistence sink.
type PersistenceConfig struct {
	Enabled bool   `toml:"enabled"`
	Name    string `toml:"name"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

// WeekdaySet parses WorkingDays into a domain.WeekdaySet, falling back to
// domain.DefaultWorkingDays when the field is empty or unrecognized.
func (p ProjectDefaults) WeekdaySet() domain.WeekdaySet {
	if len(p.WorkingDays) == 0 {
		return domain.DefaultWorkingDays
	}
	var days []time.Weekday
	for _, name := range p.WorkingDays {
		if d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return domain.DefaultWorkingDays
	}
	return domain.NewWeekdaySet(days...)
}

// Default returns the zero-value config's effective defaults: the Sunday–
// Thursday work week and an 8 hour day, matching domain.NewProject.
func Default() Config {
	return Config{
		Project: ProjectDefaults{
			WorkingDays:      []string{"sunday", "monday", "tuesday", "wednesday", "thursday"},
			DefaultWorkHours: 8,
		},
	}
}

// DefaultPath is ~/.kairos/kairos.toml, overridable via KAIROS_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv("KAIROS_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".kairos", "kairos.toml"), nil
}

// Load reads path and decodes it over Default(). A missing file is not an
// error: it simply leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}
