package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"yaminabe_backend/internal/config"
	"yaminabe_backend/internal/reel"

	"gopkg.in/yaml.v3"
)

const defaultMaxIngredients = 5

type slotFile struct {
	Slot struct {
		Reel struct {
			SymbolHeight   float64 `yaml:"symbol_height"`
			RepeatCount    int     `yaml:"repeat_count"`
			WindowHeight   float64 `yaml:"window_height"`
			Speed          float64 `yaml:"speed"`
			FrameInterval  string  `yaml:"frame_interval"`
			SettleDuration string  `yaml:"settle_duration"`
			FinalizeDelay  string  `yaml:"finalize_delay"`
			BonusChance    float64 `yaml:"bonus_chance"`
		} `yaml:"reel"`
		Axes []struct {
			Name    string   `yaml:"name"`
			Symbols []string `yaml:"symbols"`
		} `yaml:"axes"`
		MaxIngredients int `yaml:"max_ingredients"`
	} `yaml:"slot"`
}

type slotConfig struct {
	reel           reel.Config
	axes           []reel.Axis
	maxIngredients int
}

// NewSlotConfigFromYAML читает оси и параметры барабанов из секции slot файла path
func NewSlotConfigFromYAML(path string) (config.SlotConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSlotConfig(raw)
}

func parseSlotConfig(raw []byte) (config.SlotConfig, error) {
	var f slotFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse slot config: %w", err)
	}

	s := f.Slot
	if len(s.Axes) == 0 {
		return nil, errors.New("slot config has no axes")
	}

	cfg := &slotConfig{
		reel: reel.Config{
			SymbolHeight: s.Reel.SymbolHeight,
			RepeatCount:  s.Reel.RepeatCount,
			WindowHeight: s.Reel.WindowHeight,
			Speed:        s.Reel.Speed,
			BonusChance:  s.Reel.BonusChance,
		},
		maxIngredients: s.MaxIngredients,
	}
	if cfg.maxIngredients <= 0 {
		cfg.maxIngredients = defaultMaxIngredients
	}
	if s.Reel.BonusChance < 0 || s.Reel.BonusChance > 1 {
		return nil, fmt.Errorf("bonus chance %v is out of [0, 1]", s.Reel.BonusChance)
	}

	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{s.Reel.FrameInterval, &cfg.reel.FrameInterval},
		{s.Reel.SettleDuration, &cfg.reel.SettleDuration},
		{s.Reel.FinalizeDelay, &cfg.reel.FinalizeDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", d.raw, err)
		}
		*d.dst = parsed
	}

	for _, a := range s.Axes {
		cfg.axes = append(cfg.axes, reel.Axis{Name: a.Name, Symbols: a.Symbols})
	}

	return cfg, nil
}

func (cfg *slotConfig) Reel() reel.Config {
	return cfg.reel
}

func (cfg *slotConfig) Axes() []reel.Axis {
	out := make([]reel.Axis, len(cfg.axes))
	for i, a := range cfg.axes {
		out[i] = reel.Axis{Name: a.Name, Symbols: append([]string(nil), a.Symbols...)}
	}
	return out
}

func (cfg *slotConfig) MaxIngredients() int {
	return cfg.maxIngredients
}
