package reel

import (
	"errors"
	"fmt"
)

var (
	ErrNoAxes         = errors.New("at least one axis is required")
	ErrEmptyAxis      = errors.New("axis has no symbols")
	ErrDuplicateAxis  = errors.New("duplicate axis name")
	ErrDuplicateEntry = errors.New("duplicate symbol in axis")
)

// Axis тематическая ось барабана: имя (method, genre, mood) и упорядоченный набор символов
type Axis struct {
	Name    string
	Symbols []string
}

// Result выпавший символ оси
type Result struct {
	Axis   string
	Symbol string
}

func validateAxes(axes []Axis) error {
	if len(axes) == 0 {
		return ErrNoAxes
	}

	names := make(map[string]struct{}, len(axes))
	for _, a := range axes {
		if _, ok := names[a.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateAxis, a.Name)
		}
		names[a.Name] = struct{}{}

		if len(a.Symbols) == 0 {
			return fmt.Errorf("%w: %q", ErrEmptyAxis, a.Name)
		}
		seen := make(map[string]struct{}, len(a.Symbols))
		for _, s := range a.Symbols {
			if _, ok := seen[s]; ok {
				return fmt.Errorf("%w: %q in %q", ErrDuplicateEntry, s, a.Name)
			}
			seen[s] = struct{}{}
		}
	}
	return nil
}

// cloneAxes делает глубокую копию, чтобы оси нельзя было изменить снаружи после Configure
func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	for i, a := range axes {
		out[i] = Axis{
			Name:    a.Name,
			Symbols: append([]string(nil), a.Symbols...),
		}
	}
	return out
}

// tile повторяет символы оси count раз подряд
func tile(symbols []string, count int) []string {
	strip := make([]string, 0, len(symbols)*count)
	for i := 0; i < count; i++ {
		strip = append(strip, symbols...)
	}
	return strip
}

// Theme собирает результаты в отображение ось -> символ
func Theme(results []Result) map[string]string {
	if results == nil {
		return nil
	}
	theme := make(map[string]string, len(results))
	for _, r := range results {
		theme[r.Axis] = r.Symbol
	}
	return theme
}
