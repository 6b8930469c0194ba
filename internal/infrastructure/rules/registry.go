package rules

import (
	"fmt"
	"log/slog"
	"math"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
)

// CheckFunc одна проверка. Булевы проверки возвращают 1 или 0.
type CheckFunc func(in entity.RuleInput) (float64, error)

// Check именованная проверка.
type Check struct {
	Name string
	Run  CheckFunc
}

// DefaultChecks все четыре проверки в порядке вывода.
func DefaultChecks() []Check {
	return []Check{
		{Name: entity.CheckContrast, Run: ContrastRatio},
		{Name: entity.CheckColor, Run: ColorUsage},
		{Name: entity.CheckTextResize, Run: TextResize},
		{Name: entity.CheckAltText, Run: AltText},
	}
}

// Engine прогоняет проверки и собирает RuleResult.
type Engine struct {
	checks []Check
	logger *slog.Logger
}

var _ port.RuleEngine = (*Engine)(nil)

// NewEngine без явных проверок использует DefaultChecks.
func NewEngine(logger *slog.Logger, checks ...Check) *Engine {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{checks: checks, logger: logger}
}

// Evaluate никогда не падает: сбой проверки даёт худшее значение.
func (e *Engine) Evaluate(in entity.RuleInput) entity.RuleResult {
	values := make(map[string]float64, len(e.checks))
	for _, c := range e.checks {
		values[c.Name] = e.run(c, in)
	}

	// отсутствующий ключ читается как 0, то есть как провал
	return entity.RuleResult{
		Contrast:   values[entity.CheckContrast],
		Color:      values[entity.CheckColor] > 0,
		TextResize: values[entity.CheckTextResize] > 0,
		AltText:    values[entity.CheckAltText] > 0,
	}
}

func (e *Engine) run(c Check, in entity.RuleInput) (value float64) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("rule check panicked", "check", c.Name, "panic", fmt.Sprint(r))
			value = 0
		}
	}()

	if in.Image == nil && c.Name != entity.CheckAltText {
		e.logger.Warn("rule check failed", "check", c.Name, "error", "no image")
		return 0
	}

	v, err := c.Run(in)
	if err != nil {
		e.logger.Warn("rule check failed", "check", c.Name, "error", err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		e.logger.Warn("rule check returned invalid value", "check", c.Name, "value", v)
		return 0
	}
	return v
}

func boolValue(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
