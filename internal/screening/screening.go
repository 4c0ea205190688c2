// Package screening drops tenders that are not worth scoring before they
// reach the matching engine: already-reviewed processes, blocked entities,
// budgets below the configured floor.
package screening

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/licitops/secop-scout/internal/secop"
)

// Filter represents a single screening step applied to tenders.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, t *secop.Tenders) (*secop.Tenders, Step, error)
}

// Deps aggregates dependencies shared across all screening steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a screening step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the steps.
type Config struct {
	// SeenFile is the JSON file with tender ids already reviewed.
	SeenFile string
	// Entities holds NITs of contracting entities to skip.
	Entities []string
	// MinBudget drops tenders below this COP amount. Zero disables the step.
	MinBudget float64
}

// Status represents runtime information about a screening step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by steps that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Run executes the supplied steps sequentially, returning the remaining tenders.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, t *secop.Tenders) (*secop.Tenders, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("screening step disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("screening step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		t = next
	}

	return t, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
