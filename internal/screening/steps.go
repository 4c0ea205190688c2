package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/licitops/secop-scout/internal/secop"
)

type seenFileFilter struct {
	path string
}

// NewSeenFile creates a step that removes tenders recorded in the seen file.
func NewSeenFile() Filter {
	return &seenFileFilter{}
}

func (f *seenFileFilter) Name() string { return "seen_file" }

func (f *seenFileFilter) Disable(string) {}

func (f *seenFileFilter) IsEnabled() bool { return true }

func (f *seenFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.SeenFile)
	}
	return nil
}

func (f *seenFileFilter) Apply(_ context.Context, deps Deps, t *secop.Tenders) (*secop.Tenders, Step, error) {
	initial := t.Len()
	if f.path == "" {
		return t, Step{Initial: initial, Dropped: 0, Left: t.Len()}, nil
	}

	seen, err := secop.GetSeenTendersFromFile(f.path)
	if err != nil {
		return t, Step{}, fmt.Errorf("getting seen tenders from file: %w", err)
	}

	removed := t.Exclude(secop.TenderIDField, seen.TenderIDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding tenders based on seen file",
			zap.String("path", f.path),
			zap.Strings("excluded_tenders", removed),
			zap.Int("tenders_left", t.Len()),
		)
	}

	return t, Step{Initial: initial, Dropped: len(removed), Left: t.Len()}, nil
}

func (f *seenFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type entitiesFilter struct {
	entities []string
}

// NewEntities creates a step that removes tenders from blocked contracting entities.
func NewEntities() Filter {
	return &entitiesFilter{}
}

func (f *entitiesFilter) Name() string { return "entities" }

func (f *entitiesFilter) Disable(string) {}

func (f *entitiesFilter) IsEnabled() bool { return true }

func (f *entitiesFilter) Validate(cfg *Config) error {
	f.entities = nil
	if cfg != nil {
		f.entities = append(f.entities, cfg.Entities...)
	}
	return nil
}

func (f *entitiesFilter) Apply(_ context.Context, deps Deps, t *secop.Tenders) (*secop.Tenders, Step, error) {
	initial := t.Len()
	if len(f.entities) == 0 {
		return t, Step{Initial: initial, Dropped: 0, Left: t.Len()}, nil
	}

	excluded := t.Exclude(secop.TenderEntityIDField, f.entities)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding tenders by contracting entity",
			zap.Strings("excluded_entities", f.entities),
			zap.Strings("excluded_tenders", excluded),
			zap.Int("tenders_left", t.Len()),
		)
	}

	return t, Step{Initial: initial, Dropped: len(excluded), Left: t.Len()}, nil
}

func (f *entitiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.entities) > 0 {
		details["entities"] = strings.Join(f.entities, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type minBudgetFilter struct {
	min float64
}

// NewMinBudget creates a step that removes tenders below the configured budget floor.
func NewMinBudget() Filter {
	return &minBudgetFilter{}
}

func (f *minBudgetFilter) Name() string { return "min_budget" }

func (f *minBudgetFilter) Disable(string) {}

func (f *minBudgetFilter) IsEnabled() bool { return true }

func (f *minBudgetFilter) Validate(cfg *Config) error {
	f.min = 0
	if cfg != nil {
		if cfg.MinBudget < 0 {
			return fmt.Errorf("min budget must not be negative")
		}
		f.min = cfg.MinBudget
	}
	return nil
}

func (f *minBudgetFilter) Apply(_ context.Context, deps Deps, t *secop.Tenders) (*secop.Tenders, Step, error) {
	initial := t.Len()
	if f.min <= 0 {
		return t, Step{Initial: initial, Dropped: 0, Left: t.Len()}, nil
	}

	var excluded []string
	kept := make([]*secop.Tender, 0, t.Len())
	for _, tender := range t.Items {
		if tender.Budget > 0 && tender.Budget < f.min {
			excluded = append(excluded, tender.ID)
			continue
		}
		kept = append(kept, tender)
	}
	t.Items = kept

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding tenders below budget floor",
			zap.Float64("min_budget", f.min),
			zap.Strings("excluded_tenders", excluded),
			zap.Int("tenders_left", t.Len()),
		)
	}

	return t, Step{Initial: initial, Dropped: len(excluded), Left: t.Len()}, nil
}

func (f *minBudgetFilter) Status() Status {
	details := map[string]string{}
	if f.min > 0 {
		details["min_budget"] = fmt.Sprintf("%.0f", f.min)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
