package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/repository"
)

// resolveEstimate resolves an estimate reference which can be:
//   - A file number (most recent estimate wins on re-imports)
//   - A full estimate UUID
//   - A UUID prefix, when unambiguous
func resolveEstimate(ctx context.Context, app *App, input string) (*domain.ClaimEstimate, error) {
	if input == "" {
		return nil, fmt.Errorf("estimate reference is required")
	}

	e, err := app.Estimates.GetByFileNumber(ctx, input)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	e, err = app.Estimates.GetByID(ctx, input)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := app.Estimates.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.ClaimEstimate
	for _, c := range all {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("estimate not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("estimate reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveEstimator resolves an estimator reference: a user id (login handle)
// or a profile UUID. Empty input falls back to the configured default
// estimator.
func resolveEstimator(ctx context.Context, app *App, input string) (*domain.EstimatorProfile, error) {
	if input == "" {
		input = app.DefaultEstimator
	}
	if input == "" {
		return nil, fmt.Errorf("estimator is required (pass one or set default_estimator in config)")
	}

	p, err := app.Estimators.GetByUserID(ctx, input)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p, err = app.Estimators.GetByID(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("estimator not found: %q", input)
	}
	return p, nil
}
