package normalizer

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError marks an upstream payload the normalizer rejected. It is a
// data-integrity failure: logged, surfaced as 422, never cached.
type ValidationError struct {
	Provider string
	Entity   string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload from %s: %v", e.Entity, e.Provider, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Normalizer converts provider-specific payloads into canonical entities.
// Every per-provider quirk (camelCase fields, string-typed ids, unix
// timestamps) is handled here so nothing downstream sees a raw shape.
// All methods are pure functions of their input.
type Normalizer struct {
	validate *validator.Validate
}

func New() *Normalizer {
	return &Normalizer{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (n *Normalizer) check(provider, entity string, payload any) error {
	if err := n.validate.Struct(payload); err != nil {
		return &ValidationError{Provider: provider, Entity: entity, Err: err}
	}
	return nil
}

// winRate computes wins/(wins+losses)*100, zero when no matches were played.
func winRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}
