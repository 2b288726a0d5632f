package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/integrators"
)

// Registry maps scheme names to stepper constructors. The active scheme is
// an explicit per-run parameter, never package state.
type Registry struct {
	schemes map[string]func() dynamo.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		schemes: make(map[string]func() dynamo.Stepper),
	}

	r.schemes["euler"] = func() dynamo.Stepper { return integrators.NewEuler() }
	r.schemes["inverse-euler"] = func() dynamo.Stepper { return integrators.NewInverseEuler() }
	r.schemes["crank-nicolson"] = func() dynamo.Stepper { return integrators.NewCrankNicolson() }
	r.schemes["rk4"] = func() dynamo.Stepper { return integrators.NewRK4() }
	r.schemes["rk45"] = func() dynamo.Stepper { return integrators.NewRK45() }
	r.schemes["leapfrog"] = func() dynamo.Stepper { return integrators.NewLeapfrog() }

	return r
}

// GetStepper returns a fresh stepper for the named scheme. Unknown names are
// a configuration error.
func (r *Registry) GetStepper(name string) (dynamo.Stepper, error) {
	fn, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scheme %q (available: %v)",
			dynamo.ErrInvalidConfig, name, r.ListSchemes())
	}
	return fn(), nil
}

// ListSchemes returns the registered scheme names, sorted.
func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
