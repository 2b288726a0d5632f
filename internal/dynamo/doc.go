// Package dynamo provides the core primitives for propagating gravitational
// systems as ordinary differential equations.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: flat vector representing the full system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Stepper]: single-step numerical integrator interface
//   - [Propagator]: drives a Stepper across a fixed step count
//   - [Trajectory]: the recorded state history of one run
//
// # Example
//
//	model := gravity.New(bodies, g)
//	prop := dynamo.New(model, integrators.NewLeapfrog())
//	traj, _ := prop.Run(ctx, model.InitialState(), cfg)
//
// # Thread Safety
//
// Propagator instances are NOT thread-safe. Time stepping is inherently
// sequential: step k+1 requires the completed state of step k. Concurrent
// runs must use separate Propagator instances.
package dynamo
