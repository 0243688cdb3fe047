// Package twobody is the numerical kernel of orbitsim: the equations of motion
// of two point masses interacting through Newtonian gravity, and a fixed-step
// classical Runge-Kutta integrator over them.
//
// The package is organised around three value types:
//
//   - [State]: positions and velocities of both bodies (8 scalars)
//   - [Rate]: the time derivative of a [State], with the same shape
//   - [Params]: the gravitational constant and the two masses
//
// Two pure operations make up the kernel:
//
//   - [Derive]: evaluates d(State)/dt
//   - [Step]: advances a [State] by dt with RK4
//
// # Example
//
//	p := twobody.DefaultParams()
//	s := twobody.State{X1: -0.5, VY1: -0.5, X2: 0.5, VY2: 0.5}
//	for t := 0.0; t < 20; t += 0.01 {
//	    next, err := twobody.Step(p, s, 0.01)
//	    if err != nil {
//	        return err
//	    }
//	    s = next
//	}
//
// # Thread Safety
//
// Every function in this package is a pure transformation of values. Independent
// trajectories may be integrated from as many goroutines as needed.
package twobody
