// Package analysis characterises computed trajectories.
//
//   - [OrbitalElements]: semi-major axis, eccentricity and period of the
//     relative orbit
//   - [Kepler]: closed-form propagation of a bound pair, used as a reference
//   - [Study]: global error at dt, dt/2, dt/4 and the observed order
//   - [DominantPeriod]: period of a sampled coordinate from its power spectrum
//   - [FindApsides]: periapsis and apoapsis passages of a run
//
// # Convergence
//
// A fourth-order integrator should roughly divide its error by 16 each time
// the step is halved:
//
//	c, err := analysis.Study(ctx, integrators.NewRK4(), p, x0, 0.02, 1, 3)
//	fmt.Println(c.Orders) // ≈ [4 4]
package analysis
