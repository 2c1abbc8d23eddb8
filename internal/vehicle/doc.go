// Package vehicle implements the longitudinal dynamics of a single
// vehicle: a parameterized engine-torque curve, tire slip with traction
// saturation, and aerodynamic, rolling, and grade loads, advanced with a
// fixed-step semi-implicit Euler update.
//
// The model owns five mutable state variables (position, velocity,
// acceleration, engine speed, engine acceleration) mutated in place by
// [Model.Step], one timestep per call:
//
//	m := vehicle.New()
//	m.Step(0.2, 0)          // throttle, grade angle (rad)
//	fmt.Println(m.X, m.V)
//
// # Domain Boundary
//
// The slip ratio divides by the vehicle velocity and is undefined at
// v = 0. The default initial velocity of 5 m/s keeps the model inside
// its valid operating domain; callers that drive v to zero get the
// saturated tire force from the non-finite slip rather than an error.
//
// # Thread Safety
//
// Model instances are NOT thread-safe; a simulation loop owns a single
// instance and serializes calls to [Model.Step] and [Model.Reset].
package vehicle
