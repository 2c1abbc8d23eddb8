// Package sim orchestrates open-loop simulation runs: a [Runner] drives
// a vehicle model against a [Profile] and records the trajectory.
//
// Each iteration samples the pre-step state at time i*dt, evaluates the
// profile with that time and position, notifies metrics and observers,
// and only then steps the model. This sample-then-step ordering keeps
// recorded sample i aligned with time i*dt and lets profiles depend on
// the position the vehicle had before the step.
//
//	runner := sim.New(vehicle.New(), profile.NewTwoStageRamp())
//	result, err := runner.Run(ctx, sim.Config{Duration: 20})
package sim
