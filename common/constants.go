package common

const (
	// TPS is the fixed simulation rate the host runs the physics phase at.
	TPS        = 60
	FixedDelta = 1.0 / TPS

	Gravity = -9.81
)
