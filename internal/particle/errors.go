package particle

import "errors"

// Domain errors for particle construction, force registration, and stepping.
var (
	// ErrInvalidParam indicates a nil particle or missing parameter block.
	ErrInvalidParam = errors.New("particle: invalid parameter")

	// ErrInvalidMass indicates a non-positive mass.
	ErrInvalidMass = errors.New("particle: mass must be positive")

	// ErrInvalidDamping indicates a damping factor outside [0, 1].
	ErrInvalidDamping = errors.New("particle: damping must be in [0, 1]")

	// ErrInvalidTime indicates a negative or inverted activation window.
	ErrInvalidTime = errors.New("particle: invalid time window")

	// ErrInvalidDuration indicates a non-positive integration duration.
	ErrInvalidDuration = errors.New("particle: duration must be positive")

	// ErrInvalidForceKind indicates an unrecognized force identifier.
	ErrInvalidForceKind = errors.New("particle: unknown force kind")

	// ErrInvalidSpringConstant indicates a negative spring constant.
	ErrInvalidSpringConstant = errors.New("particle: spring constant must be non-negative")

	// ErrInvalidRestLength indicates a negative rest length.
	ErrInvalidRestLength = errors.New("particle: rest length must be non-negative")

	// ErrInvalidDampingCoeff indicates a negative spring damping coefficient.
	ErrInvalidDampingCoeff = errors.New("particle: damping coefficient must be non-negative")

	// ErrInvalidDragCoeffs indicates a negative drag coefficient.
	ErrInvalidDragCoeffs = errors.New("particle: drag coefficients must be non-negative")

	// ErrNilEndpoint indicates a two-body force missing one of its particles.
	ErrNilEndpoint = errors.New("particle: spring endpoint is nil")

	// ErrNotEndpoint indicates a two-body force evaluated against a particle
	// that is neither of its endpoints.
	ErrNotEndpoint = errors.New("particle: particle is not an endpoint of this force")
)

// StepError wraps a failure that surfaced while integrating, with the
// substep index and simulation clock at the point of failure.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
