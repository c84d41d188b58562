package nav

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for navigation operations.
var (
	// ErrInvalidTarget indicates a target that is not present in the registry.
	ErrInvalidTarget = errors.New("nav: invalid target")

	// ErrUnknownTarget indicates a name outside the closed set of targets.
	ErrUnknownTarget = errors.New("nav: unknown target name")

	// ErrInvalidPose indicates a pose with NaN or Inf components.
	ErrInvalidPose = errors.New("nav: invalid pose (NaN or Inf detected)")

	// ErrMissingDefault indicates a registry without the default target.
	ErrMissingDefault = errors.New("nav: registry has no default target")
)

// InvalidTargetError is returned by SetTarget for ids missing from the registry.
type InvalidTargetError struct {
	Target  TargetID
	Known   []TargetID
	Current TargetID
}

func (e *InvalidTargetError) Error() string {
	names := make([]string, len(e.Known))
	for i, k := range e.Known {
		names[i] = string(k)
	}
	return fmt.Sprintf("%s %q (registered: %s)", ErrInvalidTarget, e.Target, strings.Join(names, ", "))
}

func (e *InvalidTargetError) Unwrap() error {
	return ErrInvalidTarget
}

// PoseError wraps ErrInvalidPose with the offending target.
type PoseError struct {
	Target TargetID
	Pose   CameraPose
}

func (e *PoseError) Error() string {
	return fmt.Sprintf("%s: target %s position=%v lookAt=%v", ErrInvalidPose, e.Target, e.Pose.Position, e.Pose.LookAt)
}

func (e *PoseError) Unwrap() error {
	return ErrInvalidPose
}
