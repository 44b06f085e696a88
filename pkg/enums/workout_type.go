package enums

import "fmt"

// WorkoutType classifies a logged workout session.
type WorkoutType string

const (
	WorkoutTypeCardio   WorkoutType = "cardio"
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeCrossfit WorkoutType = "crossfit"
	WorkoutTypeYoga     WorkoutType = "yoga"
	WorkoutTypeSwimming WorkoutType = "swimming"
	WorkoutTypeOther    WorkoutType = "other"
)

var validWorkoutTypes = []WorkoutType{
	WorkoutTypeCardio,
	WorkoutTypeStrength,
	WorkoutTypeCrossfit,
	WorkoutTypeYoga,
	WorkoutTypeSwimming,
	WorkoutTypeOther,
}

// WorkoutTypes returns every known workout type.
func WorkoutTypes() []WorkoutType {
	out := make([]WorkoutType, len(validWorkoutTypes))
	copy(out, validWorkoutTypes)
	return out
}

// String implements fmt.Stringer.
func (w WorkoutType) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WorkoutType.
func (w WorkoutType) IsValid() bool {
	for _, candidate := range validWorkoutTypes {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWorkoutType converts raw input into a WorkoutType.
func ParseWorkoutType(value string) (WorkoutType, error) {
	for _, candidate := range validWorkoutTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid workout type %q", value)
}
