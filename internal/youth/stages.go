package youth

import (
	"fmt"
	"slices"
)

// Profile is the caller's situation. An empty EducationStatus or Preferences
// means the criterion was not supplied.
type Profile struct {
	Age              int
	EmploymentStatus string
	EducationStatus  string
	Preferences      []Category
	// Region is accepted for forward compatibility and not used for matching.
	Region string
}

// Stage is one named step of the matching pipeline.
type Stage struct {
	Name string
	// Gate stages exclude a candidate that fails the check. Other stages only
	// add their weight when the check passes.
	Gate   bool
	Weight float64
	// Applies reports whether the stage runs for the profile. Nil means always.
	Applies func(p Profile) bool
	// Check returns the match reason and whether the program passes.
	Check func(p Profile, prog Program) (string, bool)
}

func (s Stage) appliesTo(p Profile) bool {
	return s.Applies == nil || s.Applies(p)
}

// anyOrContains treats an empty list as "no restriction".
func anyOrContains(list []string, v string) bool {
	return len(list) == 0 || slices.Contains(list, v)
}

// AgeStage excludes programs whose age range does not contain the profile age.
func AgeStage() Stage {
	return Stage{
		Name:   "age",
		Gate:   true,
		Weight: 0.30,
		Check: func(p Profile, prog Program) (string, bool) {
			if p.Age < prog.TargetAgeMin || p.Age > prog.TargetAgeMax {
				return "", false
			}
			return fmt.Sprintf("Age %d within range %d-%d", p.Age, prog.TargetAgeMin, prog.TargetAgeMax), true
		},
	}
}

// EmploymentStage excludes programs that restrict employment status to a list
// the profile is not in.
func EmploymentStage() Stage {
	return Stage{
		Name:   "employment_status",
		Gate:   true,
		Weight: 0.25,
		Check: func(p Profile, prog Program) (string, bool) {
			if !anyOrContains(prog.TargetEmploymentStatus, p.EmploymentStatus) {
				return "", false
			}
			return fmt.Sprintf("Matches employment status: %s", p.EmploymentStatus), true
		},
	}
}

// EducationStage scores education status when the profile supplies one.
func EducationStage() Stage {
	return Stage{
		Name:    "education_status",
		Weight:  0.15,
		Applies: func(p Profile) bool { return p.EducationStatus != "" },
		Check: func(p Profile, prog Program) (string, bool) {
			if !anyOrContains(prog.TargetEducationStatus, p.EducationStatus) {
				return "", false
			}
			return fmt.Sprintf("Matches education status: %s", p.EducationStatus), true
		},
	}
}

// PreferenceStage scores programs in one of the preferred categories.
func PreferenceStage() Stage {
	return Stage{
		Name:    "preference",
		Weight:  0.30,
		Applies: func(p Profile) bool { return len(p.Preferences) > 0 },
		Check: func(p Profile, prog Program) (string, bool) {
			if !slices.Contains(p.Preferences, prog.Category) {
				return "", false
			}
			return fmt.Sprintf("Matches preferred category: %s", prog.Category), true
		},
	}
}

// DefaultStages returns the gates first, then the optional scorers.
func DefaultStages() []Stage {
	return []Stage{AgeStage(), EmploymentStage(), EducationStage(), PreferenceStage()}
}
