// internal/models/level.go
package models

import "strings"

// AcademicLevel is a rung in the fixed academic hierarchy. Higher ordinal
// means a more advanced level.
type AcademicLevel int

const (
	LevelUnknown AcademicLevel = iota
	LevelHighSchool
	LevelCertificate
	LevelDiploma
	LevelUndergraduate
	LevelPostgraduate
	LevelMasters
	LevelDoctorate
)

var levelNames = map[AcademicLevel]string{
	LevelHighSchool:    "high school",
	LevelCertificate:   "certificate",
	LevelDiploma:       "diploma",
	LevelUndergraduate: "undergraduate",
	LevelPostgraduate:  "postgraduate",
	LevelMasters:       "masters",
	LevelDoctorate:     "doctorate",
}

func (l AcademicLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseAcademicLevel maps free-text level names onto the hierarchy.
// Unrecognized input yields LevelUnknown, which never triggers the
// over-qualification check.
func ParseAcademicLevel(s string) AcademicLevel {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")

	switch {
	case strings.Contains(normalized, "high school") || normalized == "secondary":
		return LevelHighSchool
	case strings.Contains(normalized, "doctor") || normalized == "phd":
		return LevelDoctorate
	case strings.Contains(normalized, "master"):
		return LevelMasters
	case strings.Contains(normalized, "postgrad"):
		return LevelPostgraduate
	case strings.Contains(normalized, "undergrad") || strings.Contains(normalized, "bachelor"):
		return LevelUndergraduate
	case strings.Contains(normalized, "diploma"):
		return LevelDiploma
	case strings.Contains(normalized, "certificate"):
		return LevelCertificate
	}
	return LevelUnknown
}

// Exceeds reports whether l is strictly above other in the hierarchy.
// Unknown levels never exceed anything.
func (l AcademicLevel) Exceeds(other AcademicLevel) bool {
	if l == LevelUnknown || other == LevelUnknown {
		return false
	}
	return l > other
}
