// Package scoring implements the three qualification formulas used by the
// allocation engine: the course-application score computed at submission,
// the institution-review score computed by reviewers, and the job-match
// score computed per job application. All three are pure functions over the
// candidate profile and the target course or job.
package scoring

import (
	"strconv"
	"strings"
)

// gradePoints maps letter grades to grade points on the 0-5 scale.
var gradePoints = map[string]float64{
	"A": 5, "B": 4, "C": 3, "D": 2, "E": 1, "F": 0,
}

func isStrongGrade(grade string) bool {
	g := normalizeGrade(grade)
	return g == "A" || g == "B" || g == "C"
}

func isWeakGrade(grade string) bool {
	g := normalizeGrade(grade)
	return g == "D" || g == "E"
}

func normalizeGrade(grade string) string {
	g := strings.ToUpper(strings.TrimSpace(grade))
	// Strip modifiers like "A+" or "B-"
	if len(g) > 1 {
		g = g[:1]
	}
	return g
}

// letterGradePoint returns the grade point for a letter grade, or -1 when
// the grade is not a recognized letter.
func letterGradePoint(grade string) float64 {
	if p, ok := gradePoints[normalizeGrade(grade)]; ok {
		return p
	}
	return -1
}

// numericGrade parses a grade stored as a numeric string. Letter grades do
// not parse and yield 0.
func numericGrade(grade string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(grade), 64)
	if err != nil {
		return 0
	}
	return v
}

// band is one breakpoint in a descending threshold table.
type band struct {
	min    float64
	points int
}

// bandTable scores a GPA-like value with two-scale detection: values up to
// 5.0 are read on a grade-point scale, values up to 100 as a percentage.
// Values outside both scales earn the floor.
type bandTable struct {
	gradeScale []band
	percent    []band
	floor      int
}

func (t bandTable) score(value float64) int {
	var bands []band
	switch {
	case value <= 5.0:
		bands = t.gradeScale
	case value <= 100.0:
		bands = t.percent
	default:
		return t.floor
	}
	for _, b := range bands {
		if value >= b.min {
			return b.points
		}
	}
	return t.floor
}

// Breakpoint tables per formula component. Each table keeps its own
// thresholds; they look similar but are not interchangeable.
var (
	highSchoolGPATable = bandTable{
		gradeScale: []band{{4.0, 35}, {3.5, 30}, {3.0, 25}, {2.5, 18}, {2.0, 10}},
		percent:    []band{{85, 35}, {75, 30}, {65, 25}, {55, 18}, {50, 10}},
		floor:      5,
	}

	subjectsAverageTable = bandTable{
		gradeScale: []band{{4.0, 15}, {3.5, 12}, {3.0, 10}, {2.5, 7}, {2.0, 4}},
		percent:    []band{{85, 15}, {75, 12}, {65, 10}, {55, 7}, {50, 4}},
		floor:      2,
	}

	currentGPATable = bandTable{
		gradeScale: []band{{3.7, 30}, {3.3, 25}, {3.0, 20}, {2.5, 14}, {2.0, 8}},
		percent:    []band{{85, 30}, {75, 25}, {65, 20}, {55, 14}, {50, 8}},
		floor:      3,
	}

	jobAcademicTable = bandTable{
		gradeScale: []band{{3.5, 30}, {3.0, 24}, {2.5, 16}, {2.0, 10}},
		percent:    []band{{80, 30}, {70, 24}, {60, 16}, {50, 10}},
		floor:      4,
	}
)

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func capAt100(value int) int {
	return clamp(value, 0, 100)
}
