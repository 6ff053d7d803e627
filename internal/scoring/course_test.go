package scoring

import (
	"testing"

	"admissions-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func profileWithSubjects(subjects ...models.SubjectGrade) *models.CandidateProfile {
	return &models.CandidateProfile{
		StudentID: "student-001",
		Subjects:  subjects,
	}
}

func subject(name, grade string) models.SubjectGrade {
	return models.SubjectGrade{Subject: name, Grade: grade}
}

func certificates(n int) []models.Certificate {
	certs := make([]models.Certificate, n)
	for i := range certs {
		certs[i] = models.Certificate{Name: "cert"}
	}
	return certs
}

// ==========================
// Course Application Score
// ==========================

func TestCourseApplicationScore_WorkedExample(t *testing.T) {
	// English B, no math or science subjects, four subjects averaging
	// grade-point 3.0, two certificates, non-technical course.
	profile := profileWithSubjects(
		subject("English Language", "B"),
		subject("History", "C"),
		subject("Geography", "C"),
		subject("French", "D"),
	)
	profile.Certificates = certificates(2)

	course := &models.Course{
		ID:            "course-001",
		InstitutionID: "inst-001",
		Name:          "Business Administration",
	}

	score, breakdown := CourseApplicationScore(profile, course)

	assert.Equal(t, 20, breakdown.English)
	assert.Equal(t, 0, breakdown.Mathematics)
	assert.Equal(t, 0, breakdown.Science)
	assert.Equal(t, 24, breakdown.AverageGrade)
	assert.Equal(t, 4, breakdown.Certificates)
	assert.Equal(t, 48, score)
}

func TestCourseApplicationScore_ComponentGates(t *testing.T) {
	tests := []struct {
		name       string
		courseName string
		subjects   []models.SubjectGrade
		validate   func(t *testing.T, score int, b CourseBreakdown)
	}{
		{
			name:       "math counts only for technical courses",
			courseName: "Computer Engineering",
			subjects: []models.SubjectGrade{
				subject("Mathematics", "A"),
			},
			validate: func(t *testing.T, score int, b CourseBreakdown) {
				assert.Equal(t, 20, b.Mathematics)
			},
		},
		{
			name:       "math ignored for non-technical courses",
			courseName: "Fine Arts",
			subjects: []models.SubjectGrade{
				subject("Mathematics", "A"),
			},
			validate: func(t *testing.T, score int, b CourseBreakdown) {
				assert.Equal(t, 0, b.Mathematics)
			},
		},
		{
			name:       "science counts for science courses",
			courseName: "Nursing",
			subjects: []models.SubjectGrade{
				subject("Biology", "B"),
			},
			validate: func(t *testing.T, score int, b CourseBreakdown) {
				assert.Equal(t, 20, b.Science)
			},
		},
		{
			name:       "weak grade earns the middle tier",
			courseName: "Business Administration",
			subjects: []models.SubjectGrade{
				subject("English", "D"),
			},
			validate: func(t *testing.T, score int, b CourseBreakdown) {
				assert.Equal(t, 10, b.English)
			},
		},
		{
			name:       "failing grade earns nothing",
			courseName: "Business Administration",
			subjects: []models.SubjectGrade{
				subject("English", "F"),
			},
			validate: func(t *testing.T, score int, b CourseBreakdown) {
				assert.Equal(t, 0, b.English)
			},
		},
		{
			name:       "grade modifiers are stripped",
			courseName: "Business Administration",
			subjects: []models.SubjectGrade{
				subject("English", "B+"),
			},
			validate: func(t *testing.T, score int, b CourseBreakdown) {
				assert.Equal(t, 20, b.English)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := profileWithSubjects(tt.subjects...)
			course := &models.Course{ID: "c", InstitutionID: "i", Name: tt.courseName}
			score, breakdown := CourseApplicationScore(profile, course)
			tt.validate(t, score, breakdown)
		})
	}
}

func TestCourseApplicationScore_CertificateCap(t *testing.T) {
	profile := profileWithSubjects(subject("English", "A"))
	profile.Certificates = certificates(9)

	_, breakdown := CourseApplicationScore(profile, &models.Course{Name: "History"})
	assert.Equal(t, 10, breakdown.Certificates)
}

func TestCourseApplicationScore_Range(t *testing.T) {
	perfect := profileWithSubjects(
		subject("English", "A"),
		subject("Mathematics", "A"),
		subject("Physics", "A"),
	)
	perfect.Certificates = certificates(5)

	score, _ := CourseApplicationScore(perfect, &models.Course{Name: "Computer Science"})
	require.LessOrEqual(t, score, 100)
	require.GreaterOrEqual(t, score, 0)

	empty := &models.CandidateProfile{StudentID: "student-002"}
	score, _ = CourseApplicationScore(empty, &models.Course{Name: "History"})
	assert.Equal(t, 0, score)
}

func TestCourseApplicationScore_Pure(t *testing.T) {
	profile := profileWithSubjects(
		subject("English", "B"),
		subject("Chemistry", "C"),
	)
	profile.Certificates = certificates(1)
	course := &models.Course{Name: "Chemical Engineering"}

	first, _ := CourseApplicationScore(profile, course)
	for i := 0; i < 10; i++ {
		again, _ := CourseApplicationScore(profile, course)
		assert.Equal(t, first, again)
	}
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkCourseApplicationScore(b *testing.B) {
	profile := profileWithSubjects(
		subject("English", "B"),
		subject("Mathematics", "A"),
		subject("Biology", "C"),
		subject("History", "D"),
	)
	profile.Certificates = certificates(3)
	course := &models.Course{Name: "Computer Science"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CourseApplicationScore(profile, course)
	}
}
