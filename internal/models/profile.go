// internal/models/profile.go
package models

// SubjectGrade is one secondary-school subject with its recorded grade.
// Grades are stored as entered: usually a letter (A-F), occasionally a
// numeric string from older imports.
type SubjectGrade struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

type Certificate struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   int    `json:"year,omitempty"`
}

type WorkExperience struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Years   int    `json:"years,omitempty"`
}

// CandidateProfile is the student-owned academic record. The allocation
// engine reads it and never writes it.
type CandidateProfile struct {
	StudentID        string           `json:"studentId"`
	CurrentGPA       float64          `json:"currentGpa"`
	AcademicLevel    string           `json:"academicLevel"`
	HighSchoolGPA    float64          `json:"highSchoolGpa"`
	Subjects         []SubjectGrade   `json:"subjects"`
	Certificates     []Certificate    `json:"certificates"`
	WorkExperience   []WorkExperience `json:"workExperience"`
	FieldsOfInterest []string         `json:"fieldsOfInterest"`
}

// Level resolves the profile's academic level against the fixed hierarchy.
func (p *CandidateProfile) Level() AcademicLevel {
	return ParseAcademicLevel(p.AcademicLevel)
}
