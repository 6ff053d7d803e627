// internal/models/identity.go
package models

import "github.com/google/uuid"

// Application IDs are derived from the identity tuple, so a retried
// submission produces the same ID and cannot create a second row.

func CourseApplicationID(studentID, institutionID, courseID string) string {
	name := "course-application:" + studentID + ":" + institutionID + ":" + courseID
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func JobApplicationID(studentID, jobID string) string {
	name := "job-application:" + studentID + ":" + jobID
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
