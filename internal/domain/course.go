package domain

import "time"

// Course is one course/class record from the source catalog.
type Course struct {
	ID          int64     `json:"id"`
	SubjectID   string    `json:"subjectID"`
	SubjectName string    `json:"subjectName"`
	Semester    int       `json:"semester"`
	Enrollment  int       `json:"enrollment"`
	SKS         int       `json:"sks"`
	SectionCode string    `json:"sectionCode"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
