package repository

import (
	"context"
	"time"

	"github.com/ftis-dev/lab-timetable/backend/internal/domain"
)

func (r *Repository) CreateCourse(course *domain.Course) error {
	query := `
		INSERT INTO courses (subject_id, subject_name, semester, enrollment, sks, section_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query,
		course.SubjectID,
		course.SubjectName,
		course.Semester,
		course.Enrollment,
		course.SKS,
		course.SectionCode,
	).Scan(&course.ID, &course.CreatedAt, &course.Version)
}

func (r *Repository) GetAllCourses() ([]*domain.Course, error) {
	query := `
		SELECT id, subject_id, subject_name, semester, enrollment, sks, section_code, created_at, version
		FROM courses
		ORDER BY subject_id, section_code
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		course := &domain.Course{}
		if err := rows.Scan(
			&course.ID,
			&course.SubjectID,
			&course.SubjectName,
			&course.Semester,
			&course.Enrollment,
			&course.SKS,
			&course.SectionCode,
			&course.CreatedAt,
			&course.Version,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}
