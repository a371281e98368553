package models

import "time"

// Classroom groups students under an academic course for one school year.
type Classroom struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	AcademicCourse string   `db:"academic_course" json:"academic_course"`
	EducationLevel string   `db:"education_level" json:"education_level"`
	Description   string    `db:"description" json:"description"`
	AcademicYear  string    `db:"academic_year" json:"academic_year"`
	StudentCount  int       `db:"student_count" json:"student_count"`
	CreatorID     string    `db:"creator_id" json:"creator_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ClassroomFilter captures filtering criteria for listing classrooms.
type ClassroomFilter struct {
	CreatorID    string
	AcademicYear string
	Search       string
	Page         int
	PageSize     int
}
