package dto

// CreateClassroomRequest describes payload for creating a classroom.
type CreateClassroomRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	AcademicCourse string `json:"academic_course" validate:"required,max=120"`
	EducationLevel string `json:"education_level" validate:"omitempty,max=120"`
	Description    string `json:"description"`
	AcademicYear   string `json:"academic_year" validate:"omitempty,academic_year"`
	StudentCount   int    `json:"student_count" validate:"omitempty,min=0,max=200"`
}

// UpdateClassroomRequest holds optional classroom mutations.
type UpdateClassroomRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=120"`
	AcademicCourse *string `json:"academic_course" validate:"omitempty,max=120"`
	EducationLevel *string `json:"education_level" validate:"omitempty,max=120"`
	Description    *string `json:"description"`
	AcademicYear   *string `json:"academic_year" validate:"omitempty,academic_year"`
	StudentCount   *int    `json:"student_count" validate:"omitempty,min=0,max=200"`
}

// ClassroomFilterRequest captures list query parameters.
type ClassroomFilterRequest struct {
	Search       string `form:"search"`
	AcademicYear string `form:"academic_year"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}
