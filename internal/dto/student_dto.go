package dto

// AcademicRecordResponse is the denormalized read view of one student:
// account, profile, enrolled class, and every submission joined with its
// parent assignment. A student with zero submissions yields an empty list.
type AcademicRecordResponse struct {
	User        UserResponse           `json:"user"`
	Profile     StudentProfileResponse `json:"profile"`
	Class       ClassResponse          `json:"class"`
	Submissions []SubmissionResponse   `json:"submissions"`
}
