package models

import "time"

// Submission is the per-student, per-assignment record combining an uploaded
// artifact and its eventual marks and feedback. Exactly one row exists per
// (assignment, student) pair; both the student submit path and the teacher
// grading path upsert the same row.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submission_pair" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submission_pair" json:"student_id"`
	FilePath     string     `gorm:"size:512" json:"file_path"`
	Marks        *float64   `gorm:"check:marks IS NULL OR (marks >= 0 AND marks <= 100)" json:"marks"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student      User       `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// IsGraded reports whether a teacher has recorded marks for the submission.
// A fresh upload keeps Marks nil so an actual zero grade stays
// distinguishable from "not graded yet".
func (s Submission) IsGraded() bool {
	return s.Marks != nil
}
