package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubjectProgress is one per-subject marks entry stored on a student profile.
type SubjectProgress struct {
	SubjectName string  `json:"subject_name"`
	Marks       float64 `json:"marks"`
}

// StudentProfile holds the student-specific fields attached one-to-one to a
// user account with the student role.
type StudentProfile struct {
	ID        uint                                 `gorm:"primaryKey" json:"id"`
	UserID    uint                                 `gorm:"uniqueIndex;not null" json:"user_id"`
	RegNo     string                               `gorm:"size:64;uniqueIndex;not null" json:"reg_no"`
	ClassID   uint                                 `gorm:"not null" json:"class_id"`
	Progress  datatypes.JSONSlice[SubjectProgress] `json:"progress"`
	CreatedAt time.Time                            `json:"created_at"`
	UpdatedAt time.Time                            `json:"updated_at"`
	User      User                                 `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	Class     Class                                `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"class"`
}

// TeacherProfile holds the teacher-specific fields attached one-to-one to a
// user account with the teacher role.
type TeacherProfile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Department string    `gorm:"size:255;not null" json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
}
