package models

import "time"

// Assignment is a teacher-authored work item scoped to a class. TeacherID is
// the author and decides who may grade submissions under it.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Subject     string    `gorm:"size:255;not null" json:"subject"`
	Description string    `gorm:"type:text" json:"description"`
	ClassID     uint      `gorm:"not null;index" json:"class_id"`
	TeacherID   uint      `gorm:"not null;index" json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Class       Class     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Teacher     User      `gorm:"foreignKey:TeacherID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsOwnedBy reports whether the given teacher authored the assignment.
func (a Assignment) IsOwnedBy(teacherID uint) bool {
	return a.TeacherID == teacherID
}
