package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// StatusPending is the status of every newly submitted application.
const StatusPending = "pending"

// Admission represents an admission application
type Admission struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildName  string    `gorm:"not null" json:"child_name"`
	ChildDOB   string    `gorm:"not null" json:"child_dob"`
	Program    string    `gorm:"not null" json:"program"`
	ParentName string    `gorm:"not null" json:"parent_name"`
	Email      string    `gorm:"not null;index" json:"email"`
	Phone      string    `gorm:"not null" json:"phone"`
	Address    string    `json:"address"`
	Status     string    `gorm:"default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Admission
func (Admission) TableName() string {
	return "admissions"
}

// BeforeCreate hook
func (a *Admission) BeforeCreate(tx *gorm.DB) error {
	a.CreatedAt = time.Now().UTC()
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// AdmissionRequest is the payload of the public admission form. It carries no
// status: only the admin path may set one.
type AdmissionRequest struct {
	ChildName  string `json:"child_name" validate:"required,max=100,excludesall=\r\n"`
	ChildDOB   string `json:"child_dob" validate:"required,datetime=2006-01-02"`
	Program    string `json:"program" validate:"required,max=100"`
	ParentName string `json:"parent_name" validate:"required,max=100,excludesall=\r\n"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,max=20"`
	Address    string `json:"address,omitempty" validate:"max=500"`
}

// Normalize trims surrounding whitespace. Values are otherwise stored as submitted.
func (r *AdmissionRequest) Normalize() {
	r.ChildName = strings.TrimSpace(r.ChildName)
	r.ChildDOB = strings.TrimSpace(r.ChildDOB)
	r.Program = strings.TrimSpace(r.Program)
	r.ParentName = strings.TrimSpace(r.ParentName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
}

// Record builds the stored record for this request with status pending.
func (r AdmissionRequest) Record(id int64, createdAt time.Time) Admission {
	return Admission{
		ID:         id,
		ChildName:  r.ChildName,
		ChildDOB:   r.ChildDOB,
		Program:    r.Program,
		ParentName: r.ParentName,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Status:     StatusPending,
		CreatedAt:  createdAt,
	}
}

// StatusUpdate is the body of an admin status change
type StatusUpdate struct {
	Status string `json:"status" validate:"required,max=32"`
}
