package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Inquiry represents a contact form submission
type Inquiry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now().UTC()
	return nil
}

// InquiryRequest is the payload of the public inquiry form
type InquiryRequest struct {
	Name    string `json:"name" validate:"required,max=100,excludesall=\r\n"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Message string `json:"message,omitempty" validate:"max=5000"`
}

// Normalize trims surrounding whitespace. Values are otherwise stored as submitted.
func (r *InquiryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
}

// Record builds the stored record for this request.
func (r InquiryRequest) Record(id int64, createdAt time.Time) Inquiry {
	return Inquiry{
		ID:        id,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Message:   r.Message,
		CreatedAt: createdAt,
	}
}
