package models

import "time"

// UserProfile holds the free-form attributes attached 1:1 to a User.
// It is created empty at registration and only ever edited by its owner.
type UserProfile struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio                string     `gorm:"type:text;default:null" json:"bio" validate:"max=500"`
	Location           string     `gorm:"type:varchar(100);default:null" json:"location" validate:"max=100"`
	BirthDate          *time.Time `gorm:"type:date;default:null" json:"birth_date"`
	Website            string     `gorm:"type:varchar(255);default:null" json:"website" validate:"omitempty,url,max=255"`
	EmailNotifications bool       `gorm:"default:true" json:"email_notifications"`
	SMSNotifications   bool       `gorm:"default:false" json:"sms_notifications"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Age returns the owner's age in full years, or 0 when no birth date is set.
func (p *UserProfile) Age() int {
	if p.BirthDate == nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// IsComplete reports whether all optional profile fields are filled in.
func (p *UserProfile) IsComplete() bool {
	return p.Bio != "" && p.Location != "" && p.BirthDate != nil && p.Website != ""
}
