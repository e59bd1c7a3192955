package core

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string `json:"-"`
	DateOfBirth  string `json:"date_of_birth"`
	Position     string `json:"position"`
	CompanyName  string `json:"company_name"`

	// RefreshToken is the currently valid opaque refresh credential.
	// Rotated on every refresh, cleared on logout.
	RefreshToken *string `gorm:"index" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type TimekeepingEntry struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint   `gorm:"index" json:"user_id"`
	Status   string `json:"status"`
	Date     string `json:"date"` // dd/MM/yyyy as submitted
	Time     string `json:"time"` // HH:mm:ss as submitted
	Location string `json:"location"`
	ImageURL string `json:"imageURL"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
}

func (TimekeepingEntry) TableName() string {
	return "timekeeping_entries"
}
