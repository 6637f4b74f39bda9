package user

import "time"

// User is an account identified externally by its token. ID is the internal
// numeric identity referenced by memberships, expenses and availability.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	PublicID  string    `gorm:"column:user_id;size:32;not null;uniqueIndex"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	Name      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName falls back to the public id when no name was given.
func (u User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.PublicID
}
