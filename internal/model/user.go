package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	UserName string `gorm:"size:64;uniqueIndex;not null"`
	FullName string `gorm:"size:255;not null"`
	// bcrypt hash, never the plaintext
	Password string `gorm:"size:255;not null"`
	Phone    string `gorm:"size:32"`
	Role     string `gorm:"size:16;not null;default:USER"` // USER, ADMIN

	IsEmailVerified              bool `gorm:"not null;default:false"`
	EmailVerificationToken       *string
	EmailVerificationTokenExpiry *time.Time
	ForgotPasswordToken          *string
	ForgotPasswordTokenExpiry    *time.Time

	// SHA-256 hash of the single active refresh token; nil when logged out
	RefreshToken *string `gorm:"size:64"`

	Addresses []Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	ID uint `gorm:"primaryKey"`
	// FK → user.id
	UserID       uint   `gorm:"index;not null"`
	AddressLine1 string `gorm:"size:255;not null"`
	AddressLine2 string `gorm:"size:255"`
	City         string `gorm:"size:128;not null"`
	State        string `gorm:"size:128;not null"`
	Pincode      string `gorm:"size:16;not null"`
	Country      string `gorm:"size:128;not null"`
	IsDefault    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ApiKey struct {
	ID uint `gorm:"primaryKey"`
	// FK → user.id
	UserID   uint   `gorm:"index;not null"`
	ApiKey   string `gorm:"size:64;uniqueIndex;not null"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
}
