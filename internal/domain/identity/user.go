package identity

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/backend/internal/domain/shared"
)

// User represents an operator account. Only active users may
// authenticate, and mutation endpoints require the superuser flag.
type User struct {
	shared.BaseEntity
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName       string `gorm:"type:varchar(255)"`
	HashedPassword string `gorm:"type:varchar(255);not null"`
	IsActive       bool   `gorm:"not null;default:true"`
	IsSuperuser    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(email, fullName, password string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user := &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		FullName:   fullName,
		IsActive:   true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword hashes and stores the given plaintext password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hash)
	u.Touch()
	return nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// Promote grants superuser rights
func (u *User) Promote() {
	u.IsSuperuser = true
	u.Touch()
}

// Deactivate disables the account without deleting it
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	return nil
}
