package partner

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// Customer represents a buyer in the partner context. Phone numbers
// act as the natural key and must be unique across customers.
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email   string `gorm:"type:varchar(255);index"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateCustomerPhone(phone); err != nil {
		return nil, err
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      strings.TrimSpace(phone),
	}, nil
}

// Rename updates the customer's display name
func (c *Customer) Rename(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// ChangePhone updates the customer's phone number
func (c *Customer) ChangePhone(phone string) error {
	if err := validateCustomerPhone(phone); err != nil {
		return err
	}
	c.Phone = strings.TrimSpace(phone)
	c.Touch()
	return nil
}

// SetEmail updates the customer's email address
func (c *Customer) SetEmail(email string) {
	c.Email = strings.TrimSpace(email)
	c.Touch()
}

// SetAddress updates the customer's mailing address
func (c *Customer) SetAddress(address string) {
	c.Address = address
	c.Touch()
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 255 characters")
	}
	return nil
}

func validateCustomerPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Customer phone cannot exceed 50 characters")
	}
	return nil
}
