package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// IsValid returns true if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// ProductBadge is an optional storefront label for a product
type ProductBadge string

const (
	ProductBadgeNew      ProductBadge = "new"
	ProductBadgeSale     ProductBadge = "sale"
	ProductBadgeFeatured ProductBadge = "featured"
)

// IsValid returns true if the badge is a valid ProductBadge
func (b ProductBadge) IsValid() bool {
	switch b {
	case ProductBadgeNew, ProductBadgeSale, ProductBadgeFeatured:
		return true
	}
	return false
}

// Product is a sellable catalog item. Stock is the authoritative on-hand
// quantity and is only ever changed through the inventory ledger.
type Product struct {
	shared.BaseEntity
	CategoryID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name           string           `gorm:"type:varchar(255);not null"`
	Slug           string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	SKU            string           `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	ThumbnailImage string           `gorm:"type:varchar(2048)"`
	Images         []string         `gorm:"serializer:json;type:jsonb"`
	Description    string           `gorm:"type:varchar(2048)"`
	Price          decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	PriceOrigin    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Badge          *ProductBadge    `gorm:"type:varchar(50)"`
	Stock          int              `gorm:"not null;default:0"`
	Status         ProductStatus    `gorm:"type:varchar(50);not null;default:draft"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in draft status
func NewProduct(categoryID uuid.UUID, name, slug, sku string, price decimal.Decimal) (*Product, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
		SKU:        sku,
		Images:     []string{},
		Price:      price,
		Status:     ProductStatusDraft,
	}, nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetStatus updates the publication status
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid product status")
	}
	p.Status = status
	p.Touch()
	return nil
}

// IsPublished returns true when the product is visible on the storefront
func (p *Product) IsPublished() bool {
	return p.Status == ProductStatusPublished
}
