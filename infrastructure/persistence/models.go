package persistence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty primary key with a random UUID.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// NavLinkModel represents a navigation link row.
type NavLinkModel struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	ParentID     *string   `gorm:"column:parent_id;type:varchar(36);index:idx_nav_links_parent"`
	Label        string    `gorm:"column:label;not null"`
	Slug         string    `gorm:"column:slug;not null;index"`
	DisplayOrder int       `gorm:"column:display_order;not null"`
	Published    bool      `gorm:"column:published;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (NavLinkModel) TableName() string { return "nav_links" }

// BeforeCreate assigns a UUID.
func (m *NavLinkModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// ProductModel represents a catalog product row.
type ProductModel struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ModelName    *string   `gorm:"column:model_name"`
	Brand        *string   `gorm:"column:brand;index"`
	CategorySlug string    `gorm:"column:category_slug;not null;index"`
	Price        *float64  `gorm:"column:price"`
	Images       []string  `gorm:"column:images;serializer:json"`
	Published    bool      `gorm:"column:published;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (ProductModel) TableName() string { return "products" }

// BeforeCreate assigns a UUID.
func (m *ProductModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// UserModel represents an account row. Email is unique per user type.
type UserModel struct {
	ID             string     `gorm:"column:id;type:varchar(36);primaryKey"`
	Name           string     `gorm:"column:name;not null"`
	Email          string     `gorm:"column:email;not null;uniqueIndex:idx_users_email_type"`
	Password       string     `gorm:"column:password;not null"`
	UserType       string     `gorm:"column:user_type;not null;uniqueIndex:idx_users_email_type"`
	ResetCodeHash  *string    `gorm:"column:reset_code_hash"`
	ResetExpiresAt *time.Time `gorm:"column:reset_expires_at"`
	ResetAttempts  int        `gorm:"column:reset_attempts;not null;default:0"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

// TableName returns the table name.
func (UserModel) TableName() string { return "users" }

// BeforeCreate assigns a UUID.
func (m *UserModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// AddressColumn is the JSON shape of a stored postal address.
type AddressColumn struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// BillingColumn is the JSON shape of a stored billing contact.
type BillingColumn struct {
	Name    string        `json:"name,omitempty"`
	Email   string        `json:"email,omitempty"`
	Address AddressColumn `json:"address"`
}

// OrderModel represents an order row.
type OrderModel struct {
	ID            string           `gorm:"column:id;type:varchar(36);primaryKey"`
	Email         *string          `gorm:"column:email;index"`
	TotalAmount   float64          `gorm:"column:total_amount;not null"`
	Currency      string           `gorm:"column:currency;not null"`
	PaymentStatus string           `gorm:"column:payment_status;not null"`
	OrderStatus   string           `gorm:"column:order_status;not null"`
	FulfillStatus string           `gorm:"column:fulfill_status;not null"`
	PaymentMethod *string          `gorm:"column:payment_method"`
	ShippingAddr  AddressColumn    `gorm:"column:shipping_addr;serializer:json"`
	BillingAddr   BillingColumn    `gorm:"column:billing_addr;serializer:json"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (OrderModel) TableName() string { return "orders" }

// BeforeCreate assigns a UUID.
func (m *OrderModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// OrderItemModel represents one order line.
type OrderItemModel struct {
	ID             string `gorm:"column:id;type:varchar(36);primaryKey"`
	OrderID        string `gorm:"column:order_id;type:varchar(36);not null;index"`
	Position       int    `gorm:"column:position;not null"`
	ProductID      string `gorm:"column:product_id"`
	ProductName    string `gorm:"column:product_name"`
	UnitPriceMinor int64  `gorm:"column:unit_price_minor;not null"`
	Quantity       int    `gorm:"column:quantity;not null"`
	SubtotalMinor  int64  `gorm:"column:subtotal_minor;not null"`
	ImageURL       string `gorm:"column:image_url"`
}

// TableName returns the table name.
func (OrderItemModel) TableName() string { return "order_items" }

// BeforeCreate assigns a UUID.
func (m *OrderItemModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}

// ReviewModel represents a product review row.
type ReviewModel struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	ProductID string    `gorm:"column:product_id;type:varchar(36);not null;index"`
	UserName  string    `gorm:"column:user_name;not null"`
	UserEmail *string   `gorm:"column:user_email"`
	Rating    int       `gorm:"column:rating;not null"`
	Title     *string   `gorm:"column:title"`
	Body      string    `gorm:"column:body;not null"`
	Images    []string  `gorm:"column:images;serializer:json"`
	Helpful   int       `gorm:"column:helpful;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ReviewModel) TableName() string { return "product_reviews" }

// BeforeCreate assigns a UUID.
func (m *ReviewModel) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}
