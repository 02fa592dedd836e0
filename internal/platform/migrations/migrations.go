package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&productImageRecord{},
		&regionRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Category schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID          int64  `gorm:"primaryKey;column:id"`
	Name        string `gorm:"column:name;uniqueIndex;size:100"`
	Description string `gorm:"column:description"`
	ImageURL    string `gorm:"column:image_url"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	CategoryID  int64           `gorm:"column:category_id;index"`
	Name        string          `gorm:"column:name;size:255;index"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	MetrePrice  decimal.Decimal `gorm:"column:metre_price;type:numeric(10,2)"`
	WeightKG    decimal.Decimal `gorm:"column:weight_kg;type:numeric(8,2)"`
	Available   bool            `gorm:"column:is_available;index"`
	ImageURL    string          `gorm:"column:image_url"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type productImageRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	ProductID int64  `gorm:"column:product_id;index"`
	URL       string `gorm:"column:url"`
	Color     string `gorm:"column:color;size:50"`
	ColorName string `gorm:"column:color_name;size:50"`
}

func (productImageRecord) TableName() string { return "product_images" }

// Wilaya delivery schema mirrors the delivery Postgres adapter.
type regionRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Name          string          `gorm:"column:name;uniqueIndex;size:100"`
	DeliveryPrice decimal.Decimal `gorm:"column:delivery_price;type:numeric(10,2)"`
}

func (regionRecord) TableName() string { return "wilaya_deliveries" }

// Order schema mirrors the checkout Postgres adapter.
type orderRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:36"`
	GuestName     string          `gorm:"column:guest_name;size:255"`
	GuestPhone    string          `gorm:"column:guest_phone;size:20"`
	GuestEmail    string          `gorm:"column:guest_email;size:255;index"`
	GuestWilaya   string          `gorm:"column:guest_wilaya;size:100"`
	GuestAddress  string          `gorm:"column:guest_address"`
	DeliveryPrice decimal.Decimal `gorm:"column:delivery_price;type:numeric(10,2)"`
	ProductTotal  decimal.Decimal `gorm:"column:product_total;type:numeric(12,2)"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:numeric(12,2)"`
	IsSent        bool            `gorm:"column:is_sent"`
	CreatedAt     time.Time       `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderID     string          `gorm:"column:order_id;size:36;index"`
	ProductID   string          `gorm:"column:product_id;size:36"`
	ProductName string          `gorm:"column:product_name;size:255"`
	Quantity    int             `gorm:"column:quantity"`
	Color       string          `gorm:"column:color;size:100"`
	Length      decimal.Decimal `gorm:"column:longueur;type:numeric(10,2)"`
	MetrePrice  decimal.Decimal `gorm:"column:metre_price;type:numeric(10,2)"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Calculation string          `gorm:"column:calculation;size:255"`
}

func (orderItemRecord) TableName() string { return "order_items" }
