package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleConsumer = "consumer"
	RoleProducer = "producer"
	RoleAdmin    = "admin"
)

type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"        json:"email"`
	PasswordHash string    `gorm:"not null"                    json:"-"`
	FullName     string    `gorm:"not null"                    json:"full_name"`
	Phone        *string   `                                   json:"phone"`
	AvatarURL    *string   `                                   json:"avatar_url"`
	Role         string    `gorm:"not null;default:consumer"   json:"role"`
	IsVerified   bool      `gorm:"not null;default:false"      json:"is_verified"`
	CreatedAt    time.Time `                                   json:"created_at"`
	UpdatedAt    time.Time `                                   json:"updated_at"`

	ProducerProfile *ProducerProfile `gorm:"foreignKey:UserID" json:"producerProfile,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Profile) TableName() string {
	return "profiles"
}

type ProducerProfile struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex"    json:"user_id"`
	BusinessName   string     `gorm:"not null"                 json:"business_name"`
	Description    *string    `                                json:"description"`
	RegionID       *uuid.UUID `gorm:"type:uuid;index"          json:"region_id"`
	Address        *string    `                                json:"address"`
	Latitude       *float64   `                                json:"latitude"`
	Longitude      *float64   `                                json:"longitude"`
	IsCertifiedBio bool       `gorm:"not null;default:false"   json:"is_certified_bio"`
	Rating         float64    `gorm:"not null;default:0"       json:"rating"`
	TotalReviews   int64      `gorm:"not null;default:0"       json:"total_reviews"`
	TotalSales     int64      `gorm:"not null;default:0"       json:"total_sales"`
	IsActive       bool       `gorm:"not null"                 json:"is_active"`
	CreatedAt      time.Time  `                                json:"created_at"`

	Profile  *Profile  `gorm:"foreignKey:UserID;references:ID" json:"profile,omitempty"`
	Region   *Region   `gorm:"foreignKey:RegionID"             json:"region,omitempty"`
	Products []Product `gorm:"foreignKey:ProducerID"           json:"products,omitempty"`
}

func (p *ProducerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (ProducerProfile) TableName() string {
	return "producer_profiles"
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	NameWolof   *string   `                            json:"name_wolof"`
	Icon        *string   `                            json:"icon"`
	Description *string   `                            json:"description"`
	SortOrder   int       `gorm:"not null;default:0"   json:"sort_order"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Region struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null"             json:"name"`
	Code string    `gorm:"uniqueIndex;not null" json:"code"`
}

func (r *Region) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"       json:"id"`
	ProducerID       uuid.UUID  `gorm:"type:uuid;index;not null"   json:"producer_id"`
	CategoryID       *uuid.UUID `gorm:"type:uuid;index"            json:"category_id"`
	Name             string     `gorm:"not null"                   json:"name"`
	Description      *string    `                                  json:"description"`
	Price            int64      `gorm:"not null;check:price>=0"    json:"price"`
	Unit             string     `gorm:"not null;default:kg"        json:"unit"`
	StockQuantity    int64      `gorm:"not null;default:0"         json:"stock_quantity"`
	MinOrderQuantity int64      `gorm:"not null;default:1"         json:"min_order_quantity"`
	IsBio            bool       `gorm:"not null;default:false"     json:"is_bio"`
	IsAvailable      bool       `gorm:"not null"                   json:"is_available"`
	Images           []string   `gorm:"type:text;serializer:json"  json:"images"`
	CreatedAt        time.Time  `gorm:"index"                      json:"created_at"`
	UpdatedAt        time.Time  `                                  json:"updated_at"`

	Producer *ProducerProfile `gorm:"foreignKey:ProducerID" json:"producer,omitempty"`
	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                       json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null;default:1;check:quantity>0"        json:"quantity"`
	CreatedAt time.Time `                                                  json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPreparing  = "preparing"
	OrderStatusReady      = "ready"
	OrderStatusDelivering = "delivering"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivering,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ProducerID        uuid.UUID `gorm:"type:uuid;index;not null" json:"producer_id"`
	Status            string    `gorm:"not null;default:pending" json:"status"`
	TotalAmount       int64     `gorm:"not null"                 json:"total_amount"`
	DeliveryFee       int64     `gorm:"not null;default:0"       json:"delivery_fee"`
	DeliveryAddress   string    `gorm:"not null"                 json:"delivery_address"`
	DeliveryLatitude  *float64  `                                json:"delivery_latitude"`
	DeliveryLongitude *float64  `                                json:"delivery_longitude"`
	Notes             *string   `                                json:"notes"`
	CreatedAt         time.Time `gorm:"index"                    json:"created_at"`
	UpdatedAt         time.Time `                                json:"updated_at"`

	Items    []OrderItem      `gorm:"foreignKey:OrderID"    json:"items,omitempty"`
	Payment  *Payment         `gorm:"foreignKey:OrderID"    json:"payment,omitempty"`
	Producer *ProducerProfile `gorm:"foreignKey:ProducerID" json:"producer,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"       json:"product_id"`
	Quantity   int64     `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice  int64     `gorm:"not null"                 json:"unit_price"`
	TotalPrice int64     `gorm:"not null"                 json:"total_price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

const (
	PaymentOrangeMoney = "orange_money"
	PaymentWave        = "wave"
	PaymentFreeMoney   = "free_money"
	PaymentCash        = "cash"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

var PaymentMethods = []string{PaymentOrangeMoney, PaymentWave, PaymentFreeMoney, PaymentCash}

type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	OrderID       uuid.UUID  `gorm:"type:uuid;uniqueIndex"     json:"order_id"`
	Method        string     `gorm:"not null"                  json:"method"`
	Amount        int64      `gorm:"not null"                  json:"amount"`
	Status        string     `gorm:"not null;default:pending"  json:"status"`
	TransactionID *string    `                                 json:"transaction_id"`
	PhoneNumber   *string    `                                 json:"phone_number"`
	CreatedAt     time.Time  `                                 json:"created_at"`
	CompletedAt   *time.Time `                                 json:"completed_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Conversation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"                          json:"id"`
	ConsumerID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_conv_consumer_producer" json:"consumer_id"`
	ProducerID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_conv_consumer_producer" json:"producer_id"`
	LastMessage   *string    `                                                     json:"last_message"`
	LastMessageAt *time.Time `gorm:"index"                                         json:"last_message_at"`
	CreatedAt     time.Time  `                                                     json:"created_at"`

	Consumer *Profile         `gorm:"foreignKey:ConsumerID" json:"consumer,omitempty"`
	Producer *ProducerProfile `gorm:"foreignKey:ProducerID" json:"producer,omitempty"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"       json:"sender_id"`
	Content        string    `gorm:"not null"                 json:"content"`
	IsRead         bool      `gorm:"not null;default:false"   json:"is_read"`
	CreatedAt      time.Time `gorm:"index"                    json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"             json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex"            json:"order_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null"               json:"reviewer_id"`
	ProducerID uuid.UUID `gorm:"type:uuid;index;not null"         json:"producer_id"`
	Rating     int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment    *string   `                                        json:"comment"`
	CreatedAt  time.Time `                                        json:"created_at"`

	Reviewer *Profile `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                      json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_fav_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_fav_user_product" json:"product_id"`
	CreatedAt time.Time `                                                 json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;not null"     json:"jti"`
	TokenHash string    `gorm:"uniqueIndex;not null"     json:"-"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false"   json:"revoked"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Profile{}, &ProducerProfile{}, &Category{}, &Region{}, &Product{},
		&CartItem{}, &Order{}, &OrderItem{}, &Payment{},
		&Conversation{}, &Message{}, &Review{}, &Favorite{}, &RefreshToken{},
	}
}
