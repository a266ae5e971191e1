package transport

import "github.com/google/uuid"

type RegisterRequest struct {
	Email        string  `json:"email"         validate:"required,email"`
	Password     string  `json:"password"      validate:"required,min=6"`
	FullName     string  `json:"full_name"     validate:"required"`
	Phone        *string `json:"phone"`
	Role         string  `json:"role"          validate:"required,oneof=consumer producer"`
	BusinessName string  `json:"business_name" validate:"required_if=Role producer"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"  validate:"omitempty,min=1"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int64     `json:"quantity"   validate:"required,min=1"`
}

type CheckoutRequest struct {
	DeliveryAddress   string   `json:"delivery_address"   validate:"required"`
	DeliveryLatitude  *float64 `json:"delivery_latitude"  validate:"omitempty,latitude"`
	DeliveryLongitude *float64 `json:"delivery_longitude" validate:"omitempty,longitude"`
	Notes             *string  `json:"notes"`
	PaymentMethod     string   `json:"payment_method"     validate:"omitempty,oneof=orange_money wave free_money cash"`
	PhoneNumber       *string  `json:"phone_number"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready delivering delivered cancelled"`
}

type CreateProductRequest struct {
	Name             string     `json:"name"               validate:"required"`
	Description      *string    `json:"description"`
	Price            int64      `json:"price"              validate:"min=0"`
	Unit             string     `json:"unit"`
	StockQuantity    int64      `json:"stock_quantity"     validate:"min=0"`
	MinOrderQuantity *int64     `json:"min_order_quantity" validate:"omitempty,min=1"`
	IsBio            bool       `json:"is_bio"`
	IsAvailable      *bool      `json:"is_available"`
	Images           []string   `json:"images"`
	CategoryID       *uuid.UUID `json:"category_id"`
}

type PatchProductRequest struct {
	Name             *string    `json:"name"               validate:"omitempty,min=1"`
	Description      *string    `json:"description"`
	Price            *int64     `json:"price"              validate:"omitempty,min=0"`
	Unit             *string    `json:"unit"`
	StockQuantity    *int64     `json:"stock_quantity"     validate:"omitempty,min=0"`
	MinOrderQuantity *int64     `json:"min_order_quantity" validate:"omitempty,min=1"`
	IsBio            *bool      `json:"is_bio"`
	IsAvailable      *bool      `json:"is_available"`
	Images           []string   `json:"images"`
	CategoryID       *uuid.UUID `json:"category_id"`
}

type PatchProducerRequest struct {
	BusinessName   *string    `json:"business_name"    validate:"omitempty,min=1"`
	Description    *string    `json:"description"`
	RegionID       *uuid.UUID `json:"region_id"`
	Address        *string    `json:"address"`
	Latitude       *float64   `json:"latitude"         validate:"omitempty,latitude"`
	Longitude      *float64   `json:"longitude"        validate:"omitempty,longitude"`
	IsCertifiedBio *bool      `json:"is_certified_bio"`
	IsActive       *bool      `json:"is_active"`
}

type StartConversationRequest struct {
	ProducerID uuid.UUID `json:"producer_id" validate:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateReviewRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Rating  int       `json:"rating"   validate:"required,min=1,max=5"`
	Comment *string   `json:"comment"`
}

type ToggleFavoriteRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Page is a paginated list response.
type Page[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
