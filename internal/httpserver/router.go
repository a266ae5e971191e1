package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	authmw "github.com/Skotchmaster/agrilink/pkg/middleware/auth"
)

const FilesPath = "/files"

type Deps struct {
	DB   *gorm.DB
	Auth *authmw.AutoRefreshMiddleware

	AuthHandler      *AuthHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	ProductHandler   *ProductHandler
	ProducerHandler  *ProducerHandler
	MessagingHandler *MessagingHandler
	ReviewHandler    *ReviewHandler
	FavoriteHandler  *FavoriteHandler
	UploadHandler    *UploadHandler
	ReferenceHandler *ReferenceHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready(d.DB))
	e.GET(FilesPath+"/*", d.UploadHandler.ServeFile)

	requireAuth := d.Auth.RequireAuth
	producerOnly := d.Auth.RequireRole("Seuls les producteurs peuvent ajouter des produits", models.RoleProducer)

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.LogOut)

	v1.GET("/categories", d.ReferenceHandler.Categories)
	v1.GET("/regions", d.ReferenceHandler.Regions)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, producerOnly)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, requireAuth)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, requireAuth)

	producers := v1.Group("/producers")
	producers.GET("", d.ProducerHandler.ListProducers)
	producers.GET("/:id", d.ProducerHandler.GetProducer)
	producers.PATCH("/:id", d.ProducerHandler.PatchProducer, requireAuth)

	v1.GET("/reviews", d.ReviewHandler.ListReviews)
	v1.POST("/reviews", d.ReviewHandler.CreateReview, requireAuth)

	profile := v1.Group("/profile", requireAuth)
	profile.GET("", d.ProducerHandler.GetProfile)
	profile.PATCH("", d.ProducerHandler.UpdateProfile)

	cart := v1.Group("/cart", requireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.RemoveFromCart)

	orders := v1.Group("/orders", requireAuth)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.Checkout)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PATCH("/:id", d.OrderHandler.UpdateStatus)

	conversations := v1.Group("/conversations", requireAuth)
	conversations.GET("", d.MessagingHandler.ListConversations)
	conversations.POST("", d.MessagingHandler.StartConversation)
	conversations.GET("/:id/messages", d.MessagingHandler.ListMessages)
	conversations.POST("/:id/messages", d.MessagingHandler.SendMessage)

	favorites := v1.Group("/favorites", requireAuth)
	favorites.GET("", d.FavoriteHandler.ListFavorites)
	favorites.POST("", d.FavoriteHandler.ToggleFavorite)

	v1.POST("/upload", d.UploadHandler.Upload, requireAuth)
}
