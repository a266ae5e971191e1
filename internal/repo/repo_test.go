package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/dbtest"
	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/pkg/db"
)

// databases returns SQLite plus Postgres when AGRILINK_TEST_DATABASE_URL
// points at a disposable database.
func databases(t *testing.T) map[string]*gorm.DB {
	t.Helper()

	out := map[string]*gorm.DB{"sqlite": dbtest.Open(t)}

	dsn := os.Getenv("AGRILINK_TEST_DATABASE_URL")
	if dsn == "" {
		return out
	}
	gdb, err := db.OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = db.Close(gdb) })
	out["postgres"] = gdb
	return out
}

func TestCreateProfile_DuplicateEmail(t *testing.T) {
	for name, gdb := range databases(t) {
		t.Run(name, func(t *testing.T) {
			r := &GormRepo{DB: gdb}
			ctx := context.Background()
			email := "dup-" + uuid.NewString() + "@agrilink.sn"

			first := &models.Profile{Email: email, PasswordHash: "x", FullName: "A", Role: models.RoleConsumer}
			require.NoError(t, r.CreateProfile(ctx, first, nil))

			second := &models.Profile{Email: email, PasswordHash: "y", FullName: "B", Role: models.RoleProducer}
			err := r.CreateProfile(ctx, second, &models.ProducerProfile{BusinessName: "Ferme B", IsActive: true})
			assert.ErrorIs(t, err, ErrAlreadyExists)

			var producers int64
			require.NoError(t, gdb.Model(&models.ProducerProfile{}).Where("business_name = ?", "Ferme B").Count(&producers).Error)
			assert.Zero(t, producers)
		})
	}
}

func TestPlaceOrder(t *testing.T) {
	for name, gdb := range databases(t) {
		t.Run(name, func(t *testing.T) {
			r := &GormRepo{DB: gdb}
			ctx := context.Background()

			consumer := dbtest.Consumer(t, gdb)
			_, pp := dbtest.Producer(t, gdb)
			p := dbtest.Product(t, gdb, pp.ID, 1500, 3)
			ci := dbtest.CartItem(t, gdb, consumer.ID, p.ID, 2)

			place := func(qty int64) (*models.Order, error) {
				o := &models.Order{
					UserID:          consumer.ID,
					ProducerID:      pp.ID,
					Status:          models.OrderStatusPending,
					TotalAmount:     1500*qty + 1000,
					DeliveryFee:     1000,
					DeliveryAddress: "Thies",
				}
				items := []models.OrderItem{{ProductID: p.ID, Quantity: qty, UnitPrice: 1500, TotalPrice: 1500 * qty}}
				pay := &models.Payment{Method: models.PaymentCash, Amount: o.TotalAmount, Status: models.PaymentStatusPending}
				return o, r.PlaceOrder(ctx, o, items, pay, []uuid.UUID{ci.ID})
			}

			_, err := place(5)
			require.ErrorIs(t, err, ErrInsufficientStock)

			var orders int64
			require.NoError(t, gdb.Model(&models.Order{}).Where("user_id = ?", consumer.ID).Count(&orders).Error)
			assert.Zero(t, orders, "failed bucket is rolled back")
			cart, err := r.GetCart(ctx, consumer.ID)
			require.NoError(t, err)
			assert.Len(t, cart, 1)

			o, err := place(2)
			require.NoError(t, err)

			got, err := r.GetOrder(ctx, o.ID)
			require.NoError(t, err)
			require.Len(t, got.Items, 1)
			require.NotNil(t, got.Payment)
			assert.Equal(t, models.PaymentStatusPending, got.Payment.Status)

			stored, err := r.GetProduct(ctx, p.ID)
			require.NoError(t, err)
			assert.EqualValues(t, 1, stored.StockQuantity)

			cart, err = r.GetCart(ctx, consumer.ID)
			require.NoError(t, err)
			assert.Empty(t, cart)

			require.NoError(t, r.CompletePayment(ctx, o.ID, time.Now().UTC()))
			got, err = r.GetOrder(ctx, o.ID)
			require.NoError(t, err)
			assert.Equal(t, models.PaymentStatusCompleted, got.Payment.Status)
			assert.NotNil(t, got.Payment.CompletedAt)
		})
	}
}

func TestRotateRefreshToken(t *testing.T) {
	for name, gdb := range databases(t) {
		t.Run(name, func(t *testing.T) {
			r := &GormRepo{DB: gdb}
			ctx := context.Background()
			user := dbtest.Consumer(t, gdb)

			token := func() *models.RefreshToken {
				return &models.RefreshToken{
					UserID:    user.ID,
					JTI:       uuid.NewString(),
					TokenHash: uuid.NewString(),
					ExpiresAt: time.Now().Add(time.Hour).UTC(),
				}
			}

			first := token()
			require.NoError(t, r.CreateRefreshToken(ctx, first))

			second := token()
			require.NoError(t, r.RotateRefreshToken(ctx, first.JTI, second))
			assert.ErrorIs(t, r.RotateRefreshToken(ctx, first.JTI, token()), ErrTokenRevoked)

			require.NoError(t, r.RevokeRefreshToken(ctx, second.TokenHash))
			assert.ErrorIs(t, r.RotateRefreshToken(ctx, second.JTI, token()), ErrTokenRevoked)

			expired := token()
			expired.ExpiresAt = time.Now().Add(-time.Minute).UTC()
			require.NoError(t, r.CreateRefreshToken(ctx, expired))
			assert.ErrorIs(t, r.RotateRefreshToken(ctx, expired.JTI, token()), ErrTokenRevoked)
		})
	}
}

func TestToggleFavorite(t *testing.T) {
	for name, gdb := range databases(t) {
		t.Run(name, func(t *testing.T) {
			r := &GormRepo{DB: gdb}
			ctx := context.Background()
			user := dbtest.Consumer(t, gdb)
			_, pp := dbtest.Producer(t, gdb)
			p := dbtest.Product(t, gdb, pp.ID, 100, 1)

			fav, removed, err := r.ToggleFavorite(ctx, user.ID, p.ID)
			require.NoError(t, err)
			assert.False(t, removed)
			require.NotNil(t, fav)

			list, err := r.ListFavorites(ctx, user.ID)
			require.NoError(t, err)
			require.Len(t, list, 1)
			require.NotNil(t, list[0].Product)
			assert.Equal(t, p.ID, list[0].Product.ID)

			fav, removed, err = r.ToggleFavorite(ctx, user.ID, p.ID)
			require.NoError(t, err)
			assert.True(t, removed)
			assert.Nil(t, fav)
		})
	}
}
