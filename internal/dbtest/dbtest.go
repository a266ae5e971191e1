// Package dbtest opens migrated throwaway databases and seeds fixtures for
// tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/pkg/db"
)

// Open returns a migrated SQLite database in a per-test temp dir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "agrilink.db"))
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func Consumer(t testing.TB, gdb *gorm.DB) *models.Profile {
	t.Helper()

	p := &models.Profile{
		Email:        "c-" + uuid.NewString() + "@agrilink.sn",
		PasswordHash: "x",
		FullName:     "Awa Ndiaye",
		Role:         models.RoleConsumer,
	}
	require.NoError(t, gdb.Create(p).Error)
	return p
}

// Producer creates a producer account with its business profile.
func Producer(t testing.TB, gdb *gorm.DB) (*models.Profile, *models.ProducerProfile) {
	t.Helper()

	user := &models.Profile{
		Email:        "p-" + uuid.NewString() + "@agrilink.sn",
		PasswordHash: "x",
		FullName:     "Moussa Diop",
		Role:         models.RoleProducer,
	}
	require.NoError(t, gdb.Create(user).Error)

	pp := &models.ProducerProfile{
		UserID:       user.ID,
		BusinessName: "Ferme " + user.ID.String()[:8],
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(pp).Error)
	return user, pp
}

// Product creates an available product. mutate may adjust it before insert.
func Product(t testing.TB, gdb *gorm.DB, producerID uuid.UUID, price, stock int64, mutate ...func(*models.Product)) *models.Product {
	t.Helper()

	p := &models.Product{
		ProducerID:       producerID,
		Name:             "Produit " + uuid.NewString()[:8],
		Price:            price,
		Unit:             "kg",
		StockQuantity:    stock,
		MinOrderQuantity: 1,
		IsAvailable:      true,
		Images:           []string{},
	}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, gdb.Omit("Producer", "Category").Create(p).Error)
	return p
}

func CartItem(t testing.TB, gdb *gorm.DB, userID, productID uuid.UUID, qty int64) *models.CartItem {
	t.Helper()

	it := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	require.NoError(t, gdb.Omit("Product").Create(it).Error)
	return it
}

// Order creates an order with a pending payment and no items.
func Order(t testing.TB, gdb *gorm.DB, userID, producerID uuid.UUID, status string) *models.Order {
	t.Helper()

	o := &models.Order{
		UserID:          userID,
		ProducerID:      producerID,
		Status:          status,
		TotalAmount:     5000,
		DeliveryFee:     1000,
		DeliveryAddress: "Plateau, Dakar",
	}
	require.NoError(t, gdb.Omit("Items", "Payment", "Producer").Create(o).Error)
	require.NoError(t, gdb.Create(&models.Payment{
		OrderID: o.ID,
		Method:  models.PaymentCash,
		Amount:  o.TotalAmount,
		Status:  models.PaymentStatusPending,
	}).Error)
	return o
}
