package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/events"
	"github.com/Skotchmaster/agrilink/pkg/logging"
	"github.com/Skotchmaster/agrilink/pkg/search"
	"github.com/Skotchmaster/agrilink/pkg/util"
)

const indexTimeout = 5 * time.Second

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Search search.Indexer
}

func newPage[T any](items []T, total int64, page, limit, offset int) transport.Page[T] {
	if items == nil {
		items = []T{}
	}
	return transport.Page[T]{
		Data:    items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: util.HasMore(total, offset, limit),
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, page, limit int) (transport.Page[models.Product], error) {
	page, limit, offset := util.Calculate(page, limit)

	total, items, err := s.Repo.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	return newPage(items, total, page, limit, offset), nil
}

// SearchProducts queries the search index and falls back to a substring
// match in the database when the index is unavailable.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page, limit int) (transport.Page[models.Product], error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")

	q = strings.TrimSpace(q)
	if q == "" {
		return transport.Page[models.Product]{}, newErr(ErrValidation, "q requis")
	}
	page, limit, offset := util.Calculate(page, limit)

	if s.Search != nil {
		total, ids, err := s.Search.Search(ctx, q, offset, limit)
		if err == nil {
			uids := make([]uuid.UUID, 0, len(ids))
			for _, id := range ids {
				if u, perr := uuid.Parse(id); perr == nil {
					uids = append(uids, u)
				}
			}
			items, err := s.Repo.GetProductsByIDs(ctx, uids)
			if err != nil {
				return transport.Page[models.Product]{}, err
			}
			return newPage(items, total, page, limit, offset), nil
		}
		if !errors.Is(err, search.ErrDisabled) {
			l.Warn("search_fallback", "reason", "index error", "error", err)
		}
	}

	total, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{Search: q}, offset, limit)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	return newPage(items, total, page, limit, offset), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Produit introuvable")
	}
	return p, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, sess Session, req transport.CreateProductRequest) (*models.Product, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if !sess.IsProducer() {
		return nil, newErr(ErrForbidden, "Seuls les producteurs peuvent ajouter des produits")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, newErr(ErrValidation, "Nom requis")
	}
	if req.Price < 0 || req.StockQuantity < 0 {
		return nil, newErr(ErrValidation, "Prix et stock doivent etre positifs")
	}

	producer, err := s.Repo.GetProducerByUserID(ctx, sess.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Profil producteur introuvable")
	}
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		ProducerID:       producer.ID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Unit:             req.Unit,
		StockQuantity:    req.StockQuantity,
		MinOrderQuantity: 1,
		IsBio:            req.IsBio,
		IsAvailable:      true,
		Images:           req.Images,
	}
	if p.Unit == "" {
		p.Unit = "kg"
	}
	if req.MinOrderQuantity != nil {
		if *req.MinOrderQuantity < 1 {
			return nil, newErr(ErrValidation, "Quantite minimale invalide")
		}
		p.MinOrderQuantity = *req.MinOrderQuantity
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.index(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), map[string]any{
		"type":        "product_created",
		"product_id":  p.ID,
		"producer_id": p.ProducerID,
	})
	return s.Repo.GetProduct(ctx, p.ID)
}

// owned loads the product and checks the caller owns it.
func (s *CatalogService) owned(ctx context.Context, sess Session, id uuid.UUID) (*models.Product, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Producer == nil || p.Producer.UserID != sess.UserID {
		return nil, newErr(ErrForbidden, "Non autorise")
	}
	return p, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, sess Session, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	if _, err := s.owned(ctx, sess, id); err != nil {
		return nil, err
	}
	if (req.Price != nil && *req.Price < 0) || (req.StockQuantity != nil && *req.StockQuantity < 0) {
		return nil, newErr(ErrValidation, "Prix et stock doivent etre positifs")
	}
	if req.MinOrderQuantity != nil && *req.MinOrderQuantity < 1 {
		return nil, newErr(ErrValidation, "Quantite minimale invalide")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, newErr(ErrValidation, "Nom requis")
	}

	changes, columns := productChanges(req)
	p, err := s.Repo.PatchProduct(ctx, id, changes, columns)
	if err != nil {
		return nil, err
	}

	s.index(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), map[string]any{
		"type":        "product_updated",
		"product_id":  p.ID,
		"producer_id": p.ProducerID,
	})
	return p, nil
}

// productChanges turns the set fields of req into a partial row and the
// columns to write.
func productChanges(req transport.PatchProductRequest) (*models.Product, []string) {
	var (
		p    models.Product
		cols []string
	)
	if req.Name != nil {
		p.Name = *req.Name
		cols = append(cols, "name")
	}
	if req.Description != nil {
		p.Description = req.Description
		cols = append(cols, "description")
	}
	if req.Price != nil {
		p.Price = *req.Price
		cols = append(cols, "price")
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
		cols = append(cols, "unit")
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
		cols = append(cols, "stock_quantity")
	}
	if req.MinOrderQuantity != nil {
		p.MinOrderQuantity = *req.MinOrderQuantity
		cols = append(cols, "min_order_quantity")
	}
	if req.IsBio != nil {
		p.IsBio = *req.IsBio
		cols = append(cols, "is_bio")
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
		cols = append(cols, "is_available")
	}
	if req.Images != nil {
		p.Images = req.Images
		cols = append(cols, "images")
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
		cols = append(cols, "category_id")
	}
	return &p, cols
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sess Session, id uuid.UUID) error {
	p, err := s.owned(ctx, sess, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newErr(ErrNotFound, "Produit introuvable")
		}
		return err
	}

	if s.Search != nil {
		ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
		defer cancel()
		if err := s.Search.DeleteProduct(ictx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("search_delete_error", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, id.String(), map[string]any{
		"type":        "product_deleted",
		"product_id":  id,
		"producer_id": p.ProducerID,
	})
	return nil
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	indexProduct(ctx, s.Search, p)
}
