package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/pkg/logging"
	"github.com/Skotchmaster/agrilink/pkg/search"
)

func productDocument(p *models.Product) search.Document {
	doc := search.Document{
		ID:          p.ID.String(),
		ProducerID:  p.ProducerID.String(),
		Name:        p.Name,
		Price:       p.Price,
		IsBio:       p.IsBio,
		IsAvailable: p.IsAvailable && p.StockQuantity > 0,
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.CategoryID != nil {
		doc.CategoryID = p.CategoryID.String()
	}
	return doc
}

// indexProduct refreshes the search document of p. Failures are logged only.
func indexProduct(ctx context.Context, idx search.Indexer, p *models.Product) {
	if idx == nil {
		return
	}
	ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
	defer cancel()

	if err := idx.IndexProduct(ictx, productDocument(p)); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ID, "error", err)
	}
}

// reindexProducts reloads ids and refreshes their documents, typically after
// their stock moved.
func reindexProducts(ctx context.Context, r *repo.GormRepo, idx search.Indexer, ids []uuid.UUID) {
	if _, nop := idx.(search.Nop); idx == nil || nop {
		return
	}
	for _, id := range ids {
		p, err := r.GetProduct(ctx, id)
		if err != nil {
			logging.FromContext(ctx).Warn("search_reindex_error", "product_id", id, "error", err)
			continue
		}
		indexProduct(ctx, idx, p)
	}
}
