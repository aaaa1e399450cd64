package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// MaxSearchResults bounds a search answer whichever backend serves it.
const MaxSearchResults = 100

type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
	IndexProducts(ctx context.Context, products []models.Product) error
}

type CatalogService struct {
	Repo *repo.GormRepo
	// Search is optional; without it queries run against the database.
	Search Searcher
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w: %w", ErrInternal, err)
	}
	return items, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get product %d: %w: %w", id, ErrInternal, err)
	}
	return product, nil
}

// SearchProducts falls back to the database when the search engine is
// missing or failing. An empty query lists everything.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")

	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListProducts(ctx)
	}

	if s.Search != nil {
		items, err := s.Search.Search(ctx, query, MaxSearchResults)
		if err == nil {
			return items, nil
		}
		l.Warn("search_engine_error", "reason", "falling back to database", "error", err)
	}

	items, err := s.Repo.SearchProducts(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("search products: %w: %w", ErrInternal, err)
	}
	return items, nil
}

// SeedProducts loads a JSON array of products, but only into an empty catalog.
// It reports how many products were inserted.
func (s *CatalogService) SeedProducts(ctx context.Context, r io.Reader) (int, error) {
	total, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w: %w", ErrInternal, err)
	}
	if total > 0 {
		return 0, nil
	}

	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return 0, fmt.Errorf("decode seed file: %w: %w", ErrValidation, err)
	}
	for i, p := range products {
		if p.Name == "" {
			return 0, fmt.Errorf("seed product #%d has no name: %w", i, ErrValidation)
		}
		products[i].ID = 0
	}

	if err := s.Repo.CreateProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("insert seed products: %w: %w", ErrInternal, err)
	}
	return len(products), nil
}

// Reindex pushes the whole catalog into the search engine.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, nil
	}
	items, err := s.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Search.IndexProducts(ctx, items); err != nil {
		return 0, fmt.Errorf("reindex: %w: %w", ErrInternal, err)
	}
	return len(items), nil
}
