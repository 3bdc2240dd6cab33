package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	"sales-system/internal/repositories"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
	"sales-system/pkg/validation"
)

type ProductServiceInterface interface {
	GetProducts(ctx context.Context, filter types.Filter) ([]dto.ProductDTO, uint64, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*dto.ProductDTO, error)
	CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*dto.ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, payload dto.UpdateProductDTO) (*dto.ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type ProductService struct {
	repo     repositories.ProductRepositoryInterface
	cache    repositories.CacheRepositoryInterface
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewProductService(
	repo repositories.ProductRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ProductServiceInterface {
	return &ProductService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func productCacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}

func toProductResponseDTO(p entities.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:            p.ID.String(),
		Name:          p.Name,
		Code:          p.Code,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(dto.TimeLayout),
		UpdatedAt:     p.UpdatedAt.Format(dto.TimeLayout),
	}
}

// loadProduct читает товар сначала из Redis, потом из БД. Ошибки кеша не фатальны.
func (s *ProductService) loadProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	key := productCacheKey(id)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached entities.Product
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("Повреждённая запись кеша товара", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("Кеш товаров недоступен", zap.String("key", key), zap.Error(err))
	}

	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(product); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.logger.Warn("Не удалось записать товар в кеш", zap.String("key", key), zap.Error(err))
		}
	}
	return product, nil
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Del(ctx, productCacheKey(id)); err != nil {
		s.logger.Warn("Не удалось сбросить кеш товара", zap.String("id", id.String()), zap.Error(err))
	}
}

func (s *ProductService) GetProducts(ctx context.Context, filter types.Filter) ([]dto.ProductDTO, uint64, error) {
	products, total, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponseDTO(p))
	}
	return result, total, nil
}

func (s *ProductService) FindProduct(ctx context.Context, id uuid.UUID) (*dto.ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toProductResponseDTO(*product)
	return &res, nil
}

func invalidPrice() error {
	return apperrors.NewValidationError(apperrors.FieldError{
		Field:   "price",
		Message: "Цена должна быть больше нуля и содержать не более двух знаков после запятой",
	})
}

func (s *ProductService) CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*dto.ProductDTO, error) {
	if !validation.IsMoney(payload.Price) {
		return nil, invalidPrice()
	}

	product := entities.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(payload.Name),
		Code:          strings.TrimSpace(payload.Code),
		Description:   optionalString(payload.Description),
		Category:      optionalString(payload.Category),
		Price:         payload.Price,
		StockQuantity: payload.StockQuantity,
		IsActive:      true,
	}
	if err := s.repo.CreateProduct(ctx, nil, product); err != nil {
		s.logger.Error("Ошибка при создании товара", zap.String("code", product.Code), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Товар создан", zap.String("id", product.ID.String()), zap.String("code", product.Code))

	return s.FindProduct(ctx, product.ID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, payload dto.UpdateProductDTO) (*dto.ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		product.Name = strings.TrimSpace(payload.Name.String)
	}
	if payload.Code.Valid {
		product.Code = strings.TrimSpace(payload.Code.String)
	}
	if payload.Description.Valid {
		product.Description = optionalString(payload.Description.String)
	}
	if payload.Category.Valid {
		product.Category = optionalString(payload.Category.String)
	}
	if payload.Price.Valid {
		if !validation.IsMoney(payload.Price.Decimal) {
			return nil, invalidPrice()
		}
		product.Price = payload.Price.Decimal
	}
	if payload.StockQuantity.Valid {
		product.StockQuantity = payload.StockQuantity.Int
	}
	if payload.IsActive.Valid {
		product.IsActive = payload.IsActive.Bool
	}

	if err := s.repo.UpdateProduct(ctx, nil, *product); err != nil {
		s.logger.Error("Ошибка при обновлении товара", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx, id)

	return s.FindProduct(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("Товар удалён", zap.String("id", id.String()))
	return nil
}
