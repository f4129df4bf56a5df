package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{Repo: repo.New(db)}
}

// MenuSection is one storefront menu block: a category with its orderable
// products.
type MenuSection struct {
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Icon     string           `json:"icon"`
	Products []models.Product `json:"products"`
}

func (s *CatalogService) Menu(ctx context.Context) ([]MenuSection, error) {
	cats, err := s.Repo.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	sections := make([]MenuSection, 0, len(cats))
	for _, cat := range cats {
		prods, err := s.Repo.ListActiveProducts(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		sections = append(sections, MenuSection{
			Slug:     cat.Slug,
			Title:    cat.Name,
			Icon:     cat.Icon,
			Products: prods,
		})
	}
	return sections, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	cat := models.Category{
		Name:         req.Name,
		Slug:         Slugify(req.Name),
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category slug %q already exists", ErrConflict, cat.Slug)
		}
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) PatchCategory(ctx context.Context, id uint, req transport.PatchCategoryRequest) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		cat.Name = *req.Name
		cat.Slug = Slugify(*req.Name)
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category slug %q already exists", ErrConflict, cat.Slug)
		}
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses to orphan products: a category with products stays.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	n, err := s.Repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category has %d products", ErrConflict, n)
	}

	err = s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return err
}

// CreateProduct derives the points value from the price and the configured
// points ratio when the request leaves it unset.
func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrValidation, req.CategoryID)
		}
		return nil, err
	}

	points := 0
	if req.Points != nil {
		if *req.Points < 0 {
			return nil, fmt.Errorf("%w: points must be >= 0", ErrValidation)
		}
		points = *req.Points
	} else {
		settings, err := LoadSettings(ctx, s.Repo)
		if err != nil {
			return nil, err
		}
		points = ComputePoints(req.Price, settings.PointsRatio)
	}

	prod := models.Product{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Price:         req.Price,
		Points:        points,
		Image:         req.Image,
		IsRecommended: req.IsRecommended,
		IsActive:      true,
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.FindProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		prod.CategoryID = *req.CategoryID
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		prod.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		prod.Price = *req.Price
	}
	if req.Points != nil {
		if *req.Points < 0 {
			return nil, fmt.Errorf("%w: points must be >= 0", ErrValidation)
		}
		prod.Points = *req.Points
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}
	if req.IsRecommended != nil {
		prod.IsRecommended = *req.IsRecommended
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return err
}

// Slugify turns a category name into its URL-safe unique slug.
func Slugify(name string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
