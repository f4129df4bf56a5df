package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/transport"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "iced-drinks", Slugify("Iced Drinks"))
	require.Equal(t, "pastries-cakes", Slugify("Pastries & Cakes"))
	require.Equal(t, "espresso", Slugify("  Espresso  "))
	require.Equal(t, "combo-2", Slugify("Combo #2!"))
}

func TestMenuActiveOnlyAndOrdered(t *testing.T) {
	db := initTestDB(t)
	svc := NewCatalogService(db)

	drinks := models.Category{Name: "Drinks", Slug: "drinks", DisplayOrder: 2, IsActive: true}
	pastries := models.Category{Name: "Pastries", Slug: "pastries", DisplayOrder: 1, IsActive: true}
	hidden := models.Category{Name: "Hidden", Slug: "hidden", DisplayOrder: 0, IsActive: false}
	require.NoError(t, db.Create(&drinks).Error)
	require.NoError(t, db.Create(&pastries).Error)
	require.NoError(t, db.Create(&hidden).Error)

	require.NoError(t, db.Create(&models.Product{CategoryID: drinks.ID, Name: "Mocha", Price: 150, Points: 15, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Product{CategoryID: drinks.ID, Name: "Americano", Price: 100, Points: 10, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Product{CategoryID: drinks.ID, Name: "Retired Drink", Price: 90, Points: 9, IsActive: false}).Error)

	menu, err := svc.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)
	require.Equal(t, "pastries", menu[0].Slug)
	require.Equal(t, "drinks", menu[1].Slug)

	require.Len(t, menu[1].Products, 2)
	require.Equal(t, "Americano", menu[1].Products[0].Name)
	require.Equal(t, "Mocha", menu[1].Products[1].Name)
}

func TestCreateProductDerivesPoints(t *testing.T) {
	db := initTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	cat := models.Category{Name: "Drinks", Slug: "drinks", IsActive: true}
	require.NoError(t, db.Create(&cat).Error)
	require.NoError(t, svc.Repo.PutSetting(ctx, KeyPointsRatio, "20"))

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		CategoryID: cat.ID,
		Name:       "Flat White",
		Price:      100,
	})
	require.NoError(t, err)
	require.Equal(t, 5, prod.Points)

	// explicit points win over the derived value
	seven := 7
	prod2, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		CategoryID: cat.ID,
		Name:       "Cortado",
		Price:      100,
		Points:     &seven,
	})
	require.NoError(t, err)
	require.Equal(t, 7, prod2.Points)
}

func TestCreateProductValidation(t *testing.T) {
	db := initTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{CategoryID: 1, Name: "", Price: 10})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{CategoryID: 99, Name: "Ghost", Price: 10})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteCategoryGuard(t *testing.T) {
	db := initTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	cat := models.Category{Name: "Drinks", Slug: "drinks", IsActive: true}
	require.NoError(t, db.Create(&cat).Error)
	require.NoError(t, db.Create(&models.Product{CategoryID: cat.ID, Name: "Mocha", Price: 150, Points: 15, IsActive: true}).Error)

	require.ErrorIs(t, svc.DeleteCategory(ctx, cat.ID), ErrConflict)

	require.NoError(t, db.Where("category_id = ?", cat.ID).Delete(&models.Product{}).Error)
	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))
	require.ErrorIs(t, svc.DeleteCategory(ctx, cat.ID), ErrNotFound)
}

func TestCreateCategorySlugConflict(t *testing.T) {
	db := initTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Iced Drinks"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Iced Drinks"})
	require.ErrorIs(t, err, ErrConflict)
}
