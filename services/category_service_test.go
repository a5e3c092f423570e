package services_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/testutil"
)

func TestCategoryService_DeleteBlockedByDependents(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.Category(t, db, "Appetizers")
	for i := 1; i <= 3; i++ {
		testutil.FoodItem(t, db, c, fmt.Sprintf("Starter %d", i))
	}

	err := services.NewCategoryService(db, nil).Delete(context.Background(), c.ID)
	var conflict *services.DependencyConflictError
	require.ErrorAs(t, err, &conflict)
	assert.EqualValues(t, 3, conflict.Dependents)
	assert.Equal(t, c.ID, conflict.ID)

	var cats, items int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", c.ID).Count(&cats).Error)
	require.NoError(t, db.Model(&models.FoodItem{}).Where("category_id = ?", c.ID).Count(&items).Error)
	assert.EqualValues(t, 1, cats)
	assert.EqualValues(t, 3, items)
}

func TestCategoryService_DeleteEmptyAndMissing(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.Category(t, db, "Seasonal")
	svc := services.NewCategoryService(db, nil)

	require.NoError(t, svc.Delete(context.Background(), c.ID))

	err := svc.Delete(context.Background(), c.ID)
	var nf *services.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "category", nf.Resource)
}

func TestCategoryService_ListCountsItems(t *testing.T) {
	db := testutil.NewDB(t)
	b := testutil.Category(t, db, "Burgers")
	testutil.Category(t, db, "Archived", testutil.Inactive)
	testutil.FoodItem(t, db, b, "Cheeseburger")
	testutil.FoodItem(t, db, b, "Veggie Burger", testutil.Unavailable)

	page, err := services.NewCategoryService(db, nil).List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Archived", page.Items[0].Name)
	require.NotNil(t, page.Items[0].FoodItemsCount)
	assert.Zero(t, *page.Items[0].FoodItemsCount)
	assert.Equal(t, "Burgers", page.Items[1].Name)
	require.NotNil(t, page.Items[1].FoodItemsCount)
	assert.EqualValues(t, 2, *page.Items[1].FoodItemsCount)
	assert.Equal(t, services.AdminCategoryPageSize, page.PerPage)

	page, err = services.NewCategoryService(db, nil).List(context.Background(), math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 2, page.Total)
}

func TestCategoryService_CreateUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewCategoryService(db, nil)
	v := services.NewCatalogValidator(db)
	ctx := context.Background()

	fields, err := v.ValidateCategory(ctx, map[string]any{"name": "Hot Drinks", "sort_order": 4}, 0)
	require.NoError(t, err)
	created, err := svc.Create(ctx, fields)
	require.NoError(t, err)
	assert.Equal(t, "hot-drinks", created.Slug)
	assert.True(t, created.IsActive)

	fields, err = v.ValidateCategory(ctx, map[string]any{"name": "Warm Drinks", "is_active": false}, created.ID)
	require.NoError(t, err)
	updated, err := svc.Update(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "warm-drinks", updated.Slug)
	assert.False(t, updated.IsActive)
	assert.Zero(t, updated.SortOrder)

	_, err = svc.Update(ctx, created.ID+10, fields)
	var nf *services.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = svc.Create(ctx, nil)
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCategoryService_CreateKeepsExplicitFalse(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	fields, err := services.NewCatalogValidator(db).ValidateCategory(ctx, map[string]any{"name": "Drafts", "is_active": false}, 0)
	require.NoError(t, err)
	created, err := services.NewCategoryService(db, nil).Create(ctx, fields)
	require.NoError(t, err)

	var stored models.Category
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestCategoryService_FormOptionsOnlyActive(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Category(t, db, "Live")
	testutil.Category(t, db, "Hidden", testutil.Inactive)

	opts, err := services.NewCategoryService(db, nil).FormOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Live", opts[0].Name)
	assert.Nil(t, opts[0].FoodItemsCount, "form options carry no item count")
}
