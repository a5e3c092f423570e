package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"price": "Price must be at least 0.",
		"name":  "Food item name is required.",
	}}
	assert.Equal(t, "validation failed: name: Food item name is required.; price: Price must be at least 0.", err.Error())
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("deleting category: %w", &DependencyConflictError{Resource: "category", ID: 4, Dependents: 3})

	var dep *DependencyConflictError
	assert.True(t, errors.As(wrapped, &dep))
	assert.EqualValues(t, 3, dep.Dependents)
	assert.Contains(t, wrapped.Error(), "3 dependent record(s)")
}

func TestNotFoundOr(t *testing.T) {
	var nf *NotFoundError
	assert.True(t, errors.As(notFoundOr(gorm.ErrRecordNotFound, "food item", 9), &nf))
	assert.Equal(t, "food item 9 not found", nf.Error())

	other := errors.New("boom")
	assert.Same(t, other, notFoundOr(other, "food item", 9))
}

func TestUnauthorizedError(t *testing.T) {
	assert.Equal(t, "unauthorized", (&UnauthorizedError{}).Error())
	assert.Equal(t, "unauthorized: token expired", (&UnauthorizedError{Reason: "token expired"}).Error())
}
