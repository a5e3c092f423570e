package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/utils"
)

// FoodItemFields is the only shape FoodItemService accepts for writes.
// Values are produced by CatalogValidator.ValidateFoodItem.
type FoodItemFields struct {
	Name            string
	Slug            string
	Description     string
	Price           models.Price
	Image           *string
	Ingredients     []string
	NutritionalInfo map[string]any
	DietaryType     models.DietaryType
	IsAvailable     bool
	IsFeatured      bool
	PreparationTime *int
	CategoryID      uint
}

type CategoryFields struct {
	Name        string
	Slug        string
	Description *string
	Image       *string
	IsActive    bool
	SortOrder   int
}

// Price is capped at the largest value a decimal(8,2) column holds.
type foodItemRules struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Slug            string   `json:"slug" validate:"required,max=255"`
	Description     string   `json:"description" validate:"required"`
	Price           *float64 `json:"price" validate:"required,gte=0,lte=999999.99"`
	Image           *string  `json:"image" validate:"omitempty,max=255"`
	Ingredients     []string `json:"ingredients" validate:"omitempty,dive,max=255"`
	DietaryType     string   `json:"dietary_type" validate:"required,dietary_type"`
	PreparationTime *int64   `json:"preparation_time" validate:"omitempty,gte=0,lte=2147483647"`
	CategoryID      int64    `json:"category_id" validate:"required,gt=0"`
}

type categoryRules struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Slug      string  `json:"slug" validate:"required,max=255"`
	Image     *string `json:"image" validate:"omitempty,max=255"`
	SortOrder int64   `json:"sort_order" validate:"gte=-2147483648,lte=2147483647"`
}

var foodItemMessages = map[string]string{
	"name.required":             "Food item name is required.",
	"name.string":               "Food item name must be a string.",
	"name.max":                  "Food item name must not exceed 255 characters.",
	"slug.required":             "Food item name must contain letters or numbers.",
	"slug.max":                  "Food item slug must not exceed 255 characters.",
	"slug.unique":               "A food item with this name already exists.",
	"description.required":      "Description is required.",
	"description.string":        "Description must be a string.",
	"price.required":            "Price is required.",
	"price.numeric":             "Price must be a valid number.",
	"price.gte":                 "Price must be at least 0.",
	"price.lte":                 "Price must not exceed 999999.99.",
	"image.string":              "Image must be a string.",
	"image.max":                 "Image path must not exceed 255 characters.",
	"ingredients.array":         "Ingredients must be a list.",
	"ingredients.*.string":      "Each ingredient must be a string.",
	"ingredients.*.max":         "Each ingredient must not exceed 255 characters.",
	"nutritional_info.array":    "Nutritional information must be an object.",
	"nutritional_info.*.scalar": "Nutritional values must be text, numbers or booleans.",
	"dietary_type.required":     "Dietary type is required.",
	"dietary_type.string":       "Please select a valid dietary type.",
	"dietary_type.dietary_type": "Please select a valid dietary type.",
	"is_available.boolean":      "Availability must be true or false.",
	"is_featured.boolean":       "Featured must be true or false.",
	"preparation_time.integer":  "Preparation time must be a number.",
	"preparation_time.gte":      "Preparation time must be at least 0.",
	"preparation_time.lte":      "Preparation time is too large.",
	"category_id.required":      "Category is required.",
	"category_id.integer":       "Please select a valid category.",
	"category_id.gt":            "Please select a valid category.",
	"category_id.exists":        "Please select a valid category.",
}

var categoryMessages = map[string]string{
	"name.required":      "Category name is required.",
	"name.string":        "Category name must be a string.",
	"name.max":           "Category name must not exceed 255 characters.",
	"slug.required":      "Category name must contain letters or numbers.",
	"slug.max":           "Category slug must not exceed 255 characters.",
	"slug.unique":        "A category with this name already exists.",
	"description.string": "Description must be a string.",
	"image.string":       "Image must be a string.",
	"image.max":          "Image path must not exceed 255 characters.",
	"is_active.boolean":  "Active must be true or false.",
	"sort_order.integer": "Sort order must be a whole number.",
	"sort_order.gte":     "Sort order is out of range.",
	"sort_order.lte":     "Sort order is out of range.",
}

// CatalogValidator normalizes raw request fields into FoodItemFields and
// CategoryFields. It reads the database for uniqueness and foreign key
// checks but never writes.
type CatalogValidator struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewCatalogValidator(db *gorm.DB) *CatalogValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("dietary_type", func(fl validator.FieldLevel) bool {
		return models.DietaryType(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("registering dietary_type validation: %v", err))
	}
	return &CatalogValidator{db: db, validate: v}
}

// ValidateFoodItem checks a create (ignoreID == 0) or update payload. The slug
// is always derived from name; a client supplied slug is discarded.
func (cv *CatalogValidator) ValidateFoodItem(ctx context.Context, raw map[string]any, ignoreID uint) (*FoodItemFields, error) {
	in := newFieldReader(raw, foodItemMessages)

	name := in.str("name")
	description := in.str("description")
	price := in.number("price")
	image := in.str("image")
	ingredients := in.stringList("ingredients")
	nutrition := in.scalarMap("nutritional_info")
	dietary := in.str("dietary_type")
	isAvailable := in.boolean("is_available", true)
	isFeatured := in.boolean("is_featured", false)
	prepTime := in.integer("preparation_time")
	categoryID := in.integer("category_id")

	rules := foodItemRules{
		Name:            deref(name),
		Slug:            utils.Slugify(deref(name)),
		Description:     deref(description),
		Image:           image,
		Ingredients:     ingredients,
		DietaryType:     deref(dietary),
		PreparationTime: prepTime,
	}
	if price != nil {
		f := price.InexactFloat64()
		rules.Price = &f
	}
	if categoryID != nil {
		rules.CategoryID = *categoryID
	}
	// Name problems already explain an empty slug.
	if name == nil {
		in.skip("slug")
	}
	in.collect(cv.validate.Struct(rules))

	if !in.has("slug") {
		taken, err := cv.slugTaken(ctx, &models.FoodItem{}, rules.Slug, ignoreID)
		if err != nil {
			return nil, err
		}
		if taken {
			in.fail("slug", "unique")
		}
	}
	if !in.has("category_id") {
		var n int64
		if err := cv.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", rules.CategoryID).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("checking category %d: %w", rules.CategoryID, err)
		}
		if n == 0 {
			in.fail("category_id", "exists")
		}
	}

	if err := in.err(); err != nil {
		return nil, err
	}

	fields := &FoodItemFields{
		Name:            rules.Name,
		Slug:            rules.Slug,
		Description:     rules.Description,
		Price:           models.NewPrice(*price),
		Image:           image,
		Ingredients:     ingredients,
		NutritionalInfo: nutrition,
		DietaryType:     models.DietaryType(rules.DietaryType),
		IsAvailable:     isAvailable,
		IsFeatured:      isFeatured,
		CategoryID:      uint(rules.CategoryID),
	}
	if prepTime != nil {
		p := int(*prepTime)
		fields.PreparationTime = &p
	}
	return fields, nil
}

func (cv *CatalogValidator) ValidateCategory(ctx context.Context, raw map[string]any, ignoreID uint) (*CategoryFields, error) {
	in := newFieldReader(raw, categoryMessages)

	name := in.str("name")
	description := in.str("description")
	image := in.str("image")
	isActive := in.boolean("is_active", true)
	sortOrder := in.integer("sort_order")

	rules := categoryRules{
		Name:  deref(name),
		Slug:  utils.Slugify(deref(name)),
		Image: image,
	}
	if sortOrder != nil {
		rules.SortOrder = *sortOrder
	}
	if name == nil {
		in.skip("slug")
	}
	in.collect(cv.validate.Struct(rules))

	if !in.has("slug") {
		taken, err := cv.slugTaken(ctx, &models.Category{}, rules.Slug, ignoreID)
		if err != nil {
			return nil, err
		}
		if taken {
			in.fail("slug", "unique")
		}
	}

	if err := in.err(); err != nil {
		return nil, err
	}
	return &CategoryFields{
		Name:        rules.Name,
		Slug:        rules.Slug,
		Description: description,
		Image:       image,
		IsActive:    isActive,
		SortOrder:   int(rules.SortOrder),
	}, nil
}

func (cv *CatalogValidator) slugTaken(ctx context.Context, model any, slug string, ignoreID uint) (bool, error) {
	q := cv.db.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if ignoreID != 0 {
		q = q.Where("id <> ?", ignoreID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("checking slug %q: %w", slug, err)
	}
	return n > 0, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// fieldReader coerces loosely typed JSON values and records the first
// problem per field.
type fieldReader struct {
	raw      map[string]any
	messages map[string]string
	errs     map[string]string
	skipped  map[string]bool
}

func newFieldReader(raw map[string]any, messages map[string]string) *fieldReader {
	if raw == nil {
		raw = map[string]any{}
	}
	return &fieldReader{
		raw:      raw,
		messages: messages,
		errs:     map[string]string{},
		skipped:  map[string]bool{},
	}
}

func (r *fieldReader) has(field string) bool {
	_, ok := r.errs[field]
	return ok || r.skipped[field]
}

func (r *fieldReader) skip(field string) { r.skipped[field] = true }

// fail records rule for field unless the field already failed. Element
// fields like "ingredients.2" look up their message as "ingredients.*.rule".
func (r *fieldReader) fail(field, rule string) {
	if r.has(field) {
		return
	}
	msg, ok := r.messages[field+"."+rule]
	if !ok {
		if i := strings.Index(field, "."); i > 0 {
			msg, ok = r.messages[field[:i]+".*."+rule]
		}
	}
	if !ok {
		msg = fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(field, "_", " "))
	}
	r.errs[field] = msg
}

func (r *fieldReader) collect(err error) {
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		r.errs["_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		field := strings.NewReplacer("[", ".", "]", "").Replace(fe.Field())
		r.fail(field, fe.Tag())
	}
}

func (r *fieldReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: r.errs}
}

func (r *fieldReader) value(field string) (any, bool) {
	v, ok := r.raw[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// str trims strings and treats blank as absent.
func (r *fieldReader) str(field string) *string {
	v, ok := r.value(field)
	if !ok {
		return nil
	}
	s, isString := v.(string)
	if !isString {
		r.fail(field, "string")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (r *fieldReader) number(field string) *decimal.Decimal {
	v, ok := r.value(field)
	if !ok {
		return nil
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch n := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(n.String())
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			err = fmt.Errorf("not finite")
		}
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		d, err = decimal.NewFromString(s)
	default:
		err = fmt.Errorf("unsupported %T", v)
	}
	if err != nil {
		r.fail(field, "numeric")
		return nil
	}
	return &d
}

func (r *fieldReader) integer(field string) *int64 {
	v, ok := r.value(field)
	if !ok {
		return nil
	}
	var (
		i   int64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		i, err = strconv.ParseInt(n.String(), 10, 64)
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			err = fmt.Errorf("not an integer")
		}
		i = int64(n)
	case int:
		i = int64(n)
	case int64:
		i = n
	case uint:
		i = int64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		i, err = strconv.ParseInt(s, 10, 64)
	default:
		err = fmt.Errorf("unsupported %T", v)
	}
	if err != nil {
		r.fail(field, "integer")
		return nil
	}
	return &i
}

// boolean accepts true/false, 1/0 and their string forms.
func (r *fieldReader) boolean(field string, def bool) bool {
	v, ok := r.value(field)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case json.Number:
		switch b.String() {
		case "1":
			return true
		case "0":
			return false
		}
	case float64:
		switch b {
		case 1:
			return true
		case 0:
			return false
		}
	case int:
		switch b {
		case 1:
			return true
		case 0:
			return false
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true":
			return true
		case "0", "false":
			return false
		}
	}
	r.fail(field, "boolean")
	return def
}

func (r *fieldReader) stringList(field string) []string {
	v, ok := r.value(field)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for i, el := range list {
			s, isString := el.(string)
			if !isString {
				// Keep the slot so later element errors report the right index.
				r.fail(fmt.Sprintf("%s.%d", field, i), "string")
			}
			out = append(out, s)
		}
		return out
	default:
		r.fail(field, "array")
		return nil
	}
}

// scalarMap accepts an object whose values are strings, numbers or booleans.
func (r *fieldReader) scalarMap(field string) map[string]any {
	v, ok := r.value(field)
	if !ok {
		return nil
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		r.fail(field, "array")
		return nil
	}
	out := make(map[string]any, len(m))
	for k, el := range m {
		switch val := el.(type) {
		case string, bool, float64, int, int64:
			out[k] = val
		case json.Number:
			if i, err := val.Int64(); err == nil {
				out[k] = i
			} else if f, err := val.Float64(); err == nil {
				out[k] = f
			} else {
				r.fail(field+"."+k, "scalar")
			}
		default:
			r.fail(field+"."+k, "scalar")
		}
	}
	return out
}
