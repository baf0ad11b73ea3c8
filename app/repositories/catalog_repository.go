package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/automart/app/filters"
	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/cache"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

// CategoriesCacheKey holds the unfiltered category list.
const CategoriesCacheKey = "catalog:categories"

const categoriesTTL = 10 * time.Minute

// CatalogRepository reads and writes the Category → Make → Model → Car tree.
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// listings preloads what a car list item renders.
func listings(q *orm.Query, prefix string) *orm.Query {
	return q.Preload(prefix+"Make").
		Preload(prefix+"Model").
		Preload(prefix+"Images", ordered("car_images.id"))
}

// ─── Categories ───────────────────────────────────────────────────────────────

// Categories lists categories whose name contains every term. The unfiltered
// list is served from Redis when a cache is connected.
func (r *CatalogRepository) Categories(ctx context.Context, terms []string) ([]models.Category, error) {
	var out []models.Category
	q := filters.NameSearch(orm.Ctx(ctx).Model(&models.Category{}), "name", terms).Order("name, id")

	var err error
	if len(terms) == 0 {
		err = q.Cache(CategoriesCacheKey, categoriesTTL, &out)
	} else {
		err = q.Get(&out)
	}
	return out, dbErr(err, "Category")
}

// Category loads a category with its makes and models.
func (r *CatalogRepository) Category(ctx context.Context, id uint) (models.Category, error) {
	var c models.Category
	err := orm.Ctx(ctx).Model(&models.Category{}).
		Preload("Makes", ordered("car_makes.name")).
		Preload("Models", ordered("car_models.name")).
		Where("id = ?", id).
		First(&c)
	return c, dbErr(err, "Category")
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := orm.Ctx(ctx).Create(c); err != nil {
		return dbErr(err, "Category")
	}
	_ = cache.Del(ctx, CategoriesCacheKey)
	return nil
}

// DeleteCategory removes a category with its makes and models, and
// everything below them.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := orm.Ctx(ctx).Transaction(func(tx *orm.Query) error {
		makeImages, err := deleteMakes(tx, "category_id = ?", id)
		if err != nil {
			return err
		}
		modelImages, err := deleteModels(tx, "category_id = ?", id)
		if err != nil {
			return err
		}
		images = append(makeImages, modelImages...)
		return affected(tx.Raw().Delete(&models.Category{}, id), "Category")
	})
	if err != nil {
		return nil, err
	}
	_ = cache.Del(ctx, CategoriesCacheKey)
	return images, nil
}

// ─── Makes ────────────────────────────────────────────────────────────────────

func (r *CatalogRepository) Makes(ctx context.Context, terms []string) ([]models.CarMake, error) {
	var out []models.CarMake
	err := filters.NameSearch(orm.Ctx(ctx).Model(&models.CarMake{}), "name", terms).Order("name").Get(&out)
	return out, dbErr(err, "Car make")
}

// Make loads a make with its models and listings.
func (r *CatalogRepository) Make(ctx context.Context, id uint) (models.CarMake, error) {
	var m models.CarMake
	q := orm.Ctx(ctx).Model(&models.CarMake{}).
		Preload("Models", ordered("car_models.name")).
		Preload("Cars", ordered("cars.id"))
	err := listings(q, "Cars.").Where("id = ?", id).First(&m)
	return m, dbErr(err, "Car make")
}

// CreateMake reports a taken name as a conflict.
func (r *CatalogRepository) CreateMake(ctx context.Context, m *models.CarMake) error {
	err := orm.Ctx(ctx).Create(m)
	if orm.IsUniqueViolation(err) {
		return conflict("A car make with that name already exists.")
	}
	return dbErr(err, "Car make")
}

// DeleteMake removes a make with its models and their listings.
func (r *CatalogRepository) DeleteMake(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := orm.Ctx(ctx).Transaction(func(tx *orm.Query) error {
		found, err := pluckIDs(tx, &models.CarMake{}, "id = ?", id)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return notFound("Car make")
		}
		images, err = deleteMakes(tx, "id = ?", id)
		return err
	})
	return images, err
}

// ─── Models ───────────────────────────────────────────────────────────────────

func (r *CatalogRepository) Models(ctx context.Context, terms []string) ([]models.CarModel, error) {
	var out []models.CarModel
	err := filters.NameSearch(orm.Ctx(ctx).Model(&models.CarModel{}), "name", terms).Order("name").Get(&out)
	return out, dbErr(err, "Car model")
}

// Model loads a model with its make and listings.
func (r *CatalogRepository) Model(ctx context.Context, id uint) (models.CarModel, error) {
	var m models.CarModel
	q := orm.Ctx(ctx).Model(&models.CarModel{}).
		Preload("Make").
		Preload("Cars", ordered("cars.id"))
	err := listings(q, "Cars.").Where("id = ?", id).First(&m)
	return m, dbErr(err, "Car model")
}

// FindModel loads a bare model row.
func (r *CatalogRepository) FindModel(ctx context.Context, id uint) (models.CarModel, error) {
	var m models.CarModel
	err := orm.Ctx(ctx).Where("id = ?", id).First(&m)
	return m, dbErr(err, "Car model")
}

func (r *CatalogRepository) CreateModel(ctx context.Context, m *models.CarModel) error {
	err := orm.Ctx(ctx).Create(m)
	if orm.IsUniqueViolation(err) {
		return conflict("A car model with that name already exists.")
	}
	return dbErr(err, "Car model")
}

// DeleteModel removes a model with its listings and favorite items.
func (r *CatalogRepository) DeleteModel(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := orm.Ctx(ctx).Transaction(func(tx *orm.Query) error {
		found, err := pluckIDs(tx, &models.CarModel{}, "id = ?", id)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return notFound("Car model")
		}
		images, err = deleteModels(tx, "id = ?", id)
		return err
	})
	return images, err
}

// ─── Cars ─────────────────────────────────────────────────────────────────────

// Cars returns one page of listings matching f.
func (r *CatalogRepository) Cars(ctx context.Context, f filters.Car) ([]models.Car, orm.Pagination, error) {
	var out []models.Car
	q := f.Apply(orm.Ctx(ctx).Model(&models.Car{}))
	page, err := listings(q, "").Paginate(f.Page.Number, f.Page.Size, &out)
	return out, page, dbErr(err, "Car")
}

// Car loads a listing with images and reviews (and their authors).
func (r *CatalogRepository) Car(ctx context.Context, id uint) (models.Car, error) {
	var c models.Car
	q := orm.Ctx(ctx).Model(&models.Car{}).
		Preload("Reviews", ordered("car_reviews.id")).
		Preload("Reviews.User")
	err := listings(q, "").Where("id = ?", id).First(&c)
	return c, dbErr(err, "Car")
}

// FindCar loads a bare listing row.
func (r *CatalogRepository) FindCar(ctx context.Context, id uint) (models.Car, error) {
	var c models.Car
	err := orm.Ctx(ctx).Where("id = ?", id).First(&c)
	return c, dbErr(err, "Car")
}

func (r *CatalogRepository) CreateCar(ctx context.Context, c *models.Car) error {
	return dbErr(orm.Ctx(ctx).Create(c), "Car")
}

// UpdatePrice changes a listing's price in place.
func (r *CatalogRepository) UpdatePrice(ctx context.Context, c *models.Car) error {
	res := orm.Ctx(ctx).Raw().Model(&models.Car{}).Where("id = ?", c.ID).Update("price", c.Price)
	return affected(res, "Car")
}

// DeleteCar removes a listing with its images, reviews, cart items and
// history.
func (r *CatalogRepository) DeleteCar(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := orm.Ctx(ctx).Transaction(func(tx *orm.Query) error {
		found, err := pluckIDs(tx, &models.Car{}, "id = ?", id)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return notFound("Car")
		}
		images, err = deleteCars(tx, "id = ?", id)
		return err
	})
	return images, err
}

func (r *CatalogRepository) AddImage(ctx context.Context, img *models.CarImage) error {
	return dbErr(orm.Ctx(ctx).Create(img), "Car image")
}
