package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shashiranjanraj/automart/app/filters"
	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/logger"
	"github.com/shashiranjanraj/automart/pkg/metrics"
	"github.com/shashiranjanraj/automart/pkg/orm"
	"github.com/shashiranjanraj/automart/pkg/storage"
	"github.com/shashiranjanraj/automart/pkg/workerpool"
	"github.com/shopspring/decimal"
)

const (
	MinYear = 1886
	MaxYear = 2100

	blobWorkers = 4
)

// maxPrice is the first value that no longer fits decimal(10,2).
var maxPrice = decimal.New(1, 8)

// CarInput is the body of a listing creation. Enumerated fields default to
// their "any" value (left for steering) when omitted.
type CarInput struct {
	MakeID      uint              `json:"make_id"     validate:"required"`
	ModelID     uint              `json:"model_id"    validate:"required"`
	Description string            `json:"description" validate:"nullable,max=5000"`
	Price       *decimal.Decimal  `json:"price"`
	Year        int               `json:"year"        validate:"required,between=1886,2100"`
	Body        models.BodyType   `json:"body"`
	Fuel        []models.FuelType `json:"fuel"        validate:"nullable,max=2,unique"`
	Steering    models.Steering   `json:"steering"`
	Gearbox     models.Gearbox    `json:"gearbox"`
	Color       models.Color      `json:"color"`
}

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// CatalogService serves the public catalog and listing creation.
type CatalogService struct {
	repo     *repositories.CatalogRepository
	history  *repositories.HistoryRepository
	accounts accounts
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		repo:     repositories.NewCatalogRepository(),
		history:  repositories.NewHistoryRepository(),
		accounts: newAccounts(),
	}
}

func (s *CatalogService) Categories(ctx context.Context, terms []string) ([]models.Category, error) {
	return s.repo.Categories(ctx, terms)
}

func (s *CatalogService) Category(ctx context.Context, id uint) (models.Category, error) {
	return s.repo.Category(ctx, id)
}

func (s *CatalogService) Makes(ctx context.Context, terms []string) ([]models.CarMake, error) {
	return s.repo.Makes(ctx, terms)
}

func (s *CatalogService) Make(ctx context.Context, id uint) (models.CarMake, error) {
	return s.repo.Make(ctx, id)
}

func (s *CatalogService) Models(ctx context.Context, terms []string) ([]models.CarModel, error) {
	return s.repo.Models(ctx, terms)
}

func (s *CatalogService) Model(ctx context.Context, id uint) (models.CarModel, error) {
	return s.repo.Model(ctx, id)
}

func (s *CatalogService) Cars(ctx context.Context, f filters.Car) ([]models.Car, orm.Pagination, error) {
	return s.repo.Cars(ctx, f)
}

// Car loads a listing for its detail view. A client viewing it gets a
// history event; failing to record one does not fail the read.
func (s *CatalogService) Car(ctx context.Context, caller Caller, id uint) (models.Car, error) {
	car, err := s.repo.Car(ctx, id)
	if err != nil {
		return car, err
	}
	if caller.IsClient() {
		s.recordView(ctx, caller, car.ID)
	}
	return car, nil
}

// recordView appends a view event unless the caller's account is gone.
func (s *CatalogService) recordView(ctx context.Context, caller Caller, carID uint) {
	err := s.accounts.client(ctx, caller)
	if err == nil {
		err = s.history.Append(ctx, &models.History{ClientID: caller.UserID, CarID: carID})
	}
	if err != nil && !errors.Is(err, ErrAccountGone) {
		logger.WithCtx(ctx).Warn("catalog: record view", "car_id", carID, "error", err)
	}
}

// CreateCar validates and stores a new listing.
func (s *CatalogService) CreateCar(ctx context.Context, caller Caller, in CarInput) (models.Car, error) {
	if err := caller.requireAuth(); err != nil {
		return models.Car{}, err
	}

	car, errs := newCar(in)
	if len(errs) > 0 {
		return models.Car{}, apperr.Validation(errs)
	}

	model, err := s.repo.FindModel(ctx, in.ModelID)
	if apperr.Is(err, apperr.KindNotFound) {
		return models.Car{}, invalidRef("model_id")
	}
	if err != nil {
		return models.Car{}, err
	}
	if model.MakeID != in.MakeID {
		return models.Car{}, apperr.Field("model_id", "The model does not belong to the selected make.")
	}

	if err := s.repo.CreateCar(ctx, &car); err != nil {
		return models.Car{}, err
	}
	metrics.ListingsCreated.Inc()
	logger.WithCtx(ctx).Info("listing created", "car_id", car.ID, "user_id", caller.UserID)

	return s.repo.Car(ctx, car.ID)
}

// newCar applies defaults and checks what struct tags cannot express.
func newCar(in CarInput) (models.Car, map[string]string) {
	errs := map[string]string{}

	switch {
	case in.Price == nil:
		errs["price"] = "The price field is required."
	case in.Price.IsNegative():
		errs["price"] = "The price must be at least 0."
	case !in.Price.Equal(in.Price.Round(2)):
		errs["price"] = "The price may not have more than 2 decimal places."
	case in.Price.GreaterThanOrEqual(maxPrice):
		errs["price"] = "The price must be less than 100000000."
	}

	car := models.Car{
		MakeID:      in.MakeID,
		ModelID:     in.ModelID,
		Description: in.Description,
		Year:        uint16(in.Year),
		Body:        lo.Ternary(in.Body == "", models.BodyAny, in.Body),
		Steering:    lo.Ternary(in.Steering == "", models.SteeringLeft, in.Steering),
		Gearbox:     lo.Ternary(in.Gearbox == "", models.GearboxAny, in.Gearbox),
		Color:       lo.Ternary(in.Color == "", models.ColorAny, in.Color),
		Fuel:        in.Fuel,
	}
	if in.Price != nil {
		car.Price = in.Price.Round(2)
	}
	if len(car.Fuel) == 0 {
		car.Fuel = []models.FuelType{models.FuelAny}
	}

	if !car.Body.Valid() {
		errs["body"] = "The selected body is invalid."
	}
	if !car.Steering.Valid() {
		errs["steering"] = "The selected steering is invalid."
	}
	if !car.Gearbox.Valid() {
		errs["gearbox"] = "The selected gearbox is invalid."
	}
	if !car.Color.Valid() {
		errs["color"] = "The selected color is invalid."
	}
	if _, bad := lo.Find(car.Fuel, func(f models.FuelType) bool { return !f.Valid() }); bad {
		errs["fuel"] = "The selected fuel is invalid."
	}
	return car, errs
}

// AddImage stores an uploaded image for a listing on the default disk.
func (s *CatalogService) AddImage(ctx context.Context, caller Caller, carID uint, contentType string, r io.Reader) (models.CarImage, error) {
	if err := caller.requireAuth(); err != nil {
		return models.CarImage{}, err
	}
	ext, ok := imageTypes[strings.ToLower(contentType)]
	if !ok {
		return models.CarImage{}, apperr.Field("image", "The image must be a JPEG, PNG, WebP or GIF file.")
	}
	if _, err := s.repo.FindCar(ctx, carID); err != nil {
		return models.CarImage{}, err
	}

	p := path.Join("cars", fmt.Sprint(carID), uuid.NewString()+ext)
	if err := storage.Put(ctx, p, r, contentType); err != nil {
		return models.CarImage{}, apperr.Internal(err)
	}

	img := models.CarImage{CarID: carID, Image: p}
	if err := s.repo.AddImage(ctx, &img); err != nil {
		s.removeBlobs(ctx, []string{p})
		return models.CarImage{}, err
	}
	return img, nil
}

// ─── Administration ───────────────────────────────────────────────────────────
//
// Not exposed over HTTP. Each delete cascades and then removes the image
// blobs of every deleted row.

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	c := models.Category{Name: name}
	return c, s.repo.CreateCategory(ctx, &c)
}

func (s *CatalogService) CreateMake(ctx context.Context, name string, categoryID *uint) (models.CarMake, error) {
	m := models.CarMake{Name: name, CategoryID: categoryID}
	return m, s.repo.CreateMake(ctx, &m)
}

func (s *CatalogService) CreateModel(ctx context.Context, name string, makeID uint, categoryID *uint) (models.CarModel, error) {
	m := models.CarModel{Name: name, MakeID: makeID, CategoryID: categoryID}
	return m, s.repo.CreateModel(ctx, &m)
}

// UpdatePrice changes a listing's price. Carts pick it up on their next read.
func (s *CatalogService) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	return s.repo.UpdatePrice(ctx, &models.Car{ID: id, Price: price.Round(2)})
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.afterDelete(ctx)(s.repo.DeleteCategory(ctx, id))
}

func (s *CatalogService) DeleteMake(ctx context.Context, id uint) error {
	return s.afterDelete(ctx)(s.repo.DeleteMake(ctx, id))
}

func (s *CatalogService) DeleteModel(ctx context.Context, id uint) error {
	return s.afterDelete(ctx)(s.repo.DeleteModel(ctx, id))
}

func (s *CatalogService) DeleteCar(ctx context.Context, id uint) error {
	return s.afterDelete(ctx)(s.repo.DeleteCar(ctx, id))
}

func (s *CatalogService) afterDelete(ctx context.Context) func([]string, error) error {
	return func(images []string, err error) error {
		if err != nil {
			return err
		}
		s.removeBlobs(ctx, images)
		return nil
	}
}

func (s *CatalogService) removeBlobs(ctx context.Context, paths []string) {
	// Seed images are external URLs, not blobs on a disk.
	paths = lo.Filter(paths, func(p string, _ int) bool { return !strings.Contains(p, "://") })
	err := workerpool.ForEach(ctx, blobWorkers, paths, func(ctx context.Context, p string) error {
		if err := storage.Delete(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		logger.WithCtx(ctx).Warn("catalog: remove images", "error", err)
	}
}
