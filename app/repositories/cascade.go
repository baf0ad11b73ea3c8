package repositories

import (
	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

// The cascade helpers run inside a caller's transaction and remove children
// before parents, so they behave the same whether or not the driver enforces
// foreign keys. Each returns the storage paths of images it removed.

func pluckIDs(tx *orm.Query, model interface{}, where string, args ...interface{}) ([]uint, error) {
	var ids []uint
	err := tx.Model(model).Where(where, args...).Pluck("id", &ids)
	return ids, err
}

func deleteIn(tx *orm.Query, model interface{}, column string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where(column+" IN ?", ids).Delete(model)
}

func deleteCars(tx *orm.Query, where string, args ...interface{}) ([]string, error) {
	ids, err := pluckIDs(tx, &models.Car{}, where, args...)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	var images []string
	if err := tx.Model(&models.CarImage{}).Where("car_id IN ?", ids).Pluck("image", &images); err != nil {
		return nil, err
	}
	for _, child := range []interface{}{&models.CarImage{}, &models.CarReview{}, &models.CartItem{}, &models.History{}} {
		if err := deleteIn(tx, child, "car_id", ids); err != nil {
			return nil, err
		}
	}
	return images, deleteIn(tx, &models.Car{}, "id", ids)
}

func deleteModels(tx *orm.Query, where string, args ...interface{}) ([]string, error) {
	ids, err := pluckIDs(tx, &models.CarModel{}, where, args...)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	images, err := deleteCars(tx, "model_id IN ?", ids)
	if err != nil {
		return nil, err
	}
	if err := deleteIn(tx, &models.FavoriteItem{}, "car_model_id", ids); err != nil {
		return nil, err
	}
	return images, deleteIn(tx, &models.CarModel{}, "id", ids)
}

func deleteMakes(tx *orm.Query, where string, args ...interface{}) ([]string, error) {
	ids, err := pluckIDs(tx, &models.CarMake{}, where, args...)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	var images []string
	if err := tx.Model(&models.CarMake{}).Where("id IN ? AND image <> ''", ids).Pluck("image", &images); err != nil {
		return nil, err
	}
	modelImages, err := deleteModels(tx, "make_id IN ?", ids)
	if err != nil {
		return nil, err
	}
	carImages, err := deleteCars(tx, "make_id IN ?", ids)
	if err != nil {
		return nil, err
	}
	images = append(append(images, modelImages...), carImages...)
	return images, deleteIn(tx, &models.CarMake{}, "id", ids)
}

// deleteBaskets removes a client's cart and favorites with their items.
func deleteBaskets(tx *orm.Query, clientID uint) error {
	cartIDs, err := pluckIDs(tx, &models.Cart{}, "client_id = ?", clientID)
	if err != nil {
		return err
	}
	if err := deleteIn(tx, &models.CartItem{}, "cart_id", cartIDs); err != nil {
		return err
	}
	if err := deleteIn(tx, &models.Cart{}, "id", cartIDs); err != nil {
		return err
	}

	favIDs, err := pluckIDs(tx, &models.Favorite{}, "client_id = ?", clientID)
	if err != nil {
		return err
	}
	if err := deleteIn(tx, &models.FavoriteItem{}, "favorite_id", favIDs); err != nil {
		return err
	}
	return deleteIn(tx, &models.Favorite{}, "id", favIDs)
}
