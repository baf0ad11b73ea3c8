// Package repositories persists the automart models through pkg/orm.
// Every method takes the request context so cancellation reaches the
// driver. Missing rows come back as apperr NotFound errors; any other
// driver error is wrapped and returned as is.
package repositories

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/orm"
	"gorm.io/gorm"
)

func dbErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case orm.IsNotFound(err):
		return apperr.NotFound(what)
	default:
		return fmt.Errorf("%s: %w", strings.ToLower(what), err)
	}
}

func notFound(what string) error { return apperr.NotFound(what) }

func conflict(msg string) error { return apperr.Conflict(msg) }

// affected turns a delete that matched nothing into NotFound.
func affected(res *gorm.DB, what string) error {
	if res.Error != nil {
		return dbErr(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(what)
	}
	return nil
}

// ordered is a Preload condition that sorts the association.
func ordered(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(column) }
}
