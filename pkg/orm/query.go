package orm

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shashiranjanraj/automart/pkg/cache"
	"github.com/shashiranjanraj/automart/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query is a thin chainable wrapper over *gorm.DB.
type Query struct {
	db *gorm.DB
}

// Pagination is the metadata rendered next to paginated list items.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Ctx binds the request context so cancellation reaches the driver.
func Ctx(ctx context.Context) *Query {
	return &Query{db: database.DB.WithContext(ctx)}
}

// Wrap lifts a raw handle, e.g. the tx inside Transaction.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Raw exposes the underlying handle for operations the wrapper does not cover.
func (q *Query) Raw() *gorm.DB {
	return q.db
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Pluck loads a single column into dest, e.g. a []uint of ids.
func (q *Query) Pluck(column string, dest interface{}) error {
	return q.db.Pluck(column, dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	return q.db.Delete(v, conds...).Error
}

// FirstOrCreate inserts v unless a row with the same value in column exists,
// then loads the stored row into v. Safe under concurrent callers when
// column carries a unique index.
func (q *Query) FirstOrCreate(v interface{}, column string, value interface{}) error {
	err := q.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: column}},
		DoNothing: true,
	}).Create(v).Error
	if err != nil {
		return err
	}
	return q.db.Where(column+" = ?", value).First(v).Error
}

// Transaction runs fn inside a DB transaction bound to the same context.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(Wrap(tx))
	})
}

// Paginate counts the filtered rows, then loads one page into dest.
func (q *Query) Paginate(page, pageSize int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	err := q.db.Offset((page - 1) * pageSize).Limit(pageSize).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Cache serves dest from Redis when present, otherwise loads and stores it.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	ctx := q.db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if cache.Get(ctx, key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	_ = cache.Set(ctx, key, dest, ttl)
	return nil
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err came from a unique index. Drivers
// that do not translate errors are matched by message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
