package repositories

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

// HistoryRepository appends and reads history events. It has no update or
// delete: rows only disappear through a cascade.
type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) events(ctx context.Context, clientID uint) *orm.Query {
	q := orm.Ctx(ctx).Model(&models.History{}).Where("client_id = ?", clientID)
	return listings(q, "Car.")
}

// List returns one page of the client's events, newest first.
func (r *HistoryRepository) List(ctx context.Context, clientID uint, page, size int) ([]models.History, orm.Pagination, error) {
	var out []models.History
	p, err := r.events(ctx, clientID).Order("created_at DESC").Order("id DESC").Paginate(page, size, &out)
	return out, p, dbErr(err, "History")
}

func (r *HistoryRepository) Find(ctx context.Context, clientID, id uint) (models.History, error) {
	var h models.History
	err := r.events(ctx, clientID).Where("id = ?", id).First(&h)
	return h, dbErr(err, "History")
}

func (r *HistoryRepository) Append(ctx context.Context, h *models.History) error {
	return dbErr(orm.Ctx(ctx).Create(h), "History")
}
