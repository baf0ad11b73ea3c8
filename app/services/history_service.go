package services

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

type HistoryInput struct {
	CarID uint `json:"car_id" validate:"required"`
}

// HistoryService exposes the caller's append-only event log.
type HistoryService struct {
	history  *repositories.HistoryRepository
	catalog  *repositories.CatalogRepository
	accounts accounts
}

func NewHistoryService() *HistoryService {
	return &HistoryService{
		history:  repositories.NewHistoryRepository(),
		catalog:  repositories.NewCatalogRepository(),
		accounts: newAccounts(),
	}
}

func (s *HistoryService) List(ctx context.Context, caller Caller, page, size int) ([]models.History, orm.Pagination, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return nil, orm.Pagination{}, err
	}
	return s.history.List(ctx, caller.UserID, page, size)
}

func (s *HistoryService) Find(ctx context.Context, caller Caller, id uint) (models.History, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.History{}, err
	}
	return s.history.Find(ctx, caller.UserID, id)
}

// Append records an event for the caller.
func (s *HistoryService) Append(ctx context.Context, caller Caller, in HistoryInput) (models.History, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.History{}, err
	}
	if _, err := s.catalog.FindCar(ctx, in.CarID); err != nil {
		return models.History{}, refErr(err, "car_id")
	}

	h := models.History{ClientID: caller.UserID, CarID: in.CarID}
	if err := s.history.Append(ctx, &h); err != nil {
		return h, err
	}
	return s.history.Find(ctx, caller.UserID, h.ID)
}
