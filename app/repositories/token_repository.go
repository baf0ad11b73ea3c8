package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

var ErrAlreadyRevoked = errors.New("token already revoked")

// TokenRepository owns the refresh-token revocation ledger.
type TokenRepository struct{}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{}
}

// Revoke records jti. Revoking the same jti twice returns ErrAlreadyRevoked.
func (r *TokenRepository) Revoke(ctx context.Context, t *models.RevokedToken) error {
	err := orm.Ctx(ctx).Create(t)
	if orm.IsUniqueViolation(err) {
		return ErrAlreadyRevoked
	}
	return dbErr(err, "Revoked token")
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := orm.Ctx(ctx).Model(&models.RevokedToken{}).Where("jti = ?", jti).Count()
	return n > 0, dbErr(err, "Revoked token")
}

// PurgeExpired drops ledger rows whose token expired before now. An expired
// token fails validation on its own, so its row is no longer needed.
func (r *TokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := orm.Ctx(ctx).Raw().Where("expires_at < ?", now).Delete(&models.RevokedToken{})
	return res.RowsAffected, dbErr(res.Error, "Revoked token")
}
