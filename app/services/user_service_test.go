package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

func strp(s string) *string { return &s }

func TestUsers_OnlySelfVisible(t *testing.T) {
	f := newFixture(t)

	list, err := f.users.List(f.ctx, f.client)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ann", list[0].Username)

	_, err = f.users.Get(f.ctx, f.client, f.owner.UserID)
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.users.List(f.ctx, Caller{})
	requireKind(t, err, apperr.KindUnauthenticated)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	age := 40

	u, err := f.users.Update(f.ctx, f.client, f.client.UserID, UserChanges{
		FirstName: strp("Ann"),
		Age:       &age,
		Password:  strp("new-password"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.FirstName)
	require.NotNil(t, u.Client.Age)
	assert.Equal(t, uint8(40), *u.Client.Age)

	_, err = f.auth.Login(f.ctx, "ann", "new-password")
	assert.NoError(t, err)
	_, err = f.auth.Login(f.ctx, "ann", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Update(f.ctx, f.client, f.client.UserID, UserChanges{OwnerName: strp("Ann Cars")})
	e := requireKind(t, err, apperr.KindValidation)
	assert.Contains(t, e.Fields, "owner_name")

	_, err = f.users.Update(f.ctx, f.client, f.client.UserID, UserChanges{Location: strp("Oslo")})
	e = requireKind(t, err, apperr.KindValidation)
	assert.Contains(t, e.Fields, "location")
	assert.NotContains(t, e.Fields, "owner_name")

	_, err = f.users.Update(f.ctx, f.owner, f.owner.UserID, UserChanges{Age: &age})
	e = requireKind(t, err, apperr.KindValidation)
	assert.Contains(t, e.Fields, "age")

	o, err := f.users.Update(f.ctx, f.owner, f.owner.UserID, UserChanges{Location: strp("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", o.Owner.Location)
	assert.Equal(t, "Bob Motors", o.Owner.OwnerName)

	_, err = f.users.Update(f.ctx, f.client, f.client.UserID, UserChanges{Username: strp("bob")})
	requireKind(t, err, apperr.KindConflict)
}

func TestDeleteUser_RemovesOwnedRows(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "100", 2000)

	_, err := f.baskets.AddCartItem(f.ctx, f.client, CartItemInput{CarID: c.ID})
	require.NoError(t, err)
	_, err = f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: c.ID, Text: "Fine", Stars: 4})
	require.NoError(t, err)
	_, err = f.history.Append(f.ctx, f.client, HistoryInput{CarID: c.ID})
	require.NoError(t, err)

	requireKind(t, f.users.Delete(f.ctx, f.client, f.owner.UserID), apperr.KindNotFound)
	require.NoError(t, f.users.Delete(f.ctx, f.client, f.client.UserID))

	_, err = f.auth.Login(f.ctx, "ann", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	reviews, err := f.reviews.List(f.ctx, &c.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// the listing is not the client's to delete
	_, err = f.catalog.Car(f.ctx, Caller{}, c.ID)
	assert.NoError(t, err)
}

func TestDeletedClient_TokenCannotRecreateRows(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "100", 2000)
	stale := f.client

	_, err := f.baskets.AddCartItem(f.ctx, stale, CartItemInput{CarID: c.ID})
	require.NoError(t, err)
	_, err = f.baskets.Favorite(f.ctx, stale)
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(f.ctx, stale, stale.UserID))

	_, err = f.baskets.Cart(f.ctx, stale)
	assert.ErrorIs(t, err, ErrAccountGone)
	_, err = f.baskets.Favorite(f.ctx, stale)
	assert.ErrorIs(t, err, ErrAccountGone)
	_, err = f.baskets.AddCartItem(f.ctx, stale, CartItemInput{CarID: c.ID})
	assert.ErrorIs(t, err, ErrAccountGone)
	_, err = f.history.Append(f.ctx, stale, HistoryInput{CarID: c.ID})
	assert.ErrorIs(t, err, ErrAccountGone)
	_, err = f.reviews.Create(f.ctx, stale, ReviewInput{CarID: c.ID, Text: "Ghost", Stars: 5})
	requireKind(t, err, apperr.KindUnauthenticated)

	// the detail view still answers but records nothing
	_, err = f.catalog.Car(f.ctx, stale, c.ID)
	require.NoError(t, err)

	for _, m := range []interface{}{&models.Cart{}, &models.Favorite{}, &models.History{}} {
		n, err := orm.Ctx(f.ctx).Model(m).Where("client_id = ?", stale.UserID).Count()
		require.NoError(t, err)
		assert.Zero(t, n, "%T rows for the deleted client", m)
	}

	// other clients are unaffected
	_, err = f.baskets.Cart(f.ctx, f.registerClient(t, "dora"))
	assert.NoError(t, err)
}
