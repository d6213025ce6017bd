package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/service"
)

func newAddressFixture(t *testing.T) (service.AddressService, uint) {
	t.Helper()
	db := newTestDB(t)
	svc := service.NewAddressService(db, repository.NewAddressRepository(db))
	user := model.User{
		Email: "mover@example.com", UserName: "mover", FullName: "Mover",
		Password: "hash", Role: model.RoleUser, IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return svc, user.ID
}

func addressReq(line1 string, isDefault bool) dto.AddressRequest {
	return dto.AddressRequest{
		AddressLine1: line1,
		City:         "Booktown",
		State:        "Fiction",
		Pincode:      "560001",
		Country:      "India",
		IsDefault:    isDefault,
	}
}

func TestCreateAddressSwitchesDefault(t *testing.T) {
	svc, userID := newAddressFixture(t)
	ctx := context.Background()

	first, err := svc.CreateAddress(ctx, userID, addressReq("1 Old Road", true))
	require.NoError(t, err)
	second, err := svc.CreateAddress(ctx, userID, addressReq("2 New Road", true))
	require.NoError(t, err)

	addresses, err := svc.GetUserAddresses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	// exactly one default, and it is the newest
	var defaults []uint
	for _, a := range addresses {
		if a.IsDefault {
			defaults = append(defaults, a.ID)
		}
	}
	require.Len(t, defaults, 1)
	assert.Equal(t, second.ID, defaults[0])
	assert.NotEqual(t, first.ID, defaults[0])
}

func TestCreateAddressValidation(t *testing.T) {
	svc, userID := newAddressFixture(t)

	req := addressReq("", false)
	req.Country = ""
	_, err := svc.CreateAddress(context.Background(), userID, req)
	require.ErrorIs(t, err, apperror.ErrValidation)
	appErr := apperror.From(err)
	assert.Contains(t, appErr.Details, "addressLine1")
	assert.Contains(t, appErr.Details, "country")
}

func TestUpdateAndDeleteAddress(t *testing.T) {
	svc, userID := newAddressFixture(t)
	ctx := context.Background()

	address, err := svc.CreateAddress(ctx, userID, addressReq("1 Old Road", true))
	require.NoError(t, err)

	updated, err := svc.UpdateAddress(ctx, address.ID, userID, addressReq("7 Moved Street", true))
	require.NoError(t, err)
	assert.Equal(t, "7 Moved Street", updated.AddressLine1)

	// another user's rows are invisible
	_, err = svc.UpdateAddress(ctx, address.ID, userID+1, addressReq("9 Hijack Ave", false))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteAddress(ctx, address.ID, userID+1), apperror.ErrNotFound)

	require.NoError(t, svc.DeleteAddress(ctx, address.ID, userID))
	addresses, err := svc.GetUserAddresses(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
