package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
)

type AddressService interface {
	CreateAddress(ctx context.Context, userID uint, req dto.AddressRequest) (*model.Address, error)
	GetUserAddresses(ctx context.Context, userID uint) ([]*model.Address, error)
	UpdateAddress(ctx context.Context, addressID, userID uint, req dto.AddressRequest) (*model.Address, error)
	DeleteAddress(ctx context.Context, addressID, userID uint) error
}

type addressServiceImpl struct {
	db        *gorm.DB
	addresses repository.AddressRepository
}

func NewAddressService(db *gorm.DB, addresses repository.AddressRepository) AddressService {
	return &addressServiceImpl{db: db, addresses: addresses}
}

func (s *addressServiceImpl) CreateAddress(ctx context.Context, userID uint, req dto.AddressRequest) (*model.Address, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, apperror.New(apperror.ErrValidation, "required fields are missing", missing...)
	}
	address := &model.Address{
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := s.addresses.ClearDefaultForUser(ctx, tx, userID); err != nil {
				return fmt.Errorf("clear default address: %w", err)
			}
		}
		return s.addresses.Create(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressServiceImpl) GetUserAddresses(ctx context.Context, userID uint) ([]*model.Address, error) {
	return s.addresses.FindByUser(ctx, userID)
}

func (s *addressServiceImpl) UpdateAddress(ctx context.Context, addressID, userID uint, req dto.AddressRequest) (*model.Address, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, apperror.New(apperror.ErrValidation, "required fields are missing", missing...)
	}
	address, err := s.addresses.FindByIDAndUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("load address: %w", err)
	}
	address.AddressLine1 = req.AddressLine1
	address.AddressLine2 = req.AddressLine2
	address.City = req.City
	address.State = req.State
	address.Pincode = req.Pincode
	address.Country = req.Country

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := s.addresses.ClearDefaultForUser(ctx, tx, userID); err != nil {
				return fmt.Errorf("clear default address: %w", err)
			}
			address.IsDefault = true
		}
		return s.addresses.Update(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressServiceImpl) DeleteAddress(ctx context.Context, addressID, userID uint) error {
	affected, err := s.addresses.Delete(ctx, addressID, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
