package models

import (
	"strings"

	"github.com/vastrakart/vastrakart/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin seeds the default backoffice account when none exists.
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}

// InitDefaultStore seeds the default storefront when none exists.
func InitDefaultStore(name, lookupKey, sellerState string) (*Store, error) {
	var existing Store
	err := DB.Where("lookup_key = ?", lookupKey).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	if strings.TrimSpace(name) == "" {
		name = "Vastrakart"
	}
	if strings.TrimSpace(sellerState) == "" {
		sellerState = "Maharashtra"
	}
	store := Store{
		Name:        name,
		LookupKey:   strings.TrimSpace(lookupKey),
		SellerState: sellerState,
		Currency:    "INR",
		IsActive:    true,
	}
	if err := DB.Create(&store).Error; err != nil {
		return nil, err
	}
	logger.Infow("default_store_created", "lookup_key", store.LookupKey, "seller_state", store.SellerState)
	return &store, nil
}
