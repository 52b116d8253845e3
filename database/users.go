package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"mention-radar/models"
)

// EnsureUserProfile fetches the profile of identity, creating it from the
// identity metadata on first visit. If the insert fails (for example because
// a concurrent visit created the row) the profile is fetched once more.
func EnsureUserProfile(ctx context.Context, identity models.Identity) (models.User, error) {
	db := GetDB().WithContext(ctx)

	var user models.User
	err := db.Where("id = ?", identity.ID).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("load profile: %w", err)
	}

	log.Printf("profile %s not found, creating it", identity.ID)
	user = ProfileFromIdentity(identity)
	if err := db.Create(&user).Error; err != nil {
		log.Printf("create profile %s: %v", identity.ID, err)
		var retry models.User
		if err := db.Where("id = ?", identity.ID).First(&retry).Error; err != nil {
			return models.User{}, fmt.Errorf("load profile after failed create: %w", err)
		}
		return retry, nil
	}
	return user, nil
}

// ProfileFromIdentity maps sign-up metadata onto a new profile: full_name
// (or nome) and role, defaulting to usuario.
func ProfileFromIdentity(identity models.Identity) models.User {
	user := models.User{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  models.RoleUsuario,
	}
	name := identity.MetadataString("full_name")
	if name == "" {
		name = identity.MetadataString("nome")
	}
	if name != "" {
		user.FullName = &name
	}
	if role := models.Role(identity.MetadataString("role")); role == models.RoleAdmin || role == models.RoleUsuario {
		user.Role = role
	}
	return user
}
