package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/monocle-dev/holdings/internal/auth"
	"github.com/monocle-dev/holdings/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired = errors.New("user must have an email address")
	ErrEmailTaken    = errors.New("user with this email already exists")
)

// NormalizeEmail trims email and lower-cases its domain part. The local part
// is kept as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// EmailTaken reports whether another user already owns email.
func EmailTaken(conn *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64

	query := conn.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateUser stores an active, non-staff user with a hashed password.
func CreateUser(conn *gorm.DB, email, password, name string) (models.User, error) {
	email = NormalizeEmail(email)

	if email == "" {
		return models.User{}, ErrEmailRequired
	}

	taken, err := EmailTaken(conn, email, 0)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := conn.Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// CreateSuperuser creates a user with the staff and superuser flags set.
func CreateSuperuser(conn *gorm.DB, email, password string) (models.User, error) {
	var user models.User

	err := conn.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = CreateUser(tx, email, password, "")
		if err != nil {
			return err
		}

		user.IsStaff = true
		user.IsSuperuser = true

		return tx.Model(&user).Updates(map[string]interface{}{
			"is_staff":     true,
			"is_superuser": true,
		}).Error
	})

	return user, err
}

// Authenticate returns the active user matching email and password.
func Authenticate(conn *gorm.DB, email, password string) (models.User, bool, error) {
	var user models.User

	err := conn.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}

	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, false, nil
	}

	return user, true, nil
}

// DeleteUser removes the user together with every investment, tag and
// activity they own.
func DeleteUser(conn *gorm.DB, userID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Investment{}).Select("id").Where("user_id = ?", userID)
		ownedTags := tx.Model(&models.Tag{}).Select("id").Where("user_id = ?", userID)

		if err := tx.Exec("DELETE FROM investment_tags WHERE investment_id IN (?) OR tag_id IN (?)", owned, ownedTags).Error; err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Investment{}).Error; err != nil {
			return fmt.Errorf("delete investments: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Tag{}).Error; err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}

		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
