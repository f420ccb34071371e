package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	FindUserByResetToken(token string) (*models.User, error)
	SetResetToken(email string, token string) error
	UpdatePassword(password string, email string) error
	ResetPassword(userID uint, newPassword string) error
	SetUserSuspended(userID uint, suspended bool) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	FindRoleByName(name string) (*models.Role, error)
	ListAdminIDs() ([]uint, error)
	GetAllUsers() ([]models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	// Assign the default role if none is set
	if user.RoleID == uuid.Nil {
		var defaultRole models.Role
		if err := a.DB.Where("name = ?", models.RoleUser).First(&defaultRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				defaultRole = models.Role{
					ID:   uuid.New(),
					Name: models.RoleUser,
				}
				if err := a.DB.Create(&defaultRole).Error; err != nil {
					log.Printf("CreateUser error creating default role: %v", err)
					return nil, err
				}
			} else {
				log.Printf("CreateUser error fetching default role: %v", err)
				return nil, err
			}
		}
		user.RoleID = defaultRole.ID
	}

	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}

	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByResetToken(token string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) SetResetToken(email string, token string) error {
	return a.DB.Model(&models.User{}).Where("email = ?", email).Update("reset_token", token).Error
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	return a.DB.Model(&models.User{}).Where("email = ?", email).Updates(models.User{HashedPassword: password}).Error
}

func (a *authRepo) ResetPassword(userID uint, newPassword string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"hashed_password": newPassword, "reset_token": ""}).Error
}

func (a *authRepo) SetUserSuspended(userID uint, suspended bool) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_suspended", suspended)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func normalizeToken(token string) string {
	return strings.TrimSpace(token)
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", normalizeToken(token)).Count(&count)
	return count > 0
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Role not found:", name)
			return nil, errors.New("role not found")
		}
		return nil, err
	}
	return &role, nil
}

// ListAdminIDs returns the ids of every admin and super-admin user. The
// notification fan-out uses it as the admin directory.
func (a *authRepo) ListAdminIDs() ([]uint, error) {
	var ids []uint
	err := a.DB.Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name IN ?", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		Pluck("users.id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing admin ids")
	}
	return ids, nil
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	result := a.DB.Preload("Role").Find(&users)
	if result.Error != nil {
		log.Printf("Error fetching all users: %v", result.Error)
		return nil, result.Error
	}
	return users, nil
}
