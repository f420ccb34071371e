package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a user of the application
type User struct {
	Model
	Fullname       string         `json:"fullname" binding:"required,min=2" conform:"trim"`
	Username       string         `json:"username" binding:"required,min=2" conform:"trim"`
	Telephone      string         `json:"telephone" gorm:"default:null"`
	Email          string         `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Password       string         `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string         `json:"-"`
	IsEmailActive  bool           `json:"-"`
	IsSuspended    bool           `json:"is_suspended" gorm:"default:false"`
	AccessToken    string         `json:"-" gorm:"-"`
	ResetToken     string         `json:"-"`
	RoleID         uuid.UUID      `json:"role_id" gorm:"type:uuid"`
	Role           Role           `json:"role" gorm:"foreignKey:RoleID"`
	Notifications  []Notification `json:"-" gorm:"foreignKey:UserID"`
}

type Role struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name string    `json:"name"`
}

const (
	RoleUser       = "User"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// IsAdmin reports whether the user holds an admin or super-admin role.
func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin || u.Role.Name == RoleSuperAdmin
}

// Blacklist stores access tokens invalidated by logout.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"not null;index"`
	Email string `json:"email"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type ChangePassword struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type ToggleUserStatusRequest struct {
	Suspend bool `json:"suspend"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// ValidateStruct normalizes the conform-tagged fields in place (trimming
// whitespace, lowercasing email), then runs struct validation and returns
// the translated errors.
func ValidateStruct(req interface{}) []error {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	if err := validateWhiteSpaces(req); err != nil {
		return []error{err}
	}
	return translateError(validate.Struct(req), trans)
}

func validateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
