package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	apiError "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/mailingservices"
	"github.com/ecotrackhq/ecotrack/models"
	"github.com/ecotrackhq/ecotrack/services/jwt"
	"github.com/ecotrackhq/ecotrack/services/utils"
)

// AuthService interface
type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken string, email string) error
	GetUserProfile(userID uint) (*models.User, error)
	SendEmailForPasswordReset(forgot *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
	ChangePassword(userID uint, currentPassword, newPassword string) *apiError.Error
	ToggleUserStatus(actorID uint, userID uint, suspend bool) error
	GetAllUsers() ([]models.User, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	fanout   FanoutService
	audit    AuditService
	mail     mailingservices.Mailer
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, fanout FanoutService, audit AuditService, mail mailingservices.Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		fanout:   fanout,
		audit:    audit,
		mail:     mail,
	}
}

func (a *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil || user.Email == "" {
		return nil, apiError.ErrBadRequest
	}

	user.Email = strings.ToLower(user.Email)
	if err := a.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser: %v", err)
		return nil, apiError.ErrAlreadyExists
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = hashedPassword
	user.Password = ""
	user.IsEmailActive = true

	created, err := a.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	a.audit.Log(&created.ID, "user_signed_up", "users")
	return created, nil
}

// LoginUser logs in a user and returns the login response
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(strings.ToLower(loginRequest.Email))
	if err != nil {
		return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
	}

	if foundUser.IsSuspended {
		return nil, apiError.InActiveUserError
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("invalid password for user %s", foundUser.Email)
		return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
	}

	accessToken, err := jwt.GenerateToken(foundUser.ID, foundUser.Email, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:       foundUser.ID,
			Fullname: foundUser.Fullname,
			Username: foundUser.Username,
			Email:    foundUser.Email,
			RoleName: foundUser.Role.Name,
		},
		AccessToken: accessToken,
	}, nil
}

// LogoutUser invalidates the access token by adding it to the blacklist.
func (a *authService) LogoutUser(accessToken string, email string) error {
	blacklist := &models.Blacklist{
		Token: accessToken,
		Email: email,
	}
	if err := a.authRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("error blacklisting token for %s: %v", email, err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) GetUserProfile(userID uint) (*models.User, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.ErrNotFound
	}
	return user, nil
}

// SendEmailForPasswordReset generates a reset token, stores it on the user
// row and mails the reset link. A missing account is reported the same way as
// a successful send so the endpoint does not leak which emails exist.
func (a *authService) SendEmailForPasswordReset(forgot *models.ForgotPassword) *apiError.Error {
	email := strings.ToLower(forgot.Email)
	user, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		log.Printf("password reset requested for unknown email %s", email)
		return nil
	}

	token, err := utils.GeneratePasswordResetToken(user.Email, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating reset token for %s: %v", email, err)
		return apiError.ErrInternalServerError
	}

	if err := a.authRepo.SetResetToken(user.Email, token); err != nil {
		log.Printf("error storing reset token for %s: %v", email, err)
		return apiError.ErrInternalServerError
	}

	link := fmt.Sprintf("%s/reset-password/%s", a.Config.BaseUrl, token)
	if _, err := a.mail.SendResetPassword(user.Email, link); err != nil {
		return apiError.New("unable to send reset password mail", http.StatusInternalServerError)
	}

	a.audit.Log(&user.ID, "password_reset_requested", "users")
	return nil
}

// ResetPassword completes the forgot-password flow: the token from the mail
// link must verify and match the one stored on the account.
func (a *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	email, err := utils.VerifyResetToken(token, a.Config.JWTSecret)
	if err != nil {
		log.Printf("invalid reset token: %v", err)
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	user, err := a.authRepo.FindUserByResetToken(token)
	if err != nil || user.Email != email {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("error hashing new password for %s: %v", email, err)
		return apiError.ErrInternalServerError
	}

	if err := a.authRepo.ResetPassword(user.ID, hashedPassword); err != nil {
		log.Printf("error resetting password for %s: %v", email, err)
		return apiError.ErrInternalServerError
	}

	a.fanout.Dispatch(PasswordReset{UserID: user.ID})
	a.audit.Log(&user.ID, "password_reset", "users")
	return nil
}

// ChangePassword lets a logged-in user rotate their own password.
func (a *authService) ChangePassword(userID uint, currentPassword, newPassword string) *apiError.Error {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return apiError.ErrNotFound
	}

	if err := user.VerifyPassword(currentPassword); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apiError.New("current password is incorrect", http.StatusUnauthorized)
		}
		return apiError.ErrInternalServerError
	}

	if err := models.ValidatePassword(newPassword); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Printf("error hashing new password for user %d: %v", userID, err)
		return apiError.ErrInternalServerError
	}

	if err := a.authRepo.UpdatePassword(hashedPassword, user.Email); err != nil {
		log.Printf("error updating password for user %d: %v", userID, err)
		return apiError.ErrInternalServerError
	}

	a.fanout.Dispatch(PasswordChanged{UserID: user.ID})
	a.audit.Log(&user.ID, "password_changed", "users")
	return nil
}

// ToggleUserStatus suspends or reactivates an account.
func (a *authService) ToggleUserStatus(actorID uint, userID uint, suspend bool) error {
	if err := a.authRepo.SetUserSuspended(userID, suspend); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("error toggling status for user %d: %v", userID, err)
		return apiError.ErrInternalServerError
	}

	a.fanout.Dispatch(AccountStatusToggled{UserID: userID, Suspended: suspend})

	action := "user_reactivated"
	if suspend {
		action = "user_suspended"
	}
	a.audit.Log(&actorID, action, "users")
	return nil
}

func (a *authService) GetAllUsers() ([]models.User, error) {
	users, err := a.authRepo.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("error getting all users: %w", err)
	}
	return users, nil
}
