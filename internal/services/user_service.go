package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"path"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
	"fintrack/internal/validation"
)

// userService handles identity, settings, and avatar operations.
type userService struct {
	identity IdentityGateway
	blobs    BlobGateway
	sender   CodeSender
	otpTTL   time.Duration
}

// NewUserService creates a new UserServicer.
func NewUserService(identity IdentityGateway, blobs BlobGateway, sender CodeSender, otpTTL time.Duration) UserServicer {
	return &userService{
		identity: identity,
		blobs:    blobs,
		sender:   sender,
		otpTTL:   otpTTL,
	}
}

// RequestCode issues a sign-in code for the email, creating the user if
// they do not exist yet. Only a bcrypt hash of the code is stored.
func (s *userService) RequestCode(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}

	user, err := s.identity.GetUserByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrAuthFailed, err)
		}
		user = &models.User{Email: email, DefaultView: models.RangeDefault}
		if err := s.identity.CreateUser(user); err != nil {
			return apperrors.Wrap(apperrors.ErrAuthFailed, err)
		}
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrAuthFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrAuthFailed, err)
	}

	expiresAt := time.Now().Add(s.otpTTL)
	err = s.identity.UpdateUserAttributes(user.ID, map[string]any{
		"otp_hash":       string(hash),
		"otp_expires_at": expiresAt,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrAuthFailed, err)
	}

	if err := s.sender.Send(email, code); err != nil {
		return apperrors.Wrap(apperrors.ErrAuthFailed, err)
	}
	return nil
}

// VerifyCode checks a sign-in code and consumes it on success.
func (s *userService) VerifyCode(email, code string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.identity.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCode
		}
		return nil, apperrors.Wrap(apperrors.ErrAuthFailed, err)
	}

	if user.OTPHash == "" || user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return nil, apperrors.ErrInvalidCode
	}
	if bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(code)) != nil {
		return nil, apperrors.ErrInvalidCode
	}

	now := time.Now()
	err = s.identity.UpdateUserAttributes(user.ID, map[string]any{
		"otp_hash":       "",
		"otp_expires_at": nil,
		"last_login_at":  now,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuthFailed, err)
	}

	user.OTPHash = ""
	user.OTPExpiresAt = nil
	user.LastLoginAt = &now
	return user, nil
}

// SignOut invalidates the user's refresh token.
func (s *userService) SignOut(userID string) error {
	err := s.identity.UpdateUserAttributes(userID, map[string]any{"refresh_token_hash": ""})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserByID retrieves an identity record by id.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.identity.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// UpdateSettings validates and applies the user's settings attributes.
func (s *userService) UpdateSettings(userID string, input map[string]any) (*models.User, error) {
	record, fieldErrs := validation.Settings(input)
	if fieldErrs != nil {
		return nil, apperrors.WithFields(apperrors.ErrInvalidData, fieldErrs)
	}

	err := s.identity.UpdateUserAttributes(userID, map[string]any{
		"full_name":    record.FullName,
		"default_view": record.DefaultView,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSettingsUpdateFailed, err)
	}

	return s.GetUserByID(userID)
}

// ReplaceAvatar stores the new blob under a generated filename, removes the
// prior blob if any, then points the identity record at the new one.
func (s *userService) ReplaceAvatar(userID, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "avatar file is empty")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	name := uuid.New() + path.Ext(filename)
	err = s.blobs.UploadAvatar(&models.Avatar{
		Name:        name,
		ContentType: contentType,
		Content:     data,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAvatarUploadFailed, err)
	}

	if user.Avatar != "" {
		if err := s.blobs.RemoveAvatar(user.Avatar); err != nil {
			return "", apperrors.Wrap(apperrors.ErrAvatarUploadFailed, err)
		}
	}

	if err := s.identity.UpdateUserAttributes(userID, map[string]any{"avatar": name}); err != nil {
		return "", apperrors.Wrap(apperrors.ErrAvatarUploadFailed, err)
	}
	return name, nil
}

// GetAvatar returns a stored avatar blob by name.
func (s *userService) GetAvatar(name string) (*models.Avatar, error) {
	avatar, err := s.blobs.GetAvatar(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return avatar, nil
}

// StoreRefreshTokenHash persists the hash of the user's refresh token.
func (s *userService) StoreRefreshTokenHash(userID, tokenHash string) error {
	err := s.identity.UpdateUserAttributes(userID, map[string]any{"refresh_token_hash": tokenHash})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash.
func (s *userService) GetRefreshTokenHash(userID string) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return user.RefreshTokenHash, nil
}

// generateCode returns a six-digit numeric sign-in code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// LogCodeSender logs issued codes instead of delivering them. Stands in
// for the hosted mail transport in development and tests.
type LogCodeSender struct{}

// Send implements CodeSender.
func (LogCodeSender) Send(email, code string) error {
	logger.Get().Infow("sign-in code issued", "email", email, "code", code)
	return nil
}
