package services

import (
	"context"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
)

// AuthService covers registration, login, password recovery and logout.
//
// Write-throughs happen only after the server accepted the request:
//   - Login stores token, email, partner id and the profile.
//   - VerifyOTP marks the cached profile verified and forgets the pending email.
//   - ForgotPassword remembers the email/phone; ResetPassword forgets it.
//   - Logout clears credentials and profile; a failed logout clears nothing.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) <-chan result.State[models.RegisterResponse]
	VerifyOTP(ctx context.Context, email, otp string) <-chan result.State[models.MessageResponse]
	Login(ctx context.Context, identifier, password string) <-chan result.State[models.LoginResponse]
	ForgotPassword(ctx context.Context, emailOrPhone string) <-chan result.State[models.MessageResponse]
	ResetPassword(ctx context.Context, emailOrPhone, otp, newPassword, confirmation string) <-chan result.State[models.MessageResponse]
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirmation string) <-chan result.State[models.MessageResponse]
	Logout(ctx context.Context) <-chan result.State[models.MessageResponse]

	Session(ctx context.Context) (models.Session, error)
	PendingEmail(ctx context.Context) (string, error)
}

// ProfileService reads and edits the partner profile, cache first.
type ProfileService interface {
	GetProfile(ctx context.Context) <-chan result.State[models.PartnerProfile]
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) <-chan result.State[models.PartnerProfile]
	LocalProfile(ctx context.Context) (*models.PartnerProfile, error)
	WatchProfile(ctx context.Context) (<-chan *models.PartnerProfile, error)
}

// DocumentService uploads and lists partner documents.
type DocumentService interface {
	UploadDocument(ctx context.Context, kind, fileRef string) <-chan result.State[models.UploadDocumentResponse]
	ListDocuments(ctx context.Context) <-chan result.State[[]models.Document]
}
