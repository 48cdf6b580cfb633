package client

import (
	"context"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

// Client is the REST API contract used by the coordinator. A nil response
// with a nil error is treated as ErrEmptyResponse.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req models.OTPVerificationRequest) (*models.MessageResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.MessageResponse, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error)
	GetProfile(ctx context.Context) (*models.PartnerDTO, error)
	// UpdateProfile sends the non-nil fields of upd; upd.Photo is a local
	// file path or "".
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.PartnerDTO, error)
	UploadDocument(ctx context.Context, kind string, path string) (*models.UploadDocumentResponse, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	Logout(ctx context.Context) (*models.MessageResponse, error)
}

// TokenSource yields the cached auth token, or "" when logged out.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
