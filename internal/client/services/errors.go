package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mitrakurir/internal/client/client"
)

const (
	msgNetwork       = "network error, check your internet connection"
	msgEmptyResponse = "empty response from server"
	msgPhotoFailed   = "failed to process photo file"
	msgFileFailed    = "failed to process document file"
)

// Per-operation fallbacks for API errors without a message.
const (
	fallbackRegister       = "registration failed"
	fallbackVerifyOTP      = "otp verification failed"
	fallbackLogin          = "login failed"
	fallbackForgotPassword = "password reset request failed"
	fallbackResetPassword  = "password reset failed"
	fallbackChangePassword = "failed to change password"
	fallbackGetProfile     = "failed to load profile"
	fallbackUpdateProfile  = "failed to update profile"
	fallbackUpload         = "failed to upload document"
	fallbackListDocuments  = "failed to load documents"
	fallbackLogout         = "logout failed"
)

// failureMessage maps a remote error to the message shown to the user.
func failureMessage(err error, fallback string) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	case errors.Is(err, client.ErrUnavailable):
		return msgNetwork
	case errors.Is(err, client.ErrEmptyResponse):
		return msgEmptyResponse
	default:
		return fmt.Sprintf("unexpected error: %v", err)
	}
}

func saveFailedMessage(err error) string {
	return fmt.Sprintf("failed to save local data: %v", err)
}
