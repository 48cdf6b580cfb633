package services

import (
	"context"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
	"github.com/dmitrijs2005/mitrakurir/internal/common"
)

func (c *Coordinator) Register(ctx context.Context, req models.RegisterRequest) <-chan result.State[models.RegisterResponse] {
	return call(ctx, c, "register", fallbackRegister,
		func(ctx context.Context) (models.RegisterResponse, error) {
			return deref(c.client.Register(ctx, req))
		}, nil)
}

// VerifyOTP marks the cached profile verified, if there is one, and forgets
// the pending email.
func (c *Coordinator) VerifyOTP(ctx context.Context, email, otp string) <-chan result.State[models.MessageResponse] {
	return call(ctx, c, "verify-otp", fallbackVerifyOTP,
		func(ctx context.Context) (models.MessageResponse, error) {
			return deref(c.client.VerifyOTP(ctx, models.OTPVerificationRequest{Email: email, OTP: otp}))
		},
		func(ctx context.Context, _ models.MessageResponse) error {
			return c.writeThrough(ctx, true, func(ctx context.Context, creds *credentials.Store, profs profiles.Repository) error {
				current, err := profs.GetLoggedIn(ctx)
				if err != nil {
					return err
				}
				if current != nil {
					current.Verified = true
					if err := profs.Update(ctx, current); err != nil {
						return err
					}
				}
				return creds.Remove(ctx, common.KeyUserEmail)
			})
		})
}

// Login stores the session and replaces the cached profile in one
// transaction. Rows of any other partner are dropped.
func (c *Coordinator) Login(ctx context.Context, identifier, password string) <-chan result.State[models.LoginResponse] {
	return call(ctx, c, "login", fallbackLogin,
		func(ctx context.Context) (models.LoginResponse, error) {
			return deref(c.client.Login(ctx, models.LoginRequest{Identifier: identifier, Password: password}))
		},
		func(ctx context.Context, resp models.LoginResponse) error {
			return c.writeThrough(ctx, true, func(ctx context.Context, creds *credentials.Store, profs profiles.Repository) error {
				sess := models.Session{
					Token:     resp.AccessToken,
					Email:     resp.Partner.Email,
					PartnerID: resp.Partner.ID,
				}
				if err := creds.SaveSession(ctx, sess); err != nil {
					return err
				}
				if err := profs.Clear(ctx); err != nil {
					return err
				}
				return profs.Upsert(ctx, resp.Partner.ToProfile())
			})
		})
}

// ForgotPassword remembers emailOrPhone as the pending email for the
// follow-up reset.
func (c *Coordinator) ForgotPassword(ctx context.Context, emailOrPhone string) <-chan result.State[models.MessageResponse] {
	return call(ctx, c, "forgot-password", fallbackForgotPassword,
		func(ctx context.Context) (models.MessageResponse, error) {
			return deref(c.client.ForgotPassword(ctx, models.ForgotPasswordRequest{EmailOrPhone: emailOrPhone}))
		},
		func(ctx context.Context, _ models.MessageResponse) error {
			return c.writeThrough(ctx, false, func(ctx context.Context, creds *credentials.Store, _ profiles.Repository) error {
				return creds.Set(ctx, common.KeyUserEmail, emailOrPhone)
			})
		})
}

func (c *Coordinator) ResetPassword(ctx context.Context, emailOrPhone, otp, newPassword, confirmation string) <-chan result.State[models.MessageResponse] {
	return call(ctx, c, "reset-password", fallbackResetPassword,
		func(ctx context.Context) (models.MessageResponse, error) {
			return deref(c.client.ResetPassword(ctx, models.ResetPasswordRequest{
				EmailOrPhone:            emailOrPhone,
				OTP:                     otp,
				NewPassword:             newPassword,
				NewPasswordConfirmation: confirmation,
			}))
		},
		func(ctx context.Context, _ models.MessageResponse) error {
			return c.writeThrough(ctx, false, func(ctx context.Context, creds *credentials.Store, _ profiles.Repository) error {
				return creds.Remove(ctx, common.KeyUserEmail)
			})
		})
}

func (c *Coordinator) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmation string) <-chan result.State[models.MessageResponse] {
	return call(ctx, c, "change-password", fallbackChangePassword,
		func(ctx context.Context) (models.MessageResponse, error) {
			return deref(c.client.ChangePassword(ctx, models.ChangePasswordRequest{
				OldPassword:             oldPassword,
				NewPassword:             newPassword,
				NewPasswordConfirmation: confirmation,
			}))
		}, nil)
}

// Logout clears local state only after the server confirmed.
func (c *Coordinator) Logout(ctx context.Context) <-chan result.State[models.MessageResponse] {
	return call(ctx, c, "logout", fallbackLogout,
		func(ctx context.Context) (models.MessageResponse, error) {
			return deref(c.client.Logout(ctx))
		},
		func(ctx context.Context, _ models.MessageResponse) error {
			return c.writeThrough(ctx, true, func(ctx context.Context, creds *credentials.Store, profs profiles.Repository) error {
				if err := creds.ClearSession(ctx); err != nil {
					return err
				}
				return profs.Clear(ctx)
			})
		})
}
