package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/mitrakurir/internal/common"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

type registerInput struct {
	Name  string
	Email string
	Phone string
}

type verifyInput struct {
	Email string
	OTP   string
}

type loginInput struct {
	Identifier string
}

type forgotInput struct {
	EmailOrPhone string
}

type resetInput struct {
	EmailOrPhone string
	OTP          string
}

// prompt returns v, or asks for it when empty.
func (a *App) prompt(v *string, text string) error {
	if *v != "" {
		return nil
	}
	s, err := getSimpleText(a.reader, text, a.out)
	if err != nil {
		return err
	}
	*v = s
	return nil
}

// newPassword reads a password and its confirmation. The caller wipes both.
func (a *App) newPassword(prompt string) (pw, confirm []byte, err error) {
	pw, err = getPassword(prompt, a.out)
	if err != nil {
		return nil, nil, err
	}
	confirm, err = getPassword("Confirm password", a.out)
	if err != nil {
		common.WipeByteArray(pw)
		return nil, nil, err
	}
	if string(pw) != string(confirm) {
		common.WipeByteArray(pw)
		common.WipeByteArray(confirm)
		return nil, nil, ErrPasswordMismatch
	}
	return pw, confirm, nil
}

func (a *App) Register(ctx context.Context, in registerInput) error {
	if err := a.prompt(&in.Name, "Enter full name"); err != nil {
		return err
	}
	if err := a.prompt(&in.Email, "Enter email"); err != nil {
		return err
	}
	if err := a.prompt(&in.Phone, "Enter phone number"); err != nil {
		return err
	}
	pw, confirm, err := a.newPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(confirm)

	req := models.RegisterRequest{
		Name:                 in.Name,
		Email:                in.Email,
		Phone:                in.Phone,
		Password:             string(pw),
		PasswordConfirmation: string(confirm),
	}
	return consume(a.auth.Register(ctx, req), func(r models.RegisterResponse) {
		a.printf("%s\n", r.Message)
		a.printf("Check %s for the verification code, then run verify-otp.\n", in.Email)
	}, nil)
}

// VerifyOTP defaults the email to the one remembered from registration or
// forgot-password.
func (a *App) VerifyOTP(ctx context.Context, in verifyInput) error {
	if in.Email == "" {
		pending, err := a.auth.PendingEmail(ctx)
		if err != nil {
			return err
		}
		in.Email = pending
	}
	if err := a.prompt(&in.Email, "Enter email"); err != nil {
		return err
	}
	if err := a.prompt(&in.OTP, "Enter OTP code"); err != nil {
		return err
	}
	return consume(a.auth.VerifyOTP(ctx, in.Email, in.OTP), func(r models.MessageResponse) {
		a.printf("%s\n", r.Message)
	}, nil)
}

func (a *App) Login(ctx context.Context, in loginInput) error {
	if err := a.prompt(&in.Identifier, "Enter email or phone"); err != nil {
		return err
	}
	pw, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	return consume(a.auth.Login(ctx, in.Identifier, string(pw)), func(r models.LoginResponse) {
		a.printf("Logged in as %s (%s)\n", r.Partner.Name, r.Partner.Email)
		if !r.Partner.Verified {
			a.printf("Account not verified yet; run verify-otp.\n")
		}
	}, nil)
}

func (a *App) ForgotPassword(ctx context.Context, in forgotInput) error {
	if err := a.prompt(&in.EmailOrPhone, "Enter email or phone"); err != nil {
		return err
	}
	return consume(a.auth.ForgotPassword(ctx, in.EmailOrPhone), func(r models.MessageResponse) {
		a.printf("%s\n", r.Message)
	}, nil)
}

func (a *App) ResetPassword(ctx context.Context, in resetInput) error {
	if in.EmailOrPhone == "" {
		pending, err := a.auth.PendingEmail(ctx)
		if err != nil {
			return err
		}
		in.EmailOrPhone = pending
	}
	if err := a.prompt(&in.EmailOrPhone, "Enter email or phone"); err != nil {
		return err
	}
	if err := a.prompt(&in.OTP, "Enter OTP code"); err != nil {
		return err
	}
	pw, confirm, err := a.newPassword("Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(confirm)

	return consume(a.auth.ResetPassword(ctx, in.EmailOrPhone, in.OTP, string(pw), string(confirm)), func(r models.MessageResponse) {
		a.printf("%s\n", r.Message)
	}, nil)
}

func (a *App) ChangePassword(ctx context.Context) error {
	old, err := getPassword("Enter current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(old)

	pw, confirm, err := a.newPassword("Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(confirm)

	return consume(a.auth.ChangePassword(ctx, string(old), string(pw), string(confirm)), func(r models.MessageResponse) {
		a.printf("%s\n", r.Message)
	}, nil)
}

func (a *App) Logout(ctx context.Context) error {
	return consume(a.auth.Logout(ctx), func(r models.MessageResponse) {
		a.printf("%s\n", r.Message)
	}, nil)
}

// Status prints the cached session without contacting the server.
func (a *App) Status(ctx context.Context) error {
	s, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}
	if !s.LoggedIn() {
		a.printf("Not logged in.\n")
		if s.Email != "" {
			a.printf("Pending verification for %s.\n", s.Email)
		}
		return nil
	}

	a.printf("Logged in as %s\n", a.identity(ctx, s))
	if exp, ok := credentials.TokenExpiry(s.Token); ok {
		a.printf("Token expires %s\n", exp.Local().Format(time.RFC1123))
	} else {
		a.printf("Token expiry unknown\n")
	}
	return nil
}

// identity names the logged-in partner. The email credential is dropped after
// OTP verification, so the cached profile is consulted first.
func (a *App) identity(ctx context.Context, s models.Session) string {
	if p, err := a.profile.LocalProfile(ctx); err == nil && p != nil {
		return fmt.Sprintf("%s <%s> (partner #%d)", p.Name, p.Email, p.ID)
	}
	if s.Email != "" {
		return fmt.Sprintf("%s (partner #%d)", s.Email, s.PartnerID)
	}
	return fmt.Sprintf("partner #%d", s.PartnerID)
}
