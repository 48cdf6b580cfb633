package models

// RegisterRequest is the body of POST register.
type RegisterRequest struct {
	Name                 string `json:"nama"`
	Email                string `json:"email"`
	Phone                string `json:"no_telp"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// RegisterResponse is returned by POST register.
type RegisterResponse struct {
	Message   string `json:"message"`
	PartnerID *int64 `json:"mitra_id,omitempty"`
}

// OTPVerificationRequest is the body of POST verify-otp.
type OTPVerificationRequest struct {
	Email        string  `json:"email"`
	EmailOrPhone *string `json:"email_or_phone,omitempty"`
	OTP          string  `json:"otp"`
}

// LoginRequest is the body of POST login. Identifier is an email or phone.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse is returned by POST login.
type LoginResponse struct {
	Message     string     `json:"message"`
	AccessToken string     `json:"access_token"`
	Partner     PartnerDTO `json:"mitra"`
}

type ForgotPasswordRequest struct {
	EmailOrPhone string `json:"email_or_phone"`
}

type ResetPasswordRequest struct {
	EmailOrPhone            string `json:"email_or_phone"`
	OTP                     string `json:"otp"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

type ChangePasswordRequest struct {
	OldPassword             string `json:"old_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

// MessageResponse is the generic success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body of any non-2xx response.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PartnerDTO is the partner object as sent by the API.
type PartnerDTO struct {
	ID          int64   `json:"id_mitra"`
	Name        string  `json:"nama"`
	Email       string  `json:"email"`
	Phone       string  `json:"no_telp"`
	Address     *string `json:"alamat"`
	Photo       *string `json:"foto"`
	BankAccount *string `json:"rekening_bank"`
	BirthDate   *string `json:"tanggal_lahir"`
	Verified    bool    `json:"is_verified"`
}

// ToProfile maps the DTO field-for-field onto the cached profile.
func (d PartnerDTO) ToProfile() *PartnerProfile {
	return &PartnerProfile{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     cloneString(d.Address),
		PhotoPath:   cloneString(d.Photo),
		BankAccount: cloneString(d.BankAccount),
		BirthDate:   cloneString(d.BirthDate),
		Verified:    d.Verified,
	}
}
