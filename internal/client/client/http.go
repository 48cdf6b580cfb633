package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/common"
	"github.com/dmitrijs2005/mitrakurir/internal/logging"
	"github.com/dmitrijs2005/mitrakurir/internal/netx"
)

const (
	contentTypeJSON = "application/json"
	maxBodySize     = 8 << 20

	defaultLogoutMessage = "logged out"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL. tokens may be
// nil, in which case no Authorization header is ever sent.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var out models.RegisterResponse
	if err := c.postJSON(ctx, "register", false, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, req models.OTPVerificationRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.postJSON(ctx, "verify-otp", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.postJSON(ctx, "login", false, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.postJSON(ctx, "forgot-password", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.postJSON(ctx, "reset-password", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.postJSON(ctx, "change-password", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.PartnerDTO, error) {
	var out models.PartnerDTO
	if err := c.do(ctx, http.MethodGet, "profile", true, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.PartnerDTO, error) {
	var fields []netx.Field
	add := func(name string, v *string) {
		if v != nil {
			fields = append(fields, netx.Field{Name: name, Value: *v})
		}
	}
	add("nama", upd.Name)
	add("alamat", upd.Address)
	add("tanggal_lahir", upd.BirthDate)
	add("rekening_bank", upd.BankAccount)

	var files []netx.FilePart
	if upd.Photo != "" {
		files = append(files, netx.FilePart{Name: "foto", Path: upd.Photo})
	}

	body, ct, err := netx.MultipartBody(fields, files)
	if err != nil {
		return nil, err
	}

	var out models.PartnerDTO
	if err := c.do(ctx, http.MethodPost, "profile/update", true, body, ct, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UploadDocument(ctx context.Context, kind string, path string) (*models.UploadDocumentResponse, error) {
	body, ct, err := netx.MultipartBody(
		[]netx.Field{{Name: "jenis_dokumen", Value: kind}},
		[]netx.FilePart{{Name: "file", Path: path}},
	)
	if err != nil {
		return nil, err
	}

	var out models.UploadDocumentResponse
	if err := c.do(ctx, http.MethodPost, "upload-document", true, body, ct, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var out []models.Document
	if err := c.do(ctx, http.MethodGet, "documents", true, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout accepts an empty 2xx body as success.
func (c *HTTPClient) Logout(ctx context.Context) (*models.MessageResponse, error) {
	var out models.MessageResponse
	err := c.do(ctx, http.MethodPost, "logout", true, nil, "", &out)
	if errors.Is(err, ErrEmptyResponse) {
		return &models.MessageResponse{Message: defaultLogoutMessage}, nil
	}
	if err != nil {
		return nil, err
	}
	if out.Message == "" {
		out.Message = defaultLogoutMessage
	}
	return &out, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, auth bool, in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, auth, bytes.NewReader(b), contentTypeJSON, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, body io.Reader, contentType string, out any) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if auth && c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read auth token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", ErrUnavailable, err)
	}
	if len(data) > maxBodySize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, path, maxBodySize)
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// decodeAPIError never fails: an undecodable body yields an empty Message.
func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var body models.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	}
	return apiErr
}
