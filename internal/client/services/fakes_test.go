package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mitrakurir/internal/client/client"
	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
	"github.com/dmitrijs2005/mitrakurir/internal/cryptox"
	"github.com/dmitrijs2005/mitrakurir/internal/logging"
)

// fakeClient implements client.Client with preset results and captured inputs.
type fakeClient struct {
	RegisterRet *models.RegisterResponse
	RegisterErr error

	VerifyOTPRet *models.MessageResponse
	VerifyOTPErr error

	LoginRet *models.LoginResponse
	LoginErr error

	ForgotRet *models.MessageResponse
	ForgotErr error

	ResetRet *models.MessageResponse
	ResetErr error

	ChangeRet *models.MessageResponse
	ChangeErr error

	GetProfileRet *models.PartnerDTO
	GetProfileErr error
	// GetProfileHook runs before GetProfile returns.
	GetProfileHook func()

	UpdateProfileRet *models.PartnerDTO
	UpdateProfileErr error

	UploadRet *models.UploadDocumentResponse
	UploadErr error

	ListRet []models.Document
	ListErr error

	LogoutRet *models.MessageResponse
	LogoutErr error

	LastRegister       models.RegisterRequest
	LastVerifyOTP      models.OTPVerificationRequest
	LastLogin          models.LoginRequest
	LastForgot         models.ForgotPasswordRequest
	LastReset          models.ResetPasswordRequest
	LastChange         models.ChangePasswordRequest
	LastUpdate         models.ProfileUpdate
	LastUploadKind     string
	LastUploadPath     string
	GetProfileCalls    int
	UpdateProfileCalls int
	UploadCalls        int
	LogoutCalls        int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, req models.OTPVerificationRequest) (*models.MessageResponse, error) {
	f.LastVerifyOTP = req
	return f.VerifyOTPRet, f.VerifyOTPErr
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.LastLogin = req
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.MessageResponse, error) {
	f.LastForgot = req
	return f.ForgotRet, f.ForgotErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error) {
	f.LastReset = req
	return f.ResetRet, f.ResetErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	f.LastChange = req
	return f.ChangeRet, f.ChangeErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.PartnerDTO, error) {
	f.GetProfileCalls++
	if f.GetProfileHook != nil {
		f.GetProfileHook()
	}
	return f.GetProfileRet, f.GetProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.PartnerDTO, error) {
	f.UpdateProfileCalls++
	f.LastUpdate = upd
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) UploadDocument(ctx context.Context, kind string, path string) (*models.UploadDocumentResponse, error) {
	f.UploadCalls++
	f.LastUploadKind = kind
	f.LastUploadPath = path
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeClient) Logout(ctx context.Context) (*models.MessageResponse, error) {
	f.LogoutCalls++
	return f.LogoutRet, f.LogoutErr
}

// mockMaterializer is a testify mock of filex.Materializer.
type mockMaterializer struct {
	mock.Mock
}

func (m *mockMaterializer) Materialize(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

type fixture struct {
	db     *sql.DB
	client *fakeClient
	files  *mockMaterializer
	coord  *Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "mitra.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	salt, err := client.LoadOrCreateSalt(ctx, db)
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer([]byte("test-secret"), salt)
	require.NoError(t, err)

	fc := &fakeClient{}
	files := &mockMaterializer{}
	return &fixture{
		db:     db,
		client: fc,
		files:  files,
		coord:  NewCoordinator(fc, db, sealer, files, logging.NewNop()),
	}
}

func (f *fixture) creds() *credentials.Store {
	return f.coord.Credentials()
}

func (f *fixture) session(t *testing.T) models.Session {
	t.Helper()
	s, err := f.creds().Session(context.Background())
	require.NoError(t, err)
	return s
}

func (f *fixture) cached(t *testing.T) *models.PartnerProfile {
	t.Helper()
	p, err := profiles.NewSQLiteRepository(f.db).GetLoggedIn(context.Background())
	require.NoError(t, err)
	return p
}

func (f *fixture) profileRows(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM partner_profiles").Scan(&n))
	return n
}

func (f *fixture) seedProfile(t *testing.T, p *models.PartnerProfile) {
	t.Helper()
	require.NoError(t, profiles.NewSQLiteRepository(f.db).Upsert(context.Background(), p))
}

func (f *fixture) seedSession(t *testing.T, s models.Session) {
	t.Helper()
	require.NoError(t, f.creds().SaveSession(context.Background(), s))
}

// terminal drains ch, checks the Loading-then-terminal protocol and returns
// the terminal state.
func terminal[T any](t *testing.T, ch <-chan result.State[T]) result.State[T] {
	t.Helper()
	states := result.Collect(ch)
	require.Len(t, states, 2)
	_, ok := states[0].(result.Loading[T])
	require.True(t, ok, "first state must be Loading, got %T", states[0])
	require.True(t, states[1].Terminal())
	return states[1]
}

func ptr(s string) *string { return &s }

func aliceDTO() *models.PartnerDTO {
	return &models.PartnerDTO{
		ID:          7,
		Name:        "Alice",
		Email:       "alice@x.com",
		Phone:       "0812",
		BankAccount: ptr("BCA 123"),
	}
}
