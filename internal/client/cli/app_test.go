package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
)

// emit returns a closed channel pre-filled with states.
func emit[T any](states ...result.State[T]) <-chan result.State[T] {
	ch := make(chan result.State[T], len(states))
	for _, s := range states {
		ch <- s
	}
	close(ch)
	return ch
}

func ok[T any](v T) <-chan result.State[T] {
	return emit[T](result.Loading[T]{}, result.Success[T]{Data: v})
}

func fail[T any](msg string) <-chan result.State[T] {
	return emit[T](result.Loading[T]{}, result.Failure[T]{Message: msg})
}

// fakeServices implements the three service interfaces the App talks to.
type fakeServices struct {
	session    models.Session
	sessionErr error
	pending    string
	local      *models.PartnerProfile

	profileStates []result.State[models.PartnerProfile]
	failMsg       string

	lastRegister models.RegisterRequest
	lastVerify   [2]string
	lastLogin    [2]string
	lastForgot   string
	lastReset    []string
	lastChange   []string
	lastUpdate   *models.ProfileUpdate
	lastUpload   [2]string
	logouts      int
}

func (f *fakeServices) Register(ctx context.Context, req models.RegisterRequest) <-chan result.State[models.RegisterResponse] {
	f.lastRegister = req
	if f.failMsg != "" {
		return fail[models.RegisterResponse](f.failMsg)
	}
	return ok(models.RegisterResponse{Message: "Registrasi berhasil"})
}

func (f *fakeServices) VerifyOTP(ctx context.Context, email, otp string) <-chan result.State[models.MessageResponse] {
	f.lastVerify = [2]string{email, otp}
	return ok(models.MessageResponse{Message: "Akun terverifikasi"})
}

func (f *fakeServices) Login(ctx context.Context, identifier, password string) <-chan result.State[models.LoginResponse] {
	f.lastLogin = [2]string{identifier, password}
	if f.failMsg != "" {
		return fail[models.LoginResponse](f.failMsg)
	}
	return ok(models.LoginResponse{
		AccessToken: "tok",
		Partner:     models.PartnerDTO{ID: 7, Name: "Budi", Email: "budi@example.com"},
	})
}

func (f *fakeServices) ForgotPassword(ctx context.Context, emailOrPhone string) <-chan result.State[models.MessageResponse] {
	f.lastForgot = emailOrPhone
	return ok(models.MessageResponse{Message: "OTP terkirim"})
}

func (f *fakeServices) ResetPassword(ctx context.Context, emailOrPhone, otp, newPassword, confirmation string) <-chan result.State[models.MessageResponse] {
	f.lastReset = []string{emailOrPhone, otp, newPassword, confirmation}
	return ok(models.MessageResponse{Message: "Password direset"})
}

func (f *fakeServices) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmation string) <-chan result.State[models.MessageResponse] {
	f.lastChange = []string{oldPassword, newPassword, confirmation}
	return ok(models.MessageResponse{Message: "Password diubah"})
}

func (f *fakeServices) Logout(ctx context.Context) <-chan result.State[models.MessageResponse] {
	f.logouts++
	return ok(models.MessageResponse{Message: "logged out"})
}

func (f *fakeServices) Session(ctx context.Context) (models.Session, error) {
	return f.session, f.sessionErr
}

func (f *fakeServices) PendingEmail(ctx context.Context) (string, error) { return f.pending, nil }

func (f *fakeServices) GetProfile(ctx context.Context) <-chan result.State[models.PartnerProfile] {
	return emit(f.profileStates...)
}

func (f *fakeServices) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) <-chan result.State[models.PartnerProfile] {
	f.lastUpdate = &upd
	p := models.PartnerProfile{ID: 7, Name: "Budi", Address: upd.Address}
	return ok(p)
}

func (f *fakeServices) LocalProfile(ctx context.Context) (*models.PartnerProfile, error) {
	return f.local, nil
}

func (f *fakeServices) WatchProfile(ctx context.Context) (<-chan *models.PartnerProfile, error) {
	ch := make(chan *models.PartnerProfile)
	close(ch)
	return ch, nil
}

func (f *fakeServices) UploadDocument(ctx context.Context, kind, fileRef string) <-chan result.State[models.UploadDocumentResponse] {
	f.lastUpload = [2]string{kind, fileRef}
	return ok(models.UploadDocumentResponse{
		Message:  "Dokumen diunggah",
		Document: models.Document{ID: 1, Kind: kind, FilePath: "dokumen/ktp.jpg"},
	})
}

func (f *fakeServices) ListDocuments(ctx context.Context) <-chan result.State[[]models.Document] {
	return ok([]models.Document{})
}

func newTestApp(t *testing.T, svc *fakeServices, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return newApp(svc, svc, svc, strings.NewReader(input), &out), &out
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more passwords")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestApp_Register(t *testing.T) {
	svc := &fakeServices{}
	a, out := newTestApp(t, svc, "budi@example.com\n08123\n")
	stubPasswords(t, "pw123456", "pw123456")

	err := a.Register(context.Background(), registerInput{Name: "Budi"})
	require.NoError(t, err)

	assert.Equal(t, models.RegisterRequest{
		Name: "Budi", Email: "budi@example.com", Phone: "08123",
		Password: "pw123456", PasswordConfirmation: "pw123456",
	}, svc.lastRegister)
	assert.Contains(t, out.String(), "Registrasi berhasil")
}

func TestApp_Register_PasswordMismatch(t *testing.T) {
	svc := &fakeServices{}
	a, _ := newTestApp(t, svc, "")
	stubPasswords(t, "one", "two")

	err := a.Register(context.Background(), registerInput{Name: "Budi", Email: "b@x", Phone: "1"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, svc.lastRegister.Email)
}

func TestApp_Register_Failure(t *testing.T) {
	svc := &fakeServices{failMsg: "Email sudah terdaftar"}
	a, _ := newTestApp(t, svc, "")
	stubPasswords(t, "pw", "pw")

	err := a.Register(context.Background(), registerInput{Name: "Budi", Email: "b@x", Phone: "1"})
	assert.EqualError(t, err, "Email sudah terdaftar")
}

func TestApp_VerifyOTP_UsesPendingEmail(t *testing.T) {
	svc := &fakeServices{pending: "budi@example.com"}
	a, out := newTestApp(t, svc, "123456\n")

	require.NoError(t, a.VerifyOTP(context.Background(), verifyInput{}))
	assert.Equal(t, [2]string{"budi@example.com", "123456"}, svc.lastVerify)
	assert.Contains(t, out.String(), "Akun terverifikasi")
}

func TestApp_Login(t *testing.T) {
	svc := &fakeServices{}
	a, out := newTestApp(t, svc, "")
	stubPasswords(t, "pw")

	require.NoError(t, a.Login(context.Background(), loginInput{Identifier: "budi@example.com"}))
	assert.Equal(t, [2]string{"budi@example.com", "pw"}, svc.lastLogin)
	assert.Contains(t, out.String(), "Logged in as Budi (budi@example.com)")
	assert.Contains(t, out.String(), "Account not verified yet")
}

func TestApp_ForgotAndReset(t *testing.T) {
	svc := &fakeServices{pending: "budi@example.com"}
	a, out := newTestApp(t, svc, "08123\n654321\n")
	stubPasswords(t, "new", "new")

	ctx := context.Background()
	require.NoError(t, a.ForgotPassword(ctx, forgotInput{}))
	assert.Equal(t, "08123", svc.lastForgot)

	require.NoError(t, a.ResetPassword(ctx, resetInput{}))
	assert.Equal(t, []string{"budi@example.com", "654321", "new", "new"}, svc.lastReset)
	assert.Contains(t, out.String(), "Password direset")
}

func TestApp_ChangePassword(t *testing.T) {
	svc := &fakeServices{}
	a, _ := newTestApp(t, svc, "")
	stubPasswords(t, "old", "new", "new")

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Equal(t, []string{"old", "new", "new"}, svc.lastChange)
}

func TestApp_ShowProfile_CachedThenFresh(t *testing.T) {
	addr := "Jl. Lama"
	cached := models.PartnerProfile{ID: 7, Name: "Budi", Address: &addr}
	svc := &fakeServices{profileStates: []result.State[models.PartnerProfile]{
		result.Loading[models.PartnerProfile]{Partial: &cached},
		result.Success[models.PartnerProfile]{Data: models.PartnerProfile{ID: 7, Name: "Budi S", Verified: true}},
	}}
	a, out := newTestApp(t, svc, "")

	require.NoError(t, a.ShowProfile(context.Background()))
	s := out.String()
	assert.Less(t, strings.Index(s, "Cached profile:"), strings.Index(s, "Profile:\n"))
	assert.Contains(t, s, "Jl. Lama")
	assert.Contains(t, s, "Budi S")
}

func TestApp_ShowProfile_FailureKeepsCached(t *testing.T) {
	cached := models.PartnerProfile{ID: 7, Name: "Budi"}
	svc := &fakeServices{profileStates: []result.State[models.PartnerProfile]{
		result.Loading[models.PartnerProfile]{Partial: &cached},
		result.Failure[models.PartnerProfile]{Message: "network error, check your internet connection", Partial: &cached},
	}}
	a, out := newTestApp(t, svc, "")

	err := a.ShowProfile(context.Background())
	assert.EqualError(t, err, "network error, check your internet connection")
	assert.Contains(t, out.String(), "Cached profile:")
}

func TestApp_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing to update", func(t *testing.T) {
		svc := &fakeServices{}
		a, out := newTestApp(t, svc, "")
		require.NoError(t, a.UpdateProfile(ctx, models.ProfileUpdate{}, false))
		assert.Nil(t, svc.lastUpdate)
		assert.Contains(t, out.String(), "Nothing to update.")
	})

	t.Run("invalid birth date", func(t *testing.T) {
		svc := &fakeServices{}
		a, _ := newTestApp(t, svc, "")
		bad := "17-08-1990"
		err := a.UpdateProfile(ctx, models.ProfileUpdate{BirthDate: &bad}, false)
		assert.Error(t, err)
		assert.Nil(t, svc.lastUpdate)
	})

	t.Run("interactive fills only answered fields", func(t *testing.T) {
		svc := &fakeServices{}
		name := "Budi"
		a, out := newTestApp(t, svc, "Jl. Baru\n\n\n/tmp/me.jpg\n")
		require.NoError(t, a.UpdateProfile(ctx, models.ProfileUpdate{Name: &name}, true))

		require.NotNil(t, svc.lastUpdate)
		assert.Equal(t, "Budi", *svc.lastUpdate.Name)
		require.NotNil(t, svc.lastUpdate.Address)
		assert.Equal(t, "Jl. Baru", *svc.lastUpdate.Address)
		assert.Nil(t, svc.lastUpdate.BirthDate)
		assert.Nil(t, svc.lastUpdate.BankAccount)
		assert.Equal(t, "/tmp/me.jpg", svc.lastUpdate.Photo)
		assert.Contains(t, out.String(), "Profile updated:")
	})
}

func TestApp_Documents(t *testing.T) {
	svc := &fakeServices{}
	a, out := newTestApp(t, svc, "")
	ctx := context.Background()

	require.NoError(t, a.UploadDocument(ctx, uploadInput{Kind: " KTP ", File: "/tmp/ktp.jpg"}))
	assert.Equal(t, [2]string{"KTP", "/tmp/ktp.jpg"}, svc.lastUpload)
	assert.Contains(t, out.String(), "dokumen/ktp.jpg")

	require.NoError(t, a.ListDocuments(ctx))
	assert.Contains(t, out.String(), "No documents uploaded.")
}

func TestApp_StatusAndLogout(t *testing.T) {
	ctx := context.Background()

	svc := &fakeServices{session: models.Session{Email: "budi@example.com"}}
	a, out := newTestApp(t, svc, "")
	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Not logged in.")
	assert.Contains(t, out.String(), "Pending verification for budi@example.com.")
	assert.False(t, a.isLoggedIn(ctx))
	assert.Empty(t, a.getStatus(ctx))

	svc = &fakeServices{
		session: models.Session{Token: "not-a-jwt", PartnerID: 7},
		local:   &models.PartnerProfile{ID: 7, Name: "Budi", Email: "budi@example.com"},
	}
	a, out = newTestApp(t, svc, "")
	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Logged in as Budi <budi@example.com> (partner #7)")
	assert.Contains(t, out.String(), "Token expiry unknown")
	assert.True(t, a.isLoggedIn(ctx))
	assert.Equal(t, "(budi@example.com)", a.getStatus(ctx))

	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, 1, svc.logouts)
	assert.Contains(t, out.String(), "logged out")
}

func TestApp_PromptEOF(t *testing.T) {
	svc := &fakeServices{}
	a, _ := newTestApp(t, svc, "")
	a.reader = bufio.NewReader(strings.NewReader(""))
	err := a.ForgotPassword(context.Background(), forgotInput{})
	assert.ErrorIs(t, err, io.EOF)
}
