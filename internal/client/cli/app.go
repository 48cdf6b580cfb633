package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mitrakurir/internal/client/client"
	"github.com/dmitrijs2005/mitrakurir/internal/client/config"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/mitrakurir/internal/client/services"
	"github.com/dmitrijs2005/mitrakurir/internal/cryptox"
	"github.com/dmitrijs2005/mitrakurir/internal/filex"
	"github.com/dmitrijs2005/mitrakurir/internal/logging"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	auth    services.AuthService
	profile services.ProfileService
	docs    services.DocumentService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the database, derives the credential sealer and builds the
// coordinator. The caller owns the App and must Close it.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.New(cfg.LogLevel, os.Stderr)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	salt, err := client.LoadOrCreateSalt(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	sealer, err := cryptox.NewSealer([]byte(cfg.CredentialSecret), salt)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, credentials.NewStore(db, sealer), log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	coord := services.NewCoordinator(api, db, sealer, filex.NewTempMaterializer(cfg.TempDir), log)

	a := newApp(coord, coord, coord, in, out)
	a.config = cfg
	a.db = db
	a.log = log
	return a, nil
}

func newApp(auth services.AuthService, profile services.ProfileService, docs services.DocumentService, in io.Reader, out io.Writer) *App {
	return &App{
		auth:    auth,
		profile: profile,
		docs:    docs,
		log:     logging.NewNop(),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	s, err := a.auth.Session(ctx)
	return err == nil && s.LoggedIn()
}

func (a *App) getStatus(ctx context.Context) string {
	s, err := a.auth.Session(ctx)
	if err != nil || !s.LoggedIn() {
		return ""
	}
	if p, err := a.profile.LocalProfile(ctx); err == nil && p != nil {
		return fmt.Sprintf("(%s)", p.Email)
	}
	return fmt.Sprintf("(#%d)", s.PartnerID)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
