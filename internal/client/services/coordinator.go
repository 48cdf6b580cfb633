// Package services holds the sync coordinator: the only component that
// touches both the remote API and the local stores. Every operation returns a
// channel carrying Loading followed by one terminal Success or Failure.
package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/mitrakurir/internal/client/client"
	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
	"github.com/dmitrijs2005/mitrakurir/internal/common"
	"github.com/dmitrijs2005/mitrakurir/internal/cryptox"
	"github.com/dmitrijs2005/mitrakurir/internal/dbx"
	"github.com/dmitrijs2005/mitrakurir/internal/filex"
	"github.com/dmitrijs2005/mitrakurir/internal/logging"
)

// Coordinator implements AuthService, ProfileService and DocumentService.
type Coordinator struct {
	client client.Client
	db     *sql.DB
	sealer cryptox.Sealer
	files  filex.Materializer
	hub    *profiles.Hub
	log    logging.Logger

	// mu serializes write-throughs.
	mu sync.Mutex
}

var (
	_ AuthService     = (*Coordinator)(nil)
	_ ProfileService  = (*Coordinator)(nil)
	_ DocumentService = (*Coordinator)(nil)
)

// NewCoordinator wires the coordinator. db must be migrated; sealer may be
// nil for plain-text credentials.
func NewCoordinator(c client.Client, db *sql.DB, sealer cryptox.Sealer, files filex.Materializer, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.NewNop()
	}
	return &Coordinator{
		client: c,
		db:     db,
		sealer: sealer,
		files:  files,
		hub:    profiles.NewHub(),
		log:    log.With("component", "coordinator"),
	}
}

// Credentials returns a credential store over the coordinator's database. It
// doubles as the HTTP client's TokenSource.
func (c *Coordinator) Credentials() *credentials.Store {
	return c.getCredentialStore(c.db)
}

func (c *Coordinator) getCredentialStore(db dbx.DBTX) *credentials.Store {
	return credentials.NewStore(db, c.sealer)
}

func (c *Coordinator) getProfileRepo(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLiteRepository(db)
}

// writeThrough runs fn in one transaction under the writer lock. When
// publish is set, the committed logged-in row is pushed to WatchProfile
// subscribers.
func (c *Coordinator) writeThrough(ctx context.Context, publish bool, fn func(ctx context.Context, creds *credentials.Store, profs profiles.Repository) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, c.getCredentialStore(tx), c.getProfileRepo(tx))
	})
	if err != nil || !publish {
		return err
	}

	current, err := c.getProfileRepo(c.db).GetLoggedIn(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read profile for subscribers", "error", err)
		return nil
	}
	c.hub.Publish(current)
	return nil
}

// run feeds one operation's states into a channel sized for both emissions
// and closes it after the terminal state.
func run[T any](body func(emit func(result.State[T]))) <-chan result.State[T] {
	ch := make(chan result.State[T], 2)
	go func() {
		defer close(ch)
		body(func(s result.State[T]) { ch <- s })
	}()
	return ch
}

// call is the common shape: Loading, remote call, optional write-through,
// terminal state.
func call[T any](ctx context.Context, c *Coordinator, op string, fallback string, remote func(ctx context.Context) (T, error), persist func(ctx context.Context, v T) error) <-chan result.State[T] {
	return run(func(emit func(result.State[T])) {
		emit(result.Loading[T]{})

		v, err := remote(ctx)
		if err != nil {
			emit(failure[T](ctx, c, op, failureMessage(err, fallback), err, nil))
			return
		}

		if persist != nil {
			if err := persist(ctx, v); err != nil {
				emit(failure[T](ctx, c, op, saveFailedMessage(err), err, nil))
				return
			}
		}

		c.log.Debug(ctx, "operation finished", "op", op, "status", "success")
		emit(result.Success[T]{Data: v})
	})
}

// deref unwraps a remote response. A nil body without an error is treated as
// client.ErrEmptyResponse.
func deref[T any](v *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, client.ErrEmptyResponse
	}
	return *v, nil
}

func failure[T any](ctx context.Context, c *Coordinator, op, msg string, err error, partial *T) result.State[T] {
	c.log.Warn(ctx, "operation failed", "op", op, "status", "failure", "error", err)
	return result.Failure[T]{Message: msg, Partial: partial}
}

// Session reads the cached session without touching the network.
func (c *Coordinator) Session(ctx context.Context) (models.Session, error) {
	return c.Credentials().Session(ctx)
}

// PendingEmail returns the cached email credential, or "".
func (c *Coordinator) PendingEmail(ctx context.Context) (string, error) {
	return c.Credentials().Get(ctx, common.KeyUserEmail)
}
