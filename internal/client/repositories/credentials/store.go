package credentials

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/common"
	"github.com/dmitrijs2005/mitrakurir/internal/cryptox"
	"github.com/dmitrijs2005/mitrakurir/internal/dbx"
)

// Store is the typed credential store. Values are sealed before they reach
// the repository; an absent key reads as "".
type Store struct {
	repo   Repository
	sealer cryptox.Sealer
}

// NewStore builds a store over db, which may be a *sql.DB or a *sql.Tx.
// A nil sealer stores values in plain text.
func NewStore(db dbx.DBTX, sealer cryptox.Sealer) *Store {
	return NewStoreWithRepository(NewSQLiteRepository(db), sealer)
}

func NewStoreWithRepository(repo Repository, sealer cryptox.Sealer) *Store {
	if sealer == nil {
		sealer = cryptox.Plain{}
	}
	return &Store{repo: repo, sealer: sealer}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	blob, err := s.repo.Get(ctx, key)
	if err != nil || blob == nil {
		return "", err
	}
	plain, err := s.sealer.Open(blob)
	if err != nil {
		return "", fmt.Errorf("%w[%s]: %w", common.ErrCorruptCredential, key, err)
	}
	return string(plain), nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	blob, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("failed to seal credential[%s]: %w", key, err)
	}
	return s.repo.Set(ctx, key, blob)
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Session reads the three session credentials.
func (s *Store) Session(ctx context.Context) (models.Session, error) {
	var (
		sess models.Session
		err  error
	)
	if sess.Token, err = s.Get(ctx, common.KeyUserToken); err != nil {
		return models.Session{}, err
	}
	if sess.Email, err = s.Get(ctx, common.KeyUserEmail); err != nil {
		return models.Session{}, err
	}
	id, err := s.Get(ctx, common.KeyUserID)
	if err != nil {
		return models.Session{}, err
	}
	if id != "" {
		if sess.PartnerID, err = strconv.ParseInt(id, 10, 64); err != nil {
			return models.Session{}, fmt.Errorf("%w[%s]: %w", common.ErrCorruptCredential, common.KeyUserID, err)
		}
	}
	return sess, nil
}

// SaveSession writes all three session credentials.
func (s *Store) SaveSession(ctx context.Context, sess models.Session) error {
	if err := s.Set(ctx, common.KeyUserToken, sess.Token); err != nil {
		return err
	}
	if err := s.Set(ctx, common.KeyUserEmail, sess.Email); err != nil {
		return err
	}
	return s.Set(ctx, common.KeyUserID, strconv.FormatInt(sess.PartnerID, 10))
}

// ClearSession removes all three session credentials.
func (s *Store) ClearSession(ctx context.Context) error {
	for _, key := range []string{common.KeyUserToken, common.KeyUserEmail, common.KeyUserID} {
		if err := s.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// AccessToken returns the cached auth token, or "" when logged out.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.Get(ctx, common.KeyUserToken)
}
