package services

import (
	"context"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/mitrakurir/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
	"github.com/dmitrijs2005/mitrakurir/internal/filex"
)

// GetProfile emits the cached row first, then reconciles with the server.
// On failure the cached row rides along as the partial value.
func (c *Coordinator) GetProfile(ctx context.Context) <-chan result.State[models.PartnerProfile] {
	const op = "get-profile"

	return run(func(emit func(result.State[models.PartnerProfile])) {
		cached := c.cachedProfile(ctx)
		emit(result.Loading[models.PartnerProfile]{Partial: cached})

		dto, err := deref(c.client.GetProfile(ctx))
		if err != nil {
			emit(failure(ctx, c, op, failureMessage(err, fallbackGetProfile), err, c.cachedProfile(ctx)))
			return
		}

		fresh := dto.ToProfile()
		err = c.writeThrough(ctx, true, func(ctx context.Context, _ *credentials.Store, profs profiles.Repository) error {
			if err := profs.Clear(ctx); err != nil {
				return err
			}
			return profs.Upsert(ctx, fresh)
		})
		if err != nil {
			emit(failure(ctx, c, op, saveFailedMessage(err), err, c.cachedProfile(ctx)))
			return
		}

		c.log.Debug(ctx, "operation finished", "op", op, "status", "success")
		emit(result.Success[models.PartnerProfile]{Data: *fresh})
	})
}

// UpdateProfile sends the present fields and the optional photo. A photo
// reference that cannot be materialized fails before any network call; the
// temporary copy is removed once the call returns.
func (c *Coordinator) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) <-chan result.State[models.PartnerProfile] {
	const op = "update-profile"

	return run(func(emit func(result.State[models.PartnerProfile])) {
		emit(result.Loading[models.PartnerProfile]{})

		if upd.Photo != "" {
			path, err := c.files.Materialize(ctx, upd.Photo)
			if err != nil {
				emit(failure[models.PartnerProfile](ctx, c, op, msgPhotoFailed, err, nil))
				return
			}
			defer c.removeTemp(ctx, path)
			upd.Photo = path
		}

		dto, err := deref(c.client.UpdateProfile(ctx, upd))
		if err != nil {
			emit(failure[models.PartnerProfile](ctx, c, op, failureMessage(err, fallbackUpdateProfile), err, nil))
			return
		}

		updated := dto.ToProfile()
		err = c.writeThrough(ctx, true, func(ctx context.Context, _ *credentials.Store, profs profiles.Repository) error {
			return profs.Update(ctx, updated)
		})
		if err != nil {
			emit(failure[models.PartnerProfile](ctx, c, op, saveFailedMessage(err), err, nil))
			return
		}

		c.log.Debug(ctx, "operation finished", "op", op, "status", "success")
		emit(result.Success[models.PartnerProfile]{Data: *updated})
	})
}

// LocalProfile reads the cached row without touching the network.
func (c *Coordinator) LocalProfile(ctx context.Context) (*models.PartnerProfile, error) {
	return c.getProfileRepo(c.db).GetLoggedIn(ctx)
}

// WatchProfile streams the cached row: the current value first, then every
// committed change (nil after logout) until ctx ends.
func (c *Coordinator) WatchProfile(ctx context.Context) (<-chan *models.PartnerProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.getProfileRepo(c.db).GetLoggedIn(ctx)
	if err != nil {
		return nil, err
	}
	return c.hub.Subscribe(ctx, current), nil
}

// cachedProfile is a best-effort read used for partial values.
func (c *Coordinator) cachedProfile(ctx context.Context) *models.PartnerProfile {
	p, err := c.getProfileRepo(c.db).GetLoggedIn(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read cached profile", "error", err)
		return nil
	}
	return p
}

func (c *Coordinator) removeTemp(ctx context.Context, path string) {
	if err := filex.Remove(path); err != nil {
		c.log.Warn(ctx, "failed to remove temporary file", "path", path, "error", err)
	}
}
