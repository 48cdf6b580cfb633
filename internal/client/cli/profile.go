package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

const birthDateLayout = "2006-01-02"

// ShowProfile prints the cached profile at once, then the refreshed one. On
// failure the cached copy stays on screen.
func (a *App) ShowProfile(ctx context.Context) error {
	return consume(a.profile.GetProfile(ctx),
		func(p models.PartnerProfile) {
			a.printf("Profile:\n")
			printProfile(a.out, &p)
		},
		func(p *models.PartnerProfile) {
			a.printf("Cached profile:\n")
			printProfile(a.out, p)
		})
}

// UpdateProfile prompts for every field not given when interactive is set.
func (a *App) UpdateProfile(ctx context.Context, upd models.ProfileUpdate, interactive bool) error {
	if interactive {
		fields := []struct {
			dst    **string
			prompt string
		}{
			{&upd.Name, "Name"},
			{&upd.Address, "Address"},
			{&upd.BirthDate, "Birth date (YYYY-MM-DD)"},
			{&upd.BankAccount, "Bank account"},
		}
		for _, f := range fields {
			if *f.dst != nil {
				continue
			}
			v, err := getOptionalText(a.reader, f.prompt, a.out)
			if err != nil {
				return err
			}
			*f.dst = v
		}
		if upd.Photo == "" {
			v, err := getOptionalText(a.reader, "Photo file", a.out)
			if err != nil {
				return err
			}
			if v != nil {
				upd.Photo = *v
			}
		}
	}

	if upd.BirthDate != nil {
		if _, err := time.Parse(birthDateLayout, *upd.BirthDate); err != nil {
			return fmt.Errorf("invalid birth date %q: want YYYY-MM-DD", *upd.BirthDate)
		}
	}
	if upd.Name == nil && upd.Address == nil && upd.BirthDate == nil && upd.BankAccount == nil && upd.Photo == "" {
		a.printf("Nothing to update.\n")
		return nil
	}

	return consume(a.profile.UpdateProfile(ctx, upd), func(p models.PartnerProfile) {
		a.printf("Profile updated:\n")
		printProfile(a.out, &p)
	}, nil)
}
