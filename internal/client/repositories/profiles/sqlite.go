package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/dbx"
)

const profileColumns = `id, name, email, phone, address, photo_path, bank_account, birth_date, verified`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.PartnerProfile) error {
	query := `INSERT OR REPLACE INTO partner_profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.Address, p.PhotoPath, p.BankAccount, p.BirthDate, p.Verified)
	if err != nil {
		return fmt.Errorf("failed to upsert profile[%d]: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.PartnerProfile) error {
	query := `UPDATE partner_profiles
		SET name = ?, email = ?, phone = ?, address = ?, photo_path = ?, bank_account = ?, birth_date = ?, verified = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Email, p.Phone, p.Address, p.PhotoPath, p.BankAccount, p.BirthDate, p.Verified, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile[%d]: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.PartnerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM partner_profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile[%d]: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) GetLoggedIn(ctx context.Context) (*models.PartnerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM partner_profiles LIMIT 1`)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get logged-in profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM partner_profiles`); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}
	return nil
}

func scanProfile(row *sql.Row) (*models.PartnerProfile, error) {
	var p models.PartnerProfile
	var address, photo, bankAccount, birthDate sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &address, &photo, &bankAccount, &birthDate, &p.Verified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Address = nullable(address)
	p.PhotoPath = nullable(photo)
	p.BankAccount = nullable(bankAccount)
	p.BirthDate = nullable(birthDate)
	return &p, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
