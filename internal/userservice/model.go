package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moonhalo/blogapi/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, role, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case common.UniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, email, password, image_url, location, bio, personal_website, date_of_birth, role, created_at, updated_at, version
		FROM users
		WHERE id = $1`

	var u User
	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.ImageURL, &u.Location, &u.Bio, &u.PersonalWebsite, &u.DateOfBirth, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, username, name, email, password, role, version
		FROM users
		WHERE email = $1`

	var u User
	err := m.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.Role, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET username = $1, name = $2, email = $3, location = $4, bio = $5, personal_website = $6, date_of_birth = $7, updated_at = now(), version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Location,
		u.Bio,
		u.PersonalWebsite,
		u.DateOfBirth,
		u.ID,
		u.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		case common.UniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case common.UniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) updatePassword(ctx context.Context, pwd Password, id, version int) error {
	query := `
		UPDATE users
		SET password = $1, updated_at = now(), version = version + 1
		WHERE id = $2 AND version = $3`

	res, err := m.db.ExecContext(ctx, query, pwd.hash, id, version)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *UserModel) updateAvatar(ctx context.Context, id int, imageURL string) (*User, error) {
	query := `
		UPDATE users
		SET image_url = $1, updated_at = now(), version = version + 1
		WHERE id = $2
		RETURNING id, username, name, email, image_url, location, bio, personal_website, date_of_birth, role, created_at, updated_at, version`

	var u User
	err := m.db.QueryRowContext(ctx, query, imageURL, id).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.ImageURL, &u.Location, &u.Bio, &u.PersonalWebsite, &u.DateOfBirth, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}
