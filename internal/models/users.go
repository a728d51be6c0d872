package models

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type UserModel struct {
	DB *sql.DB
}

// Insert creates a user with the given role. The plaintext password is
// hashed before it touches the database.
func (m *UserModel) Insert(ctx context.Context, fullName, username, email, password string, role int) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO users (username, password, full_name, email, role)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err = m.DB.QueryRowContext(ctx, query, username, string(hashed), fullName, email, role).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}

	return id, nil
}

// InsertCustomer creates a lightweight customer account for admin-entered
// orders. The username is derived from the email and the stored password
// hash is empty, so the account cannot log in until it registers properly.
func (m *UserModel) InsertCustomer(ctx context.Context, fullName, email string) (int, error) {
	query := `INSERT INTO users (username, password, full_name, email, role)
              VALUES ($1, '', $2, $3, $4) RETURNING id`

	var id int
	err := m.DB.QueryRowContext(ctx, query, UsernameFromEmail(email), fullName, email, RoleCustomer).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}

	return id, nil
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password both come back as ErrInvalidCredentials.
func (m *UserModel) Authenticate(ctx context.Context, username, password string) (User, error) {
	query := `SELECT id, username, password, full_name, email, role
              FROM users WHERE username = $1`

	var u User
	err := m.DB.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.HashedPassword, &u.FullName, &u.Email, &u.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	return u, nil
}

func (m *UserModel) Get(ctx context.Context, id int) (User, error) {
	query := `SELECT id, username, password, full_name, email, role
              FROM users WHERE id = $1`

	var u User
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.HashedPassword, &u.FullName, &u.Email, &u.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNoRecord
		}
		return User{}, err
	}

	return u, nil
}

// Customers returns every customer-role user, for the admin order form.
func (m *UserModel) Customers(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, full_name, email, role
              FROM users WHERE role = $1 ORDER BY full_name`

	rows, err := m.DB.QueryContext(ctx, query, RoleCustomer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.Role)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *UserModel) Count(ctx context.Context) (int, error) {
	var n int
	err := m.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// UsernameFromEmail derives a login name from the local part of an email
// address.
func UsernameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
