package db

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/model"
)

// CreateUser inserts a new user and returns the new user ID. Staff
// accounts are not created through the API; the flag is flipped
// directly in the database.
func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	query := `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.ext.QueryRowx(query, email, hashedPassword, name).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches a user by email. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, is_staff, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	err := sqlx.Get(s.ext, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, is_staff, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := sqlx.Get(s.ext, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// updates a user's email and name, and bumps updated_at.
// Returns an error if no rows were affected.
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	query := `
	UPDATE users
	SET email = $2,
	name = $3,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := s.ext.Exec(query, id, email, name)
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile - exec")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile - rows affected")
		return err
	}
	if rows == 0 {
		log.Error().Msg("failed to update user profile - no such user")
		return errors.New("no such user")
	}
	return nil
}
