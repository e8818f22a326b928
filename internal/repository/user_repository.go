package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
	"github.com/google/uuid"
)

const userColumns = `id, email, phone, password_hash, role, first_name, last_name,
	refresh_token_hash, token_version, is_deleted, deleted_at, created_at, updated_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var (
		lastName         sql.NullString
		refreshTokenHash sql.NullString
		deletedAt        sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.FirstName,
		&lastName,
		&refreshTokenHash,
		&user.TokenVersion,
		&user.IsDeleted,
		&deletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastName.Valid {
		user.LastName = &lastName.String
	}
	if refreshTokenHash.Valid {
		user.RefreshTokenHash = &refreshTokenHash.String
	}
	if deletedAt.Valid {
		user.DeletedAt = &deletedAt.Time
	}

	return user, nil
}

// EmailExists reports whether a live user already uses the email
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND NOT is_deleted)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// PhoneExists reports whether a live user other than excludeUserID already uses the phone
func (r *userRepository) PhoneExists(ctx context.Context, phone, excludeUserID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1 AND NOT is_deleted AND id::text <> $2)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, phone, excludeUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return exists, nil
}

// CreateWithBrandOwner inserts the user and its brand-owner profile in one transaction
func (r *userRepository) CreateWithBrandOwner(ctx context.Context, user *domain.User, owner *domain.BrandOwner) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.UserID = user.ID

	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	owner.CreatedAt, owner.UpdatedAt = now, now

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, phone, password_hash, role, first_name, last_name, token_version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			user.ID,
			user.Email,
			user.Phone,
			user.PasswordHash,
			user.Role,
			user.FirstName,
			user.LastName,
			user.TokenVersion,
			user.CreatedAt,
			user.UpdatedAt,
		)
		if err != nil {
			if dup := duplicateUserError(err); dup != nil {
				return fmt.Errorf("failed to create user %s: %w", user.Email, dup)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO brand_owners (id, user_id, business_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			owner.ID,
			owner.UserID,
			owner.BusinessName,
			owner.CreatedAt,
			owner.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create brand owner profile: %w", err)
		}

		return nil
	})

	return err
}

// GetByEmail retrieves a live user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND NOT is_deleted`

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a live user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT is_deleted`

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// SetRefreshTokenHash overwrites the stored refresh token hash. A nil hash ends the session.
func (r *userRepository) SetRefreshTokenHash(ctx context.Context, userID string, hash *string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return expectRow(result, "user", userID)
}

// RotateRefreshToken swaps oldHash for newHash only if both the stored hash and
// the token version are still the ones the caller verified. It returns false
// when another rotation or a revocation got there first.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID, oldHash, newHash string, tokenVersion int) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token_hash = $3, updated_at = NOW()
		WHERE id = $1 AND refresh_token_hash = $2 AND token_version = $4 AND NOT is_deleted
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, oldHash, newHash, tokenVersion)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// RevokeAllSessions bumps the token version and clears the stored refresh token,
// which invalidates every token issued to the user so far.
func (r *userRepository) RevokeAllSessions(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, refresh_token_hash = NULL, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return expectRow(result, "user", userID)
}

// UpdateProfile applies the non-nil fields of update to the user and its brand-owner profile
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE users
			SET first_name = COALESCE($2, first_name),
			    last_name  = COALESCE($3, last_name),
			    phone      = COALESCE($4, phone),
			    updated_at = NOW()
			WHERE id = $1 AND NOT is_deleted
		`,
			userID,
			update.FirstName,
			update.LastName,
			update.Phone,
		)
		if err != nil {
			if dup := duplicateUserError(err); dup != nil {
				return fmt.Errorf("failed to update user %s: %w", userID, dup)
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
		if err := expectRow(result, "user", userID); err != nil {
			return err
		}

		if update.BusinessName == nil {
			return nil
		}

		result, err = tx.ExecContext(ctx, `
			UPDATE brand_owners
			SET business_name = $2, updated_at = NOW()
			WHERE user_id = $1
		`, userID, *update.BusinessName)
		if err != nil {
			return fmt.Errorf("failed to update brand owner profile: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("user %s: %w", userID, ErrNoBrandOwnerProfile)
		}

		return nil
	})
}

// List returns a page of live, non-super-admin users, newest first, and the total count
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE NOT is_deleted AND role <> 'SUPER_ADMIN'`
	if err := r.db.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT is_deleted AND role <> 'SUPER_ADMIN'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// SoftDelete marks the user deleted and revokes its sessions
func (r *userRepository) SoftDelete(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	query := `
		UPDATE users
		SET is_deleted = TRUE,
		    deleted_at = NOW(),
		    refresh_token_hash = NULL,
		    token_version = token_version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return expectRow(result, "user", userID)
}

func expectRow(result sql.Result, entity, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s with id %s not found: %w", entity, id, ErrNotFound)
	}

	return nil
}
