package repository

import (
	"context"

	"github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

type UserRepository struct {
	db postgres.DBTX
}

func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `firebase_uid, email, first_name, last_name, date_of_birth, provider, created_at, updated_at`

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `select ` + userColumns + ` from users where firebase_uid = $1`

	var user domain.User
	var provider string
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&user.FirebaseUID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.DateOfBirth,
		&provider,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if postgres.IsNoRows(err) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Provider = domain.Provider(provider)

	return &user, nil
}

// Create inserts a new user. A second insert for the same UID reports ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
insert into users (firebase_uid, email, first_name, last_name, date_of_birth, provider)
values ($1, $2, $3, $4, $5, $6)
returning created_at, updated_at;
`
	err := r.db.QueryRow(
		ctx,
		query,
		user.FirebaseUID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.DateOfBirth,
		string(user.Provider),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if postgres.IsUniqueViolation(err) {
		return domain.ErrUserExists
	}
	return err
}

// UpdateLastName replaces the last name, used to correct sign-in placeholders
func (r *UserRepository) UpdateLastName(ctx context.Context, uid, lastName string) (*domain.User, error) {
	const query = `
update users
set last_name = $2, updated_at = now()
where firebase_uid = $1
returning updated_at;
`
	user, err := r.GetByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, query, uid, lastName).Scan(&user.UpdatedAt)
	if postgres.IsNoRows(err) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.LastName = lastName
	return user, nil
}
