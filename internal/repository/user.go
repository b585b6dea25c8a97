package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/repository/postgres"
)

const (
	insertUserQuery = `
						INSERT INTO users (login, password, full_name, is_admin)
						VALUES ($1, $2, $3, $4)
						RETURNING id, created_at
`
	selectUserByLoginQuery = `
						SELECT id, login, password, full_name, is_admin, created_at FROM users
						WHERE login = $1
`
	selectUserByIDQuery = `
						SELECT id, login, password, full_name, is_admin, created_at FROM users
						WHERE id = $1
`
)

// UserRepository implements UserRepository interface
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts new user to database
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := ur.db.QueryRow(ctx, insertUserQuery, user.Login, user.Password, user.FullName, user.IsAdmin).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return user, nil
}

// GetUserByLogin returns user by login
func (ur *UserRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return ur.getUser(ctx, selectUserByLoginQuery, login)
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	return ur.getUser(ctx, selectUserByIDQuery, id)
}

func (ur *UserRepository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := models.User{}
	err := ur.db.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Login, &user.Password, &user.FullName, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}
