package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"fittrack-server/internal/interfaces"
	"fittrack-server/internal/schemas"
)

// UserRepository is the Postgres-backed implementation of UserRepo.
type UserRepository struct {
	pool interfaces.PgxPoolIface
}

func NewUserRepository(pool interfaces.PgxPoolIface) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Register(ctx context.Context, user *schemas.User) (*schemas.User, error) {
	query := `INSERT INTO users (user_name, email, password) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, query, user.UserName, user.Email, user.Password).Scan(&id); err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) GetCurrent(ctx context.Context, id int64, email string) (*schemas.User, error) {
	query := `SELECT id, COALESCE(user_name, ''), email, password FROM users WHERE id = $1 AND email = $2`
	return r.scanUser(r.pool.QueryRow(ctx, query, id, email))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*schemas.User, error) {
	query := `SELECT id, COALESCE(user_name, ''), email, password FROM users WHERE email = $1 ORDER BY id LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetAll(ctx context.Context) ([]schemas.User, error) {
	query := `SELECT id, COALESCE(user_name, ''), email, password FROM users ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]schemas.User, 0)
	for rows.Next() {
		var user schemas.User
		if err := rows.Scan(&user.ID, &user.UserName, &user.Email, &user.Password); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*schemas.User, error) {
	var user schemas.User
	if err := row.Scan(&user.ID, &user.UserName, &user.Email, &user.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
