package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvast/TODO-list/internal/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// PostgresStore handles user and to-do CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users and todos tables if they don't exist. One
// statement per Exec: pgx's extended protocol rejects multi-command strings.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT UNIQUE NOT NULL,
			email      TEXT UNIQUE NOT NULL,
			password   TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS todos (
			id         BIGSERIAL PRIMARY KEY,
			time       TEXT NOT NULL DEFAULT '',
			priority   TEXT NOT NULL DEFAULT '',
			task       TEXT NOT NULL DEFAULT '',
			location   TEXT NOT NULL DEFAULT '',
			user_id    BIGINT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, created_at`,
		name, email, hashedPassword,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.Password = hashedPassword
	return &u, nil
}

func (s *PostgresStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password, created_at FROM users WHERE name = $1`, name)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password, created_at FROM users WHERE email = $1`, email)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password, created_at FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (s *PostgresStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET password = $1 WHERE id = $2`, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO todos (time, priority, task, location, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		item.Time, item.Priority, item.Task, item.Location, item.UserID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) ListTodosByUser(ctx context.Context, userID int64) ([]models.TodoItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, time, priority, task, location, user_id, created_at
		 FROM todos WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.TodoItem
	for rows.Next() {
		var it models.TodoItem
		if err := rows.Scan(&it.ID, &it.Time, &it.Priority, &it.Task, &it.Location, &it.UserID, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteTodo removes a to-do by id. Deleting an id that does not exist is a
// no-op, not an error.
func (s *PostgresStore) DeleteTodo(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}
