package sqlite

import (
	"database/sql"
	"fmt"

	"mysite/app/models"
	"mysite/app/repositories"
)

// UserRepository implements repositories.UserRepository.
type UserRepository struct {
	db *sql.DB
}

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user    models.User
		created int64
	)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &created); err != nil {
		return nil, err
	}
	user.Created = fromMillis(created)
	return &user, nil
}

// Create inserts an author.
func (r *UserRepository) Create(user *models.User) error {
	res, err := r.db.Exec(
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.Username, user.Email, user.PasswordHash, toMillis(user.Created),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = int(id)
	return nil
}

// GetByID returns one author.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// GetByUsername returns the author with the given username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// List returns every author ordered by id.
func (r *UserRepository) List() ([]*models.User, error) {
	rows, err := r.db.Query("SELECT " + userColumns + " FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
