package repositories

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	intconfig "booking-backend/internal/config"
	"booking-backend/internal/domain"
	"booking-backend/internal/domain/models"
)

const mysqlDuplicateEntry = 1062

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert persists a new user. A duplicate email maps to ConflictError.
func (r UserRepository) Insert(u models.User) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	_, err := db.Exec(`
		INSERT INTO users (id, name, email, phone, password_hash)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Phone, u.PasswordHash)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return domain.ConflictError{Resource: "user", Msg: "Email sudah terdaftar", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	return r.getOne(`
		SELECT id, name, email, phone, password_hash
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email, "Email tidak ditemukan")
}

func (r UserRepository) GetByID(id string) (models.User, error) {
	return r.getOne(`
		SELECT id, name, email, phone, password_hash
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id, "user tidak ditemukan")
}

func (r UserRepository) getOne(query, arg, notFoundMsg string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, domain.InternalError{Msg: "db tidak tersedia"}
	}

	var u models.User
	err := db.QueryRow(query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Msg: notFoundMsg, Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}
