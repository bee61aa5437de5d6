package db

import (
	"database/sql"
	"fmt"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		// tabel dianggap belum ada, biar DDL yang memutuskan
		return false
	}
	return name.Valid && name.String != ""
}

// tableDDL pairs a table name with its create statement so EnsureSchema
// can probe before issuing DDL.
var tableDDL = []struct {
	name string
	ddl  string
}{
	{"users", usersDDL},
	{"bookings", bookingsDDL},
}

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id CHAR(36) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	UNIQUE KEY uniq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id CHAR(36) PRIMARY KEY,
	user_id CHAR(36) NOT NULL,
	booking_date VARCHAR(50) NOT NULL,
	amount DOUBLE NOT NULL,
	otp_hash VARCHAR(64) NOT NULL,
	otp_salt VARCHAR(32) NOT NULL,
	otp_expires BIGINT NOT NULL,
	is_verified TINYINT(1) NOT NULL DEFAULT 0,
	created_at BIGINT NOT NULL,
	KEY idx_bookings_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

// EnsureSchema creates the users and bookings tables when missing.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	for _, t := range tableDDL {
		if HasTable(db, t.name) {
			continue
		}
		if _, err := db.Exec(t.ddl); err != nil {
			return err
		}
	}
	return nil
}
