package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of quizzes.
type Quiz struct {
	ID        string       `db:"ID"` // ULID
	Title     string       `db:"TITLE"`
	CreatedAt time.Time    `db:"CREATED_AT"`
	UpdatedAt time.Time    `db:"UPDATED_AT"`
	DeletedAt sql.NullTime `db:"DELETED_AT"`
}
