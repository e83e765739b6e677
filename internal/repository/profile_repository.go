package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ProfileRepository looks up extensible profile field values attached
// to users, such as the company/branch affiliation. At most one value
// exists per (user, field).
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Attribute returns the value of the named profile field for the user.
// The boolean is false when the field or value does not exist.
func (r *ProfileRepository) Attribute(ctx context.Context, userID int64, field string) (string, bool, error) {
	const query = `SELECT uid.data
        FROM mdl_user_info_data uid
        JOIN mdl_user_info_field uif ON uif.id = uid.fieldid
        WHERE uid.userid = $1 AND uif.shortname = $2`
	var value string
	if err := r.db.GetContext(ctx, &value, query, userID, field); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("profile attribute %s: %w", field, err)
	}
	return value, true, nil
}
