package repositories

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "rentals_customer_id_fkey"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(unique))

	// Classification must survive wrapping from repository call sites.
	wrapped := fmt.Errorf("delete customer: %w", fk)
	assert.True(t, isForeignKeyViolation(wrapped))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isForeignKeyViolation(nil))
	assert.False(t, isForeignKeyViolation(fmt.Errorf("no rows")))
}
