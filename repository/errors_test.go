package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})), ErrDuplicate)

	other := &pgconn.PgError{Code: "23514"}
	assert.Same(t, other, translate(other))

	plain := errors.New("timeout")
	assert.Equal(t, plain, translate(plain))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
}
