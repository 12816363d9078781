package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate 唯一约束冲突
var ErrDuplicate = errors.New("duplicate record")

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translate 将 Postgres 约束错误映射为仓储层错误：
// 外键指向的行不存在视为 gorm.ErrRecordNotFound
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return gorm.ErrRecordNotFound
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
