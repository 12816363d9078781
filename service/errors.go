package service

import (
	"errors"
	"fmt"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/pagination"
	"gorm.io/gorm"
)

// 对外只暴露四类错误
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func badRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, msg)
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// fromRepo 记录不存在（含非本人所有）映射为 NOT_FOUND，其他一律 INTERNAL
func fromRepo(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	return internal(what, err)
}

// Kind 将任意错误归入四类之一
func Kind(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrBadRequest):
		return ErrBadRequest
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	default:
		return ErrInternal
	}
}

func requireViewer(ctxViewer auth.Viewer, ok bool) (auth.Viewer, error) {
	if !ok {
		return auth.Viewer{}, fmt.Errorf("%w: sign in required", ErrUnauthorized)
	}
	return ctxViewer, nil
}

func checkLimit(limit int) error {
	if err := pagination.ValidateLimit(limit); err != nil {
		return badRequest(err.Error())
	}
	return nil
}
