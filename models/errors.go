package models

import "errors"

// 错误定义
var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotJoinable        = errors.New("tournament is not open for joining")
	ErrNotRegistered      = errors.New("registration required")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrForbidden          = errors.New("admin role required")
	ErrSubmissionInFlight = errors.New("deposit submission already in progress")
)
