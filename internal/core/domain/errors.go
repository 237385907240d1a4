package domain

import "errors"

var (
	ErrInvalidID          = errors.New("invalid id format")
	ErrValidation         = errors.New("validation failed")
	ErrPollNotFound       = errors.New("poll not found")
	ErrOptionNotFound     = errors.New("poll option not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOptionMismatch     = errors.New("option does not belong to this poll")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrNotCreator         = errors.New("only the poll creator can add options")
)
