package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidToken          = errors.New("invalid token")
	ErrCredentialsTaken      = errors.New("user id or token already taken")
	ErrCredentialsGeneration = errors.New("user credentials generation failed")
)
