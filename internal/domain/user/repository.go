package user

import "context"

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]User, error)
	GetUserByToken(ctx context.Context, token string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]User, error)
	IsCredentialTaken(ctx context.Context, publicID, token string) (bool, error)
}
