package user

import "time"

type Cache interface {
	GetByToken(token string) (*User, bool)
	SetByToken(token string, user *User, ttl time.Duration)
	DeleteByToken(token string)
}

type noopCache struct{}

func (noopCache) GetByToken(string) (*User, bool) {
	return nil, false
}

func (noopCache) SetByToken(string, *User, time.Duration) {}

func (noopCache) DeleteByToken(string) {}
