package app

import (
	"context"

	"EraRealms/internal/account/domain"
	"EraRealms/modules/kit/logx"
)

type Logger = logx.Logger

type UserRepo interface {
	GetUserByUserName(ctx context.Context, username string) (*domain.User, error)
	Save(ctx context.Context, n domain.User) error
}

type LoginHistoryRepo interface {
	Save(ctx context.Context, history domain.LoginHistory) error
}

type LoginLastRepo interface {
	GetLoginLast(ctx context.Context, uid int) (domain.LoginLast, error)
	Save(ctx context.Context, ll domain.LoginLast) error
}

type ProfileRepo interface {
	GetByUid(ctx context.Context, uid int) (*domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

type PwdEncrypter func(pwd, passcode string) string

type RandSeq func(n int) string
