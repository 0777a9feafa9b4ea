package app

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"EraRealms/internal/account/domain"
	"EraRealms/internal/account/dto"
	"EraRealms/internal/shared/gameconfig/race"
	"EraRealms/internal/shared/security"
	"EraRealms/modules/kit/logx"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	race.Load()
	os.Exit(m.Run())
}

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (r fakeUserRepo) GetUserByUserName(ctx context.Context, username string) (*domain.User, error) {
	return r.user, r.err
}

func (r fakeUserRepo) Save(ctx context.Context, n domain.User) error { return nil }

type fakeHistoryRepo struct {
	calls    int
	lastSave domain.LoginHistory
	err      error
}

func (r *fakeHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	r.calls++
	r.lastSave = history
	return r.err
}

type fakeLastRepo struct {
	getResult domain.LoginLast
	getErr    error

	saveCalls int
	lastSave  domain.LoginLast
	saveErr   error
}

func (r *fakeLastRepo) GetLoginLast(ctx context.Context, uid int) (domain.LoginLast, error) {
	return r.getResult, r.getErr
}

func (r *fakeLastRepo) Save(ctx context.Context, ll domain.LoginLast) error {
	r.saveCalls++
	r.lastSave = ll
	return r.saveErr
}

type fakeProfileRepo struct {
	profile *domain.Profile
	getErr  error

	saveCalls int
	lastSave  domain.Profile
	saveErr   error
}

func (r *fakeProfileRepo) GetByUid(ctx context.Context, uid int) (*domain.Profile, error) {
	return r.profile, r.getErr
}

func (r *fakeProfileRepo) Save(ctx context.Context, p domain.Profile) error {
	r.saveCalls++
	r.lastSave = p
	return r.saveErr
}

type nopLogger struct{}

func (nopLogger) WithContext(ctx context.Context) logx.Logger { return nopLogger{} }
func (nopLogger) Info(msg string, fields ...zap.Field)        {}
func (nopLogger) Error(msg string, fields ...zap.Field)       {}
func (nopLogger) Debug(msg string, fields ...zap.Field)       {}
func (nopLogger) Warn(msg string, fields ...zap.Field)        {}

func newService(u fakeUserRepo, h *fakeHistoryRepo, l *fakeLastRepo, p *fakeProfileRepo) *UserService {
	return NewUserService(
		u,
		func(pwd, passcode string) string { return pwd },
		nopLogger{},
		h,
		l,
		p,
		func(n int) string { return "abcdef" },
	)
}

func TestLogin_Award失败应返回系统错误且不写库(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	user := &domain.User{UId: 1, Username: "u", Passwd: "pwd"}
	hRepo := &fakeHistoryRepo{}
	lRepo := &fakeLastRepo{getErr: domain.ErrLastLoginNotFound}
	pRepo := &fakeProfileRepo{getErr: domain.ErrProfileNotFound}

	s := newService(fakeUserRepo{user: user}, hRepo, lRepo, pRepo)

	_, err := s.Login(context.Background(), dto.LoginReq{Username: "u", Password: "pwd"})
	if err == nil {
		t.Fatalf("期望返回错误")
	}
	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("期望返回系统错误 ErrInternalServer, got=%v", err)
	}
	if !errors.Is(err, security.ErrJWTSecretMissing) {
		t.Fatalf("期望保留 JWT_SECRET 缺失的 cause 链, got=%v", err)
	}
	if hRepo.calls != 0 || lRepo.saveCalls != 0 {
		t.Fatalf("期望 Award 失败时不写 login_history/login_last, history=%d last=%d", hRepo.calls, lRepo.saveCalls)
	}
}

func TestLogin_应更新login_last并写入成功状态(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	user := &domain.User{UId: 42, Username: "u", Passwd: "pwd"}
	hRepo := &fakeHistoryRepo{}
	exist := domain.LoginLast{Id: 7, UId: 42, Session: "old", LoginTime: time.Unix(1, 0)}
	lRepo := &fakeLastRepo{getResult: exist, getErr: nil}
	pRepo := &fakeProfileRepo{getErr: domain.ErrProfileNotFound}

	s := newService(fakeUserRepo{user: user}, hRepo, lRepo, pRepo)

	resp, err := s.Login(context.Background(), dto.LoginReq{Username: "u", Password: "pwd", Ip: "1.1.1.1", Hardware: "h"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if resp.Session == "" {
		t.Fatalf("期望 Session 非空")
	}
	if resp.Profile != nil {
		t.Fatalf("期望无档案时不下发档案")
	}
	if hRepo.calls != 1 {
		t.Fatalf("期望写入一次 login_history, got=%d", hRepo.calls)
	}
	if hRepo.lastSave.State != domain.LoginSuccess {
		t.Fatalf("期望 login_history.State 表示成功，got=%d", hRepo.lastSave.State)
	}
	if lRepo.saveCalls != 1 {
		t.Fatalf("期望 upsert 一次 login_last, got=%d", lRepo.saveCalls)
	}
	if lRepo.lastSave.Id != 7 {
		t.Fatalf("期望更新而非插入新记录（保留原 Id），got=%d", lRepo.lastSave.Id)
	}
	if lRepo.lastSave.Session == "" || lRepo.lastSave.Session == "old" {
		t.Fatalf("期望更新 session, got=%q", lRepo.lastSave.Session)
	}
	if lRepo.lastSave.LoginTime.IsZero() {
		t.Fatalf("期望更新 login_time")
	}
}

func TestLogin_随登录下发开局档案(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	user := &domain.User{UId: 42, Username: "u", Passwd: "pwd"}
	pRepo := &fakeProfileRepo{profile: &domain.Profile{UId: 42, EmpireName: "晨曦帝国", Race: "human", GameId: 3}}

	s := newService(fakeUserRepo{user: user}, &fakeHistoryRepo{}, &fakeLastRepo{getErr: domain.ErrLastLoginNotFound}, pRepo)

	resp, err := s.Login(context.Background(), dto.LoginReq{Username: "u", Password: "pwd"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if resp.Profile == nil || resp.Profile.EmpireName != "晨曦帝国" || resp.Profile.GameId != 3 {
		t.Fatalf("期望下发档案, got=%+v", resp.Profile)
	}
}

func TestRegister_用户已存在(t *testing.T) {
	user := &domain.User{UId: 1, Username: "u"}
	s := newService(fakeUserRepo{user: user}, &fakeHistoryRepo{}, &fakeLastRepo{}, &fakeProfileRepo{})

	err := s.Register(context.Background(), dto.RegisterReq{Username: "u", Password: "p"})
	if !errors.Is(err, ErrUserExist) {
		t.Fatalf("期望用户重复注册被拒, got=%v", err)
	}
}

func TestSaveProfile_未知种族被拒(t *testing.T) {
	pRepo := &fakeProfileRepo{getErr: domain.ErrProfileNotFound}
	s := newService(fakeUserRepo{err: domain.ErrUserNotFound}, &fakeHistoryRepo{}, &fakeLastRepo{}, pRepo)

	err := s.SaveProfile(context.Background(), 1, dto.ProfileReq{EmpireName: "帝国", Race: "vampire"})
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("期望未知种族被拒, got=%v", err)
	}
	if pRepo.saveCalls != 0 {
		t.Fatalf("期望校验失败不写库, got=%d", pRepo.saveCalls)
	}
}

func TestSaveProfile_首次创建(t *testing.T) {
	pRepo := &fakeProfileRepo{getErr: domain.ErrProfileNotFound}
	s := newService(fakeUserRepo{err: domain.ErrUserNotFound}, &fakeHistoryRepo{}, &fakeLastRepo{}, pRepo)

	if err := s.SaveProfile(context.Background(), 9, dto.ProfileReq{EmpireName: "帝国", Race: "human"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if pRepo.saveCalls != 1 || pRepo.lastSave.UId != 9 || pRepo.lastSave.Race != "human" {
		t.Fatalf("期望按 uid 创建档案, got=%+v", pRepo.lastSave)
	}
}
