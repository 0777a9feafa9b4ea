package app

import (
	"context"
	"errors"
	"time"

	"EraRealms/internal/account/domain"
	"EraRealms/internal/account/dto"
	"EraRealms/internal/shared/gameconfig/race"
	"EraRealms/internal/shared/security"
)

type UserService struct {
	userRepo     UserRepo
	pwdEncrypter PwdEncrypter
	log          Logger
	lhRepo       LoginHistoryRepo
	llRepo       LoginLastRepo
	profileRepo  ProfileRepo
	randSeq      RandSeq
}

func NewUserService(userRepo UserRepo, pwdEncrypter PwdEncrypter, log Logger,
	lhRepo LoginHistoryRepo, llRepo LoginLastRepo, profileRepo ProfileRepo, randSeq RandSeq) *UserService {
	return &UserService{
		userRepo:     userRepo,
		pwdEncrypter: pwdEncrypter,
		log:          log,
		lhRepo:       lhRepo,
		llRepo:       llRepo,
		profileRepo:  profileRepo,
		randSeq:      randSeq,
	}
}

// Login 处理登录流程
func (s *UserService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil {
		// 区分“用户不存在”（业务错误）和“数据库挂了”（技术错误）
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, ErrInvalidCredentials.WithData("reason", "用户不存在")
		// 其他系统错误：在接口层统一打印一次日志，这里只保留 cause 链用于溯源。
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	if !user.CheckPassword(req.Password, s.pwdEncrypter) {
		return nil, ErrInvalidCredentials.WithData("reason", "密码错误")
	}

	now := time.Now()
	token, err := security.Award(user.UId)
	if err != nil {
		return nil, ErrInternalServer.WithData("uid", user.UId).WithCause(err)
	}

	// 保存登录历史
	lh := domain.LoginHistory{UId: user.UId, CTime: now, Ip: req.Ip,
		Hardware: req.Hardware, State: domain.LoginSuccess}
	if err = s.lhRepo.Save(ctx, lh); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	// 保存最后一次登录的状态
	ll, err := s.llRepo.GetLoginLast(ctx, user.UId)
	switch {
	case err == nil:
		// 已存在：刷新状态
	case errors.Is(err, domain.ErrLastLoginNotFound):
		// 不存在：创建新记录（Id=0）
		ll = domain.LoginLast{UId: user.UId}
	default:
		return nil, ErrUnavailable.WithCause(err)
	}
	ll.LoginTime = now
	ll.Ip = req.Ip
	ll.Session = token
	ll.Hardware = req.Hardware
	ll.IsLogout = 0
	if err = s.llRepo.Save(ctx, ll); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	resp := &dto.LoginResp{
		Username: user.Username,
		UId:      user.UId,
		Session:  token,
	}
	// 档案没有不算错，首次登录本来就没有
	if p, err := s.profileRepo.GetByUid(ctx, user.UId); err == nil {
		resp.Profile = profileResp(p)
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, ErrUnavailable.WithCause(err)
	}
	return resp, nil
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterReq) error {
	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return ErrUnavailable.WithCause(err)
	}
	if user != nil {
		return ErrUserExist
	}

	now := time.Now()
	passcode := s.randSeq(6)

	n := domain.User{
		Username: req.Username,
		Passwd:   s.pwdEncrypter(req.Password, passcode),
		Passcode: passcode,
		Mtime:    now,
		Ctime:    now,
		Hardware: req.Hardware,
	}
	if err = s.userRepo.Save(ctx, n); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

// Profile 查询开局档案，没有返回领域错误 ErrProfileNotFound。
func (s *UserService) Profile(ctx context.Context, uid int) (*dto.ProfileResp, error) {
	p, err := s.profileRepo.GetByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, ErrUnavailable.WithCause(err)
	}
	return profileResp(p), nil
}

// SaveProfile 创建或更新开局档案，种族必须在种族表里。
func (s *UserService) SaveProfile(ctx context.Context, uid int, req dto.ProfileReq) error {
	if req.EmpireName == "" {
		return ErrInvalidProfile.WithData("reason", "帝国名为空")
	}
	if !race.Exists(req.Race) {
		return ErrInvalidProfile.WithData("race", req.Race)
	}

	p, err := s.profileRepo.GetByUid(ctx, uid)
	switch {
	case err == nil:
		// 已存在：更新
	case errors.Is(err, domain.ErrProfileNotFound):
		p = &domain.Profile{UId: uid}
	default:
		return ErrUnavailable.WithCause(err)
	}
	p.EmpireName = req.EmpireName
	p.Race = req.Race
	if err := s.profileRepo.Save(ctx, *p); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

// BindGame 入场成功后回写最近对局，失败只记日志，不影响入场。
func (s *UserService) BindGame(ctx context.Context, uid int, gameId, empireId int64) error {
	p, err := s.profileRepo.GetByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrProfileNotFound.WithData("uid", uid)
		}
		return ErrUnavailable.WithCause(err)
	}
	p.GameId = gameId
	p.EmpireId = empireId
	if err := s.profileRepo.Save(ctx, *p); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

func profileResp(p *domain.Profile) *dto.ProfileResp {
	if p == nil {
		return nil
	}
	return &dto.ProfileResp{
		EmpireName: p.EmpireName,
		Race:       p.Race,
		GameId:     p.GameId,
		EmpireId:   p.EmpireId,
	}
}
