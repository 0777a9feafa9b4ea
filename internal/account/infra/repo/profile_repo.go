package repo

import (
	"context"
	"errors"

	"EraRealms/internal/account/domain"

	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{
		db: db,
	}
}

func (r *ProfileRepo) GetByUid(ctx context.Context, uid int) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 技术错误 → 业务错误
		return nil, domain.ErrProfileNotFound.WithData("uid", uid)
	}
	//  纯技术错误（连接超时等），是无法转换的技术错误，保持原样或包装返回给上级
	return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
}

func (r *ProfileRepo) Save(ctx context.Context, p domain.Profile) error {
	// Save 即 upsert：Id==0 插入，否则按主键更新
	err := r.db.WithContext(ctx).Save(&p).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", p.UId).WithCause(err)
	}
	return nil
}
