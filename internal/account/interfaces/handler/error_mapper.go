package handler

import (
	"errors"

	"EraRealms/internal/account/app"
	"EraRealms/internal/account/domain"
	"EraRealms/internal/shared/transport"
	"EraRealms/modules/kit/errx"
)

// toBizCode 把应用层/领域层错误映射为客户端业务码。
func toBizCode(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		return transport.PwdIncorrect, "用户名或密码错误"
	case errors.Is(err, app.ErrUserExist):
		return transport.UserExist, "用户已存在"
	case errors.Is(err, app.ErrInvalidProfile):
		return transport.InvalidParam, "开局档案不合法"
	case errors.Is(err, domain.ErrProfileNotFound):
		return transport.RoleNotExist, "开局档案不存在"
	case errors.Is(err, errx.ErrReqParamERR):
		return transport.InvalidParam, "请求参数错误"
	case errors.Is(err, errx.ErrTimeout):
		return transport.UpstreamTimeout, "请求超时"
	case errors.Is(err, errx.ErrUnavailable):
		return transport.UpstreamUnavailable, "服务暂不可用"
	default:
		return transport.SystemError, "服务器内部错误"
	}
}
