package handler

import (
	"EraRealms/internal/gate/app"
	"EraRealms/internal/shared/transport"
	"context"
)

func mapBizReasonToClientCode(reason string) int {
	switch reason {
	case "":
		return transport.OK
	case app.ReasonAccountLoginInvalidCredentials.Code:
		return transport.PwdIncorrect
	case app.ReasonAccountRegisterUserExist.Code:
		return transport.UserExist
	case app.ReasonAccountProfileNotExist.Code:
		return transport.RoleNotExist
	case app.ReasonAccountBadRequest.Code:
		return transport.InvalidParam
	default:
		return transport.SystemError
	}
}

func mapTechErrToClientCode(err error) int {
	if err == nil {
		return transport.OK
	}
	switch app.GetErrorReasonCode(err) {
	case app.ReasonUpstreamUnavailable.Code:
		return transport.UpstreamUnavailable
	case app.ReasonUpstreamTimeout.Code:
		return transport.UpstreamTimeout
	case app.ReasonUpstreamInternal.Code, app.ReasonUpstreamBadResponse.Code:
		return transport.UpstreamInternal
	default:
		return transport.UpstreamInternal
	}
}

// HandleError 统一出错收口：reason 记进访问日志，业务拒绝按 reason
// 映射客户端码并透出上游的提示语，技术故障一律换成兜底文案。
func HandleError(ctx context.Context, err error) (int, string) {
	reason := app.GetErrorReasonCode(err)
	if reason != "" {
		transport.SetErrorReason(ctx, reason)
	}

	if app.IsBizRejectedError(err) {
		bizCode := mapBizReasonToClientCode(reason)
		return bizCode, app.GetErrorMessage(err)
	}

	bizCode := mapTechErrToClientCode(err)
	return bizCode, "系统繁忙，请稍后重试"
}
