package errx

// 跨服务统一的系统类错误码。
//
// 业务域错误码（例如 EMPIRE_RULE_GATE）由各业务包自行定义，kit 不集中管理。

const (
	// CodeInternal 服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（DB / 下游服务 / 网络）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 请求或依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeRateLimited 限流 / 过载保护。
	CodeRateLimited Code = "RATE_LIMITED"
	// CodeMaintenance 停服维护。
	CodeMaintenance Code = "MAINTENANCE"
	// CodeReqParamError 请求参数不合法。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

// 统一系统类哨兵错误，派生请用 WithData/WithCause。
var (
	ErrInternal    = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
	ErrRateLimited = NewSys(CodeRateLimited, "请求过于频繁")
	ErrMaintenance = NewSys(CodeMaintenance, "服务维护中")
	ErrReqParamERR = NewSys(CodeReqParamError, "请求参数错误")
)
