package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见的业务码。0 成功；1–499 业务拒绝；500 起是系统/上游故障。
const (
	OK             = 0
	InvalidParam   = 1
	SessionInvalid = 2 // 连接未登录或登录态已被顶掉

	// 账号域
	PwdIncorrect = 10
	UserExist    = 11
	RoleNotExist = 12

	// 对局域
	RuleRejected  = 20 // 规则门槛：冷却、上限、健康不足等
	Insufficient  = 21 // 资源不足
	EmpireLost    = 22 // 帝国已判负，只读
	TargetInvalid = 23

	SystemError         = 500
	UpstreamUnavailable = 501
	UpstreamTimeout     = 502
	UpstreamInternal    = 503
)
