package app

import "EraRealms/modules/kit/logx"

// Logger 复用 kit 的最小日志接口，测试里用空实现替换。
type Logger = logx.Logger
