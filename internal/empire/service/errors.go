package service

import "EraRealms/modules/kit/errx"

// Code 表示核心规则层错误码，按错误分类划分，具体拒绝原因放 reason。
type Code = errx.Code

const (
	// CodeValidation 入参不合法（负数金额、未知法术、分配比例不等于 100 等）
	CodeValidation Code = "EMPIRE_VALIDATION"
	// CodeInsufficient 资源不足（金币/符文/法师/库存/信用额度）
	CodeInsufficient Code = "EMPIRE_INSUFFICIENT"
	// CodeRuleGate 规则限制（时代冷却、生命值下限、攻击次数上限等）
	CodeRuleGate Code = "EMPIRE_RULE_GATE"
	// CodeDefeated 帝国已判负，只读
	CodeDefeated Code = "EMPIRE_DEFEATED"
)

type Error = errx.Error

// 哨兵错误：派生请用 WithReason/WithData，不要改动本体。
var (
	ErrValidation   = errx.NewBiz(CodeValidation, "请求不合法")
	ErrInsufficient = errx.NewBiz(CodeInsufficient, "资源不足")
	ErrRuleGate     = errx.NewBiz(CodeRuleGate, "行动受规则限制")
	ErrDefeated     = errx.NewBiz(CodeDefeated, "帝国已战败")
)
