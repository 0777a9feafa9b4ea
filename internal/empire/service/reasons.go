package service

import "EraRealms/internal/shared/reasoncode"

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

// 业务拒绝 reason（服务内枚举），由 gate 统一映射为客户端 client_code。
var (
	ReasonUnknownAction     = NewReason(reasoncode.EmpireUnknownAction, "未知行动")
	ReasonUnknownSpell      = NewReason(reasoncode.EmpireUnknownSpell, "未知法术")
	ReasonUnknownItem       = NewReason(reasoncode.EmpireUnknownItem, "未知商品")
	ReasonUnknownBuilding   = NewReason(reasoncode.EmpireUnknownBuilding, "未知建筑类型")
	ReasonNonPositiveAmount = NewReason(reasoncode.EmpireNonPositiveAmount, "数量必须为正")
	ReasonBadAllocation     = NewReason(reasoncode.EmpireBadAllocation, "产能分配比例必须合计 100")
	ReasonBadAttackType     = NewReason(reasoncode.EmpireBadAttackType, "未知进攻方式")

	ReasonGoldShort     = NewReason(reasoncode.EmpireGoldShort, "金币不足")
	ReasonRunesShort    = NewReason(reasoncode.EmpireRunesShort, "符文不足")
	ReasonWizardsShort  = NewReason(reasoncode.EmpireWizardsShort, "没有法师")
	ReasonSavingsShort  = NewReason(reasoncode.EmpireSavingsShort, "存款不足")
	ReasonCreditShort   = NewReason(reasoncode.EmpireCreditShort, "信用额度不足")
	ReasonStockShort    = NewReason(reasoncode.EmpireStockShort, "商店库存不足")
	ReasonHoldingsShort = NewReason(reasoncode.EmpireHoldingsShort, "持有量不足")
	ReasonFreelandShort = NewReason(reasoncode.EmpireFreelandShort, "空地不足")
	ReasonBuildingShort = NewReason(reasoncode.EmpireBuildingShort, "建筑数量不足")
	ReasonTurnsShort    = NewReason(reasoncode.EmpireTurnsShort, "行动点不足")

	ReasonHealthLow   = NewReason(reasoncode.EmpireHealthLow, "生命值过低")
	ReasonEraCooldown = NewReason(reasoncode.EmpireEraCooldown, "时代变更冷却中")
	ReasonEraBoundary = NewReason(reasoncode.EmpireEraBoundary, "已在时代边界")
	ReasonEraMismatch = NewReason(reasoncode.EmpireEraMismatch, "不同时代且没有时间门")
	ReasonAttackCap   = NewReason(reasoncode.EmpireAttackCap, "本回合攻击次数已达上限")
	ReasonFirstRound  = NewReason(reasoncode.EmpireFirstRound, "第一回合禁止攻击")
	ReasonSellCap     = NewReason(reasoncode.EmpireSellCap, "超出商店期出售上限")
	ReasonDefeated    = NewReason(reasoncode.EmpireDefeated, "帝国已战败")
	ReasonTargetGone  = NewReason(reasoncode.EmpireTargetGone, "目标帝国已战败")
	ReasonSelfTarget  = NewReason(reasoncode.EmpireSelfTarget, "不能以自己为目标")
	ReasonTruceActive = NewReason(reasoncode.EmpireTruceActive, "停战保护期间不能出兵")
	ReasonTargetTruce = NewReason(reasoncode.EmpireTargetTruce, "目标处于停战保护中")
)
