package reasoncode

// 跨服务业务拒绝 reason 码：核心服务产出，gate 统一映射为客户端 client_code。
// 码值一旦对外发布不可改名。

// account 域
const (
	AccountLoginInvalidCredentials = "ACCOUNT_LOGIN_INVALID_CREDENTIALS"
	AccountRegisterUserExist       = "ACCOUNT_REGISTER_USER_EXIST"
	AccountRoleNotExist            = "ACCOUNT_ROLE_NOT_EXIST"
)

// empire 域：入参校验
const (
	EmpireUnknownAction     = "EMPIRE_UNKNOWN_ACTION"
	EmpireUnknownSpell      = "EMPIRE_UNKNOWN_SPELL"
	EmpireUnknownItem       = "EMPIRE_UNKNOWN_ITEM"
	EmpireUnknownBuilding   = "EMPIRE_UNKNOWN_BUILDING"
	EmpireNonPositiveAmount = "EMPIRE_NON_POSITIVE_AMOUNT"
	EmpireBadAllocation     = "EMPIRE_BAD_ALLOCATION"
	EmpireBadAttackType     = "EMPIRE_BAD_ATTACK_TYPE"
)

// empire 域：资源不足
const (
	EmpireGoldShort     = "EMPIRE_GOLD_SHORT"
	EmpireRunesShort    = "EMPIRE_RUNES_SHORT"
	EmpireWizardsShort  = "EMPIRE_WIZARDS_SHORT"
	EmpireSavingsShort  = "EMPIRE_SAVINGS_SHORT"
	EmpireCreditShort   = "EMPIRE_CREDIT_SHORT"
	EmpireStockShort    = "EMPIRE_STOCK_SHORT"
	EmpireHoldingsShort = "EMPIRE_HOLDINGS_SHORT"
	EmpireFreelandShort = "EMPIRE_FREELAND_SHORT"
	EmpireBuildingShort = "EMPIRE_BUILDING_SHORT"
	EmpireTurnsShort    = "EMPIRE_TURNS_SHORT"
)

// empire 域：规则限制
const (
	EmpireHealthLow     = "EMPIRE_HEALTH_LOW"
	EmpireEraCooldown   = "EMPIRE_ERA_COOLDOWN"
	EmpireEraBoundary   = "EMPIRE_ERA_BOUNDARY"
	EmpireEraMismatch   = "EMPIRE_ERA_MISMATCH"
	EmpireAttackCap     = "EMPIRE_ATTACK_CAP"
	EmpireFirstRound    = "EMPIRE_FIRST_ROUND"
	EmpireSellCap       = "EMPIRE_SELL_CAP"
	EmpireDefeated      = "EMPIRE_DEFEATED"
	EmpireTargetGone    = "EMPIRE_TARGET_GONE"
	EmpireSelfTarget    = "EMPIRE_SELF_TARGET"
	EmpireTruceActive   = "EMPIRE_TRUCE_ACTIVE"
	EmpireTargetTruce   = "EMPIRE_TARGET_TRUCE"
	EmpireAdvisorsFull  = "EMPIRE_ADVISORS_FULL"
	EmpireMasteryMaxed  = "EMPIRE_MASTERY_MAXED"
)
