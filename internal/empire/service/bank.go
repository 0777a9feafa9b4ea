package service

import (
	"math"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
)

// MaxLoan 贷款上限跟身价走：networth × 0.5。
func MaxLoan(networth int64) int64 {
	if networth <= 0 {
		return 0
	}
	return int64(math.Floor(float64(networth) * basic.BasicConf.Bank.LoanCapNetworthRatio))
}

// BankInfoOf 按需重算的只读快照，不落库。
func BankInfoOf(e *domain.Empire) domain.BankInfo {
	bc := basic.BasicConf.Bank
	maxLoan := MaxLoan(e.Networth)
	credit := maxLoan - e.Loan
	if credit < 0 {
		credit = 0
	}
	return domain.BankInfo{
		Savings:         e.Savings,
		Loan:            e.Loan,
		MaxLoan:         maxLoan,
		AvailableCredit: credit,
		SavingsRate:     bc.SavingsRate,
		LoanRate:        bc.LoanRate,
	}
}

// Deposit 存款：金额为正且金币足够，否则整单拒绝。
func Deposit(e *domain.Empire, amount int64) error {
	if amount <= 0 {
		return ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("amount", amount)
	}
	if amount > e.Resources.Gold {
		return ErrInsufficient.WithReason(ReasonGoldShort).
			WithData("amount", amount).WithData("gold", e.Resources.Gold)
	}
	e.Resources.Gold -= amount
	e.Savings += amount
	return nil
}

// Withdraw 取款：金额为正且存款足够。
func Withdraw(e *domain.Empire, amount int64) error {
	if amount <= 0 {
		return ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("amount", amount)
	}
	if amount > e.Savings {
		return ErrInsufficient.WithReason(ReasonSavingsShort).
			WithData("amount", amount).WithData("savings", e.Savings)
	}
	e.Savings -= amount
	e.Resources.Gold += amount
	return nil
}

// TakeLoan 借款：不超过剩余信用额度。
func TakeLoan(e *domain.Empire, amount int64) error {
	if amount <= 0 {
		return ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("amount", amount)
	}
	credit := MaxLoan(e.Networth) - e.Loan
	if amount > credit {
		return ErrInsufficient.WithReason(ReasonCreditShort).
			WithData("amount", amount).WithData("credit", credit)
	}
	e.Loan += amount
	e.Resources.Gold += amount
	return nil
}

// PayLoan 还款：实际还款额封顶 min(amount, gold, loan)，返回实际金额。
func PayLoan(e *domain.Empire, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("amount", amount)
	}
	pay := amount
	if pay > e.Loan {
		pay = e.Loan
	}
	if pay > e.Resources.Gold {
		pay = e.Resources.Gold
	}
	if pay <= 0 {
		return 0, ErrInsufficient.WithReason(ReasonGoldShort).
			WithData("gold", e.Resources.Gold).WithData("loan", e.Loan)
	}
	e.Resources.Gold -= pay
	e.Loan -= pay
	return pay, nil
}

// ApplyRoundInterest 回合结算时各计息一次，回合内不计。
func ApplyRoundInterest(e *domain.Empire) {
	bc := basic.BasicConf.Bank
	if e.Savings > 0 {
		e.Savings += int64(math.Floor(float64(e.Savings) * bc.SavingsRate / 100))
	}
	if e.Loan > 0 {
		e.Loan += int64(math.Floor(float64(e.Loan) * bc.LoanRate / 100))
	}
}
