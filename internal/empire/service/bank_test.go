package service

import (
	"errors"
	"testing"
)

func TestDeposit_与取款往返(t *testing.T) {
	e := testEmpire(t, "human")
	if err := Deposit(e, 10000); err != nil {
		t.Fatalf("存款失败: %v", err)
	}
	if e.Resources.Gold != 40000 || e.Savings != 10000 {
		t.Fatalf("期望 gold=40000 savings=10000，got=%d/%d", e.Resources.Gold, e.Savings)
	}
	if err := Withdraw(e, 10000); err != nil {
		t.Fatalf("取款失败: %v", err)
	}
	if e.Resources.Gold != 50000 || e.Savings != 0 {
		t.Fatalf("期望往返后回到原状")
	}
}

func TestDeposit_金额校验先于扣款(t *testing.T) {
	e := testEmpire(t, "human")
	if err := Deposit(e, -5); !errors.Is(err, ErrValidation) {
		t.Fatalf("期望负数金额拒绝，got=%v", err)
	}
	if err := Deposit(e, e.Resources.Gold+1); !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望金币不足拒绝，got=%v", err)
	}
	if e.Resources.Gold != 50000 || e.Savings != 0 {
		t.Fatalf("期望拒绝后无改动")
	}
}

func TestTakeLoan_受信用额度约束(t *testing.T) {
	e := testEmpire(t, "human")
	RecomputeNetworth(e)
	max := MaxLoan(e.Networth)

	if err := TakeLoan(e, max+1); !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望超过额度拒绝，got=%v", err)
	}
	if err := TakeLoan(e, max); err != nil {
		t.Fatalf("额度内借款失败: %v", err)
	}
	if e.Loan != max {
		t.Fatalf("期望贷款 %d，got=%d", max, e.Loan)
	}
	// 额度用光后再借 1 也不行
	if err := TakeLoan(e, 1); !errors.Is(err, ErrInsufficient) {
		t.Fatalf("期望额度用尽拒绝，got=%v", err)
	}
}

func TestPayLoan_实际还款额封顶(t *testing.T) {
	e := testEmpire(t, "human")
	e.Loan = 3000
	paid, err := PayLoan(e, 100000) // 请求超过贷款余额
	if err != nil {
		t.Fatalf("还款失败: %v", err)
	}
	if paid != 3000 || e.Loan != 0 {
		t.Fatalf("期望实还 3000 清贷，paid=%d loan=%d", paid, e.Loan)
	}

	e.Loan = 100000
	e.Resources.Gold = 700
	paid, err = PayLoan(e, 5000) // 金币只有 700
	if err != nil {
		t.Fatalf("还款失败: %v", err)
	}
	if paid != 700 || e.Resources.Gold != 0 {
		t.Fatalf("期望实还封顶在金币余额，paid=%d", paid)
	}
}

func TestApplyRoundInterest_只在回合结算计息(t *testing.T) {
	e := testEmpire(t, "human")
	e.Savings = 10000
	e.Loan = 10000
	ApplyRoundInterest(e)
	if e.Savings != 10400 {
		t.Fatalf("期望存款计息 4%%，got=%d", e.Savings)
	}
	if e.Loan != 10750 {
		t.Fatalf("期望贷款计息 7.5%%，got=%d", e.Loan)
	}
}

func TestBankInfoOf_快照字段(t *testing.T) {
	e := testEmpire(t, "human")
	RecomputeNetworth(e)
	e.Loan = 1000
	info := BankInfoOf(e)
	if info.MaxLoan != MaxLoan(e.Networth) {
		t.Fatalf("期望快照的贷款上限与计算一致")
	}
	if info.AvailableCredit != info.MaxLoan-1000 {
		t.Fatalf("期望可用额度 = 上限 - 已贷，got=%d", info.AvailableCredit)
	}
}
