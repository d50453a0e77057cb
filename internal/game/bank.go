// Banking and borrowing — the bank, the loan shark, and faction loans.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

// Daily rates applied while traveling.
const (
	debtDailyRate = 0.05
	bankDailyRate = 0.01

	// sharkCapMult bounds loan-shark borrowing by net worth.
	sharkCapMult = 2
)

// Deposit moves cash into the bank.
func (e *Engine) Deposit(p *PlayerState, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if amount <= 0 || amount > p.Cash {
		res.note("You're holding $%d.", p.Cash)
		return res
	}
	p.Cash -= amount
	p.Bank += amount
	res.note("$%d in the bank. It even earns a little.", amount)
	return res
}

// Withdraw moves banked money back to cash.
func (e *Engine) Withdraw(p *PlayerState, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if amount <= 0 || amount > p.Bank {
		res.note("The account holds $%d.", p.Bank)
		return res
	}
	p.Bank -= amount
	p.Cash += amount
	res.note("Withdrew $%d.", amount)
	return res
}

// PayDebt pays the loan shark down from cash.
func (e *Engine) PayDebt(p *PlayerState, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if p.Debt <= 0 {
		res.note("You're square with the shark.")
		return res
	}
	if amount <= 0 || amount > p.Cash {
		res.note("You're holding $%d.", p.Cash)
		return res
	}
	if amount > p.Debt {
		amount = p.Debt
	}
	p.Cash -= amount
	p.Debt -= amount
	if p.Debt == 0 {
		p.logEvent("credit", "Paid off the shark.")
		res.note("Paid in full. The shark almost looks disappointed.")
		res.effect(EffectSound("paid"))
	} else {
		res.note("Paid $%d down. $%d still on the meter.", amount, p.Debt)
	}
	e.checkMilestones(p, &res)
	return res
}

// Borrow takes more from the loan shark, capped by net worth — they lend
// against what they can repossess.
func (e *Engine) Borrow(p *PlayerState, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if amount <= 0 {
		res.note("That's not a number the shark recognizes.")
		return res
	}
	cap := p.NetWorth() * sharkCapMult
	if cap < 5000 {
		cap = 5000
	}
	if p.Debt+amount > cap {
		res.note("The shark's book says you're good for $%d, no more.", cap-p.Debt)
		return res
	}
	p.Cash += amount
	p.Debt += amount
	p.logEvent("credit", "Borrowed $%d from the shark.", amount)
	res.note("$%d, cash, no paperwork. The meter's running.", amount)
	return res
}

// BorrowFaction opens a faction cash loan. The player must be standing at
// the faction's home and hold no other faction loan; the amount is capped
// by relation-scaled credit.
func (e *Engine) BorrowFaction(p *PlayerState, id catalog.FactionID, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	f := e.Catalog.MustFaction(id)
	if p.Loan != nil {
		res.note("You already carry a faction loan. One at a time.")
		return res
	}
	if p.Location != f.Home {
		res.note("%s do their lending at %s.", f.Name, e.Catalog.MustLocation(f.Home).Name)
		return res
	}
	cap := creditCap(f, p.Relation(id))
	if amount <= 0 || amount > cap {
		res.note("%s will go up to $%d for someone with your standing.", f.Name, cap)
		return res
	}

	term := e.Rand.IntN(4, 7)
	p.Cash += amount
	p.Loan = &FactionLoan{
		Faction:   id,
		Principal: amount,
		Owed:      amount,
		DaysLeft:  term,
	}
	p.logEvent("credit", "Borrowed $%d from %s, due in %d days.", amount, f.Name, term)
	res.note("$%d from %s. %d days, their rate, their rules.", amount, f.Name, term)
	return res
}
