package expenses

import (
	"math"
	"sort"
)

// settleThreshold is the noise floor below which a balance counts as zero.
const settleThreshold = 0.01

type party struct {
	userID int64
	amount float64
}

// ComputeBalances nets every expense into per-user balances: the payer is
// credited the full amount and each debtor is charged their share. Results
// are ordered by currency, then user id.
func ComputeBalances(expenses []Expense) []Balance {
	nets := netByCurrency(expenses)

	var balances []Balance
	for _, currency := range sortedCurrencies(nets) {
		users := nets[currency]
		ids := make([]int64, 0, len(users))
		for id := range users {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			balances = append(balances, Balance{
				UserID:   id,
				Currency: currency,
				Amount:   round2(users[id]),
			})
		}
	}
	return balances
}

// ComputeSettlements turns net balances into debtor to creditor transfers.
// Within each currency the largest remaining debtor pays the largest
// remaining creditor until one side is exhausted. Ties are ordered by user id.
func ComputeSettlements(expenses []Expense) []Settlement {
	if len(expenses) == 0 {
		return []Settlement{}
	}

	nets := netByCurrency(expenses)
	settlements := []Settlement{}
	for _, currency := range sortedCurrencies(nets) {
		settlements = append(settlements, settleCurrency(currency, nets[currency])...)
	}
	return settlements
}

func settleCurrency(currency string, balances map[int64]float64) []Settlement {
	var creditors, debtors []party
	for id, amount := range balances {
		switch {
		case amount > settleThreshold:
			creditors = append(creditors, party{userID: id, amount: amount})
		case amount < -settleThreshold:
			debtors = append(debtors, party{userID: id, amount: -amount})
		}
	}
	sortParties(creditors)
	sortParties(debtors)

	var out []Settlement
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amount := math.Min(creditors[i].amount, debtors[j].amount)
		out = append(out, Settlement{
			FromUserID: debtors[j].userID,
			ToUserID:   creditors[i].userID,
			Amount:     round2(amount),
			Currency:   currency,
		})

		creditors[i].amount -= amount
		debtors[j].amount -= amount
		if creditors[i].amount < settleThreshold {
			i++
		}
		if debtors[j].amount < settleThreshold {
			j++
		}
	}
	return out
}

func netByCurrency(expenses []Expense) map[string]map[int64]float64 {
	nets := make(map[string]map[int64]float64)
	for _, e := range expenses {
		currency := e.Currency
		if currency == "" {
			currency = DefaultCurrency
		}
		users, ok := nets[currency]
		if !ok {
			users = make(map[int64]float64)
			nets[currency] = users
		}

		users[e.PayerUserID] += e.Amount
		for _, s := range e.Shares {
			users[s.UserID] -= s.Value
		}
	}
	return nets
}

func sortedCurrencies(nets map[string]map[int64]float64) []string {
	currencies := make([]string, 0, len(nets))
	for c := range nets {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}

func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].userID < parties[j].userID
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
