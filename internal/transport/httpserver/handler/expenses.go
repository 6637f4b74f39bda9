package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	expensesdomain "tiptrip-go/internal/domain/expenses"
	"github.com/go-chi/chi/v5"
)

type createExpenseRequest struct {
	Amount      *float64        `json:"amount"`
	Description *string         `json:"description"`
	Currency    string          `json:"currency"`
	Debtors     []debtorRequest `json:"debtors"`
}

type debtorRequest struct {
	UserID    flexibleID `json:"userId"`
	ShareType string     `json:"shareType"`
	Value     *float64   `json:"value"`
}

type debtorResponse struct {
	UserID    string  `json:"userId"`
	ShareType string  `json:"shareType"`
	Value     float64 `json:"value"`
}

type expenseResponse struct {
	ID          string           `json:"id"`
	TripID      string           `json:"tripId"`
	PayerID     string           `json:"payerId"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	Description string           `json:"description"`
	Debtors     []debtorResponse `json:"debtors"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type settlementResponse struct {
	FromUser string  `json:"fromUser"`
	ToUser   string  `json:"toUser"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type balanceResponse struct {
	UserID   string  `json:"userId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}
	if req.Description == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
		return
	}
	if req.Debtors == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "debtors is required")
		return
	}

	debtors := make([]expensesdomain.DebtorInput, 0, len(req.Debtors))
	for _, d := range req.Debtors {
		userID, err := strconv.ParseInt(strings.TrimSpace(string(d.UserID)), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_debtor", "invalid userId: "+string(d.UserID))
			return
		}
		if d.Value == nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "debtor value is required")
			return
		}
		debtors = append(debtors, expensesdomain.DebtorInput{
			UserID:    userID,
			ShareType: d.ShareType,
			Value:     *d.Value,
		})
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	expense, err := h.Expenses.CreateExpense(r.Context(), user.ID, hash, expensesdomain.CreateExpenseInput{
		Amount:      *req.Amount,
		Currency:    req.Currency,
		Description: *req.Description,
		Debtors:     debtors,
	})
	if err != nil {
		h.writeDomainError(w, "expenses.create", err, "user_id", user.ID, "hash", hash)
		return
	}

	h.log.Info("expenses.create: expense created", "trip_id", expense.TripID, "expense_id", expense.ID, "debtors", len(expense.Shares))
	writeJSON(w, http.StatusCreated, toExpenseResponse(hash, expense))
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	items, err := h.Expenses.ListExpenses(r.Context(), user.ID, hash)
	if err != nil {
		h.writeDomainError(w, "expenses.list", err, "user_id", user.ID, "hash", hash)
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for i := range items {
		response = append(response, toExpenseResponse(hash, &items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetSettlements(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	settlements, err := h.Expenses.Settlements(r.Context(), user.ID, hash)
	if err != nil {
		h.writeDomainError(w, "settlements.get", err, "user_id", user.ID, "hash", hash)
		return
	}

	lines := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		lines = append(lines, settlementResponse{
			FromUser: strconv.FormatInt(s.FromUserID, 10),
			ToUser:   strconv.FormatInt(s.ToUserID, 10),
			Amount:   s.Amount,
			Currency: s.Currency,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]settlementResponse{"balances": lines})
}

func (h *Handlers) GetBalances(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	balances, err := h.Expenses.Balances(r.Context(), user.ID, hash)
	if err != nil {
		h.writeDomainError(w, "balances.get", err, "user_id", user.ID, "hash", hash)
		return
	}

	response := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		response = append(response, balanceResponse{
			UserID:   strconv.FormatInt(b.UserID, 10),
			Amount:   b.Amount,
			Currency: b.Currency,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]balanceResponse{"balances": response})
}

func toExpenseResponse(hash string, expense *expensesdomain.Expense) expenseResponse {
	debtors := make([]debtorResponse, 0, len(expense.Shares))
	for _, s := range expense.Shares {
		debtors = append(debtors, debtorResponse{
			UserID:    strconv.FormatInt(s.UserID, 10),
			ShareType: s.ShareType,
			Value:     s.Value,
		})
	}
	return expenseResponse{
		ID:          strconv.FormatInt(expense.ID, 10),
		TripID:      hash,
		PayerID:     strconv.FormatInt(expense.PayerUserID, 10),
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Description: expense.Description,
		Debtors:     debtors,
		CreatedAt:   expense.CreatedAt,
	}
}
