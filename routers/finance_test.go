package routers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionResponse struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

func (s *testServer) createTransaction(body map[string]interface{}) (int, envelope) {
	s.t.Helper()
	return s.do("POST", "/api/finance/transactions", body)
}

func TestCreateTransactionUnlocksFirstSale(t *testing.T) {
	s := newTestServer(t)

	status, env := s.createTransaction(map[string]interface{}{
		"user_id": "user-1", "type": "expense", "category": "insumos", "amount": 40, "date": "2026-03-01",
	})
	require.Equal(t, fiber.StatusCreated, status)
	created := decode[struct {
		Transaction transactionResponse `json:"transaction"`
		Unlocked    []struct {
			Name string `json:"name"`
		} `json:"unlocked_achievements"`
	}](t, env.Data)
	assert.Empty(t, created.Unlocked)

	status, env = s.createTransaction(map[string]interface{}{
		"user_id": "user-1", "type": "income", "category": "ventas", "amount": 150.5, "date": "2026-03-02",
	})
	require.Equal(t, fiber.StatusCreated, status)
	created = decode[struct {
		Transaction transactionResponse `json:"transaction"`
		Unlocked    []struct {
			Name string `json:"name"`
		} `json:"unlocked_achievements"`
	}](t, env.Data)
	require.Len(t, created.Unlocked, 1)
	assert.Equal(t, "Primera Venta", created.Unlocked[0].Name)
	assert.Equal(t, 150.5, created.Transaction.Amount)
}

func TestCreateTransactionValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.createTransaction(map[string]interface{}{
		"user_id": "user-1", "type": "gift", "category": "ventas", "amount": -3, "date": "tomorrow",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	errs := decode[map[string]string](t, env.Data)
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "date")
}

func TestTransactionCrud(t *testing.T) {
	s := newTestServer(t)

	_, env := s.createTransaction(map[string]interface{}{
		"user_id": "user-1", "type": "expense", "category": "alquiler", "amount": 300, "date": "2026-03-01",
	})
	created := decode[struct {
		Transaction transactionResponse `json:"transaction"`
	}](t, env.Data)
	id := created.Transaction.ID

	status, env := s.do("PUT", "/api/finance/transactions/"+id, map[string]interface{}{"amount": 320})
	require.Equal(t, fiber.StatusOK, status)
	updated := decode[transactionResponse](t, env.Data)
	assert.Equal(t, 320.0, updated.Amount)
	assert.Equal(t, "expense", updated.Type)

	status, _ = s.do("DELETE", "/api/finance/transactions/"+id, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = s.do("GET", "/api/finance/transactions/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = s.do("DELETE", "/api/finance/transactions/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListTransactionsFiltersAndSummary(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []map[string]interface{}{
		{"user_id": "user-1", "type": "income", "category": "ventas", "amount": 100, "date": "2026-02-27"},
		{"user_id": "user-1", "type": "income", "category": "ventas", "amount": 50, "date": "2026-03-01"},
		{"user_id": "user-1", "type": "expense", "category": "insumos", "amount": 30, "date": "2026-03-02"},
		{"user_id": "user-2", "type": "income", "category": "ventas", "amount": 999, "date": "2026-03-02"},
	} {
		status, _ := s.createTransaction(body)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, env := s.do("GET", "/api/finance/transactions?user_id=user-1&type=income", nil)
	require.Equal(t, fiber.StatusOK, status)
	list := decode[struct {
		Count   int `json:"count"`
		Summary struct {
			TotalIncome float64 `json:"total_income"`
			Balance     float64 `json:"balance"`
		} `json:"summary"`
	}](t, env.Data)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, 150.0, list.Summary.TotalIncome)

	status, env = s.do("GET", "/api/finance/transactions?user_id=user-1&start_date=2026-03-01", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, decode[struct {
		Count int `json:"count"`
	}](t, env.Data).Count)

	status, env = s.do("GET", "/api/finance/summary/user-1?month=2026-03", nil)
	require.Equal(t, fiber.StatusOK, status)
	summary := decode[struct {
		TotalIncome       float64            `json:"total_income"`
		TotalExpense      float64            `json:"total_expense"`
		Balance           float64            `json:"balance"`
		TotalTransactions int                `json:"total_transactions"`
		IncomeByCategory  map[string]float64 `json:"income_by_category"`
		ExpenseByCategory map[string]float64 `json:"expense_by_category"`
	}](t, env.Data)
	assert.Equal(t, 50.0, summary.TotalIncome)
	assert.Equal(t, 30.0, summary.TotalExpense)
	assert.Equal(t, 20.0, summary.Balance)
	assert.Equal(t, 2, summary.TotalTransactions)
	assert.Equal(t, map[string]float64{"ventas": 50}, summary.IncomeByCategory)
	assert.Equal(t, map[string]float64{"insumos": 30}, summary.ExpenseByCategory)

	status, env = s.do("GET", "/api/finance/summary/user-1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 3, decode[struct {
		TotalTransactions int `json:"total_transactions"`
	}](t, env.Data).TotalTransactions)

	status, _ = s.do("GET", "/api/finance/summary/user-1?month=2026-13", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _ = s.do("GET", "/api/finance/transactions", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
