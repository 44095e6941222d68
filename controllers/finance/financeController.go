package controllers

import (
	"errors"
	"incubator/middleware"
	achievementModels "incubator/models/achievement"
	financeModels "incubator/models/finance"
	"incubator/services"
	"incubator/utils"
	financeValidator "incubator/validators/finance"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type FinanceController struct {
	DB           *gorm.DB
	Clock        *utils.Clock
	Achievements *services.AchievementService
}

func NewFinanceController(db *gorm.DB, clock *utils.Clock, achievements *services.AchievementService) *FinanceController {
	return &FinanceController{DB: db, Clock: clock, Achievements: achievements}
}

// Totals is the income/expense balance over a set of transactions
type Totals struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

func totalsOf(transactions []financeModels.Transaction) Totals {
	var t Totals
	for _, tr := range transactions {
		if tr.Type == financeModels.TransactionIncome {
			t.TotalIncome += tr.Amount
		} else {
			t.TotalExpense += tr.Amount
		}
	}
	t.Balance = t.TotalIncome - t.TotalExpense
	return t
}

func (fc *FinanceController) Health(c *fiber.Ctx) error {
	var count int64
	if err := fc.DB.Model(&financeModels.Transaction{}).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Finance API is unhealthy!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Finance API is running", fiber.Map{"transactions_count": count})
}

func (fc *FinanceController) ListTransactions(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTransactionList").(*financeValidator.TransactionListQuery)

	db := fc.DB.WithContext(c.UserContext()).Where("user_id = ?", reqData.UserID)
	if reqData.Type != "" {
		db = db.Where("type = ?", reqData.Type)
	}
	if reqData.StartDate != "" {
		start, err := fc.Clock.ParseTimestamp(reqData.StartDate)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"start_date": "start_date is invalid!"})
		}
		db = db.Where("date >= ?", start)
	}
	if reqData.EndDate != "" {
		end, err := fc.Clock.ParseTimestamp(reqData.EndDate)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"end_date": "end_date is invalid!"})
		}
		db = db.Where("date <= ?", end)
	}

	var transactions []financeModels.Transaction
	if err := db.Order("date desc").Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", fiber.Map{
		"transactions": transactions,
		"count":        len(transactions),
		"summary":      totalsOf(transactions),
	})
}

func (fc *FinanceController) CreateTransaction(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTransaction").(*financeValidator.CreateTransactionRequest)

	date, err := fc.Clock.ParseTimestamp(reqData.Date)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"date": "date is invalid!"})
	}

	transaction := financeModels.Transaction{
		UserID:        reqData.UserID,
		Type:          financeModels.TransactionType(reqData.Type),
		Category:      reqData.Category,
		Amount:        reqData.Amount,
		Description:   reqData.Description,
		Date:          date,
		PaymentMethod: reqData.PaymentMethod,
	}
	ctx := c.UserContext()
	if err := fc.DB.WithContext(ctx).Create(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create transaction!", nil)
	}

	unlocked := []achievementModels.Achievement{}
	if transaction.Type == financeModels.TransactionIncome {
		unlocked = fc.Achievements.CheckAndUnlock(ctx, transaction.UserID, achievementModels.RequirementFirstSale, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Transaction created successfully!", fiber.Map{
		"transaction":           transaction,
		"unlocked_achievements": unlocked,
	})
}

func (fc *FinanceController) findTransaction(c *fiber.Ctx) (*financeModels.Transaction, error) {
	var transaction financeModels.Transaction
	err := fc.DB.WithContext(c.UserContext()).Where("id = ?", c.Params("id")).Take(&transaction).Error
	return &transaction, err
}

func (fc *FinanceController) GetTransaction(c *fiber.Ctx) error {
	transaction, err := fc.findTransaction(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transaction!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched successfully!", transaction)
}

func (fc *FinanceController) UpdateTransaction(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTransactionUpdate").(*financeValidator.UpdateTransactionRequest)

	transaction, err := fc.findTransaction(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transaction!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Type != nil {
		updates["type"] = *reqData.Type
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if reqData.Amount != nil {
		updates["amount"] = *reqData.Amount
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.PaymentMethod != nil {
		updates["payment_method"] = *reqData.PaymentMethod
	}
	if reqData.Date != nil {
		date, err := fc.Clock.ParseTimestamp(*reqData.Date)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"date": "date is invalid!"})
		}
		updates["date"] = date
	}

	if len(updates) > 0 {
		if err := fc.DB.WithContext(c.UserContext()).Model(transaction).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update transaction!", nil)
		}
	}
	transaction, err = fc.findTransaction(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transaction!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction updated successfully!", transaction)
}

func (fc *FinanceController) DeleteTransaction(c *fiber.Ctx) error {
	result := fc.DB.WithContext(c.UserContext()).Where("id = ?", c.Params("id")).Delete(&financeModels.Transaction{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete transaction!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction deleted successfully!", nil)
}

// Summary aggregates an optional calendar month (YYYY-MM, local time) for a user
func (fc *FinanceController) Summary(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSummary").(*financeValidator.SummaryQuery)

	db := fc.DB.WithContext(c.UserContext()).Where("user_id = ?", c.Params("user_id"))
	if reqData.Month != "" {
		month, err := time.ParseInLocation("2006-01", reqData.Month, fc.Clock.Location())
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"month": "month must use the YYYY-MM format!"})
		}
		m := now.With(month)
		db = db.Where("date >= ? AND date <= ?", m.BeginningOfMonth(), m.EndOfMonth())
	}

	var transactions []financeModels.Transaction
	if err := db.Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch summary!", nil)
	}

	incomeByCategory := map[string]float64{}
	expenseByCategory := map[string]float64{}
	for _, t := range transactions {
		if t.Type == financeModels.TransactionIncome {
			incomeByCategory[t.Category] += t.Amount
		} else {
			expenseByCategory[t.Category] += t.Amount
		}
	}

	totals := totalsOf(transactions)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Summary fetched successfully!", fiber.Map{
		"total_income":        totals.TotalIncome,
		"total_expense":       totals.TotalExpense,
		"balance":             totals.Balance,
		"total_transactions":  len(transactions),
		"income_by_category":  incomeByCategory,
		"expense_by_category": expenseByCategory,
	})
}
