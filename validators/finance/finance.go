package financeValidator

import (
	"incubator/middleware"
	"incubator/validators"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type TransactionListQuery struct {
	UserID    string `query:"user_id" validate:"required,max=36"`
	Type      string `query:"type" validate:"omitempty,oneof=income expense"`
	StartDate string `query:"start_date" validate:"omitempty,datestr"`
	EndDate   string `query:"end_date" validate:"omitempty,datestr"`
}

type CreateTransactionRequest struct {
	UserID        string  `json:"user_id" validate:"required,max=36"`
	Type          string  `json:"type" validate:"required,oneof=income expense"`
	Category      string  `json:"category" validate:"required,max=100"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Description   string  `json:"description"`
	Date          string  `json:"date" validate:"required,datestr"`
	PaymentMethod string  `json:"payment_method" validate:"max=50"`
}

// UpdateTransactionRequest carries only the fields being changed
type UpdateTransactionRequest struct {
	Type          *string  `json:"type" validate:"omitempty,oneof=income expense"`
	Category      *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	Description   *string  `json:"description"`
	Date          *string  `json:"date" validate:"omitempty,datestr"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=50"`
}

type SummaryQuery struct {
	Month string `query:"month"`
}

func ListTransactions() fiber.Handler {
	return validators.Query("validatedTransactionList", func(c *fiber.Ctx, req *TransactionListQuery) {
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}

func CreateTransaction() fiber.Handler {
	return validators.Body("validatedTransaction", func(c *fiber.Ctx, req *CreateTransactionRequest) {
		validators.Trim(&req.Category, &req.Description, &req.PaymentMethod, &req.Date)
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}

func UpdateTransaction() fiber.Handler {
	return validators.Body[UpdateTransactionRequest]("validatedTransactionUpdate", nil)
}

// Summary validates the optional YYYY-MM month filter
func Summary() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")
		if month != "" && !monthPattern.MatchString(month) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"month": "month must use the YYYY-MM format!",
			})
		}
		c.Locals("validatedSummary", &SummaryQuery{Month: month})
		return c.Next()
	}
}
