package financeRoutes

import (
	controllers "incubator/controllers/finance"
	validators "incubator/validators/finance"

	"github.com/gofiber/fiber/v2"
)

func SetupFinanceRoutes(app *fiber.App, ctrl *controllers.FinanceController) {
	group := app.Group("/api/finance")

	group.Get("/health", ctrl.Health)

	group.Get("/transactions", validators.ListTransactions(), ctrl.ListTransactions)
	group.Post("/transactions", validators.CreateTransaction(), ctrl.CreateTransaction)
	group.Get("/transactions/:id", ctrl.GetTransaction)
	group.Put("/transactions/:id", validators.UpdateTransaction(), ctrl.UpdateTransaction)
	group.Delete("/transactions/:id", ctrl.DeleteTransaction)

	group.Get("/summary/:user_id", validators.Summary(), ctrl.Summary)
}
