package router

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/config"
	"github.com/muhammadarssy/backend-finances/internal/handler"
	"github.com/muhammadarssy/backend-finances/internal/middleware"
	"github.com/muhammadarssy/backend-finances/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine and registers the API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tokenTTL := time.Duration(cfg.JWT.ExpireHours) * time.Hour

	authSvc := service.NewAuthService(db, cfg.JWT.Secret, tokenTTL)
	accountSvc := service.NewAccountService(db)
	categorySvc := service.NewCategoryService(db)
	tagSvc := service.NewTagService(db)
	transactionSvc := service.NewTransactionService(db)
	assetSvc := service.NewAssetService(db)
	investmentSvc := service.NewInvestmentService(db)
	portfolioSvc := service.NewPortfolioService(db)
	recurringSvc := service.NewRecurringService(db)
	budgetSvc := service.NewBudgetService(db)
	billSvc := service.NewBillService(db)
	debtSvc := service.NewDebtService(db)
	watchlistSvc := service.NewWatchlistService(db)
	reportSvc := service.NewReportService(db)
	exportSvc := service.NewExportService(db)

	authHandler := handler.NewAuthHandler(authSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	tagHandler := handler.NewTagHandler(tagSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	investmentHandler := handler.NewInvestmentHandler(investmentSvc, assetSvc)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc)
	recurringHandler := handler.NewRecurringHandler(recurringSvc)
	budgetHandler := handler.NewBudgetHandler(budgetSvc)
	billHandler := handler.NewBillHandler(billSvc)
	debtHandler := handler.NewDebtHandler(debtSvc)
	watchlistHandler := handler.NewWatchlistHandler(watchlistSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc)

	api := r.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PATCH("/auth/me", authHandler.UpdateProfile)
		protected.POST("/auth/change-password", authHandler.ChangePassword)

		protected.GET("/accounts", accountHandler.List)
		protected.POST("/accounts", accountHandler.Create)
		protected.GET("/accounts/:id", accountHandler.Get)
		protected.PATCH("/accounts/:id", accountHandler.Update)

		protected.GET("/categories", categoryHandler.List)
		protected.POST("/categories", categoryHandler.Create)
		protected.PATCH("/categories/:id", categoryHandler.Update)
		protected.DELETE("/categories/:id", categoryHandler.Delete)

		protected.GET("/tags", tagHandler.List)
		protected.POST("/tags", tagHandler.Create)
		protected.DELETE("/tags/:id", tagHandler.Delete)

		protected.GET("/transactions", transactionHandler.List)
		protected.POST("/transactions", transactionHandler.Create)
		protected.POST("/transactions/transfer", transactionHandler.CreateTransfer)
		protected.GET("/transactions/:id", transactionHandler.Get)
		protected.PATCH("/transactions/:id", transactionHandler.Update)
		protected.DELETE("/transactions/:id", transactionHandler.Delete)

		protected.GET("/assets", investmentHandler.ListAssets)
		protected.POST("/assets", investmentHandler.CreateAsset)
		protected.GET("/assets/:id", investmentHandler.GetAsset)
		protected.PATCH("/assets/:id", investmentHandler.UpdateAsset)
		protected.DELETE("/assets/:id", investmentHandler.DeleteAsset)

		protected.GET("/investments", investmentHandler.List)
		protected.POST("/investments", investmentHandler.Create)
		protected.GET("/investments/:id", investmentHandler.Get)
		protected.PATCH("/investments/:id", investmentHandler.Update)
		protected.DELETE("/investments/:id", investmentHandler.Delete)

		protected.GET("/portfolio/summary", portfolioHandler.Summary)
		protected.GET("/portfolio/holdings", portfolioHandler.ListHoldings)
		protected.GET("/portfolio/holdings/:assetId", portfolioHandler.GetHolding)
		protected.POST("/portfolio/rebuild", portfolioHandler.Rebuild)

		protected.GET("/recurring", recurringHandler.List)
		protected.POST("/recurring", recurringHandler.Create)
		protected.GET("/recurring/:id", recurringHandler.Get)
		protected.PATCH("/recurring/:id", recurringHandler.Update)
		protected.DELETE("/recurring/:id", recurringHandler.Delete)
		protected.POST("/recurring/:id/toggle", recurringHandler.Toggle)
		protected.POST("/recurring/:id/run", recurringHandler.Run)
		protected.GET("/recurring/:id/runs", recurringHandler.Runs)

		protected.GET("/budgets", budgetHandler.Get)
		protected.PUT("/budgets", budgetHandler.Upsert)
		protected.DELETE("/budgets", budgetHandler.Delete)

		protected.GET("/bills", billHandler.List)
		protected.POST("/bills", billHandler.Create)
		protected.GET("/bills/:id", billHandler.Get)
		protected.PATCH("/bills/:id", billHandler.Update)
		protected.DELETE("/bills/:id", billHandler.Delete)
		protected.POST("/bills/:id/pay", billHandler.Pay)

		protected.GET("/debts", debtHandler.List)
		protected.POST("/debts", debtHandler.Create)
		protected.GET("/debts/:id", debtHandler.Get)
		protected.PATCH("/debts/:id", debtHandler.Update)
		protected.DELETE("/debts/:id", debtHandler.Delete)
		protected.POST("/debts/:id/pay", debtHandler.Pay)

		protected.GET("/watchlist", watchlistHandler.List)
		protected.POST("/watchlist", watchlistHandler.Add)
		protected.DELETE("/watchlist/:assetId", watchlistHandler.Remove)

		protected.GET("/alerts", watchlistHandler.ListAlerts)
		protected.POST("/alerts", watchlistHandler.CreateAlert)
		protected.POST("/alerts/:id/toggle", watchlistHandler.ToggleAlert)
		protected.DELETE("/alerts/:id", watchlistHandler.DeleteAlert)

		protected.GET("/reports/cashflow", reportHandler.MonthlyCashflow)
		protected.GET("/reports/spend-by-category", reportHandler.SpendByCategory)
		protected.GET("/reports/net-worth", reportHandler.NetWorth)
		protected.GET("/reports/export", reportHandler.ExportTransactions)
	}

	return r
}
