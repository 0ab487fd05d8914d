package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coopsave/entity"
	"coopsave/middleware"
)

// Register wires every resource group, the auth strategy and the aux
// endpoints onto the engine. User creation and login are open; everything
// else sits behind the bearer-token guard, with profit-share mutations
// additionally requiring an admin scope.
func Register(r *gin.Engine, db *gorm.DB) {
	authH := NewAuthHandler(db)
	users := NewUserHandler(db)
	cooperatives := NewCooperativeHandler(db)
	contributions := NewContributionHandler(db)
	loans := NewLoanHandler(db)
	payments := NewPaymentHandler(db)
	repayments := NewRepaymentHandler(db)
	referrals := NewReferralHandler(db)
	profitShares := NewProfitShareHandler(db)

	r.GET("/", Liveness)
	r.GET("/healthz", Healthz)
	r.GET("/metrics", middleware.MetricsHandler())
	r.NoRoute(StaticFallback)

	v1 := r.Group("/api/v1")

	// open routes
	v1.POST("/auth/login", authH.Login)
	v1.POST("/users", users.Create)
	v1.GET("/users", users.List)
	v1.GET("/users/:id", users.Get)
	v1.PUT("/users/:id", users.Update)
	v1.DELETE("/users/:id", users.Delete)

	authed := v1.Group("", middleware.RequireAuth())

	authed.GET("/users/:id/referrals", referrals.ForUser)

	authed.POST("/cooperatives", cooperatives.Create)
	authed.GET("/cooperatives", cooperatives.List)
	authed.GET("/cooperatives/:id", cooperatives.Get)
	authed.PUT("/cooperatives/:id", cooperatives.Update)
	authed.DELETE("/cooperatives/:id", cooperatives.Delete)
	authed.GET("/cooperatives/:id/members", cooperatives.Members)
	authed.GET("/cooperatives/:id/contributions", cooperatives.Contributions)
	authed.GET("/cooperatives/:id/loans", cooperatives.Loans)
	authed.GET("/cooperatives/:id/profit-shares", profitShares.ForCooperative)

	authed.POST("/contributions", contributions.Create)
	authed.GET("/contributions", contributions.List)
	authed.GET("/contributions/:id", contributions.Get)
	authed.PUT("/contributions/:id", contributions.Update)
	authed.DELETE("/contributions/:id", contributions.Delete)

	authed.POST("/loans", loans.Create)
	authed.GET("/loans", loans.List)
	authed.GET("/loans/:id", loans.Get)
	authed.PUT("/loans/:id", loans.Update)
	authed.DELETE("/loans/:id", loans.Delete)
	authed.GET("/loans/:id/repayments", loans.Repayments)

	authed.POST("/payments", payments.Create)
	authed.GET("/payments", payments.List)
	authed.GET("/payments/:id", payments.Get)
	authed.PUT("/payments/:id", payments.Update)
	authed.DELETE("/payments/:id", payments.Delete)

	authed.POST("/repayments", repayments.Create)
	authed.GET("/repayments", repayments.List)
	authed.GET("/repayments/:id", repayments.Get)
	authed.PUT("/repayments/:id", repayments.Update)
	authed.DELETE("/repayments/:id", repayments.Delete)

	authed.POST("/referrals", referrals.Create)
	authed.GET("/referrals", referrals.List)
	authed.GET("/referrals/:id", referrals.Get)
	authed.PUT("/referrals/:id", referrals.Update)
	authed.DELETE("/referrals/:id", referrals.Delete)

	authed.GET("/profit-shares", profitShares.List)
	authed.GET("/profit-shares/:id", profitShares.Get)

	psAdmin := authed.Group("", middleware.RequireScopes(entity.RoleCoopAdmin, entity.RoleAdmin))
	psAdmin.POST("/profit-shares", profitShares.Create)
	psAdmin.PUT("/profit-shares/:id", profitShares.Update)
	psAdmin.DELETE("/profit-shares/:id", profitShares.Delete)
}
