package handler

import (
	"github.com/erp/ledger/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// PurchaseRoutes creates the route group for the purchase ledger. idempotency
// guards create only.
func PurchaseRoutes(handler *PurchaseHandler, idempotency gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("purchases", "/purchases")

	transactions := group.Group("transactions", "/transactions")
	if idempotency != nil {
		transactions.POST("", idempotency, handler.Create)
	} else {
		transactions.POST("", handler.Create)
	}
	transactions.GET("/:id", handler.Get)
	transactions.PUT("/:id", handler.Edit)
	transactions.POST("/:id/void", handler.Void)

	group.Group("suppliers", "/suppliers").
		GET("/:id/outstanding", handler.ListOutstanding)

	return group
}
