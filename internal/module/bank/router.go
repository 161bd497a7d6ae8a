package bank

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"fluxacct/client/acctdb"
)

type Router struct {
	db     *acctdb.Client
	logger *slog.Logger
}

func NewRouter(db *acctdb.Client, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{db: db, logger: logger}
}

func (rt *Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/hierarchy", rt.HandlerGetHierarchy) // GET /api/v1/hierarchy

		g := v1.Group("/banks")
		g.GET("", rt.HandlerListBanks)           // GET /api/v1/banks
		g.POST("", rt.HandlerAddBank)            // POST /api/v1/banks
		g.GET("/:name", rt.HandlerViewBank)      // GET /api/v1/banks/{name}
		g.PATCH("/:name", rt.HandlerEditBank)    // PATCH /api/v1/banks/{name}
		g.DELETE("/:name", rt.HandlerDeleteBank) // DELETE /api/v1/banks/{name}
	}
}
