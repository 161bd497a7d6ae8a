package queue

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
		g := v1.Group("/queues")
		g.GET("", rt.HandlerListQueues)           // GET /api/v1/queues
		g.POST("", rt.HandlerAddQueue)            // POST /api/v1/queues
		g.GET("/:name", rt.HandlerViewQueue)      // GET /api/v1/queues/{name}
		g.PATCH("/:name", rt.HandlerEditQueue)    // PATCH /api/v1/queues/{name}
		g.DELETE("/:name", rt.HandlerDeleteQueue) // DELETE /api/v1/queues/{name}
	}
}
