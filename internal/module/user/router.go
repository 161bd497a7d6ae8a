package user

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/model"
)

// Directory resolves user names to directory entries.
type Directory interface {
	LookupUsers(ctx context.Context, names []string) ([]model.DirectoryUser, error)
}

type Router struct {
	db     *acctdb.Client
	dir    Directory
	logger *slog.Logger
}

// NewRouter builds the users module. dir may be nil, in which case user
// views carry no directory attributes.
func NewRouter(db *acctdb.Client, dir Directory, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{db: db, dir: dir, logger: logger}
}

func (rt *Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		g := v1.Group("/users")
		g.GET("", rt.HandlerListUsers)           // GET /api/v1/users
		g.POST("", rt.HandlerAddUser)            // POST /api/v1/users
		g.GET("/:name", rt.HandlerViewUser)      // GET /api/v1/users/{name}
		g.PATCH("/:name", rt.HandlerEditUser)    // PATCH /api/v1/users/{name}
		g.DELETE("/:name", rt.HandlerDeleteUser) // DELETE /api/v1/users/{name}
	}
}
