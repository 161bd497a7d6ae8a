package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/common/errmap"
	"fluxacct/internal/pkg/common/response"
	"fluxacct/internal/pkg/model"
)

// AddUserRequest is the body of POST /api/v1/users. Omitted limits take the
// defaults of acctdb.DefaultUser.
type AddUserRequest struct {
	UserName   string `json:"user_name" binding:"required"`
	Bank       string `json:"bank" binding:"required"`
	AdminLevel *int64 `json:"admin_level"`
	Shares     *int64 `json:"shares" binding:"omitempty,gt=0"`
	MaxJobs    *int64 `json:"max_jobs" binding:"omitempty,gte=0"`
	MaxWallPJ  *int64 `json:"max_wall_pj" binding:"omitempty,gte=0"`
}

// EditUserRequest is the body of PATCH /api/v1/users/{name}.
type EditUserRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (r AddUserRequest) toNewUser() acctdb.NewUser {
	u := acctdb.DefaultUser(r.UserName, r.Bank)
	if r.AdminLevel != nil {
		u.AdminLevel = *r.AdminLevel
	}
	if r.Shares != nil {
		u.Shares = *r.Shares
	}
	if r.MaxJobs != nil {
		u.MaxJobs = *r.MaxJobs
	}
	if r.MaxWallPJ != nil {
		u.MaxWallPJ = *r.MaxWallPJ
	}
	return u
}

// HandlerAddUser associates a user with a bank.
//
// @Summary Add a user to a bank
// @Tags users
// @Accept json
// @Produce json
// @Param body body AddUserRequest true "association"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users [post]
func (rt *Router) HandlerAddUser(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return
	}
	if err := rt.db.AddUser(c.Request.Context(), req.toNewUser()); err != nil {
		errmap.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Response{Detail: "user added"})
}

// HandlerViewUser returns every association of a user, with directory
// attributes when LDAP is enabled.
//
// @Summary View a user
// @Tags users
// @Produce json
// @Param name path string true "user name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{name} [get]
func (rt *Router) HandlerViewUser(c *gin.Context) {
	assocs, err := rt.db.ViewUser(c.Request.Context(), c.Param("name"))
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	rt.attachDirectory(c.Request.Context(), assocs)
	c.JSON(http.StatusOK, response.Response{Results: assocs})
}

// HandlerEditUser sets one editable column on every association of a user.
//
// @Summary Edit a user
// @Description field is one of user_name, admin_level, bank, shares, max_jobs, max_wall_pj.
// @Tags users
// @Accept json
// @Param name path string true "user name"
// @Param body body EditUserRequest true "field and value"
// @Success 204
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{name} [patch]
func (rt *Router) HandlerEditUser(c *gin.Context) {
	var req EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return
	}
	field, err := acctdb.ParseUserField(req.Field)
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	if err := rt.db.EditUser(c.Request.Context(), c.Param("name"), field, req.Value); err != nil {
		errmap.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlerDeleteUser removes every association of a user.
//
// @Summary Delete a user
// @Tags users
// @Param name path string true "user name"
// @Success 204
// @Router /api/v1/users/{name} [delete]
func (rt *Router) HandlerDeleteUser(c *gin.Context) {
	if err := rt.db.DeleteUser(c.Request.Context(), c.Param("name")); err != nil {
		errmap.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlerListUsers lists associations (paged), with directory attributes
// when LDAP is enabled.
//
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "page, from 1"
// @Param page_size query int false "page size, 1-100"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users [get]
func (rt *Router) HandlerListUsers(c *gin.Context) {
	var pq model.PagingQuery
	_ = c.ShouldBindQuery(&pq)
	pq.SetDefaults(1, 20, 100)
	if err := pq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "invalid paging parameters"})
		return
	}

	assocs, total, err := rt.db.ListUsersPaged(c.Request.Context(), pq.Offset(), pq.Limit())
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	rt.attachDirectory(c.Request.Context(), assocs)

	prev, next := response.BuildPageLinks(c.Request.URL, pq.Page, pq.PageSize, int(total))
	totalInt := int(total)
	c.JSON(http.StatusOK, response.Response{
		Count:    &totalInt,
		Previous: prev,
		Next:     next,
		Results:  assocs,
	})
}

// attachDirectory merges directory attributes into assocs in place. Lookup
// failures are logged and leave the rows unchanged.
func (rt *Router) attachDirectory(ctx context.Context, assocs model.Associations) {
	if rt.dir == nil || len(assocs) == 0 {
		return
	}
	seen := make(map[string]bool, len(assocs))
	names := make([]string, 0, len(assocs))
	for _, a := range assocs {
		if !seen[a.UserName] {
			seen[a.UserName] = true
			names = append(names, a.UserName)
		}
	}
	entries, err := rt.dir.LookupUsers(ctx, names)
	if err != nil {
		rt.logger.Warn("ldap lookup failed", "users", len(names), "err", err)
		return
	}
	byName := make(map[string]model.DirectoryUser, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	for i := range assocs {
		if e, ok := byName[assocs[i].UserName]; ok {
			assocs[i].DirectoryAttrs = e.Attrs
		}
	}
}
