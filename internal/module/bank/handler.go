package bank

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxacct/internal/pkg/common/errmap"
	"fluxacct/internal/pkg/common/response"
	"fluxacct/internal/pkg/model"
)

// AddBankRequest is the body of POST /api/v1/banks. Shares defaults to 1.
type AddBankRequest struct {
	Bank       string `json:"bank" binding:"required"`
	Shares     *int64 `json:"shares" binding:"omitempty,gt=0"`
	ParentBank string `json:"parent_bank"`
}

// EditBankRequest is the body of PATCH /api/v1/banks/{name}.
type EditBankRequest struct {
	Shares *int64 `json:"shares" binding:"required"`
}

// HandlerAddBank adds a bank.
//
// @Summary Add a bank
// @Description Adds a bank under an existing parent, or as a root when parent_bank is empty.
// @Tags banks
// @Accept json
// @Produce json
// @Param body body AddBankRequest true "bank"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/banks [post]
func (rt *Router) HandlerAddBank(c *gin.Context) {
	var req AddBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return
	}
	shares := int64(1)
	if req.Shares != nil {
		shares = *req.Shares
	}
	if err := rt.db.AddBank(c.Request.Context(), req.Bank, shares, req.ParentBank); err != nil {
		errmap.JSON(c, err)
		return
	}
	b, err := rt.db.ViewBank(c.Request.Context(), req.Bank)
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Response{Results: b})
}

// HandlerViewBank returns one bank.
//
// @Summary View a bank
// @Tags banks
// @Produce json
// @Param name path string true "bank name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/banks/{name} [get]
func (rt *Router) HandlerViewBank(c *gin.Context) {
	b, err := rt.db.ViewBank(c.Request.Context(), c.Param("name"))
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Response{Results: b})
}

// HandlerEditBank sets a bank's shares. Shares must be greater than 0.
//
// @Summary Edit a bank's shares
// @Tags banks
// @Accept json
// @Produce json
// @Param name path string true "bank name"
// @Param body body EditBankRequest true "new shares"
// @Success 204
// @Failure 400 {object} response.Response
// @Router /api/v1/banks/{name} [patch]
func (rt *Router) HandlerEditBank(c *gin.Context) {
	var req EditBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return
	}
	if err := rt.db.EditBank(c.Request.Context(), c.Param("name"), *req.Shares); err != nil {
		errmap.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlerDeleteBank removes a bank row. Sub-banks and users are kept.
//
// @Summary Delete a bank
// @Tags banks
// @Param name path string true "bank name"
// @Success 204
// @Failure 500 {object} response.Response
// @Router /api/v1/banks/{name} [delete]
func (rt *Router) HandlerDeleteBank(c *gin.Context) {
	if err := rt.db.DeleteBank(c.Request.Context(), c.Param("name")); err != nil {
		errmap.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlerListBanks lists banks in insertion order (paged).
//
// @Summary List banks
// @Tags banks
// @Produce json
// @Param page query int false "page, from 1"
// @Param page_size query int false "page size, 1-100"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/banks [get]
func (rt *Router) HandlerListBanks(c *gin.Context) {
	var pq model.PagingQuery
	_ = c.ShouldBindQuery(&pq)
	pq.SetDefaults(1, 20, 100)
	if err := pq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "invalid paging parameters"})
		return
	}

	banks, total, err := rt.db.ListBanksPaged(c.Request.Context(), pq.Offset(), pq.Limit())
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	prev, next := response.BuildPageLinks(c.Request.URL, pq.Page, pq.PageSize, int(total))
	totalInt := int(total)
	c.JSON(http.StatusOK, response.Response{
		Count:    &totalInt,
		Previous: prev,
		Next:     next,
		Results:  banks,
	})
}

// HandlerGetHierarchy returns the bank hierarchy report.
//
// @Summary Bank hierarchy
// @Description Pipe-delimited report by default; ?format=json returns the tree.
// @Tags banks
// @Produce plain
// @Produce json
// @Param format query string false "text or json"
// @Success 200 {string} string
// @Failure 400 {object} response.Response
// @Router /api/v1/hierarchy [get]
func (rt *Router) HandlerGetHierarchy(c *gin.Context) {
	format := c.DefaultQuery("format", "text")
	if format != "text" && format != "json" {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "format must be text or json"})
		return
	}
	tree, err := rt.db.Hierarchy(c.Request.Context())
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	if format == "json" {
		c.JSON(http.StatusOK, response.Response{Results: tree})
		return
	}
	c.String(http.StatusOK, tree.Render())
}
