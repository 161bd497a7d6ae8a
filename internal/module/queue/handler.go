package queue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/common/errmap"
	"fluxacct/internal/pkg/common/response"
	"fluxacct/internal/pkg/model"
)

// AddQueueRequest is the body of POST /api/v1/queues. Omitted limits take the
// defaults of acctdb.DefaultQueue.
type AddQueueRequest struct {
	Queue          string `json:"queue" binding:"required"`
	MinNodesPerJob *int64 `json:"min_nodes_per_job"`
	MaxNodesPerJob *int64 `json:"max_nodes_per_job"`
	MaxTimePerJob  *int64 `json:"max_time_per_job"`
	Priority       *int64 `json:"priority"`
}

// EditQueueRequest is the body of PATCH /api/v1/queues/{name}. Values are
// strings so that a bad value for one field does not reject the others; -1
// clears a limit.
type EditQueueRequest struct {
	MinNodesPerJob *string `json:"min_nodes_per_job"`
	MaxNodesPerJob *string `json:"max_nodes_per_job"`
	MaxTimePerJob  *string `json:"max_time_per_job"`
	Priority       *string `json:"priority"`
}

// EditQueueResult reports which fields were written and which were skipped.
type EditQueueResult struct {
	Applied []acctdb.QueueField `json:"applied"`
	Skipped []string            `json:"skipped"`
}

func (r AddQueueRequest) toNewQueue() acctdb.NewQueue {
	q := acctdb.DefaultQueue(r.Queue)
	if r.MinNodesPerJob != nil {
		q.MinNodesPerJob = *r.MinNodesPerJob
	}
	if r.MaxNodesPerJob != nil {
		q.MaxNodesPerJob = *r.MaxNodesPerJob
	}
	if r.MaxTimePerJob != nil {
		q.MaxTimePerJob = *r.MaxTimePerJob
	}
	if r.Priority != nil {
		q.Priority = *r.Priority
	}
	return q
}

// HandlerAddQueue adds a queue.
//
// @Summary Add a queue
// @Tags queues
// @Accept json
// @Produce json
// @Param body body AddQueueRequest true "queue"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/queues [post]
func (rt *Router) HandlerAddQueue(c *gin.Context) {
	var req AddQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return
	}
	if err := rt.db.AddQueue(c.Request.Context(), req.toNewQueue()); err != nil {
		errmap.JSON(c, err)
		return
	}
	q, err := rt.db.ViewQueue(c.Request.Context(), req.Queue)
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Response{Results: q})
}

// HandlerViewQueue returns one queue. Unset limits are null.
//
// @Summary View a queue
// @Tags queues
// @Produce json
// @Param name path string true "queue name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/queues/{name} [get]
func (rt *Router) HandlerViewQueue(c *gin.Context) {
	q, err := rt.db.ViewQueue(c.Request.Context(), c.Param("name"))
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Response{Results: q})
}

// HandlerEditQueue changes queue limits.
//
// @Summary Edit a queue
// @Description Fields whose value is not an integer are skipped and listed in the result.
// @Tags queues
// @Accept json
// @Produce json
// @Param name path string true "queue name"
// @Param body body EditQueueRequest true "limits"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/queues/{name} [patch]
func (rt *Router) HandlerEditQueue(c *gin.Context) {
	var req EditQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: err.Error()})
		return
	}
	res, err := rt.db.EditQueue(c.Request.Context(), c.Param("name"), acctdb.QueueEdits{
		MinNodesPerJob: req.MinNodesPerJob,
		MaxNodesPerJob: req.MaxNodesPerJob,
		MaxTimePerJob:  req.MaxTimePerJob,
		Priority:       req.Priority,
	})
	if err != nil {
		errmap.JSON(c, err)
		return
	}
	out := EditQueueResult{Applied: res.Applied, Skipped: make([]string, 0, len(res.Skipped))}
	if out.Applied == nil {
		out.Applied = []acctdb.QueueField{}
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, s.Error())
	}
	c.JSON(http.StatusOK, response.Response{Results: out})
}

// HandlerDeleteQueue removes a queue.
//
// @Summary Delete a queue
// @Tags queues
// @Param name path string true "queue name"
// @Success 204
// @Router /api/v1/queues/{name} [delete]
func (rt *Router) HandlerDeleteQueue(c *gin.Context) {
	if err := rt.db.DeleteQueue(c.Request.Context(), c.Param("name")); err != nil {
		errmap.JSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlerListQueues lists queues by name (paged).
//
// @Summary List queues
// @Tags queues
// @Produce json
// @Param page query int false "page, from 1"
// @Param page_size query int false "page size, 1-100"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/queues [get]
func (rt *Router) HandlerListQueues(c *gin.Context) {
	var pq model.PagingQuery
	_ = c.ShouldBindQuery(&pq)
	pq.SetDefaults(1, 20, 100)
	if err := pq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{Detail: "invalid paging parameters"})
		return
	}
	queues, total, err := rt.db.ListQueuesPaged(c.Request.Context(), pq.Offset(), pq.Limit())
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
		Results:  queues,
	})
}
