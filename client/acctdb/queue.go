package acctdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"fluxacct/internal/pkg/model"
)

// ClearLimit is the edit-queue value that resets a limit to NULL.
const ClearLimit int64 = -1

// NewQueue carries the values for one queue_table row.
type NewQueue struct {
	Name           string
	MinNodesPerJob int64
	MaxNodesPerJob int64
	MaxTimePerJob  int64
	Priority       int64
}

// DefaultQueue returns a NewQueue with one node minimum and maximum, 60
// minutes per job and priority 0.
func DefaultQueue(name string) NewQueue {
	return NewQueue{Name: name, MinNodesPerJob: 1, MaxNodesPerJob: 1, MaxTimePerJob: 60}
}

// QueueEdits holds the raw value supplied for each limit. A nil field was not
// supplied and is left untouched.
type QueueEdits struct {
	MinNodesPerJob *string
	MaxNodesPerJob *string
	MaxTimePerJob  *string
	Priority       *string
}

func (e QueueEdits) supplied() []struct {
	field QueueField
	raw   *string
} {
	return []struct {
		field QueueField
		raw   *string
	}{
		{QueueFieldMinNodesPerJob, e.MinNodesPerJob},
		{QueueFieldMaxNodesPerJob, e.MaxNodesPerJob},
		{QueueFieldMaxTimePerJob, e.MaxTimePerJob},
		{QueueFieldPriority, e.Priority},
	}
}

// QueueEditResult reports what EditQueue did with each supplied field.
type QueueEditResult struct {
	Applied []QueueField
	// Skipped holds one ErrInvalidArgument per field whose value was not an
	// integer.
	Skipped []error
}

// AddQueue inserts a queue with the given limits.
func (c *Client) AddQueue(ctx context.Context, q NewQueue) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	if strings.TrimSpace(q.Name) == "" {
		return fmt.Errorf("%w: queue name is required", ErrInvalidArgument)
	}
	row := model.Queue{
		Name:           q.Name,
		MinNodesPerJob: &q.MinNodesPerJob,
		MaxNodesPerJob: &q.MaxNodesPerJob,
		MaxTimePerJob:  &q.MaxTimePerJob,
		Priority:       &q.Priority,
	}
	if err := c.DB.WithContext(ctx).Create(&row).Error; err != nil {
		err = classify(err)
		if errors.Is(err, ErrDuplicateKey) {
			c.logger.Warn("queue already exists", "queue", q.Name)
		}
		return err
	}
	c.logger.Debug("queue added", "queue", q.Name)
	return nil
}

// ViewQueue returns the row for name, or ErrNotFound.
func (c *Client) ViewQueue(ctx context.Context, name string) (*model.Queue, error) {
	if c == nil || c.DB == nil {
		return nil, errNilClient
	}
	var q model.Queue
	err := c.DB.WithContext(ctx).Where("queue = ?", name).Take(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("queue %q %w in queue_table", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// EditQueue applies the supplied limits to name. Values that are not
// integers are skipped and reported in the result; the rest are written in a
// single transaction. ClearLimit sets a limit to NULL. Editing a queue that
// does not exist changes nothing.
func (c *Client) EditQueue(ctx context.Context, name string, edits QueueEdits) (QueueEditResult, error) {
	var res QueueEditResult
	if c == nil || c.DB == nil {
		return res, errNilClient
	}

	updates := map[string]any{}
	for _, s := range edits.supplied() {
		if s.raw == nil {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(*s.raw), 10, 64)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidArgument, s.field, *s.raw))
			continue
		}
		if n == ClearLimit {
			updates[string(s.field)] = nil
		} else {
			updates[string(s.field)] = n
		}
		res.Applied = append(res.Applied, s.field)
	}
	if len(updates) == 0 {
		return res, nil
	}

	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.Queue{}).Where("queue = ?", name).Updates(updates).Error
	})
	if err != nil {
		return QueueEditResult{Skipped: res.Skipped}, err
	}
	c.logger.Debug("queue edited", "queue", name, "applied", res.Applied, "skipped", len(res.Skipped))
	return res, nil
}

// DeleteQueue removes the queue row.
func (c *Client) DeleteQueue(ctx context.Context, name string) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	res := c.DB.WithContext(ctx).Where("queue = ?", name).Delete(&model.Queue{})
	if res.Error != nil {
		return res.Error
	}
	c.logger.Debug("queue deleted", "queue", name, "rows", res.RowsAffected)
	return nil
}

// ListQueues returns every queue ordered by name.
func (c *Client) ListQueues(ctx context.Context) (model.Queues, error) {
	res, _, err := c.ListQueuesPaged(ctx, 0, 0)
	return res, err
}

// ListQueuesPaged returns one page of rows and the total row count. A zero
// limit returns every row.
func (c *Client) ListQueuesPaged(ctx context.Context, offset, limit int) (model.Queues, int64, error) {
	if c == nil || c.DB == nil {
		return nil, 0, errNilClient
	}
	var res model.Queues
	total, err := c.page(ctx, &model.Queue{}, "queue", offset, limit, &res)
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}
