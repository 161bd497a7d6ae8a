package model

import "strconv"

/*
+-------------------+--------------+------+-----+---------+
| Field             | Type         | Null | Key | Default |
+-------------------+--------------+------+-----+---------+
| queue             | varchar(255) | NO   | PRI | NULL    |
| min_nodes_per_job | bigint       | YES  |     | NULL    |
| max_nodes_per_job | bigint       | YES  |     | NULL    |
| max_time_per_job  | bigint       | YES  |     | NULL    |
| priority          | bigint       | YES  |     | NULL    |
+-------------------+--------------+------+-----+---------+
*/

// Queue represents a row in queue_table. Limits use nullable pointers; nil
// means the limit is unset.
type Queue struct {
	Name           string `gorm:"column:queue;primaryKey;size:255" json:"queue"`
	MinNodesPerJob *int64 `gorm:"column:min_nodes_per_job" json:"min_nodes_per_job"`
	MaxNodesPerJob *int64 `gorm:"column:max_nodes_per_job" json:"max_nodes_per_job"`
	MaxTimePerJob  *int64 `gorm:"column:max_time_per_job" json:"max_time_per_job"`
	Priority       *int64 `gorm:"column:priority" json:"priority"`
}

// Queues is a slice of Queue.
type Queues []Queue

// TableName implements gorm's tabler interface.
func (Queue) TableName() string { return "queue_table" }

// QueueColumns lists the queue_table columns in schema order.
var QueueColumns = []string{"queue", "min_nodes_per_job", "max_nodes_per_job", "max_time_per_job", "priority"}

// Cells returns the row values in QueueColumns order, rendering unset
// limits as NULL.
func (q Queue) Cells() []string {
	return []string{q.Name, nullInt(q.MinNodesPerJob), nullInt(q.MaxNodesPerJob), nullInt(q.MaxTimePerJob), nullInt(q.Priority)}
}

func nullInt(v *int64) string {
	if v == nil {
		return "NULL"
	}
	return strconv.FormatInt(*v, 10)
}
