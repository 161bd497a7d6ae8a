package acctdb

import (
	"fmt"
	"strings"
)

// UserField is one of the association_table columns edit-user may change.
type UserField string

const (
	UserFieldUserName   UserField = "user_name"
	UserFieldAdminLevel UserField = "admin_level"
	UserFieldBank       UserField = "bank"
	UserFieldShares     UserField = "shares"
	UserFieldMaxJobs    UserField = "max_jobs"
	UserFieldMaxWallPJ  UserField = "max_wall_pj"
)

// UserFields lists the editable association columns in table order.
var UserFields = []UserField{
	UserFieldUserName,
	UserFieldAdminLevel,
	UserFieldBank,
	UserFieldShares,
	UserFieldMaxJobs,
	UserFieldMaxWallPJ,
}

// ParseUserField resolves a column name against the allow-list.
func ParseUserField(s string) (UserField, error) {
	for _, f := range UserFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (editable fields: %s)", ErrInvalidField, s, joinFields(UserFields))
}

func (f UserField) integer() bool {
	return f != UserFieldUserName && f != UserFieldBank
}

// QueueField is one of the queue_table limit columns edit-queue may change.
type QueueField string

const (
	QueueFieldMinNodesPerJob QueueField = "min_nodes_per_job"
	QueueFieldMaxNodesPerJob QueueField = "max_nodes_per_job"
	QueueFieldMaxTimePerJob  QueueField = "max_time_per_job"
	QueueFieldPriority       QueueField = "priority"
)

// QueueFields lists the editable queue columns in table order.
var QueueFields = []QueueField{
	QueueFieldMinNodesPerJob,
	QueueFieldMaxNodesPerJob,
	QueueFieldMaxTimePerJob,
	QueueFieldPriority,
}

func joinFields[T ~string](fields []T) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
