// Package report renders accounting rows and status messages for the
// flux-account command line.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fluxacct/internal/pkg/model"
)

// CellWidth is the minimum width every table cell is padded to.
const CellWidth = 18

// WriteTable writes a header line of column names followed by one line per
// row. Each cell is left justified to CellWidth and followed by one space.
func WriteTable(w io.Writer, columns []string, rows [][]string) error {
	var sb strings.Builder
	writeRow(&sb, columns)
	for _, r := range rows {
		writeRow(&sb, r)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRow(sb *strings.Builder, cells []string) {
	for _, c := range cells {
		fmt.Fprintf(sb, "%-*s ", CellWidth, c)
	}
	sb.WriteByte('\n')
}

// BankColumns lists the bank_table columns in schema order.
var BankColumns = []string{"bank_id", "bank", "parent_bank", "shares"}

// Banks writes banks as a table.
func Banks(w io.Writer, banks model.Banks) error {
	rows := make([][]string, 0, len(banks))
	for _, b := range banks {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.Name,
			b.ParentBank,
			strconv.FormatInt(b.Shares, 10),
		})
	}
	return WriteTable(w, BankColumns, rows)
}

// AssociationColumns lists the association_table columns in schema order.
var AssociationColumns = []string{
	"creation_time", "mod_time", "deleted", "user_name", "admin_level",
	"bank", "shares", "max_jobs", "max_wall_pj",
}

// Associations writes association rows as a table.
func Associations(w io.Writer, assocs model.Associations) error {
	rows := make([][]string, 0, len(assocs))
	for _, a := range assocs {
		rows = append(rows, []string{
			strconv.FormatInt(a.CreationTime, 10),
			strconv.FormatInt(a.ModTime, 10),
			strconv.FormatInt(int64(a.Deleted), 10),
			a.UserName,
			strconv.FormatInt(a.AdminLevel, 10),
			a.Bank,
			strconv.FormatInt(a.Shares, 10),
			strconv.FormatInt(a.MaxJobs, 10),
			strconv.FormatInt(a.MaxWallPJ, 10),
		})
	}
	return WriteTable(w, AssociationColumns, rows)
}

// Queues writes queue rows as a table. Unset limits render as NULL.
func Queues(w io.Writer, queues model.Queues) error {
	rows := make([][]string, 0, len(queues))
	for _, q := range queues {
		rows = append(rows, q.Cells())
	}
	return WriteTable(w, model.QueueColumns, rows)
}
