package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/model"
	"fluxacct/internal/pkg/report"
)

// limitFlag is an edit-queue flag whose value is only used when given.
type limitFlag struct {
	value string
	set   bool
}

func (f *limitFlag) ptr() *string {
	if !f.set {
		return nil
	}
	return &f.value
}

func (a *app) registerQueues(k *kingpin.Application) {
	var (
		q    acctdb.NewQueue
		name string

		minNodes, maxNodes, maxTime, priority limitFlag
	)

	add := a.command(k, "add-queue", "Add a queue.", func(ctx context.Context, db *acctdb.Client) int {
		q.Name = name
		err := db.AddQueue(ctx, q)
		switch {
		case err == nil:
			return exitOK
		case errors.Is(err, acctdb.ErrDuplicateKey):
			return a.reported(err)
		default:
			return a.fatal(err)
		}
	})
	add.Arg("queue", "Queue name.").Required().StringVar(&name)
	add.Flag("min-nodes-per-job", "Minimum nodes per job.").Default("1").Int64Var(&q.MinNodesPerJob)
	add.Flag("max-nodes-per-job", "Maximum nodes per job.").Default("1").Int64Var(&q.MaxNodesPerJob)
	add.Flag("max-time-per-job", "Maximum time per job, in minutes.").Default("60").Int64Var(&q.MaxTimePerJob)
	add.Flag("priority", "Queue priority.").Default("0").Int64Var(&q.Priority)

	view := a.command(k, "view-queue", "Show a queue.", func(ctx context.Context, db *acctdb.Client) int {
		row, err := db.ViewQueue(ctx, name)
		if err != nil {
			return a.reported(err)
		}
		return a.written(report.Queues(a.stdout, model.Queues{*row}))
	})
	view.Arg("queue", "Queue name.").Required().StringVar(&name)

	edit := a.command(k, "edit-queue", "Change queue limits; -1 clears a limit.", func(ctx context.Context, db *acctdb.Client) int {
		res, err := db.EditQueue(ctx, name, acctdb.QueueEdits{
			MinNodesPerJob: minNodes.ptr(),
			MaxNodesPerJob: maxNodes.ptr(),
			MaxTimePerJob:  maxTime.ptr(),
			Priority:       priority.ptr(),
		})
		for _, s := range res.Skipped {
			fmt.Fprintln(a.stdout, a.ui.Warning(s.Error()))
		}
		if err != nil {
			return a.fatal(err)
		}
		return exitOK
	})
	edit.Arg("queue", "Queue name.").Required().StringVar(&name)
	edit.Flag("min-nodes-per-job", "Minimum nodes per job.").IsSetByUser(&minNodes.set).StringVar(&minNodes.value)
	edit.Flag("max-nodes-per-job", "Maximum nodes per job.").IsSetByUser(&maxNodes.set).StringVar(&maxNodes.value)
	edit.Flag("max-time-per-job", "Maximum time per job, in minutes.").IsSetByUser(&maxTime.set).StringVar(&maxTime.value)
	edit.Flag("priority", "Queue priority.").IsSetByUser(&priority.set).StringVar(&priority.value)

	del := a.command(k, "delete-queue", "Delete a queue.", func(ctx context.Context, db *acctdb.Client) int {
		if err := db.DeleteQueue(ctx, name); err != nil {
			return a.fatal(err)
		}
		return exitOK
	})
	del.Arg("queue", "Queue name.").Required().StringVar(&name)

	a.command(k, "list-queues", "List every queue.", func(ctx context.Context, db *acctdb.Client) int {
		rows, err := db.ListQueues(ctx)
		if err != nil {
			return a.reported(err)
		}
		return a.written(report.Queues(a.stdout, rows))
	})
}
