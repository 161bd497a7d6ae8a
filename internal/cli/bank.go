package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kingpin/v2"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/model"
	"fluxacct/internal/pkg/report"
)

func (a *app) registerBanks(k *kingpin.Application) {
	var (
		name   string
		shares int64
		parent string
	)

	add := a.command(k, "add-bank", "Add a bank.", func(ctx context.Context, db *acctdb.Client) int {
		err := db.AddBank(ctx, name, shares, parent)
		switch {
		case err == nil:
			return exitOK
		case errors.Is(err, acctdb.ErrDuplicateKey):
			return a.reported(err)
		default:
			return a.fatal(err)
		}
	})
	add.Arg("bank", "Bank name.").Required().StringVar(&name)
	add.Arg("shares", "Shares allocated to the bank.").Default("1").Int64Var(&shares)
	add.Flag("parent-bank", "Parent bank; empty adds a root bank.").StringVar(&parent)

	view := a.command(k, "view-bank", "Show a bank.", func(ctx context.Context, db *acctdb.Client) int {
		b, err := db.ViewBank(ctx, name)
		if err != nil {
			return a.reported(err)
		}
		return a.written(report.Banks(a.stdout, model.Banks{*b}))
	})
	view.Arg("bank", "Bank name.").Required().StringVar(&name)

	edit := a.command(k, "edit-bank", "Change the shares of a bank.", func(ctx context.Context, db *acctdb.Client) int {
		if err := db.EditBank(ctx, name, shares); err != nil {
			return a.fatal(err)
		}
		return exitOK
	})
	edit.Arg("bank", "Bank name.").Required().StringVar(&name)
	edit.Flag("shares", "New shares, greater than 0.").Required().Int64Var(&shares)

	del := a.command(k, "delete-bank", "Delete a bank. Sub-banks and users are kept.", func(ctx context.Context, db *acctdb.Client) int {
		if err := db.DeleteBank(ctx, name); err != nil {
			return a.fatal(err)
		}
		return exitOK
	})
	del.Arg("bank", "Bank name.").Required().StringVar(&name)

	a.command(k, "list-banks", "List every bank.", func(ctx context.Context, db *acctdb.Client) int {
		banks, err := db.ListBanks(ctx)
		if err != nil {
			return a.reported(err)
		}
		return a.written(report.Banks(a.stdout, banks))
	})
}
