package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kingpin/v2"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/report"
)

func (a *app) registerUsers(k *kingpin.Application) {
	var (
		u        acctdb.NewUser
		name     string
		field    string
		newValue string
	)

	add := a.command(k, "add-user", "Add a user to a bank.", func(ctx context.Context, db *acctdb.Client) int {
		err := db.AddUser(ctx, u)
		switch {
		case err == nil:
			return exitOK
		case errors.Is(err, acctdb.ErrDuplicateKey):
			return a.reported(err)
		default:
			return a.fatal(err)
		}
	})
	add.Flag("username", "User name.").Required().StringVar(&u.UserName)
	add.Flag("bank", "Bank to charge.").Required().StringVar(&u.Bank)
	add.Flag("admin-level", "Admin level.").Default("1").Int64Var(&u.AdminLevel)
	add.Flag("shares", "Shares.").Default("1").Int64Var(&u.Shares)
	add.Flag("max-jobs", "Maximum running jobs.").Default("1").Int64Var(&u.MaxJobs)
	add.Flag("max-wall-pj", "Maximum wall time per job, in minutes.").Default("60").Int64Var(&u.MaxWallPJ)

	view := a.command(k, "view-user", "Show every bank association of a user.", func(ctx context.Context, db *acctdb.Client) int {
		rows, err := db.ViewUser(ctx, name)
		if err != nil {
			return a.reported(err)
		}
		return a.written(report.Associations(a.stdout, rows))
	})
	view.Arg("username", "User name.").Required().StringVar(&name)

	edit := a.command(k, "edit-user", "Change one field on every association of a user.", func(ctx context.Context, db *acctdb.Client) int {
		f, err := acctdb.ParseUserField(field)
		if err != nil {
			return a.fatal(err)
		}
		if err := db.EditUser(ctx, name, f, newValue); err != nil {
			return a.fatal(err)
		}
		return exitOK
	})
	edit.Flag("username", "User name.").Required().StringVar(&name)
	edit.Flag("field", "Column to change: user_name, admin_level, bank, shares, max_jobs or max_wall_pj.").Required().StringVar(&field)
	edit.Flag("new-value", "New value.").Required().StringVar(&newValue)

	del := a.command(k, "delete-user", "Delete every association of a user.", func(ctx context.Context, db *acctdb.Client) int {
		if err := db.DeleteUser(ctx, name); err != nil {
			return a.fatal(err)
		}
		return exitOK
	})
	del.Arg("username", "User name.").Required().StringVar(&name)

	a.command(k, "list-users", "List every association.", func(ctx context.Context, db *acctdb.Client) int {
		rows, err := db.ListUsers(ctx)
		if err != nil {
			return a.reported(err)
		}
		return a.written(report.Associations(a.stdout, rows))
	})
}
