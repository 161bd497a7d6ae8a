// Package cli implements the flux-account command line.
//
// Failures follow three channels. Reported failures (a duplicate add, a
// missing or unreadable row on view, a skipped edit-queue field) print a
// message to stdout and exit 0. Fatal failures (a missing parent bank,
// non-positive shares, an unknown edit-user field, store errors on writes)
// print to stderr and exit 1. Edits and deletes of missing keys do nothing
// and exit 0.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/version"

	"fluxacct/client/acctdb"
	"fluxacct/config"
	"fluxacct/internal/pkg/log"
	"fluxacct/internal/pkg/report"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

type handler func(ctx context.Context, db *acctdb.Client) int

type app struct {
	stdout io.Writer
	stderr io.Writer
	ui     *report.UI

	dbPath     string
	configFile string
	logLevel   string
	logFormat  string

	handlers map[string]handler
}

// Run parses args, runs the selected command against the accounting
// database and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		ui:       report.New(stdout),
		handlers: make(map[string]handler),
	}

	k := kingpin.New("flux-account", "Administer banks, users and queues in the flux accounting database.")
	k.HelpFlag.Short('h')
	k.UsageWriter(stderr)
	k.ErrorWriter(stderr)
	k.Version(version.Print("flux-account"))
	terminated := -1
	k.Terminate(func(code int) {
		if terminated < 0 {
			terminated = code
		}
	})

	k.Flag("path", "sqlite database file; overrides acctdb.path from --config.").Short('p').Envar("FLUX_ACCOUNTING_DB").PlaceHolder("PATH").StringVar(&a.dbPath)
	k.Flag("config", "YAML config file selecting the database driver.").Short('c').Envar("FLUXACCT_CONFIG").PlaceHolder("FILE").StringVar(&a.configFile)
	k.Flag("log.level", "Log level, one of [debug, info, warn, error].").Default("warn").EnumVar(&a.logLevel, "debug", "info", "warn", "error")
	k.Flag("log.format", "Log format, one of [json, text].").Default("text").EnumVar(&a.logFormat, "json", "text")

	a.registerDB(k)
	a.registerBanks(k)
	a.registerUsers(k)
	a.registerQueues(k)

	selected, err := k.Parse(joinNegativeValues(args))
	if terminated >= 0 {
		return terminated
	}
	if err != nil {
		fmt.Fprintf(stderr, "flux-account: error: %v, try --help\n", err)
		return exitUsage
	}
	h, ok := a.handlers[selected]
	if !ok {
		fmt.Fprintf(stderr, "flux-account: error: unknown command %q, try --help\n", selected)
		return exitUsage
	}

	level, _ := log.ParseLevel(a.logLevel)
	logger, err := log.New(stderr, a.logFormat, level)
	if err != nil {
		return a.fatal(err)
	}
	db, err := a.open(selected, logger)
	if err != nil {
		return a.fatal(err)
	}
	defer db.Close()

	return h(context.Background(), db)
}

// joinNegativeValues rewrites "--flag -1" as "--flag=-1". kingpin lexes any
// argument starting with a dash as a flag, which would swallow the -1 that
// clears a queue limit. Arguments after "--" are left alone.
func joinNegativeValues(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "--") && !strings.Contains(arg, "=") && i+1 < len(args) && isNegativeInt(args[i+1]) {
			out = append(out, arg+"="+args[i+1])
			i++
			continue
		}
		out = append(out, arg)
	}
	return out
}

func isNegativeInt(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func (a *app) command(k *kingpin.Application, name, help string, h handler) *kingpin.CmdClause {
	cmd := k.Command(name, help)
	a.handlers[cmd.FullCommand()] = h
	return cmd
}

// open builds the store configuration from --config and --path. Commands
// other than create-db refuse to create a new sqlite file.
func (a *app) open(selected string, logger *slog.Logger) (*acctdb.Client, error) {
	cfg := config.Default()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile, false)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if a.dbPath != "" {
		cfg.Server.AcctDB.Driver = config.DriverSQLite
		cfg.Server.AcctDB.Path = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dbc := cfg.Server.AcctDB
	if selected == "create-db" {
		dbc.AutoMigrate = true
	} else if dbc.Driver == config.DriverSQLite && dbc.Path != ":memory:" {
		if _, err := os.Stat(dbc.Path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("database %s does not exist, run create-db first", dbc.Path)
		}
	}
	return acctdb.New(dbc, logger)
}

// reported prints err to stdout and lets the command succeed.
func (a *app) reported(err error) int {
	fmt.Fprintln(a.stdout, a.ui.Error(err.Error()))
	return exitOK
}

// fatal prints err to stderr and fails the command.
func (a *app) fatal(err error) int {
	fmt.Fprintf(a.stderr, "flux-account: error: %v\n", err)
	return exitFatal
}

// written reports a failed table write; the rows were already read.
func (a *app) written(err error) int {
	if err != nil {
		return a.fatal(err)
	}
	return exitOK
}

func (a *app) registerDB(k *kingpin.Application) {
	a.command(k, "create-db", "Create the accounting tables.", func(ctx context.Context, db *acctdb.Client) int {
		fmt.Fprintln(a.stdout, a.ui.Success(fmt.Sprintf("accounting tables ready (%s)", db.Driver)))
		return exitOK
	})

	a.command(k, "print-hierarchy", "Print the bank hierarchy with users and raw shares.", func(ctx context.Context, db *acctdb.Client) int {
		out, err := db.PrintFullHierarchy(ctx)
		if err != nil {
			return a.reported(err)
		}
		_, err = io.WriteString(a.stdout, out)
		return a.written(err)
	})
}
