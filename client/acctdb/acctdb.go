package acctdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"fluxacct/config"
	"fluxacct/internal/pkg/model"
)

// Client wraps a GORM DB connection to the accounting database. One Client
// is built per process and handed to every operation.
type Client struct {
	DB     *gorm.DB
	Driver string
	logger *slog.Logger
	now    func() time.Time
}

var errNilClient = errors.New("nil acctdb client")

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// New opens the accounting database described by cfg.
//
// sqlite databases are limited to a single open connection so that every
// statement, transactions included, goes through one writer.
func New(cfg config.AcctDB, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	driver := strings.ToLower(cfg.Driver)
	if driver == "" {
		driver = config.DriverSQLite
	}

	dsn, err := buildDSN(driver, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("build dsn", "driver", driver, "dsn", redactDSN(driver, dsn, cfg.Password))

	var dialector gorm.Dialector
	switch driver {
	case config.DriverMySQL:
		dialector = mysql.Open(dsn)
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	gcfg := &gorm.Config{
		Logger: glogger.New(gormWriter{logger}, glogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  glogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	// Tune the underlying connection pool
	if sqlDB, err := db.DB(); err == nil {
		if driver == config.DriverSQLite {
			sqlDB.SetMaxOpenConns(1)
		} else if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if d := parseDuration(cfg.ConnMaxLifetime); d > 0 {
			sqlDB.SetConnMaxLifetime(d)
		}
		// Proactive connectivity check with timeout to avoid hanging on unreachable DB
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	c := &Client{DB: db, Driver: driver, logger: logger, now: time.Now}
	if cfg.AutoMigrate {
		if err := c.Migrate(context.Background()); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	if cfg.ReadOnly {
		enforceReadOnly(db)
	}
	return c, nil
}

// Migrate creates or updates bank_table, association_table and queue_table.
func (c *Client) Migrate(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	if err := c.DB.WithContext(ctx).AutoMigrate(&model.Bank{}, &model.Association{}, &model.Queue{}); err != nil {
		return fmt.Errorf("migrate accounting tables: %w", err)
	}
	c.logger.Info("accounting tables ready", "driver", c.Driver)
	return nil
}

// buildDSN constructs the driver specific connection string.
func buildDSN(driver string, cfg config.AcctDB) (string, error) {
	switch driver {
	case config.DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = config.DefaultSQLitePath
		}
		if path == ":memory:" || strings.Contains(path, "?") {
			return path, nil
		}
		return path + "?_pragma=busy_timeout(5000)", nil

	case config.DriverMySQL:
		// Format: user:pass@tcp(host:port)/dbname?param=value
		mc := gomysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mc.DBName = cfg.Database
		mc.ParseTime = cfg.ParseTime
		if cfg.Charset != "" {
			mc.Params = map[string]string{"charset": cfg.Charset}
		}
		if cfg.Loc != "" {
			loc, err := time.LoadLocation(cfg.Loc)
			if err != nil {
				return "", fmt.Errorf("acctdb.loc: %w", err)
			}
			mc.Loc = loc
		}
		if cfg.TLS != "" {
			mc.TLSConfig = cfg.TLS
		}
		// Set conservative timeouts to prevent hangs on connect/read/write
		mc.Timeout = 5 * time.Second
		mc.ReadTimeout = 5 * time.Second
		mc.WriteTimeout = 5 * time.Second
		return mc.FormatDSN(), nil

	case config.DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:   "/" + cfg.Database,
		}
		if cfg.Password != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		} else if cfg.User != "" {
			u.User = url.User(cfg.User)
		}
		q := url.Values{}
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		q.Set("sslmode", sslmode)
		q.Set("connect_timeout", "5")
		u.RawQuery = q.Encode()
		return u.String(), nil

	default:
		return "", fmt.Errorf("unsupported acctdb driver %q", driver)
	}
}

// gormWriter sends GORM's own trace output to the process logger at debug
// level; stdout belongs to command output.
type gormWriter struct{ l *slog.Logger }

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.Debug(fmt.Sprintf(format, args...), "component", "gorm")
}

// redactDSN hides the password so the DSN can be logged.
func redactDSN(driver, dsn, password string) string {
	if password == "" {
		return dsn
	}
	if driver == config.DriverPostgres {
		password = url.QueryEscape(password)
	}
	return strings.Replace(dsn, password, "xxxxx", 1)
}

// parseDuration returns 0 on empty or invalid duration strings.
func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// enforceReadOnly installs GORM callbacks that reject write operations and
// non-read raw SQL. Used when acctdb.readOnly points the server at a replica.
func enforceReadOnly(db *gorm.DB) {
	block := func(tx *gorm.DB) {
		tx.AddError(errors.New("acctdb client is read-only"))
	}
	// Block create/update/delete
	_ = db.Callback().Create().Before("gorm:create").Register("fluxacct:readonly_create", block)
	_ = db.Callback().Update().Before("gorm:update").Register("fluxacct:readonly_update", block)
	_ = db.Callback().Delete().Before("gorm:delete").Register("fluxacct:readonly_delete", block)

	// Block raw/exec that are not read-only
	_ = db.Callback().Raw().Before("gorm:raw").Register("fluxacct:readonly_raw", func(tx *gorm.DB) {
		sql := strings.TrimSpace(tx.Statement.SQL.String())
		up := strings.ToUpper(sql)
		if strings.HasPrefix(up, "SELECT") || strings.HasPrefix(up, "SHOW") || strings.HasPrefix(up, "DESCRIBE") || strings.HasPrefix(up, "EXPLAIN") || strings.HasPrefix(up, "PRAGMA") {
			return
		}
		tx.AddError(errors.New("read-only: raw SQL must be SELECT/SHOW/DESCRIBE/EXPLAIN"))
	})
}

// page counts the rows of m and loads one ordered window of them into dest.
// offset is ignored unless limit is positive.
func (c *Client) page(ctx context.Context, m any, order string, offset, limit int, dest any) (int64, error) {
	var total int64
	if err := c.DB.WithContext(ctx).Model(m).Count(&total).Error; err != nil {
		return 0, err
	}
	q := c.DB.WithContext(ctx).Model(m).Order(order)
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
