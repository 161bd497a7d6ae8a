package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported values for AcctDB.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DefaultSQLitePath is the database file used when no path is configured.
const DefaultSQLitePath = "FluxAccounting.db"

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	Addr   string `yaml:"addr"`
	AcctDB AcctDB `yaml:"acctdb"`
	LDAP   LDAP   `yaml:"ldap"`
}

// AcctDB selects and tunes the relational store holding bank_table,
// association_table and queue_table. Path is only read for sqlite; the
// network fields are only read for mysql and postgres.
type AcctDB struct {
	Driver          string `yaml:"driver"`
	Path            string `yaml:"path"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	Charset         string `yaml:"charset"`
	ParseTime       bool   `yaml:"parseTime"`
	Loc             string `yaml:"loc"`
	TLS             string `yaml:"tls"`
	SSLMode         string `yaml:"sslmode"`
	MaxOpenConns    int    `yaml:"maxOpenConns"`
	MaxIdleConns    int    `yaml:"maxIdleConns"`
	ConnMaxLifetime string `yaml:"connMaxLifetime"`
	AutoMigrate     bool   `yaml:"autoMigrate"`
	ReadOnly        bool   `yaml:"readOnly"`
}

// LDAP configures the optional directory used to enrich user views. UserAttr
// defaults to uid; an empty Attributes list fetches every attribute.
type LDAP struct {
	Enabled            bool     `yaml:"enabled"`
	Host               string   `yaml:"host"`
	Port               int      `yaml:"port"`
	UseTLS             bool     `yaml:"useTLS"`
	StartTLS           bool     `yaml:"startTLS"`
	InsecureSkipVerify bool     `yaml:"insecureSkipVerify"`
	ServerName         string   `yaml:"serverName"`
	RootCAFile         string   `yaml:"rootCAFile"`
	ClientCertFile     string   `yaml:"clientCertFile"`
	ClientKeyFile      string   `yaml:"clientKeyFile"`
	BindDN             string   `yaml:"bindDN"`
	BindPassword       string   `yaml:"bindPassword"`
	BaseDN             string   `yaml:"baseDN"`
	UserAttr           string   `yaml:"userAttr"`
	Attributes         []string `yaml:"attributes"`
	ConnectTimeout     string   `yaml:"connectTimeout"`
	ReadTimeout        string   `yaml:"readTimeout"`
}

// Default returns a configuration that opens a local sqlite database and
// leaves LDAP disabled.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr: ":8080",
			AcctDB: AcctDB{
				Driver:    DriverSQLite,
				Path:      DefaultSQLitePath,
				Charset:   "utf8mb4",
				ParseTime: true,
				SSLMode:   "disable",
			},
		},
	}
}

// Load reads a YAML config file from the given path and unmarshals it over
// Default(). A missing file is not an error when allowMissing is set.
func Load(path string, allowMissing bool) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem found in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	db := c.Server.AcctDB
	switch strings.ToLower(db.Driver) {
	case DriverSQLite:
		if strings.TrimSpace(db.Path) == "" {
			errs = append(errs, errors.New("acctdb.path is required for the sqlite driver"))
		}
	case DriverMySQL, DriverPostgres:
		if db.Host == "" {
			errs = append(errs, fmt.Errorf("acctdb.host is required for the %s driver", db.Driver))
		}
		if db.Port <= 0 || db.Port > 65535 {
			errs = append(errs, fmt.Errorf("acctdb.port %d is out of range", db.Port))
		}
		if db.Database == "" {
			errs = append(errs, fmt.Errorf("acctdb.database is required for the %s driver", db.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported acctdb.driver %q", db.Driver))
	}
	if db.MaxIdleConns > 0 && db.MaxOpenConns > 0 && db.MaxIdleConns > db.MaxOpenConns {
		errs = append(errs, errors.New("acctdb.maxIdleConns should not exceed maxOpenConns"))
	}
	if db.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(db.ConnMaxLifetime); err != nil {
			errs = append(errs, fmt.Errorf("acctdb.connMaxLifetime: %w", err))
		}
	}
	if c.Server.LDAP.Enabled {
		if c.Server.LDAP.Host == "" || c.Server.LDAP.BaseDN == "" {
			errs = append(errs, errors.New("ldap.host and ldap.baseDN are required when ldap is enabled"))
		}
	}
	return errors.Join(errs...)
}
