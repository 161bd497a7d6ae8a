package ldap

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	gldap "github.com/go-ldap/ldap/v3"

	"fluxacct/config"
	"fluxacct/internal/pkg/model"
)

type searcher interface {
	Search(req *gldap.SearchRequest) (*gldap.SearchResult, error)
}

// Client looks up accounting users in an LDAP directory.
type Client struct {
	conn     *gldap.Conn
	search   searcher
	baseDN   string
	userAttr string
	attrs    []string
	logger   *slog.Logger
}

// Close closes the underlying LDAP connection.
func (c *Client) Close() {
	if c != nil && c.conn != nil {
		c.conn.Close()
	}
}

// New dials and binds the directory described by cfg. It supports plain
// LDAP, LDAPS and STARTTLS, optional custom CAs and client certs, and
// connect/read timeouts.
func New(cfg config.LDAP, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tlsCfg, err := buildTLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	scheme := "ldap"
	if cfg.UseTLS {
		scheme = "ldaps"
	}
	addr := fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port)

	var opts []gldap.DialOpt
	if tlsCfg != nil {
		opts = append(opts, gldap.DialWithTLSConfig(tlsCfg))
	}
	if d := connectDialer(cfg); d != nil {
		opts = append(opts, gldap.DialWithDialer(d))
	}

	conn, err := gldap.DialURL(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	// STARTTLS is not needed when using LDAPS.
	if cfg.StartTLS && !cfg.UseTLS {
		if err := conn.StartTLS(tlsCfg); err != nil {
			conn.Close()
			return nil, err
		}
	}
	if rt := parseDuration(cfg.ReadTimeout); rt > 0 {
		conn.SetTimeout(rt)
	}
	if cfg.BindDN != "" || cfg.BindPassword != "" {
		if err := conn.Bind(cfg.BindDN, cfg.BindPassword); err != nil {
			conn.Close()
			return nil, fmt.Errorf("bind %s: %w", cfg.BindDN, err)
		}
	}
	logger.Info("ldap connected", "addr", addr, "baseDN", cfg.BaseDN)

	c := newClient(conn, cfg, logger)
	c.conn = conn
	return c, nil
}

func newClient(s searcher, cfg config.LDAP, logger *slog.Logger) *Client {
	userAttr := cfg.UserAttr
	if userAttr == "" {
		userAttr = "uid"
	}
	return &Client{search: s, baseDN: cfg.BaseDN, userAttr: userAttr, attrs: cfg.Attributes, logger: logger}
}

// buildTLSConfig returns nil if no TLS options are set.
func buildTLSConfig(cfg config.LDAP) (*tls.Config, error) {
	needsTLS := cfg.UseTLS || cfg.StartTLS || cfg.InsecureSkipVerify || cfg.RootCAFile != "" || cfg.ClientCertFile != "" || cfg.ClientKeyFile != "" || cfg.ServerName != ""
	if !needsTLS {
		return nil, nil
	}

	tlsCfg := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // configurable for testing/non-prod
		ServerName:         cfg.ServerName,
	}
	if cfg.RootCAFile != "" {
		pem, err := os.ReadFile(cfg.RootCAFile)
		if err != nil {
			return nil, err
		}
		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if ok := pool.AppendCertsFromPEM(pem); !ok {
			return nil, fmt.Errorf("failed to append Root CA from %s", cfg.RootCAFile)
		}
		tlsCfg.RootCAs = pool
	}
	if cfg.ClientCertFile != "" && cfg.ClientKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertFile, cfg.ClientKeyFile)
		if err != nil {
			return nil, err
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}

func connectDialer(cfg config.LDAP) *net.Dialer {
	to := parseDuration(cfg.ConnectTimeout)
	if to <= 0 {
		return nil
	}
	return &net.Dialer{Timeout: to}
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

// userFilter ORs one equality match per non-empty name. It returns "" when
// no names remain.
func userFilter(attr string, names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("(%s=%s)", attr, gldap.EscapeFilter(n)))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(|%s)", strings.Join(parts, ""))
}

// LookupUsers returns the directory entries for the given user names. Names
// with no entry are absent from the result.
func (c *Client) LookupUsers(ctx context.Context, names []string) ([]model.DirectoryUser, error) {
	if c == nil || c.search == nil {
		return nil, fmt.Errorf("ldap client not initialized")
	}
	filter := userFilter(c.userAttr, names)
	if filter == "" {
		return []model.DirectoryUser{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := gldap.NewSearchRequest(
		c.baseDN,
		gldap.ScopeWholeSubtree,
		gldap.NeverDerefAliases,
		0, 0, false,
		filter,
		c.attrs,
		nil,
	)
	// go-ldap doesn't accept context in Search; timeouts handled by conn
	resp, err := c.search.Search(req)
	if err != nil {
		return nil, err
	}
	out := make([]model.DirectoryUser, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		attrs := make(map[string][]string, len(e.Attributes))
		for _, a := range e.Attributes {
			vv := make([]string, len(a.Values))
			copy(vv, a.Values)
			attrs[a.Name] = vv
		}
		name := e.GetAttributeValue(c.userAttr)
		if name == "" {
			name = e.GetAttributeValue("cn")
		}
		out = append(out, model.DirectoryUser{Name: name, Attrs: attrs})
	}
	c.logger.Debug("ldap lookup", "filter", filter, "entries", len(out))
	return out, nil
}
