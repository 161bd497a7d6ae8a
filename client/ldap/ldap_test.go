package ldap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	gldap "github.com/go-ldap/ldap/v3"

	"fluxacct/config"
)

type fakeSearcher struct {
	got    *gldap.SearchRequest
	result *gldap.SearchResult
	err    error
}

func (f *fakeSearcher) Search(req *gldap.SearchRequest) (*gldap.SearchResult, error) {
	f.got = req
	return f.result, f.err
}

func testLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestUserFilter(t *testing.T) {
	if got := userFilter("uid", []string{"alice", "", "b*b"}); got != `(|(uid=alice)(uid=b\2ab))` {
		t.Errorf("unexpected filter %q", got)
	}
	if got := userFilter("uid", []string{""}); got != "" {
		t.Errorf("expected empty filter, got %q", got)
	}
}

func TestLookupUsers(t *testing.T) {
	fs := &fakeSearcher{result: &gldap.SearchResult{Entries: []*gldap.Entry{
		gldap.NewEntry("uid=alice,ou=people,dc=example", map[string][]string{
			"uid":  {"alice"},
			"mail": {"alice@example.org"},
		}),
		gldap.NewEntry("cn=bob,ou=people,dc=example", map[string][]string{
			"cn": {"bob"},
		}),
	}}}
	c := newClient(fs, config.LDAP{BaseDN: "ou=people,dc=example", Attributes: []string{"uid", "mail"}}, testLogger())

	users, err := c.LookupUsers(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("LookupUsers: %v", err)
	}
	if fs.got.BaseDN != "ou=people,dc=example" || fs.got.Filter != "(|(uid=alice)(uid=bob))" {
		t.Errorf("unexpected request %+v", fs.got)
	}
	if len(fs.got.Attributes) != 2 {
		t.Errorf("requested attributes not passed through: %v", fs.got.Attributes)
	}
	if len(users) != 2 || users[0].Name != "alice" || users[0].Attrs["mail"][0] != "alice@example.org" {
		t.Fatalf("unexpected users %+v", users)
	}
	if users[1].Name != "bob" {
		t.Errorf("cn fallback not applied: %+v", users[1])
	}
}

func TestLookupUsers_NoNamesSkipsSearch(t *testing.T) {
	fs := &fakeSearcher{}
	c := newClient(fs, config.LDAP{}, testLogger())
	users, err := c.LookupUsers(context.Background(), nil)
	if err != nil || len(users) != 0 {
		t.Fatalf("unexpected result %v %v", users, err)
	}
	if fs.got != nil {
		t.Errorf("search should not run without names")
	}
}

func TestLookupUsers_Errors(t *testing.T) {
	var nilClient *Client
	if _, err := nilClient.LookupUsers(context.Background(), []string{"a"}); err == nil {
		t.Errorf("expected error from nil client")
	}

	fs := &fakeSearcher{err: errors.New("server down")}
	c := newClient(fs, config.LDAP{}, testLogger())
	if _, err := c.LookupUsers(context.Background(), []string{"a"}); err == nil {
		t.Errorf("expected search error to propagate")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.LookupUsers(ctx, []string{"a"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBuildTLSConfig(t *testing.T) {
	cfg, err := buildTLSConfig(config.LDAP{})
	if err != nil || cfg != nil {
		t.Fatalf("plain ldap should not build TLS config, got %v %v", cfg, err)
	}
	cfg, err = buildTLSConfig(config.LDAP{StartTLS: true, ServerName: "ldap.example"})
	if err != nil || cfg == nil || cfg.ServerName != "ldap.example" {
		t.Fatalf("unexpected TLS config %v %v", cfg, err)
	}
	if _, err := buildTLSConfig(config.LDAP{UseTLS: true, RootCAFile: "/nonexistent/ca.pem"}); err == nil {
		t.Errorf("expected error for missing CA file")
	}
}
