package acctdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"fluxacct/config"
	"fluxacct/internal/pkg/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := New(config.AcctDB{Driver: config.DriverSQLite, Path: ":memory:", AutoMigrate: true}, logger)
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func countRows(t *testing.T, c *Client, m any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := c.DB.Model(m)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		cfg    config.AcctDB
		want   []string
	}{
		{"sqlite default path", config.DriverSQLite, config.AcctDB{}, []string{"FluxAccounting.db?_pragma=busy_timeout(5000)"}},
		{"sqlite memory", config.DriverSQLite, config.AcctDB{Path: ":memory:"}, []string{":memory:"}},
		{"mysql", config.DriverMySQL, config.AcctDB{Host: "db", Port: 3306, User: "acct", Password: "pw", Database: "flux", Charset: "utf8mb4", ParseTime: true},
			[]string{"acct:pw@tcp(db:3306)/flux", "charset=utf8mb4", "parseTime=true", "timeout=5s"}},
		{"postgres", config.DriverPostgres, config.AcctDB{Host: "pg", Port: 5432, User: "acct", Password: "p@ss", Database: "flux"},
			[]string{"postgres://acct:p%40ss@pg:5432/flux", "sslmode=disable"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := buildDSN(tt.driver, tt.cfg)
			if err != nil {
				t.Fatalf("buildDSN: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(dsn, w) {
					t.Errorf("dsn %q does not contain %q", dsn, w)
				}
			}
		})
	}

	if _, err := buildDSN("oracle", config.AcctDB{}); err == nil {
		t.Errorf("expected error for unsupported driver")
	}
}

func TestRedactDSN(t *testing.T) {
	dsn, _ := buildDSN(config.DriverMySQL, config.AcctDB{Host: "db", Port: 3306, User: "acct", Password: "secret", Database: "flux"})
	got := redactDSN(config.DriverMySQL, dsn, "secret")
	if strings.Contains(got, "secret") {
		t.Fatalf("password not redacted: %s", got)
	}
}

func TestClassify(t *testing.T) {
	if !errors.Is(classify(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), ErrDuplicateKey) {
		t.Errorf("mysql 1062 should classify as duplicate key")
	}
	if !errors.Is(classify(&pgconn.PgError{Code: "23505"}), ErrDuplicateKey) {
		t.Errorf("pg 23505 should classify as duplicate key")
	}
	if !errors.Is(classify(errors.New("UNIQUE constraint failed: bank_table.bank")), ErrDuplicateKey) {
		t.Errorf("sqlite unique failure should classify as duplicate key")
	}
	other := errors.New("disk I/O error")
	if got := classify(other); got != other {
		t.Errorf("unrelated errors should pass through, got %v", got)
	}
	if classify(nil) != nil {
		t.Errorf("nil should stay nil")
	}
}

func TestAddBank_ParentNotFound(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	err := c.AddBank(ctx, "child", 1, "missing")
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
	if n := countRows(t, c, &model.Bank{}, ""); n != 0 {
		t.Fatalf("expected no rows after failed add, got %d", n)
	}
}

func TestAddBank_Duplicate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.AddBank(ctx, "root", 1, ""); err != nil {
		t.Fatalf("add root: %v", err)
	}
	err := c.AddBank(ctx, "root", 5, "")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "bank_table.bank") {
		t.Errorf("duplicate error should name the colliding key, got %q", err)
	}
	b, err := c.ViewBank(ctx, "root")
	if err != nil {
		t.Fatalf("view root: %v", err)
	}
	if b.Shares != 1 {
		t.Errorf("duplicate add changed shares to %d", b.Shares)
	}
	if n := countRows(t, c, &model.Bank{}, "bank = ?", "root"); n != 1 {
		t.Errorf("expected exactly one root row, got %d", n)
	}
}

func TestAddBank_RejectsBadInput(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	if err := c.AddBank(ctx, "", 1, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty name: expected ErrInvalidArgument, got %v", err)
	}
	if err := c.AddBank(ctx, "zero", 0, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero shares: expected ErrInvalidArgument, got %v", err)
	}
}

func TestViewBank_NotFound(t *testing.T) {
	c := newTestClient(t)
	_, err := c.ViewBank(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "not found in bank_table") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestEditBank(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	if err := c.AddBank(ctx, "root", 3, ""); err != nil {
		t.Fatalf("add root: %v", err)
	}

	for _, shares := range []int64{0, -1, -100} {
		if err := c.EditBank(ctx, "root", shares); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("shares=%d: expected ErrInvalidArgument, got %v", shares, err)
		}
	}
	b, _ := c.ViewBank(ctx, "root")
	if b.Shares != 3 {
		t.Fatalf("rejected edit mutated shares to %d", b.Shares)
	}

	if err := c.EditBank(ctx, "root", 7); err != nil {
		t.Fatalf("edit root: %v", err)
	}
	b, _ = c.ViewBank(ctx, "root")
	if b.Shares != 7 || b.ParentBank != "" || b.Name != "root" {
		t.Fatalf("unexpected bank after edit: %+v", b)
	}

	if err := c.EditBank(ctx, "ghost", 4); err != nil {
		t.Errorf("editing a missing bank should be a no-op, got %v", err)
	}
	if n := countRows(t, c, &model.Bank{}, ""); n != 1 {
		t.Errorf("editing a missing bank created rows: %d", n)
	}
}

func TestDeleteBank_DoesNotCascade(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_ = c.AddBank(ctx, "root", 1, "")
	_ = c.AddBank(ctx, "sub", 1, "root")
	_ = c.AddUser(ctx, DefaultUser("alice", "root"))

	if err := c.DeleteBank(ctx, "root"); err != nil {
		t.Fatalf("delete root: %v", err)
	}
	if _, err := c.ViewBank(ctx, "root"); !errors.Is(err, ErrNotFound) {
		t.Errorf("root still present: %v", err)
	}
	sub, err := c.ViewBank(ctx, "sub")
	if err != nil || sub.ParentBank != "root" {
		t.Errorf("child bank should survive with its parent reference, got %+v, %v", sub, err)
	}
	if n := countRows(t, c, &model.Association{}, "bank = ?", "root"); n != 1 {
		t.Errorf("association should survive bank delete, got %d rows", n)
	}
	if err := c.DeleteBank(ctx, "root"); err != nil {
		t.Errorf("deleting a missing bank should be a no-op, got %v", err)
	}
}

func TestAddUser_DefaultsAndDuplicates(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	fixed := time.Unix(1700000000, 0)
	c.now = func() time.Time { return fixed }

	if err := c.AddUser(ctx, DefaultUser("alice", "A")); err != nil {
		t.Fatalf("add alice/A: %v", err)
	}
	if err := c.AddUser(ctx, DefaultUser("alice", "B")); err != nil {
		t.Fatalf("add alice/B: %v", err)
	}
	if err := c.AddUser(ctx, DefaultUser("alice", "A")); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	rows, err := c.ViewUser(ctx, "alice")
	if err != nil {
		t.Fatalf("view alice: %v", err)
	}
	if len(rows) != 2 || rows[0].Bank != "A" || rows[1].Bank != "B" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	a := rows[0]
	if a.AdminLevel != 1 || a.Shares != 1 || a.MaxJobs != 1 || a.MaxWallPJ != 60 || a.Deleted != 0 {
		t.Errorf("unexpected defaults: %+v", a)
	}
	if a.CreationTime != fixed.Unix() || a.ModTime != fixed.Unix() {
		t.Errorf("timestamps not set from clock: %+v", a)
	}
}

func TestViewUser_NotFound(t *testing.T) {
	c := newTestClient(t)
	_, err := c.ViewUser(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditUser(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	c.now = func() time.Time { return time.Unix(100, 0) }
	_ = c.AddUser(ctx, DefaultUser("bob", "A"))
	_ = c.AddUser(ctx, DefaultUser("bob", "B"))

	c.now = func() time.Time { return time.Unix(200, 0) }
	if err := c.EditUser(ctx, "bob", UserFieldMaxJobs, "10"); err != nil {
		t.Fatalf("edit max_jobs: %v", err)
	}
	rows, _ := c.ViewUser(ctx, "bob")
	for _, r := range rows {
		if r.MaxJobs != 10 {
			t.Errorf("bank %s: max_jobs = %d, want 10", r.Bank, r.MaxJobs)
		}
		if r.ModTime != 200 || r.CreationTime != 100 {
			t.Errorf("bank %s: unexpected timestamps %d/%d", r.Bank, r.CreationTime, r.ModTime)
		}
	}

	if err := c.EditUser(ctx, "bob", UserField("password"), "x"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
	if err := c.EditUser(ctx, "bob", UserFieldShares, "lots"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err := c.EditUser(ctx, "ghost", UserFieldShares, "5"); err != nil {
		t.Errorf("editing a missing user should be a no-op, got %v", err)
	}
}

func TestParseUserField(t *testing.T) {
	for _, f := range UserFields {
		got, err := ParseUserField(string(f))
		if err != nil || got != f {
			t.Errorf("ParseUserField(%q) = %q, %v", f, got, err)
		}
	}
	for _, bad := range []string{"", "creation_time", "shares; DROP TABLE bank_table", "Shares"} {
		if _, err := ParseUserField(bad); !errors.Is(err, ErrInvalidField) {
			t.Errorf("ParseUserField(%q): expected ErrInvalidField, got %v", bad, err)
		}
	}
}

func TestDeleteUser(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_ = c.AddUser(ctx, DefaultUser("carol", "A"))
	_ = c.AddUser(ctx, DefaultUser("carol", "B"))
	_ = c.AddUser(ctx, DefaultUser("dave", "A"))

	if err := c.DeleteUser(ctx, "carol"); err != nil {
		t.Fatalf("delete carol: %v", err)
	}
	all, _ := c.ListUsers(ctx)
	if len(all) != 1 || all[0].UserName != "dave" {
		t.Fatalf("unexpected remaining associations: %+v", all)
	}
}

func strp(s string) *string { return &s }

func TestQueueLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.AddQueue(ctx, DefaultQueue("batch")); err != nil {
		t.Fatalf("add batch: %v", err)
	}
	err := c.AddQueue(ctx, DefaultQueue("batch"))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "queue_table.queue") {
		t.Errorf("duplicate error should name the colliding key, got %q", err)
	}
	q, err := c.ViewQueue(ctx, "batch")
	if err != nil {
		t.Fatalf("view batch: %v", err)
	}
	if got := strings.Join(q.Cells(), ","); got != "batch,1,1,60,0" {
		t.Fatalf("unexpected defaults %s", got)
	}

	res, err := c.EditQueue(ctx, "batch", QueueEdits{
		MinNodesPerJob: strp("-1"),
		MaxNodesPerJob: strp("many"),
		MaxTimePerJob:  strp("120"),
	})
	if err != nil {
		t.Fatalf("edit batch: %v", err)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 1 || !errors.Is(res.Skipped[0], ErrInvalidArgument) {
		t.Fatalf("unexpected edit result: %+v", res)
	}
	q, _ = c.ViewQueue(ctx, "batch")
	if got := strings.Join(q.Cells(), ","); got != "batch,NULL,1,120,0" {
		t.Fatalf("unexpected row after edit %s", got)
	}

	if _, err := c.EditQueue(ctx, "ghost", QueueEdits{Priority: strp("5")}); err != nil {
		t.Errorf("editing a missing queue should be a no-op, got %v", err)
	}
	if err := c.DeleteQueue(ctx, "batch"); err != nil {
		t.Fatalf("delete batch: %v", err)
	}
	if _, err := c.ViewQueue(ctx, "batch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPrintFullHierarchy_WorkedExample(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	for _, b := range []struct{ name, parent string }{
		{"A", ""}, {"B", "A"}, {"D", "B"}, {"E", "B"}, {"C", "A"}, {"F", "C"}, {"G", "C"},
	} {
		if err := c.AddBank(ctx, b.name, 1, b.parent); err != nil {
			t.Fatalf("add bank %s: %v", b.name, err)
		}
	}
	for _, u := range []struct{ user, bank string }{
		{"user1", "D"}, {"user2", "F"}, {"user3", "F"}, {"user4", "G"},
	} {
		if err := c.AddUser(ctx, DefaultUser(u.user, u.bank)); err != nil {
			t.Fatalf("add user %s: %v", u.user, err)
		}
	}

	want := `Bank|User|RawShares
A||1
 B||1
  D||1
   D|user1|1
  E||1
 C||1
  F||1
   F|user2|1
   F|user3|1
  G||1
   G|user4|1
`
	got, err := c.PrintFullHierarchy(ctx)
	if err != nil {
		t.Fatalf("print hierarchy: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected report:\n%s", got)
	}
}

func TestReadOnly_BlocksWrites(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_ = c.AddBank(ctx, "root", 1, "")

	enforceReadOnly(c.DB)

	if err := c.AddBank(ctx, "other", 1, ""); err == nil {
		t.Fatalf("expected write to fail on read-only client")
	}
	if err := c.EditBank(ctx, "root", 9); err == nil {
		t.Fatalf("expected update to fail on read-only client")
	}
	banks, err := c.ListBanks(ctx)
	if err != nil {
		t.Fatalf("reads should still work: %v", err)
	}
	if len(banks) != 1 || banks[0].Shares != 1 {
		t.Fatalf("unexpected banks: %+v", banks)
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if _, err := c.ListBanks(context.Background()); err == nil {
		t.Fatalf("expected error from nil client")
	}
}

func TestListBanksPaged(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_ = c.AddBank(ctx, "root", 1, "")
	for _, n := range []string{"a", "b", "c", "d"} {
		if err := c.AddBank(ctx, n, 1, "root"); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}

	page, total, err := c.ListBanksPaged(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListBanksPaged: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page) != 2 || page[0].Name != "b" || page[1].Name != "c" {
		t.Errorf("unexpected page: %+v", page)
	}

	all, err := c.ListBanks(ctx)
	if err != nil || len(all) != 5 || all[0].Name != "root" {
		t.Errorf("ListBanks = %+v, %v", all, err)
	}
}
