package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fluxacct/client/acctdb"
	"fluxacct/config"
	"fluxacct/internal/pkg/model"
)

type fakeDirectory struct {
	entries []model.DirectoryUser
	err     error
	calls   int
}

func (f *fakeDirectory) LookupUsers(_ context.Context, names []string) ([]model.DirectoryUser, error) {
	f.calls++
	return f.entries, f.err
}

func newTestServer(t *testing.T, dir Directory) (*gin.Engine, *acctdb.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := acctdb.New(config.AcctDB{Driver: config.DriverSQLite, Path: ":memory:", AutoMigrate: true}, logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	r := gin.New()
	NewRouter(db, dir, logger).Register(r)
	return r, db
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type assocBody struct {
	UserName  string              `json:"user_name"`
	Bank      string              `json:"bank"`
	MaxJobs   int64               `json:"max_jobs"`
	MaxWallPJ int64               `json:"max_wall_pj"`
	LDAP      map[string][]string `json:"ldap_attrs"`
}

func TestAddAndViewUser(t *testing.T) {
	r, _ := newTestServer(t, nil)

	if w := do(r, http.MethodPost, "/api/v1/users", `{"user_name":"alice","bank":"A","max_jobs":5}`); w.Code != http.StatusCreated {
		t.Fatalf("add: status %d body %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/api/v1/users", `{"user_name":"alice","bank":"A"}`); w.Code != http.StatusConflict {
		t.Fatalf("duplicate add: status %d, want 409", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/users", `{"user_name":"alice"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing bank: status %d, want 400", w.Code)
	}

	w := do(r, http.MethodGet, "/api/v1/users/alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("view: status %d", w.Code)
	}
	var body struct {
		Results []assocBody `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].MaxJobs != 5 || body.Results[0].MaxWallPJ != 60 {
		t.Errorf("unexpected associations %+v", body.Results)
	}
	if body.Results[0].LDAP != nil {
		t.Errorf("no directory configured, got attrs %v", body.Results[0].LDAP)
	}

	if w := do(r, http.MethodGet, "/api/v1/users/nobody", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing user: status %d, want 404", w.Code)
	}
}

func TestViewUser_WithDirectory(t *testing.T) {
	dir := &fakeDirectory{entries: []model.DirectoryUser{{Name: "alice", Attrs: map[string][]string{"mail": {"alice@example.org"}}}}}
	r, db := newTestServer(t, dir)
	_ = db.AddUser(context.Background(), acctdb.DefaultUser("alice", "A"))
	_ = db.AddUser(context.Background(), acctdb.DefaultUser("alice", "B"))

	w := do(r, http.MethodGet, "/api/v1/users/alice", "")
	var body struct {
		Results []assocBody `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 2 {
		t.Fatalf("expected two associations, got %d", len(body.Results))
	}
	for _, a := range body.Results {
		if a.LDAP["mail"][0] != "alice@example.org" {
			t.Errorf("bank %s: attrs not merged: %v", a.Bank, a.LDAP)
		}
	}
	if dir.calls != 1 {
		t.Errorf("expected one directory lookup, got %d", dir.calls)
	}
}

func TestViewUser_DirectoryFailureDegrades(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("ldap down")}
	r, db := newTestServer(t, dir)
	_ = db.AddUser(context.Background(), acctdb.DefaultUser("alice", "A"))

	if w := do(r, http.MethodGet, "/api/v1/users/alice", ""); w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
}

func TestEditUser(t *testing.T) {
	r, db := newTestServer(t, nil)
	_ = db.AddUser(context.Background(), acctdb.DefaultUser("bob", "A"))

	cases := []struct {
		body string
		want int
	}{
		{`{"field":"max_jobs","value":"9"}`, http.StatusNoContent},
		{`{"field":"password","value":"x"}`, http.StatusBadRequest},
		{`{"field":"shares","value":"many"}`, http.StatusBadRequest},
		{`{"field":"shares"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w := do(r, http.MethodPatch, "/api/v1/users/bob", tc.body); w.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.body, w.Code, tc.want)
		}
	}
	rows, _ := db.ViewUser(context.Background(), "bob")
	if rows[0].MaxJobs != 9 {
		t.Errorf("max_jobs = %d, want 9", rows[0].MaxJobs)
	}
}

func TestDeleteAndListUsers(t *testing.T) {
	r, db := newTestServer(t, nil)
	_ = db.AddUser(context.Background(), acctdb.DefaultUser("carol", "A"))
	_ = db.AddUser(context.Background(), acctdb.DefaultUser("dave", "A"))

	if w := do(r, http.MethodDelete, "/api/v1/users/carol", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
	w := do(r, http.MethodGet, "/api/v1/users", "")
	var body struct {
		Count   int         `json:"count"`
		Results []assocBody `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || len(body.Results) != 1 || body.Results[0].UserName != "dave" {
		t.Errorf("unexpected listing %+v", body)
	}
}
