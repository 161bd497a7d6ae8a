// Package hierarchy rebuilds the bank tree from flat bank_table and
// association_table rows and renders it as the pipe-delimited report
// printed by "flux-account print-hierarchy".
//
// The tree is derived on every call; nothing about it is persisted.
package hierarchy

import (
	"io"
	"strconv"
	"strings"

	"fluxacct/internal/pkg/model"
)

// Header is the first line of every report.
const Header = "Bank|User|RawShares"

// User is an association attached directly under a bank.
type User struct {
	Name   string `json:"user"`
	Shares int64  `json:"shares"`
}

// Node is a bank together with its directly associated users and its child
// banks, both in stored row order.
type Node struct {
	Bank     string  `json:"bank"`
	Shares   int64   `json:"shares"`
	Users    []User  `json:"users"`
	Children []*Node `json:"children"`
}

// Tree holds every root bank. Banks whose parent does not exist are not
// reachable from any root and therefore not part of the tree.
type Tree struct {
	Roots []*Node `json:"roots"`
}

// Build reconstructs the tree. Rows must be given in the order they were
// stored; that order decides the order of roots, children and users.
func Build(banks model.Banks, assocs model.Associations) *Tree {
	byName := make(map[string]model.Bank, len(banks))
	children := make(map[string][]string)
	roots := make([]string, 0)
	for _, b := range banks {
		byName[b.Name] = b
		if b.IsRoot() {
			roots = append(roots, b.Name)
			continue
		}
		children[b.ParentBank] = append(children[b.ParentBank], b.Name)
	}

	users := make(map[string][]User)
	for _, a := range assocs {
		users[a.Bank] = append(users[a.Bank], User{Name: a.UserName, Shares: a.Shares})
	}

	// A bank deleted and re-added under its own descendant leaves a cycle
	// behind; visited stops the walk from looping on it.
	visited := make(map[string]bool, len(banks))
	var build func(name string) *Node
	build = func(name string) *Node {
		visited[name] = true
		b := byName[name]
		n := &Node{
			Bank:     b.Name,
			Shares:   b.Shares,
			Users:    users[name],
			Children: make([]*Node, 0, len(children[name])),
		}
		if n.Users == nil {
			n.Users = []User{}
		}
		for _, child := range children[name] {
			if visited[child] {
				continue
			}
			n.Children = append(n.Children, build(child))
		}
		return n
	}

	t := &Tree{Roots: make([]*Node, 0, len(roots))}
	for _, r := range roots {
		t.Roots = append(t.Roots, build(r))
	}
	return t
}

// Walk visits every node depth-first in pre-order. Roots are at depth 0.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range t.Roots {
		walk(r, 0)
	}
}

// Render returns the full report. Each bank line is indented by its depth,
// followed by its users one level deeper, followed by its children. Every
// line, the last included, ends in a newline.
func (t *Tree) Render() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the report produced by Render to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteByte('\n')
	t.Walk(func(n *Node, depth int) {
		writeLine(&sb, depth, n.Bank, "", n.Shares)
		for _, u := range n.Users {
			writeLine(&sb, depth+1, n.Bank, u.Name, u.Shares)
		}
	})
	written, err := io.WriteString(w, sb.String())
	return int64(written), err
}

func writeLine(sb *strings.Builder, depth int, bank, user string, shares int64) {
	sb.WriteString(strings.Repeat(" ", depth))
	sb.WriteString(bank)
	sb.WriteByte('|')
	sb.WriteString(user)
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatInt(shares, 10))
	sb.WriteByte('\n')
}
