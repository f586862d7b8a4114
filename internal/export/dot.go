package export

import (
	"fmt"
	"io"
	"strings"

	"tasnim.dev/iam-graph/internal/inventory"
)

// WriteDOT emits the directed relationship graph: one node per entity, one
// edge per policy attachment and group membership. Output depends only on
// the inventory, so the same input always yields identical bytes.
func WriteDOT(inv *inventory.Inventory, w io.Writer) error {
	var b strings.Builder

	b.WriteString("digraph IAM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=rectangle, style=filled, fillcolor=white];\n")

	for _, u := range inv.Users {
		fmt.Fprintf(&b, "  %q [label=\"User: %s\"];\n", u.Name, u.Name)
		writePolicyEdges(&b, u.Name, u.AttachedPolicies, u.InlinePolicies)

		for _, g := range u.Groups {
			fmt.Fprintf(&b, "  %q -> %q [label=\"member of\"];\n", u.Name, g.Name)
			writePolicyEdges(&b, g.Name, g.AttachedPolicies, g.InlinePolicies)
		}
	}

	for _, r := range inv.Roles {
		fmt.Fprintf(&b, "  %q [label=\"Role: %s\", shape=oval];\n", r.Name, r.Name)
		writePolicyEdges(&b, r.Name, r.AttachedPolicies, r.InlinePolicies)
	}

	for _, p := range inv.Policies {
		fmt.Fprintf(&b, "  %q [label=\"Policy: %s\", shape=note];\n", p.Name, p.Name)
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing DOT: %w", err)
	}
	return nil
}

func writePolicyEdges(b *strings.Builder, from string, attached, inline []string) {
	for _, policy := range attached {
		fmt.Fprintf(b, "  %q -> %q [label=\"has policy\"];\n", from, policy)
	}
	for _, policy := range inline {
		fmt.Fprintf(b, "  %q -> %q [label=\"has inline policy\"];\n", from, policy)
	}
}
