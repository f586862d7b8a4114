// Package export serializes a collected inventory to YAML and to Graphviz
// DOT text.
package export

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"tasnim.dev/iam-graph/internal/inventory"
)

// WriteYAML encodes the inventory in collection order: requested kinds as
// top-level keys, then entity name, then attributes. yaml.v3 sorts plain
// maps, so the document is built from explicit nodes to keep the order the
// collector produced.
func WriteYAML(inv *inventory.Inventory, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument(inv)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func yamlDocument(inv *inventory.Inventory) *yaml.Node {
	root := mappingNode()

	if inv.Kinds.Users {
		users := mappingNode()
		for _, u := range inv.Users {
			appendPair(users, u.Name, userNode(u))
		}
		appendPair(root, "Users", users)
	}

	if inv.Kinds.Roles {
		roles := mappingNode()
		for _, r := range inv.Roles {
			appendPair(roles, r.Name, principalNode(r.AttachedPolicies, r.InlinePolicies))
		}
		appendPair(root, "Roles", roles)
	}

	if inv.Kinds.Policies {
		policies := mappingNode()
		for _, p := range inv.Policies {
			appendPair(policies, p.Name, policyNode(p))
		}
		appendPair(root, "Policies", policies)
	}

	return root
}

func userNode(u inventory.User) *yaml.Node {
	node := principalNode(u.AttachedPolicies, u.InlinePolicies)

	groups := mappingNode()
	for _, g := range u.Groups {
		appendPair(groups, g.Name, principalNode(g.AttachedPolicies, g.InlinePolicies))
	}
	appendPair(node, "Groups", groups)

	return node
}

func principalNode(attached, inline []string) *yaml.Node {
	node := mappingNode()
	appendPair(node, "AttachedPolicies", sequenceNode(attached))
	appendPair(node, "InlinePolicies", sequenceNode(inline))
	return node
}

func policyNode(p inventory.Policy) *yaml.Node {
	node := mappingNode()
	appendPair(node, "Arn", scalarNode(p.ARN))
	appendPair(node, "AttachmentCount", intNode(p.AttachmentCount))
	appendPair(node, "DefaultVersionId", scalarNode(p.DefaultVersionID))
	return node
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalarNode(key), value)
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func sequenceNode(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, scalarNode(v))
	}
	return seq
}
