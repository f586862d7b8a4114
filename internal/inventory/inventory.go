// Package inventory builds the in-memory record of IAM principals and their
// policy relationships that the exporters serialize.
package inventory

import (
	"fmt"
	"strings"
)

// Kinds selects which entity kinds a collection run fetches.
type Kinds struct {
	Users    bool
	Roles    bool
	Policies bool
}

// ParseKinds parses an --entities flag value: "all" or a comma-separated
// subset of users,roles,policies.
func ParseKinds(s string) (Kinds, error) {
	if s == "" || s == "all" {
		return Kinds{Users: true, Roles: true, Policies: true}, nil
	}

	var kinds Kinds
	for _, tok := range strings.Split(s, ",") {
		switch strings.TrimSpace(tok) {
		case "users":
			kinds.Users = true
		case "roles":
			kinds.Roles = true
		case "policies":
			kinds.Policies = true
		default:
			return Kinds{}, fmt.Errorf("unknown entity kind %q (expected users, roles or policies)", strings.TrimSpace(tok))
		}
	}
	return kinds, nil
}

// Inventory is the result of one collection run. Entities are held in
// slices, in API return order, so that serializing the same responses twice
// produces identical bytes.
type Inventory struct {
	Kinds    Kinds
	Users    []User
	Roles    []Role
	Policies []Policy
}

type User struct {
	Name             string
	AttachedPolicies []string
	InlinePolicies   []string
	Groups           []Group
}

type Group struct {
	Name             string
	AttachedPolicies []string
	InlinePolicies   []string
}

type Role struct {
	Name             string
	AttachedPolicies []string
	InlinePolicies   []string
}

type Policy struct {
	Name             string
	ARN              string
	AttachmentCount  int
	DefaultVersionID string
}
