package inventory

import (
	"context"
	"errors"
	"fmt"

	"tasnim.dev/iam-graph/internal/aws/iam"
)

// ErrNotFound is returned when a --name filter matches no entity of a
// requested kind.
var ErrNotFound = errors.New("entity not found")

// IAMLister is the slice of the IAM client the collector uses.
type IAMLister interface {
	ListUsers(ctx context.Context) ([]iam.IAMUser, error)
	ListRoles(ctx context.Context) ([]iam.IAMRole, error)
	ListPolicies(ctx context.Context) ([]iam.IAMPolicy, error)
	GetUser(ctx context.Context, userName string) (iam.IAMUser, error)
	GetRole(ctx context.Context, roleName string) (iam.IAMRole, error)
	ListAttachedUserPolicies(ctx context.Context, userName string) ([]iam.IAMAttachedPolicy, error)
	ListUserPolicyNames(ctx context.Context, userName string) ([]string, error)
	ListGroupsForUser(ctx context.Context, userName string) ([]iam.IAMGroup, error)
	ListAttachedGroupPolicies(ctx context.Context, groupName string) ([]iam.IAMAttachedPolicy, error)
	ListGroupPolicyNames(ctx context.Context, groupName string) ([]string, error)
	ListAttachedRolePolicies(ctx context.Context, roleName string) ([]iam.IAMAttachedPolicy, error)
	ListRolePolicyNames(ctx context.Context, roleName string) ([]string, error)
}

type Collector struct {
	api IAMLister
}

func NewCollector(api IAMLister) *Collector {
	return &Collector{api: api}
}

// Collect fetches the requested entity kinds and their policy relationships.
// A non-empty name resolves exactly that entity of each requested kind and
// fails with ErrNotFound when it matches nothing. The first API error aborts
// the run; there is no partial result.
func (c *Collector) Collect(ctx context.Context, kinds Kinds, name string) (*Inventory, error) {
	inv := &Inventory{Kinds: kinds}

	if kinds.Users {
		users, err := c.collectUsers(ctx, name)
		if err != nil {
			return nil, err
		}
		inv.Users = users
	}

	if kinds.Roles {
		roles, err := c.collectRoles(ctx, name)
		if err != nil {
			return nil, err
		}
		inv.Roles = roles
	}

	if kinds.Policies {
		policies, err := c.collectPolicies(ctx, name)
		if err != nil {
			return nil, err
		}
		inv.Policies = policies
	}

	return inv, nil
}

func (c *Collector) collectUsers(ctx context.Context, name string) ([]User, error) {
	var raw []iam.IAMUser
	if name != "" {
		u, err := c.api.GetUser(ctx, name)
		if err != nil {
			if iam.IsNotFound(err) {
				return nil, fmt.Errorf("%w: user %q", ErrNotFound, name)
			}
			return nil, err
		}
		raw = []iam.IAMUser{u}
	} else {
		var err error
		raw, err = c.api.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
	}

	users := make([]User, 0, len(raw))
	for _, u := range raw {
		user, err := c.collectUser(ctx, u.Name)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (c *Collector) collectUser(ctx context.Context, userName string) (User, error) {
	attached, err := c.api.ListAttachedUserPolicies(ctx, userName)
	if err != nil {
		return User{}, err
	}

	inline, err := c.api.ListUserPolicyNames(ctx, userName)
	if err != nil {
		return User{}, err
	}

	rawGroups, err := c.api.ListGroupsForUser(ctx, userName)
	if err != nil {
		return User{}, err
	}

	groups := make([]Group, 0, len(rawGroups))
	for _, g := range rawGroups {
		group, err := c.collectGroup(ctx, g.Name)
		if err != nil {
			return User{}, err
		}
		groups = append(groups, group)
	}

	return User{
		Name:             userName,
		AttachedPolicies: policyNames(attached),
		InlinePolicies:   inline,
		Groups:           groups,
	}, nil
}

func (c *Collector) collectGroup(ctx context.Context, groupName string) (Group, error) {
	attached, err := c.api.ListAttachedGroupPolicies(ctx, groupName)
	if err != nil {
		return Group{}, err
	}

	inline, err := c.api.ListGroupPolicyNames(ctx, groupName)
	if err != nil {
		return Group{}, err
	}

	return Group{
		Name:             groupName,
		AttachedPolicies: policyNames(attached),
		InlinePolicies:   inline,
	}, nil
}

func (c *Collector) collectRoles(ctx context.Context, name string) ([]Role, error) {
	var raw []iam.IAMRole
	if name != "" {
		r, err := c.api.GetRole(ctx, name)
		if err != nil {
			if iam.IsNotFound(err) {
				return nil, fmt.Errorf("%w: role %q", ErrNotFound, name)
			}
			return nil, err
		}
		raw = []iam.IAMRole{r}
	} else {
		var err error
		raw, err = c.api.ListRoles(ctx)
		if err != nil {
			return nil, err
		}
	}

	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		attached, err := c.api.ListAttachedRolePolicies(ctx, r.Name)
		if err != nil {
			return nil, err
		}

		inline, err := c.api.ListRolePolicyNames(ctx, r.Name)
		if err != nil {
			return nil, err
		}

		roles = append(roles, Role{
			Name:             r.Name,
			AttachedPolicies: policyNames(attached),
			InlinePolicies:   inline,
		})
	}
	return roles, nil
}

func (c *Collector) collectPolicies(ctx context.Context, name string) ([]Policy, error) {
	raw, err := c.api.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}

	policies := make([]Policy, 0, len(raw))
	for _, p := range raw {
		// GetPolicy wants an ARN the caller doesn't have, so a name
		// filter is an exact-match scan over the listing.
		if name != "" && p.Name != name {
			continue
		}
		policies = append(policies, Policy{
			Name:             p.Name,
			ARN:              p.ARN,
			AttachmentCount:  p.AttachmentCount,
			DefaultVersionID: p.DefaultVersionID,
		})
	}

	if name != "" && len(policies) == 0 {
		return nil, fmt.Errorf("%w: policy %q", ErrNotFound, name)
	}
	return policies, nil
}

func policyNames(policies []iam.IAMAttachedPolicy) []string {
	names := make([]string, 0, len(policies))
	for _, p := range policies {
		names = append(names, p.Name)
	}
	return names
}
