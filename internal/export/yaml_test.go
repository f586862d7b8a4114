package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tasnim.dev/iam-graph/internal/inventory"
)

func TestWriteYAML_PreservesCollectionOrder(t *testing.T) {
	inv := &inventory.Inventory{
		Kinds: inventory.Kinds{Users: true},
		Users: []inventory.User{
			{Name: "zeta"},
			{Name: "alpha"},
		},
	}

	var b strings.Builder
	require.NoError(t, WriteYAML(inv, &b))
	out := b.String()

	// zeta was collected first, so it serializes first even though a
	// sorted map would put alpha ahead.
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
}

func TestWriteYAML_RequestedKindsOnly(t *testing.T) {
	inv := &inventory.Inventory{
		Kinds: inventory.Kinds{Users: true},
		Users: []inventory.User{{Name: "alice"}},
	}

	var b strings.Builder
	require.NoError(t, WriteYAML(inv, &b))
	out := b.String()

	assert.Contains(t, out, "Users:")
	assert.NotContains(t, out, "Roles:")
	assert.NotContains(t, out, "Policies:")
}

func TestWriteYAML_EmptyKindStillPresent(t *testing.T) {
	inv := &inventory.Inventory{
		Kinds: inventory.Kinds{Users: true, Roles: true},
	}

	var b strings.Builder
	require.NoError(t, WriteYAML(inv, &b))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(b.String()), &doc))
	require.Contains(t, doc, "Users")
	require.Contains(t, doc, "Roles")
	assert.NotContains(t, doc, "Policies")
}

func TestWriteYAML_Content(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteYAML(sampleInventory(), &b))

	var doc struct {
		Users map[string]struct {
			AttachedPolicies []string `yaml:"AttachedPolicies"`
			InlinePolicies   []string `yaml:"InlinePolicies"`
			Groups           map[string]struct {
				AttachedPolicies []string `yaml:"AttachedPolicies"`
				InlinePolicies   []string `yaml:"InlinePolicies"`
			} `yaml:"Groups"`
		} `yaml:"Users"`
		Roles map[string]struct {
			AttachedPolicies []string `yaml:"AttachedPolicies"`
			InlinePolicies   []string `yaml:"InlinePolicies"`
		} `yaml:"Roles"`
		Policies map[string]struct {
			Arn              string `yaml:"Arn"`
			AttachmentCount  int    `yaml:"AttachmentCount"`
			DefaultVersionID string `yaml:"DefaultVersionId"`
		} `yaml:"Policies"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(b.String()), &doc))

	alice, ok := doc.Users["alice"]
	require.True(t, ok)
	assert.Equal(t, []string{"AdminPolicy"}, alice.AttachedPolicies)
	assert.Empty(t, alice.InlinePolicies)

	admins, ok := alice.Groups["admins"]
	require.True(t, ok)
	assert.Equal(t, []string{"GroupPolicy"}, admins.AttachedPolicies)
	assert.Equal(t, []string{"audit-inline"}, admins.InlinePolicies)

	role, ok := doc.Roles["deploy-role"]
	require.True(t, ok)
	assert.Equal(t, []string{"DeployAccess"}, role.AttachedPolicies)

	policy, ok := doc.Policies["policy-a"]
	require.True(t, ok)
	assert.Equal(t, "arn:aws:iam::123456789012:policy/policy-a", policy.Arn)
}

func TestWriteYAML_Idempotent(t *testing.T) {
	inv := sampleInventory()

	var first, second strings.Builder
	require.NoError(t, WriteYAML(inv, &first))
	require.NoError(t, WriteYAML(inv, &second))

	assert.Equal(t, first.String(), second.String())
}
