package kernel_test

import (
	"testing"

	"transferops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrgID(t *testing.T) {
	t.Run("creates_valid_org_id", func(t *testing.T) {
		org, err := kernel.NewOrgID("org-acme")

		require.NoError(t, err)
		require.NoError(t, org.Validate())
		assert.Equal(t, "org-acme", org.String())
	})

	t.Run("trims_surrounding_whitespace", func(t *testing.T) {
		org, err := kernel.NewOrgID("  org-acme\t")

		require.NoError(t, err)
		assert.Equal(t, "org-acme", org.String())
	})

	t.Run("rejects_empty_value", func(t *testing.T) {
		_, err := kernel.NewOrgID("")
		require.Error(t, err)
	})

	t.Run("rejects_whitespace_only_value", func(t *testing.T) {
		_, err := kernel.NewOrgID("   \t\n")
		require.Error(t, err)
	})
}

func TestOrgID_IsEqual(t *testing.T) {
	orgA, err := kernel.NewOrgID("org-a")
	require.NoError(t, err)
	orgA2, err := kernel.NewOrgID("org-a")
	require.NoError(t, err)
	orgB, err := kernel.NewOrgID("org-b")
	require.NoError(t, err)

	assert.True(t, orgA.IsEqual(orgA2))
	assert.False(t, orgA.IsEqual(orgB))
}

func TestOrgID_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var org kernel.OrgID

		err := org.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrOrgIDIsNotConstructed, err)
	})
}
