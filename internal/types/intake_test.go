//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectIntake_Validate(t *testing.T) {
	t.Run("required fields present", func(t *testing.T) {
		in := &ProjectIntake{ClientName: "Acme", ProjectType: "Logo Design"}
		assert.NoError(t, in.Validate())
	})

	t.Run("missing client name", func(t *testing.T) {
		in := &ProjectIntake{ProjectType: "Logo Design"}
		err := in.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ClientName")
	})

	t.Run("missing project type", func(t *testing.T) {
		in := &ProjectIntake{ClientName: "Acme"}
		err := in.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ProjectType")
	})

	t.Run("negative budget is accepted", func(t *testing.T) {
		budget := -100.0
		in := &ProjectIntake{ClientName: "Acme", ProjectType: "Logo Design", Budget: &budget}
		assert.NoError(t, in.Validate())
	})
}

func TestProjectIntake_Clone(t *testing.T) {
	budget := 5000.0
	in := ProjectIntake{ClientName: "Acme", ProjectType: "Logo Design", Budget: &budget}

	cp := in.Clone()
	require.NotNil(t, cp.Budget)
	assert.Equal(t, 5000.0, *cp.Budget)

	*in.Budget = 1
	assert.Equal(t, 5000.0, *cp.Budget, "clone must not alias the original budget")
}
