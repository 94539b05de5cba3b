package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldera-engine/caldera/internal/core/universe"
)

func TestComponentUID_Validity(t *testing.T) {
	require.False(t, InvalidComponent.IsValid())
	require.Equal(t, universe.InvalidEntity, InvalidComponent.Entity)

	c := ComponentUID{
		Entity: universe.Entity(3),
		Type:   universe.TypeFromName("physics-body"),
		Index:  0,
	}
	require.True(t, c.IsValid())
}
