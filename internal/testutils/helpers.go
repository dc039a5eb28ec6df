package testutils

import (
	"testing"

	"github.com/aretw0/baristabot/internal/runtime"
	"github.com/aretw0/baristabot/pkg/catalog"
	"github.com/aretw0/baristabot/pkg/menu"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/registry"
	"github.com/stretchr/testify/require"
)

// NewRegistry builds the default catalog registry backed by the embedded menu.
// It fails the test immediately on error.
func NewRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := catalog.NewRegistry(menu.NewProvider(menu.Default()))
	require.NoError(t, err, "Failed to build default registry")
	return reg
}

// NewEngine builds a runtime engine over the default registry.
// Placed orders always get the token "3".
func NewEngine(t *testing.T, reasoner ports.Reasoner, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()

	opts = append([]runtime.EngineOption{
		runtime.WithTokenGenerator(func() string { return "3" }),
	}, opts...)
	eng, err := runtime.NewEngine(reasoner, NewRegistry(t), opts...)
	require.NoError(t, err, "Failed to build engine")
	return eng
}

// MenuText returns the rendered embedded menu, as returned by the menu lookup.
func MenuText() string {
	return menu.Default().Render()
}
