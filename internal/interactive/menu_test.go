package interactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioOptions(t *testing.T) {
	t.Parallel()

	names := []string{"content", "commits", "branches"}

	var invoked []string
	options := ScenarioOptions(names, func(name string) Action {
		return func() error {
			invoked = append(invoked, name)
			return nil
		}
	})

	require.Len(t, options, len(names)+1)

	for i, name := range names {
		assert.Equal(t, "Run "+name, options[i].Name)
		assert.Contains(t, options[i].Description, name)
	}

	last := options[len(options)-1]
	assert.Equal(t, "Run all", last.Name)

	// Each entry's action carries its own scenario name.
	require.NoError(t, options[1].Action())
	require.NoError(t, last.Action())
	assert.Equal(t, []string{"commits", "all"}, invoked)
}
