package near

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockIDJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id   BlockID
		json string
		str  string
	}{
		"latest": {BlockID{}, `null`, "latest"},
		"height": {BlockHeight(18446744073709551615), `18446744073709551615`, "18446744073709551615"},
		"zero":   {BlockHeight(0), `0`, "0"},
		"hash":   {BlockHash("EPnLgE7iEq9s7yTkos96M3cWymH5avBAPm3qx3NXqR8H"), `"EPnLgE7iEq9s7yTkos96M3cWymH5avBAPm3qx3NXqR8H"`, "EPnLgE7iEq9s7yTkos96M3cWymH5avBAPm3qx3NXqR8H"},
	}
	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(test.id)
			require.NoError(t, err)
			require.Equal(t, test.json, string(b))
			require.Equal(t, test.str, test.id.String())

			var id BlockID
			require.NoError(t, json.Unmarshal(b, &id))
			require.Equal(t, test.id, id)
		})
	}

	var id BlockID
	require.Error(t, json.Unmarshal([]byte(`{"height": 1}`), &id))
	require.Error(t, json.Unmarshal([]byte(`-1`), &id))
}

func TestBlockReference(t *testing.T) {
	t.Parallel()

	require.True(t, BlockReference{}.IsZero())
	require.True(t, AtBlock(BlockID{}).IsZero())
	require.False(t, AtHeight(0).IsZero())
	require.Equal(t, "block_id=0", AtHeight(0).String())
	require.Equal(t, "finality=final", AtFinality(FinalityFinal).String())
	require.Equal(t, "sync_checkpoint=genesis", AtSyncCheckpoint("genesis").String())
	require.Equal(t, "none", BlockReference{}.String())

	_, err := BlockReference{}.request()
	require.ErrorIs(t, err, ErrMissingBlockReference)
}
