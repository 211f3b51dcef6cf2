package constraint

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordprob/wordprob/masking"
)

func TestSystemRoundTrip(t *testing.T) {
	sys, err := Build(marbleScenario(), masking.Initial("A", "marbles"))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = sys.WriteTo(&buf)
	require.NoError(t, err)

	var got System
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(sys, &got, cmpopts.IgnoreUnexported(System{})); diff != "" {
		t.Fatalf("system mismatch after round trip (-want +got):\n%s", diff)
	}

	// The rebuilt index must resolve names like the original.
	assert.Equal(t, sys.VariableIndex(InitialName("A", "marbles")),
		got.VariableIndex(InitialName("A", "marbles")))
}

func TestSystemWriteDeterministic(t *testing.T) {
	sys, err := Build(marbleScenario(), masking.Transfers(0))
	require.NoError(t, err)

	var first, second bytes.Buffer
	_, err = sys.WriteTo(&first)
	require.NoError(t, err)
	_, err = sys.WriteTo(&second)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestSystemReadVersionMismatch(t *testing.T) {
	data, err := cbor.Marshal(serializedSystem{Version: "99.0.0"})
	require.NoError(t, err)

	var got System
	_, err = got.ReadFrom(bytes.NewReader(data))
	assert.ErrorContains(t, err, "incompatible serialization version")
}

func TestSystemReadBadVersionHeader(t *testing.T) {
	data, err := cbor.Marshal(serializedSystem{Version: "not-a-version"})
	require.NoError(t, err)

	var got System
	_, err = got.ReadFrom(bytes.NewReader(data))
	assert.ErrorContains(t, err, "invalid version header")
}
