package near

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		name    string
		kind    ErrorKind
	}{
		{"account alice.near does not exist while viewing", "", AccountDoesNotExist},
		{"Account bob.near doesn't exist", "", AccountDoesNotExist},
		{"access key ed25519:abc does not exist while viewing", "", AccessKeyDoesNotExist},
		{"wasm execution failed with error: FunctionCallError(CompilationError(CodeDoesNotExist { account_id: \"a\" }))", "", CodeDoesNotExist},
		{"wasm execution failed with error: CompilationError(CodeDoesNotExist { account_id: \"a\" })", "", CodeDoesNotExist},
		{"wasm execution failed with error: FunctionCallError(MethodResolveError(MethodNotFound))", "", MethodNotFound},
		{"wasm execution failed with error: MethodResolveError(MethodNotFound)", "", MethodNotFound},
		{"Transaction nonce 5 must be larger than nonce of the used access key 7", "", InvalidNonce},
		{"something else", "TimeoutError", ErrorKind("TimeoutError")},
		{"something else", "", UntypedError},
	}
	for _, test := range tests {
		require.Equal(t, test.kind, ErrorKindFromMessage(test.message, test.name), test.message)
	}
}

func TestTypedErrorFromResult(t *testing.T) {
	t.Parallel()

	require.NoError(t, typedErrorFromResult(json.RawMessage(`{"amount": "1"}`)))
	require.NoError(t, typedErrorFromResult(json.RawMessage(`{"error": 0}`)))
	require.NoError(t, typedErrorFromResult(json.RawMessage(`[1, 2]`)))
	for _, zero := range []string{"0", "0.0", "-0", "0e0", "-0.0E+3"} {
		require.NoError(t, typedErrorFromResult(json.RawMessage(`{"error": `+zero+`}`)), zero)
	}
	require.Error(t, typedErrorFromResult(json.RawMessage(`{"error": 1.5}`)))
	require.Error(t, typedErrorFromResult(json.RawMessage(`{"error": "0"}`)))

	err := typedErrorFromResult(json.RawMessage(`{"error":"account x.near does not exist while viewing"}`))
	require.Error(t, err)
	typed, ok := err.(*TypedError)
	require.True(t, ok)
	require.Equal(t, AccountDoesNotExist, typed.Kind)
	require.Equal(t, "querying failed: account x.near does not exist while viewing.\n{\n  \"error\": \"account x.near does not exist while viewing\"\n}", typed.Error())
}
