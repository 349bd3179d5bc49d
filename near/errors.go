package near

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrUnsupportedOperation is returned by Ethereum-style methods that have
	// no NEAR equivalent.
	ErrUnsupportedOperation = errors.New("method not compatible with Near Protocol RPC")

	// ErrMissingBlockReference is returned when a BlockReference has no selector set.
	ErrMissingBlockReference = errors.New("block reference must set a block id, finality or sync checkpoint")

	errNoRPCClient = errors.New("rpc client is required")
)

// ErrorKind classifies an RPC-level error.
type ErrorKind string

// Known error kinds.
const (
	AccountDoesNotExist   ErrorKind = "AccountDoesNotExist"
	AccessKeyDoesNotExist ErrorKind = "AccessKeyDoesNotExist"
	CodeDoesNotExist      ErrorKind = "CodeDoesNotExist"
	MethodNotFound        ErrorKind = "MethodNotFound"
	InvalidNonce          ErrorKind = "InvalidNonce"
	UntypedError          ErrorKind = "UntypedError"
)

var errorKindPatterns = []struct {
	re   *regexp.Regexp
	kind ErrorKind
}{
	{regexp.MustCompile(`^account .*? does not exist while viewing$`), AccountDoesNotExist},
	{regexp.MustCompile(`^Account .*? doesn't exist$`), AccountDoesNotExist},
	{regexp.MustCompile(`^access key .*? does not exist while viewing$`), AccessKeyDoesNotExist},
	{regexp.MustCompile(`wasm execution failed with error: FunctionCallError\(CompilationError\(CodeDoesNotExist`), CodeDoesNotExist},
	{regexp.MustCompile(`wasm execution failed with error: CompilationError\(CodeDoesNotExist`), CodeDoesNotExist},
	{regexp.MustCompile(`wasm execution failed with error: FunctionCallError\(MethodResolveError\(MethodNotFound`), MethodNotFound},
	{regexp.MustCompile(`wasm execution failed with error: MethodResolveError\(MethodNotFound`), MethodNotFound},
	{regexp.MustCompile(`Transaction nonce \d+ must be larger than nonce of the used access key \d+`), InvalidNonce},
}

// ErrorKindFromMessage derives an ErrorKind from an error message. When no
// pattern matches, name is used if set, and UntypedError otherwise.
func ErrorKindFromMessage(message, name string) ErrorKind {
	for _, p := range errorKindPatterns {
		if p.re.MatchString(message) {
			return p.kind
		}
	}
	if name != "" {
		return ErrorKind(name)
	}
	return UntypedError
}

// TypedError is an RPC-level error carried inside a successful response.
type TypedError struct {
	Kind    ErrorKind
	Message string
	// Result is the full raw result the error was found in.
	Result json.RawMessage
}

func (e *TypedError) Error() string {
	return e.Message
}

// typedErrorFromResult returns a *TypedError if the result carries a truthy
// error field, and nil otherwise.
func typedErrorFromResult(result json.RawMessage) error {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(result, &envelope); err != nil {
		return nil
	}
	if !isTruthy(envelope.Error) {
		return nil
	}
	message, name := errorMessage(envelope.Error)
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(result)
	}
	return &TypedError{
		Kind:    ErrorKindFromMessage(message, name),
		Message: fmt.Sprintf("querying failed: %s.\n%s", message, pretty.String()),
		Result:  result,
	}
}

func errorMessage(raw json.RawMessage) (message, name string) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, ""
	}
	var obj struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message, obj.Name
	}
	return string(raw), obj.Name
}

func isTruthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", `""`:
		return false
	}
	// Numbers are falsy when zero, in any notation.
	if c := trimmed[0]; c == '-' || (c >= '0' && c <= '9') {
		if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
			return f != 0
		}
	}
	return true
}
