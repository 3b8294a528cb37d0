package sequencer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateStarknetErrorCodes(t *testing.T) {
	cases := []struct {
		code StarknetErrorCode
		want *jsonrpcErrorExpectation
	}{
		{CodeOutOfRangeBlockHash, expect(24, "Invalid block hash")},
		{CodeBlockNotFound, expect(24, "Invalid block hash")},
		{CodeOutOfRangeContractAddr, expect(20, "Contract not found")},
		{CodeUninitializedContract, expect(20, "Contract not found")},
		{CodeOutOfRangeTransactionHash, expect(25, "Invalid transaction hash")},
		{CodeOutOfRangeStorageKey, expect(23, "Invalid storage key")},
		{CodeTransactionFailed, expect(22, "Invalid call data")},
		{CodeEntryPointNotFound, expect(21, "Invalid message selector")},
	}

	for _, tc := range cases {
		err := &StarknetError{Code: tc.code, Message: "boom"}
		got := Translate(err)
		require.Equal(t, tc.want.code, got.Code, "code for %s", tc.code)
		require.Equal(t, tc.want.message, got.Message, "message for %s", tc.code)
	}
}

func TestTranslateMalformedRequestCarveOut(t *testing.T) {
	withRange := &StarknetError{
		Code:    CodeMalformedRequest,
		Message: "Block ID should be in the range [0, 12345).",
	}
	got := Translate(withRange)
	require.Equal(t, 26, got.Code)
	require.Equal(t, "Invalid block number", got.Message)

	withoutRange := &StarknetError{
		Code:    CodeMalformedRequest,
		Message: "completely unrelated malformed request",
	}
	got = Translate(withoutRange)
	require.Equal(t, 0, got.Code)
	require.Contains(t, got.Data, "unrelated")
}

func TestTranslateGenericDomains(t *testing.T) {
	for _, err := range []error{
		&DeserializationError{Cause: errors.New("bad json")},
		&ParseError{Cause: errors.New("html page")},
		&TransportError{Cause: errors.New("connection reset")},
		&StarknetError{Code: CodeSchemaValidationError, Message: "nope"},
	} {
		got := Translate(err)
		require.Equal(t, 0, got.Code)
		require.NotEmpty(t, got.Data)
	}
}

type jsonrpcErrorExpectation struct {
	code    int
	message string
}

func expect(code int, message string) *jsonrpcErrorExpectation {
	return &jsonrpcErrorExpectation{code: code, message: message}
}
