package models

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOtpCode(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "123456", wantErr: false},
		{name: "leading zeros accepted on input", value: "012345", wantErr: false},
		{name: "too short", value: "12345", wantErr: true},
		{name: "too long", value: "1234567", wantErr: true},
		{name: "letters", value: "12a456", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "spaces", value: " 12345", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := NewOtpCode(tc.value)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.value, code.String())
			}
		})
	}
}

func TestGenerateOtpCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOtpCode()
		require.NoError(t, err)

		require.Len(t, code.String(), 6)
		n, err := strconv.Atoi(code.String())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
