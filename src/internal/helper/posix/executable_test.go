// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetExecutableName tests the GetExecutableName function for cross-platform compatibility.
func TestGetExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "Absolute path",
			args:     []string{"/usr/local/bin/myapp"},
			expected: "myapp",
		},
		{
			name:     "Relative path",
			args:     []string{"./myapp"},
			expected: "myapp",
		},
		{
			name:     "Just filename",
			args:     []string{"myapp"},
			expected: "myapp",
		},
		{
			name:     "Windows extension stripped",
			args:     []string{"myapp.exe"},
			expected: "myapp",
		},
		{
			name:     "Empty args",
			args:     []string{},
			expected: "alexa-webhook-verifier",
		},
		{
			name:     "Empty first arg",
			args:     []string{""},
			expected: "alexa-webhook-verifier",
		},
	}

	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expected, GetExecutableName())
		})
	}
}
