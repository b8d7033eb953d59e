package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsTrusted(t *testing.T) {
	checker := NewChecker([]string{"Example.Org ", "corp.test"}, zap.NewNop())

	tests := []struct {
		name string
		from string
		want bool
	}{
		{"trusted domain", "alice@example.org", true},
		{"trusted domain mixed case", "Bob@EXAMPLE.ORG", true},
		{"second trusted domain", "ops@corp.test", true},
		{"untrusted domain", "mallory@evil.example", false},
		{"no at sign", "not-an-address", false},
		{"multiple at signs", "a@b@example.org", false},
		{"empty sender", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.IsTrusted(tt.from))
		})
	}
}

func TestIsTrustedEmptyList(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop())
	assert.False(t, checker.IsTrusted("alice@example.org"))
}
