package env

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	t.Setenv("RC_RESOLVER_HOST", "env.test")

	r := NewResolver()
	r.SetVariables(map[string]string{"token": "abc", "RC_RESOLVER_HOST": "vars.test"})

	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"Bearer {{token}}", "Bearer abc"},
		{"{{ token }}-{{token}}", "abc-abc"},
		{"http://{{RC_RESOLVER_HOST}}/x", "http://vars.test/x"},
		{"{{missing}}", "{{missing}}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.input))
		})
	}
}

func TestResolver_FallsBackToEnv(t *testing.T) {
	t.Setenv("RC_RESOLVER_ONLY_ENV", "from-env")

	r := NewResolver()
	assert.Equal(t, "from-env", r.Resolve("{{RC_RESOLVER_ONLY_ENV}}"))
}

func TestResolver_Warns(t *testing.T) {
	var warnings []string
	r := NewResolver()
	r.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})

	r.Resolve("{{nope}} and {{nada}}")
	assert.Equal(t, []string{"unresolved variable: nope", "unresolved variable: nada"}, warnings)
}

func TestResolver_ResolveMap(t *testing.T) {
	r := NewResolver()
	r.SetVariables(map[string]string{"v": "1"})

	in := map[string]string{"X-V": "{{v}}"}
	out := r.ResolveMap(in)
	assert.Equal(t, map[string]string{"X-V": "1"}, out)
	assert.Equal(t, "{{v}}", in["X-V"])
}
