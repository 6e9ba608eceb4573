package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillTokens(t *testing.T) {
	cases := []struct {
		name   string
		skills string
		want   []string
	}{
		{"empty input yields no tokens", "", nil},
		{"only commas and spaces yields no tokens", " , ,, ", nil},
		{"single token", "go", []string{"go"}},
		{"tokens are trimmed", "  go ,  postgres  ", []string{"go", "postgres"}},
		{"empty tokens are dropped, order kept", "go,,sql,", []string{"go", "sql"}},
		{"inner spaces survive trimming", "project management, sql", []string{"project management", "sql"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, skillTokens(tc.skills))
		})
	}
}
