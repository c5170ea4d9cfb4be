package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulum-app/schedulum/internal/config"
)

const sampleTerm = `
today: 2024-01-10
tomorrow: 2024-01-11
cutoff:
  year: 2024
  month: 1
vacations:
  start_rule:
    - after: 2024-06-30
      before: 2024-09-01
    - after: 2025-06-30
      before: 2025-09-01
  end_rule:
    - after: 2024-07-01
      before: 2024-09-02
    - after: 2025-07-01
      before: 2025-09-02
`

func TestParseTerm(t *testing.T) {
	term, err := config.ParseTerm([]byte(sampleTerm))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), term.Today)
	assert.Equal(t, time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC), term.Tomorrow)
	assert.Equal(t, 2024, term.CutoffYear)
	assert.Equal(t, time.January, term.CutoffMonth)
	require.Len(t, term.StartWindows, 2)
	require.Len(t, term.EndWindows, 2)
	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), term.StartWindows[0].After)
	assert.Equal(t, time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC), term.EndWindows[1].Before)
}

func TestParseTermRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing reference days",
			yaml: "cutoff:\n  year: 2024\n  month: 1\n",
		},
		{
			name: "missing cutoff",
			yaml: "today: 2024-01-10\ntomorrow: 2024-01-11\n",
		},
		{
			name: "malformed date",
			yaml: "today: January 10\ntomorrow: 2024-01-11\ncutoff:\n  year: 2024\n  month: 1\n",
		},
		{
			name: "inverted window",
			yaml: "today: 2024-01-10\ntomorrow: 2024-01-11\ncutoff:\n  year: 2024\n  month: 1\n" +
				"vacations:\n  start_rule:\n    - after: 2024-09-01\n      before: 2024-06-30\n",
		},
		{
			name: "cutoff month out of range",
			yaml: "today: 2024-01-10\ntomorrow: 2024-01-11\ncutoff:\n  year: 2024\n  month: 13\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseTerm([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
