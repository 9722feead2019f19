package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data/quality"
)

const sampleYAML = `
profiles:
  default:
    budget: 150
    formation: 1-4-3-3
    top_n: 5
  ataque:
    budget: 110.5
    formation: "G:1,A:3,M:4,D:3"
    top_n: 3
    strategy: true
quality:
  min_score: 0.6
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"ataque", DefaultName}, f.Names())

	p, ok := f.Get("")
	require.True(t, ok)
	assert.Equal(t, 150.0, p.Budget)

	p, ok = f.Get("ataque")
	require.True(t, ok)
	formation, err := p.ParsedFormation()
	require.NoError(t, err)
	assert.Equal(t, contracts.Attacker, formation.Slots[1].Position)
	assert.True(t, p.Strategy)

	// 지정하지 않은 임계값은 기본값 유지
	assert.Equal(t, 0.6, f.Quality.MinScore)
	assert.Equal(t, quality.DefaultConfig().MinPriceCoverage, f.Quality.MinPriceCoverage)

	_, ok = f.Get("missing")
	assert.False(t, ok)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader(`
profiles:
  default:
    budget: 100
    formation: 4-3-3
    budjet: 90
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budjet")
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"empty document", ``, "profiles"},
		{"zero budget", "profiles:\n  x:\n    budget: 0\n    formation: 4-3-3\n", "profiles.x.budget"},
		{"bad formation", "profiles:\n  x:\n    budget: 10\n    formation: 4-x-3\n", "profiles.x.formation"},
		{"empty formation", "profiles:\n  x:\n    budget: 10\n    formation: 0-0-0\n", "profiles.x.formation"},
		{"negative top_n", "profiles:\n  x:\n    budget: 10\n    formation: 4-3-3\n    top_n: -1\n", "profiles.x.top_n"},
		{"threshold out of range", "profiles:\n  x:\n    budget: 10\n    formation: 4-3-3\nquality:\n  min_score: 1.5\n", "quality.min_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			require.Error(t, err)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Profiles, 2)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	a, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	b, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	assert.Len(t, ha, 64)
	assert.Equal(t, ha, hb)

	b.Profiles["ataque"] = Profile{Budget: 1, Formation: "4-3-3"}
	hc, err := Hash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestWarn(t *testing.T) {
	f := &File{Profiles: map[string]Profile{
		"semgoleiro": {Budget: 100, Formation: "4-3-3"},
		"grande":     {Budget: 100, Formation: "G:1,D:6,M:6,A:3", Strategy: true},
		"ok":         {Budget: 100, Formation: "1-4-3-3", TopN: 5},
	}}

	codes := map[string]bool{}
	for _, w := range Warn(f) {
		codes[w.Code] = true
	}
	assert.Equal(t, map[string]bool{"NO_GOALKEEPER": true, "OVERSIZED_SQUAD": true, "EMPTY_STANDINGS": true}, codes)
}

func TestDefault(t *testing.T) {
	f := Default(150, "4-3-3", 5)
	require.NoError(t, Validate(f))
	p, ok := f.Get(DefaultName)
	require.True(t, ok)
	assert.Equal(t, 5, p.TopN)
}
