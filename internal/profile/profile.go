package profile

import (
	"sort"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data/quality"
	"github.com/wonny/sensai/internal/s2_lineup"
)

// DefaultName is the profile used when none is requested
const DefaultName = "default"

// File is the top-level layout of a profiles YAML file
type File struct {
	Profiles map[string]Profile `yaml:"profiles" json:"profiles"`
	Quality  quality.Config     `yaml:"quality" json:"quality"`
}

// Profile is a named set of run parameters
type Profile struct {
	Budget       float64 `yaml:"budget" json:"budget"`
	Formation    string  `yaml:"formation" json:"formation"` // "4-3-3", "1-4-3-3" or "G:1,D:4,M:3,A:3"
	TopN         int     `yaml:"top_n" json:"top_n"`
	CampeonatoID int     `yaml:"campeonato_id,omitempty" json:"campeonato_id,omitempty"`
	Strategy     bool    `yaml:"strategy" json:"strategy"` // S3 서술 생성 여부
	Strict       bool    `yaml:"strict_price" json:"strict_price"`
}

// ParsedFormation returns the profile formation as a quota
func (p Profile) ParsedFormation() (contracts.Formation, error) {
	return s2_lineup.ParseFormation(p.Formation)
}

// Default returns the built-in profile set matching the environment defaults
func Default(budget float64, formation string, topN int) *File {
	return &File{
		Profiles: map[string]Profile{
			DefaultName: {
				Budget:    budget,
				Formation: formation,
				TopN:      topN,
			},
		},
		Quality: quality.DefaultConfig(),
	}
}

// Get returns the named profile; an empty name selects DefaultName
func (f *File) Get(name string) (Profile, bool) {
	if name == "" {
		name = DefaultName
	}
	p, ok := f.Profiles[name]
	return p, ok
}

// Names returns the profile names in sorted order
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for n := range f.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
