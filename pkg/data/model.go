package data

type Pokemon struct {
	ID        int      `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Height    int      `json:"height" yaml:"height"` // decimetres
	Weight    int      `json:"weight" yaml:"weight"` // hectograms
	Types     []string `json:"types" yaml:"types"`
	Stats     []Stat   `json:"stats" yaml:"stats"`
	Abilities []string `json:"abilities,omitempty" yaml:"abilities,omitempty"`
	Sprites   Sprites  `json:"sprites" yaml:"sprites"`
}

type Stat struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type Sprites struct {
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	Artwork string `json:"artwork,omitempty" yaml:"artwork,omitempty"`
	Home    string `json:"home,omitempty" yaml:"home,omitempty"`
}

// PrimaryType returns the first type slot, or "" for an untyped record.
func (p *Pokemon) PrimaryType() string {
	if p == nil || len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}
