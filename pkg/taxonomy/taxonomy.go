package taxonomy

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// LayerCount is the fixed number of layers in the reference model
const LayerCount = 7

//go:embed catalog.yaml
var catalogYAML []byte

// LayerTag is a semantic tag describing what a layer holds
type LayerTag string

const (
	TagModel          LayerTag = "model"
	TagData           LayerTag = "data"
	TagFramework      LayerTag = "framework"
	TagInfrastructure LayerTag = "infrastructure"
	TagObservability  LayerTag = "observability"
	TagCompliance     LayerTag = "compliance"
	TagEcosystem      LayerTag = "ecosystem"
)

// Valid reports whether t is one of the known tags
func (t LayerTag) Valid() bool {
	switch t {
	case TagModel, TagData, TagFramework, TagInfrastructure, TagObservability, TagCompliance, TagEcosystem:
		return true
	}
	return false
}

// Threat is a named threat belonging to exactly one layer
type Threat struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Analogy     string `yaml:"analogy" json:"analogy"`
	Rationale   string `yaml:"rationale" json:"rationale"`
	Source      string `yaml:"source" json:"source"`
}

// Layer is one stratum of the reference architecture
type Layer struct {
	ID          int      `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Tag         LayerTag `yaml:"tag" json:"tag"`
	Threats     []Threat `yaml:"threats" json:"threats"`
}

// MitigationTemplate is an immutable entry of the mitigation library
type MitigationTemplate struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Evidence    string `yaml:"evidence" json:"evidence"`
	Layers      []int  `yaml:"layers" json:"layers"`
}

type catalog struct {
	Layers      []Layer              `yaml:"layers"`
	Mitigations []MitigationTemplate `yaml:"mitigations"`
}

// Taxonomy is the read-only reference catalog of layers, threats and mitigations
type Taxonomy struct {
	layers      []Layer
	mitigations []MitigationTemplate
	threats     map[string]Threat
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the built-in taxonomy. It is parsed once and the same
// pointer is returned on every call.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := Parse(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("taxonomy: embedded catalog is invalid: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Taxonomy, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(c.Layers) != LayerCount {
		return nil, fmt.Errorf("catalog must define %d layers, got %d", LayerCount, len(c.Layers))
	}

	t := &Taxonomy{
		layers:      c.Layers,
		mitigations: c.Mitigations,
		threats:     make(map[string]Threat),
	}

	for i, l := range c.Layers {
		if l.ID != i+1 {
			return nil, fmt.Errorf("layer at position %d has id %d, want %d", i, l.ID, i+1)
		}
		if !l.Tag.Valid() {
			return nil, fmt.Errorf("layer %d has unknown tag %q", l.ID, l.Tag)
		}
		for _, th := range l.Threats {
			if _, dup := t.threats[th.ID]; dup {
				return nil, fmt.Errorf("duplicate threat id %s", th.ID)
			}
			t.threats[th.ID] = th
		}
	}

	seen := make(map[string]bool)
	for _, m := range c.Mitigations {
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate mitigation id %s", m.ID)
		}
		seen[m.ID] = true
		for _, id := range m.Layers {
			if id < 1 || id > LayerCount {
				return nil, fmt.Errorf("mitigation %s references unknown layer %d", m.ID, id)
			}
		}
	}

	return t, nil
}

// Layer looks up a layer by id
func (t *Taxonomy) Layer(id int) (Layer, bool) {
	if id < 1 || id > len(t.layers) {
		return Layer{}, false
	}
	l := t.layers[id-1]
	l.Threats = append([]Threat(nil), l.Threats...)
	return l, true
}

// Layers returns all layers in order
func (t *Taxonomy) Layers() []Layer {
	out := make([]Layer, len(t.layers))
	for i, l := range t.layers {
		l.Threats = append([]Threat(nil), l.Threats...)
		out[i] = l
	}
	return out
}

// Threat looks up a threat by id
func (t *Taxonomy) Threat(id string) (Threat, bool) {
	th, ok := t.threats[id]
	return th, ok
}

// Mitigations returns the mitigation library in catalog order
func (t *Taxonomy) Mitigations() []MitigationTemplate {
	out := make([]MitigationTemplate, len(t.mitigations))
	for i, m := range t.mitigations {
		m.Layers = append([]int(nil), m.Layers...)
		out[i] = m
	}
	return out
}
