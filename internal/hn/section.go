package hn

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sections.toml
var sectionsTOML []byte

// Section is one of the fixed Hacker News listing categories. It is used
// as a cache key, so the zero value (SectionTop) is a valid section.
type Section int

const (
	SectionTop Section = iota
	SectionAsk
	SectionShow
	SectionJobs
)

// sectionDefinition describes one listing as declared in sections.toml.
type sectionDefinition struct {
	Label    string `toml:"label"`
	Endpoint string `toml:"endpoint"`
}

type sectionsConfig struct {
	Sections map[string]sectionDefinition `toml:"sections"`
}

// sectionKeys maps enum values to their sections.toml table names. The
// slice order is the canonical display order used across the UI.
var sectionKeys = []string{"top", "ask", "show", "jobs"}

var sectionDefs map[string]sectionDefinition

func init() {
	var cfg sectionsConfig
	if err := toml.Unmarshal(sectionsTOML, &cfg); err != nil {
		panic(fmt.Sprintf("hn: parsing sections.toml: %v", err))
	}
	for _, key := range sectionKeys {
		def, ok := cfg.Sections[key]
		if !ok {
			panic(fmt.Sprintf("hn: sections.toml missing section %q", key))
		}
		if def.Label == "" || def.Endpoint == "" {
			panic(fmt.Sprintf("hn: sections.toml section %q incomplete", key))
		}
	}
	sectionDefs = cfg.Sections
}

// Sections returns every section in canonical order.
func Sections() []Section {
	return []Section{SectionTop, SectionAsk, SectionShow, SectionJobs}
}

func (s Section) valid() bool {
	return s >= SectionTop && s <= SectionJobs
}

// String returns the display label, e.g. "Ask".
func (s Section) String() string {
	if !s.valid() {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionDefs[sectionKeys[s]].Label
}

// Endpoint returns the listing file on the Firebase API, e.g. "askstories.json".
func (s Section) Endpoint() string {
	if !s.valid() {
		return ""
	}
	return sectionDefs[sectionKeys[s]].Endpoint
}

// Next returns the section after s in canonical order, wrapping around.
func (s Section) Next() Section {
	return Section((int(s) + 1) % len(sectionKeys))
}

// Prev returns the section before s in canonical order, wrapping around.
func (s Section) Prev() Section {
	return Section((int(s) + len(sectionKeys) - 1) % len(sectionKeys))
}

// ParseSection resolves a section from its table name or label,
// case-insensitively.
func ParseSection(name string) (Section, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, key := range sectionKeys {
		if needle == key || needle == strings.ToLower(sectionDefs[key].Label) {
			return Section(i), nil
		}
	}
	return SectionTop, fmt.Errorf("unknown section %q", name)
}
