// Package menu loads the cafe menu from YAML and renders it as the text
// returned by the menu lookup action.
package menu

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultMenu []byte

// Section is a titled group of menu entries.
type Section struct {
	Title   string   `yaml:"title" json:"title"`
	Items   []string `yaml:"items" json:"items"`
	Default string   `yaml:"default,omitempty" json:"default,omitempty"`
}

// Menu is the cafe catalogue.
type Menu struct {
	Name      string    `yaml:"name" json:"name"`
	Sections  []Section `yaml:"sections" json:"sections"`
	Modifiers []Section `yaml:"modifiers" json:"modifiers"`
	Notes     []string  `yaml:"notes" json:"notes"`
}

// Default returns the embedded menu.
func Default() *Menu {
	m, err := Parse(defaultMenu)
	if err != nil {
		panic(fmt.Sprintf("embedded menu is invalid: %v", err))
	}
	return m
}

// Load reads a menu file. An empty path yields the embedded menu.
func Load(path string) (*Menu, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML menu and checks that it offers at least one drink.
func Parse(data []byte) (*Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	drinks := 0
	for _, s := range m.Sections {
		drinks += len(s.Items)
	}
	if drinks == 0 {
		return nil, fmt.Errorf("menu has no drinks")
	}
	return &m, nil
}

// Render formats the menu as plain text.
func (m *Menu) Render() string {
	var b strings.Builder
	b.WriteString("MENU:\n")
	for _, s := range m.Sections {
		fmt.Fprintf(&b, "  %s:\n", s.Title)
		for _, item := range s.Items {
			fmt.Fprintf(&b, "    %s\n", item)
		}
	}
	if len(m.Modifiers) > 0 {
		b.WriteString("  Modifiers:\n")
		for _, s := range m.Modifiers {
			fmt.Fprintf(&b, "    %s: %s", s.Title, strings.Join(s.Items, ", "))
			if s.Default != "" {
				fmt.Fprintf(&b, " (default: %s)", s.Default)
			}
			b.WriteString("\n")
		}
	}
	for _, n := range m.Notes {
		fmt.Fprintf(&b, "\n%s", n)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Provider serves a fixed menu to the menu lookup action.
type Provider struct {
	text string
}

// NewProvider renders the menu once.
func NewProvider(m *Menu) *Provider {
	return &Provider{text: m.Render()}
}

// Menu implements ports.MenuProvider.
func (p *Provider) Menu(ctx context.Context) (string, error) {
	return p.text, nil
}
