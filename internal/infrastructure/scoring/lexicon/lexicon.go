// Package lexicon implements a deterministic, text-only category scorer driven
// by a weighted term list.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_lexicon.yaml
var defaultLexicon []byte

// Entry is one weighted match rule. Exactly one of Term or Pattern is set.
type Entry struct {
	Term    string  `yaml:"term"`
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight"`
}

type lexiconFile struct {
	Categories map[string][]Entry `yaml:"categories"`
}

type rule struct {
	phrase  string
	pattern *regexp.Regexp
	weight  float64
}

// Lexicon is an immutable compiled term list.
type Lexicon struct {
	rules map[string][]rule
}

// Parse compiles a YAML lexicon document.
func Parse(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("lexicon defines no categories")
	}

	lex := &Lexicon{rules: make(map[string][]rule, len(file.Categories))}
	for category, entries := range file.Categories {
		for i, e := range entries {
			r, err := compileEntry(e)
			if err != nil {
				return nil, fmt.Errorf("lexicon category %q entry %d: %w", category, i, err)
			}
			lex.rules[category] = append(lex.rules[category], r)
		}
	}
	return lex, nil
}

func compileEntry(e Entry) (rule, error) {
	if e.Weight <= 0 || e.Weight > 1 {
		return rule{}, fmt.Errorf("weight %v outside (0,1]", e.Weight)
	}
	switch {
	case e.Term != "" && e.Pattern != "":
		return rule{}, fmt.Errorf("term and pattern are mutually exclusive")
	case e.Term != "":
		tokens := Tokenize(e.Term)
		if len(tokens) == 0 {
			return rule{}, fmt.Errorf("term %q has no tokens", e.Term)
		}
		return rule{phrase: tokenWindow(tokens), weight: e.Weight}, nil
	case e.Pattern != "":
		re, err := regexp.Compile("(?i)" + e.Pattern)
		if err != nil {
			return rule{}, fmt.Errorf("invalid pattern: %w", err)
		}
		return rule{pattern: re, weight: e.Weight}, nil
	default:
		return rule{}, fmt.Errorf("entry needs a term or a pattern")
	}
}

// Load reads and compiles a lexicon file. An empty path yields the built-in lexicon.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	lex, err := Parse(defaultLexicon)
	if err != nil {
		panic(fmt.Sprintf("built-in lexicon is invalid: %v", err))
	}
	return lex
}

// Categories lists the categories the lexicon has rules for, sorted.
func (l *Lexicon) Categories() []string {
	names := make([]string, 0, len(l.rules))
	for name := range l.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// score returns the combined weight of every rule in category that matches.
// plain is the markup-free text and window its token window.
func (l *Lexicon) score(category, plain, window string) float64 {
	miss := 1.0
	for _, r := range l.rules[category] {
		var hit bool
		if r.pattern != nil {
			hit = r.pattern.MatchString(plain)
		} else {
			hit = strings.Contains(window, r.phrase)
		}
		if hit {
			miss *= 1 - r.weight
		}
	}
	return 1 - miss
}
