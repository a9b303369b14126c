// Package syntax runs tree-sitter parsing off the input path: one
// background worker per document, debounced and incremental, producing
// style.TextEffect values from compiled highlight and injection queries.
package syntax

import (
	"sync"

	phpforest "github.com/alexaandru/go-sitter-forest/php"
	twigforest "github.com/alexaandru/go-sitter-forest/twig"
	xmlforest "github.com/alexaandru/go-sitter-forest/xml"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Language is one registered grammar: its tree-sitter Language plus
// compiled highlight and (optional) injection queries.
type Language struct {
	Name             string
	Lang             sitter.Language
	HighlightsQuery  *sitter.Query
	InjectionsQuery  *sitter.Query
	// Inline, when set, names a second grammar run over the same document
	// for dual-grammar (block + inline) languages, e.g. markdown.
	Inline string
}

// Registry is the process-wide language registry: grammar name to
// Language. Mirrors a per-language analyzer construction pattern
// (NewTwigAnalyzer/NewPhpAnalyzer style), generalized into data instead
// of one hand-written analyzer type per language.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]*Language
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, built on first use with the
// built-in php/twig/xml grammars registered.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.registerBuiltins()
	})
	return defaultRegistry
}

// NewRegistry returns an empty registry. Tests use this instead of
// Default() to avoid cross-test interference.
func NewRegistry() *Registry {
	return &Registry{languages: make(map[string]*Language)}
}

// Register adds lang under lang.Name, replacing any existing entry.
func (r *Registry) Register(lang *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.languages[lang.Name] = lang
}

// Lookup returns the Language registered under name, or false if absent.
func (r *Registry) Lookup(name string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.languages[name]
	return l, ok
}

func (r *Registry) registerBuiltins() {
	r.Register(buildLanguage("php", sitter.NewLanguage(phpforest.GetLanguage()), phpHighlightsQuery, ""))
	r.Register(buildLanguage("twig", sitter.NewLanguage(twigforest.GetLanguage()), twigHighlightsQuery, twigInjectionsQuery))
	r.Register(buildLanguage("xml", sitter.NewLanguage(xmlforest.GetLanguage()), xmlHighlightsQuery, ""))
}

func buildLanguage(name string, lang sitter.Language, highlights, injections string) *Language {
	l := &Language{Name: name, Lang: lang}
	if highlights != "" {
		if q, err := sitter.NewQuery(lang, []byte(highlights)); err == nil {
			l.HighlightsQuery = q
		} else {
			logger.Warningf("syntax: %s highlights query does not compile, highlighting disabled: %s", name, err)
		}
	}
	if injections != "" {
		if q, err := sitter.NewQuery(lang, []byte(injections)); err == nil {
			l.InjectionsQuery = q
		} else {
			logger.Warningf("syntax: %s injections query does not compile, injections disabled: %s", name, err)
		}
	}
	return l
}
