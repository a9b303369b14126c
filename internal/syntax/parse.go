package syntax

import (
	"context"
	"fmt"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/jasonmcghee/texteditorcore/internal/style"
)

// ParseAndExtract parses content under langName (incrementally against
// oldTree if non-nil), runs the language's highlight and injection
// queries, and returns the new tree plus every resulting TextEffect.
// Mirrors php.Document.Update's query-then-walk shape, generalized across
// registered languages instead of one hand-written analyzer per language.
func ParseAndExtract(reg *Registry, langName string, content []byte, oldTree *sitter.Tree) (*sitter.Tree, []style.TextEffect, error) {
	lang, ok := reg.Lookup(langName)
	if !ok {
		return nil, nil, fmt.Errorf("syntax: unknown language %q", langName)
	}

	parser := sitter.NewParser()
	_ = parser.SetLanguage(lang.Lang)
	tree, err := parser.ParseString(context.Background(), oldTree, content)
	if err != nil {
		return nil, nil, err
	}

	effects := extractEffects(lang, tree.RootNode(), content, 0, style.Syntax)
	effects = append(effects, extractInjectionEffects(reg, lang, tree.RootNode(), content, 0)...)

	if lang.Inline != "" {
		if inline, ok := reg.Lookup(lang.Inline); ok {
			inlineParser := sitter.NewParser()
			_ = inlineParser.SetLanguage(inline.Lang)
			if inlineTree, err := inlineParser.ParseString(context.Background(), nil, content); err == nil {
				effects = append(effects, extractEffects(inline, inlineTree.RootNode(), content, 0, style.Syntax)...)
				inlineTree.Close()
			}
		}
	}

	return tree, effects, nil
}

// extractEffects runs lang's compiled highlight query over root and turns
// every recognized capture into a TextEffect offset by offset bytes (used
// by injections to place a sub-parse's effects back into the parent
// document's byte space).
func extractEffects(lang *Language, root sitter.Node, content []byte, offset uint64, priority style.Priority) []style.TextEffect {
	if lang.HighlightsQuery == nil || root.IsNull() {
		return nil
	}

	qc := sitter.NewQueryCursor()
	it := qc.Matches(lang.HighlightsQuery, root, content)

	var effects []style.TextEffect
	for {
		m := it.Next()
		if m == nil {
			break
		}
		for _, cap := range m.Captures {
			name := lang.HighlightsQuery.CaptureNameForID(cap.Index)
			kind, ok := tokenKindForCapture(name)
			if !ok {
				continue
			}
			n := cap.Node
			start := offset + uint64(n.StartByte())
			end := offset + uint64(n.EndByte())
			if end <= start {
				continue
			}
			effects = append(effects, style.TextEffect{
				Range:    style.ByteRange{Start: start, End: end},
				Priority: priority,
				Payload:  kind,
			})
		}
	}
	return effects
}

// extractInjectionEffects runs lang's injections query, and for each match
// pairing an @injection.language capture with an @injection.content
// capture, looks the named language up in reg, parses the content node's
// text under it, and returns its effects offset into the parent's byte
// space at Syntax+1 priority so injected content paints over its host.
func extractInjectionEffects(reg *Registry, lang *Language, root sitter.Node, content []byte, offset uint64) []style.TextEffect {
	if lang.InjectionsQuery == nil || root.IsNull() {
		return nil
	}

	qc := sitter.NewQueryCursor()
	it := qc.Matches(lang.InjectionsQuery, root, content)

	var effects []style.TextEffect
	for {
		m := it.Next()
		if m == nil {
			break
		}

		var langName string
		var contentNode sitter.Node
		haveContent := false

		for _, cap := range m.Captures {
			switch lang.InjectionsQuery.CaptureNameForID(cap.Index) {
			case "injection.language":
				langName = cap.Node.Content(content)
			case "injection.content":
				contentNode = cap.Node
				haveContent = true
			}
		}
		if langName == "" || !haveContent {
			continue
		}

		injLang, ok := reg.Lookup(langName)
		if !ok {
			continue
		}

		sub := []byte(contentNode.Content(content))
		parser := sitter.NewParser()
		_ = parser.SetLanguage(injLang.Lang)
		subTree, err := parser.ParseString(context.Background(), nil, sub)
		if err != nil {
			continue
		}

		subOffset := offset + uint64(contentNode.StartByte())
		effects = append(effects, extractEffects(injLang, subTree.RootNode(), sub, subOffset, style.Syntax+1)...)
		subTree.Close()
	}
	return effects
}
