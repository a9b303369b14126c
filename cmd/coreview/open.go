package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/jasonmcghee/texteditorcore/internal/utils"
)

// OpenCmd opens Path in the reference renderer. Path may be a plain
// filesystem path or a "file://" URI, matching what an editor's own
// recent-files list or a drag-and-drop drop target would hand us.
type OpenCmd struct {
	Path string `arg:"" help:"File to open." type:"existingfile"`
	Lang string `help:"Force a grammar (php, twig, xml) instead of guessing from the extension." optional:""`
}

// Run loads Path through an afero filesystem (so the rest of the program
// never touches os directly) and starts the bubbletea program.
func (c *OpenCmd) Run() error {
	fs := afero.NewOsFs()
	path := utils.UriToPath(c.Path)

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("coreview: reading %s: %w", path, err)
	}

	lang := c.Lang
	if lang == "" {
		lang = guessLanguage(path)
	}

	m, err := newModel(fs, path, string(content), lang)
	if err != nil {
		return fmt.Errorf("coreview: starting renderer: %w", err)
	}
	defer m.Close()

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = prog.Run()
	return err
}

func guessLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".php":
		return "php"
	case ".twig":
		return "twig"
	case ".xml":
		return "xml"
	default:
		return ""
	}
}
