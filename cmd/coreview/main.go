// Command coreview is a terminal reference renderer for the text engine
// core: it loads a file, drives it through the document/coords/layout/
// style/syntax pipeline, and renders the visible, syntax-highlighted
// result in a bubbletea program. It exists to exercise the library
// end-to-end, not as a production editor.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	kongcompletion "github.com/jotaen/kong-completion"

	"github.com/jasonmcghee/texteditorcore/internal/logctx"
)

// CLI is coreview's Kong command tree.
type CLI struct {
	Verbose int `help:"Increase log verbosity (repeatable)." short:"v" type:"counter"`

	Open       OpenCmd                   `cmd:"" help:"Open a file in the reference renderer."`
	Completion kongcompletion.Completion `cmd:"" help:"Generate shell completion script."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("coreview"),
		kong.Description("Reference terminal renderer for the text engine core."),
		kong.UsageOnError(),
	)

	logctx.Configure(cli.Verbose)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	ctx.FatalIfErrorf(err)
}
