package layout_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/teleivo/printkit"
	"github.com/teleivo/printkit/layout"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

// TestRenderWidths snapshots one richer document across line widths to catch
// unintended changes in break decisions.
func TestRenderWidths(t *testing.T) {
	for _, maxWidth := range []int{60, 30, 12} {
		t.Run(fmt.Sprintf("MaxWidth%d", maxWidth), func(t *testing.T) {
			opts := printkit.Options{MaxWidth: maxWidth, IndentWidth: 2, NewLineText: "\n"}

			got := buildServerBlock().Print(opts)

			snaps.MatchSnapshot(t, got)
		})
	}
}

func buildServerBlock() *layout.Doc {
	attribute := func(d *layout.Doc, name, value string) {
		d.Group(func(d *layout.Doc) {
			d.Text(name).Space().Text("=").SpaceOrBreak().Text(value)
		})
	}

	return layout.New().
		Text("server").Space().Text("{").
		Indent(1, func(d *layout.Doc) {
			d.Break(1)
			attribute(d, "listen", `"127.0.0.1:8080"`)
			d.Break(1)
			attribute(d, "read_timeout", `"15s"`)
			d.Break(1).
				Group(func(d *layout.Doc) {
					d.Text("hosts").Space().Text("=").Space().Text("[").
						Indent(1, func(d *layout.Doc) {
							d.
								PossibleBreak().
								Text(`"alpha.example.com"`).
								Text(",").
								SpaceOrBreak().
								Text(`"beta.example.com"`)
						}).
						PossibleBreak().
						Text("]")
				})
		}).
		Break(1).
		Text("}")
}
