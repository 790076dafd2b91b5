package main

import (
	"fmt"
	"os/exec"

	"github.com/fatih/color"

	"github.com/cskillzmartin/genmoji/engine"
)

// reportDependencies prints a human-readable dependency summary to
// stderr after init: resolved font, pipeline mode, rembg availability.
// Purely informational; nothing here affects command handling. Stdout
// is never used because it carries the protocol.
func (b *Backend) reportDependencies(eng *engine.Engine) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintln(color.Error, "dependency check:")

	font := b.state.renderer.ResolvedFont(b.state.FontPath())
	if font != "" {
		fmt.Fprintf(color.Error, "  emoji font      %s %s\n", ok("ok"), font)
	} else {
		fmt.Fprintf(color.Error, "  emoji font      %s no emoji font found\n", bad("missing"))
	}

	if eng.Fallback() {
		fmt.Fprintf(color.Error, "  pipeline        %s fallback mode\n", warn("degraded"))
	} else {
		fmt.Fprintf(color.Error, "  pipeline        %s %s\n", ok("ok"), eng.Mode())
	}

	if path, err := exec.LookPath("rembg"); err == nil {
		fmt.Fprintf(color.Error, "  rembg           %s %s\n", ok("ok"), path)
	} else {
		fmt.Fprintf(color.Error, "  rembg           %s background removal unavailable\n", warn("missing"))
	}
}
