// Package output prints planning step results with colored status markers.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/pmlaunch/pkg/status"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, dim, reset = "", "", "", ""
	}
}

// FprintResult writes a planning step to w with a colored status marker.
// Failing steps are written the same way to whichever stream the caller
// chooses; detail lines align under the step name.
func FprintResult(w io.Writer, r status.Result) {
	indent := "     "
	if r.OK() {
		fmt.Fprintf(w, "%s[OK]%s %s\n", green, reset, formatLabel(r.Name))
	} else {
		fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, formatLabel(r.Name))
		indent = "       "
	}
	for _, d := range r.Details {
		fmt.Fprintf(w, "%s%s\n", indent, d)
	}
}

// formatLabel dims the "kind:" prefix of a step name, if present.
func formatLabel(name string) string {
	idx := strings.Index(name, ": ")
	if idx < 0 {
		return name
	}
	return dim + name[:idx+1] + reset + name[idx+1:]
}
