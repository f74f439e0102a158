package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	badgeOK   = color.New(color.BgGreen, color.FgBlack)
	badgeFail = color.New(color.BgRed, color.FgBlack)
	badgeWarn = color.New(color.BgYellow, color.FgBlack)
)

// Reporter prints badged progress lines for the operator
type Reporter struct {
	w io.Writer
}

// New creates a Reporter writing to w
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Info prints a plain line
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// OK prints a line with a green OK badge
func (r *Reporter) OK(format string, args ...any) {
	r.badged(badgeOK, "OK", format, args...)
}

// Done prints a line with a green DONE badge
func (r *Reporter) Done(format string, args ...any) {
	r.badged(badgeOK, "DONE", format, args...)
}

// Warn prints a line with a yellow WARN badge
func (r *Reporter) Warn(format string, args ...any) {
	r.badged(badgeWarn, "WARN", format, args...)
}

// Fail prints a line with a red ERROR badge. status is shown when non-zero.
func (r *Reporter) Fail(status int, format string, args ...any) {
	label := "ERROR"
	if status != 0 {
		label = fmt.Sprintf("ERROR HTTP %d", status)
	}
	r.badged(badgeFail, label, format, args...)
}

func (r *Reporter) badged(c *color.Color, label, format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", c.Sprint(" "+label+" "), fmt.Sprintf(format, args...))
}
