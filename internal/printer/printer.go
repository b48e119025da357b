// Package printer writes styled status lines for the non-interactive
// commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/toastq/internal/core/styles"
)

type ctxKey struct{}

// Printer writes one line per call. Colors are downsampled to what the
// writer supports.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a stdout printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.w, fmt.Sprintf(format, args...))
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessTextStyle, styles.IconNotifySuccess, format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.MutedTextStyle, styles.IconNotifyInfo, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorTextStyle, styles.IconNotifyError, format, args...)
}

func (p *Printer) line(style lipgloss.Style, icon, format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.w, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}
