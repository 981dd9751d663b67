package registry

import (
	"sort"
	"strings"

	"github.com/vially/fish-shell/pkg/parse"
	"github.com/vially/fish-shell/pkg/wrapgraph"
)

// directive is one print_registry output line, tagged with the monotonic
// id it should be ordered by: registration insertion time.
type directive struct {
	id   uint64
	text string
}

// PrintRegistry dumps the registry (and, if wg is non-nil, the wrap graph)
// as one "complete ..." directive per line, ordered by insertion time,
// every user string shell-escaped.
func (r *Registry) PrintRegistry(wg *wrapgraph.Graph) string {
	r.mu.Lock()
	var directives []directive
	for cmd, e := range r.commands {
		for _, reg := range e.registrations {
			directives = append(directives, directive{reg.id, usageDirective(cmd, reg)})
		}
		for _, o := range e.options {
			directives = append(directives, directive{o.id, optionDirective(cmd, o.Option)})
		}
	}
	r.mu.Unlock()

	sort.SliceStable(directives, func(i, j int) bool { return directives[i].id < directives[j].id })

	var b strings.Builder
	for _, d := range directives {
		b.WriteString(d.text)
		b.WriteByte('\n')
	}
	if wg != nil {
		for _, p := range wg.Pairs() {
			b.WriteString("complete --command ")
			b.WriteString(parse.ShellEscape(p.Command))
			b.WriteString(" --wraps ")
			b.WriteString(parse.ShellEscape(p.Target))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func usageDirective(cmd string, reg *Registration) string {
	var b strings.Builder
	b.WriteString("complete --command ")
	b.WriteString(parse.ShellEscape(cmd))
	b.WriteString(" --arguments ")
	b.WriteString(parse.ShellEscape(reg.Usage))
	if reg.Description != "" {
		b.WriteString(" --description ")
		b.WriteString(parse.ShellEscape(reg.Description))
	}
	if reg.Condition != "" {
		b.WriteString(" --condition ")
		b.WriteString(parse.ShellEscape(reg.Condition))
	}
	return b.String()
}

func optionDirective(cmd string, o Option) string {
	var b strings.Builder
	b.WriteString("complete")
	if o.Metadata.Tag&RequiresParam != 0 {
		b.WriteString(" --require-parameter")
	}
	if o.Metadata.Tag&Exclusive != 0 {
		b.WriteString(" --exclusive")
	}
	if o.Metadata.Tag&AllowFiles != 0 {
		b.WriteString(" --force-files")
	}
	if o.Form == ArgsOnly {
		b.WriteString(" --path ")
		b.WriteString(parse.ShellEscape(cmd))
	} else {
		b.WriteString(" --command ")
		b.WriteString(parse.ShellEscape(cmd))
		b.WriteString(" --")
		b.WriteString(o.Form.String())
		b.WriteByte(' ')
		b.WriteString(parse.ShellEscape(o.bareName()))
	}
	if o.Metadata.Description != "" {
		b.WriteString(" --description ")
		b.WriteString(parse.ShellEscape(o.Metadata.Description))
	}
	if o.Metadata.ArgumentCommand != "" {
		b.WriteString(" --arguments ")
		b.WriteString(parse.ShellEscape(o.Metadata.ArgumentCommand))
	}
	if o.Metadata.Condition != "" {
		b.WriteString(" --condition ")
		b.WriteString(parse.ShellEscape(o.Metadata.Condition))
	}
	return b.String()
}
