package diag

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vially/fish-shell/pkg/strutil"
)

// Context is a range of text in a named source (a usage string, a
// command-line being completed, a condition expression). It is attached to
// errors so that a caller can render a caret pointing at the offending
// byte range.
type Context struct {
	Name   string
	Source string
	Ranging

	savedShowInfo *rangeShowInfo
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{Name: name, Source: source, Ranging: r.Range()}
}

type rangeShowInfo struct {
	Head      string
	Culprit   string
	Tail      string
	BeginLine int
	EndLine   int
}

// Markers used when rendering the culprit; overridable in tests.
var (
	culpritStart = "\033[1;4m"
	culpritEnd   = "\033[m"
	placeholder  = "^"
)

func (c *Context) showInfo() *rangeShowInfo {
	if c.savedShowInfo != nil {
		return c.savedShowInfo
	}
	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	head := lastLine(before)
	beginLine := strings.Count(before, "\n") + 1

	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else {
		tail = firstLine(after)
	}
	endLine := beginLine + strings.Count(culprit, "\n")

	c.savedShowInfo = &rangeShowInfo{head, culprit, tail, beginLine, endLine}
	return c.savedShowInfo
}

// Show renders the context across possibly multiple lines, with the
// line-range header on its own line.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.lineRange() + "\n" + indent + c.relevantSource(indent)
}

// ShowCompact renders the context with the line-range header and the source
// excerpt on the same line.
func (c *Context) ShowCompact(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.Name + ", " + c.lineRange() + " "
	descIndent := strings.Repeat(" ", len([]rune(desc)))
	return desc + c.relevantSource(indent+descIndent)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) lineRange() string {
	info := c.showInfo()
	if info.BeginLine == info.EndLine {
		return fmt.Sprintf("line %d:", info.BeginLine)
	}
	return fmt.Sprintf("line %d-%d:", info.BeginLine, info.EndLine)
}

func (c *Context) relevantSource(indent string) string {
	info := c.showInfo()

	var buf bytes.Buffer
	buf.WriteString(info.Head)

	culprit := info.Culprit
	if culprit == "" {
		culprit = placeholder
	}
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			buf.WriteByte('\n')
			buf.WriteString(indent)
		}
		buf.WriteString(culpritStart)
		buf.WriteString(line)
		buf.WriteString(culpritEnd)
	}
	buf.WriteString(info.Tail)
	return buf.String()
}

func firstLine(s string) string {
	return s[:strutil.FindFirstEOL(s)]
}

func lastLine(s string) string {
	return s[strutil.FindLastSOL(s):]
}
