package nbt

import (
	"fmt"
	"strings"
)

// PrintOptions controls PrettyPrint's output.
type PrintOptions struct {
	// MaxDepth limits how many Compound/List levels are expanded below
	// the root; 0 means unlimited. Tags below the cutoff are shown as
	// "<kind> (elided)" rather than omitted silently.
	MaxDepth int
	// Indent is the string used per nesting level; defaults to two
	// spaces if empty.
	Indent string
}

// numericListInlineMax is the largest element count at which a short
// numeric List renders on one line, e.g. "Pos: List<Double>[3]:
// [1.5, 64, -2]" rather than one element per line. Grounded on
// original_source's format_value, which special-cases "isinstance(value[0],
// (int, float)) and len(value) <= 3".
const numericListInlineMax = 3

// PrettyPrint renders tag as an indented, human-readable tree, labeling
// every node with its NBT kind. It is a pure read-only visitor: it never
// mutates tag and never elides data except at the caller-specified depth
// cutoff.
func PrettyPrint(name string, tag Tag, opts PrintOptions) string {
	var sb strings.Builder
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	p := &printer{sb: &sb, indent: indent, maxDepth: opts.MaxDepth}
	p.visit(name, tag, 0)
	return sb.String()
}

type printer struct {
	sb       *strings.Builder
	indent   string
	maxDepth int
}

func (p *printer) pad(depth int) {
	for i := 0; i < depth; i++ {
		p.sb.WriteString(p.indent)
	}
}

func (p *printer) elided(depth int, label string, kind Kind) {
	p.pad(depth)
	fmt.Fprintf(p.sb, "%s: %v (elided)\n", label, kind)
}

func (p *printer) visit(label string, t Tag, depth int) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		p.elided(depth, label, t.Kind())
		return
	}
	p.pad(depth)
	switch t.kind {
	case KindEnd:
		fmt.Fprintf(p.sb, "%s: End\n", label)
	case KindByte:
		fmt.Fprintf(p.sb, "%s: Byte(%d)\n", label, t.b8)
	case KindShort:
		fmt.Fprintf(p.sb, "%s: Short(%d)\n", label, t.s16)
	case KindInt:
		fmt.Fprintf(p.sb, "%s: Int(%d)\n", label, t.i32)
	case KindLong:
		fmt.Fprintf(p.sb, "%s: Long(%d)\n", label, t.i64)
	case KindFloat:
		fmt.Fprintf(p.sb, "%s: Float(%v)\n", label, t.f32)
	case KindDouble:
		fmt.Fprintf(p.sb, "%s: Double(%v)\n", label, t.f64)
	case KindString:
		fmt.Fprintf(p.sb, "%s: String(%q)\n", label, t.str)
	case KindByteArray:
		fmt.Fprintf(p.sb, "%s: ByteArray[%d]: %v\n", label, len(t.byteArray), t.byteArray)
	case KindIntArray:
		fmt.Fprintf(p.sb, "%s: IntArray[%d]: %v\n", label, len(t.intArray), t.intArray)
	case KindLongArray:
		fmt.Fprintf(p.sb, "%s: LongArray[%d]: %v\n", label, len(t.longArray), t.longArray)
	case KindList:
		p.visitList(label, t.list, depth)
	case KindCompound:
		p.visitCompound(label, t.compound, depth)
	default:
		fmt.Fprintf(p.sb, "%s: <unknown kind %d>\n", label, t.kind)
	}
}

func (p *printer) visitList(label string, l *List, depth int) {
	if l == nil {
		fmt.Fprintf(p.sb, "%s: List<End>[0]: []\n", label)
		return
	}
	if inline, ok := inlineNumericList(l); ok {
		fmt.Fprintf(p.sb, "%s: List<%v>[%d]: %s\n", label, l.ElemKind(), l.Len(), inline)
		return
	}
	fmt.Fprintf(p.sb, "%s: List<%v>[%d]:\n", label, l.ElemKind(), l.Len())
	for i, elem := range l.Elems() {
		p.visit(fmt.Sprintf("[%d]", i), elem, depth+1)
	}
}

func (p *printer) visitCompound(label string, c *Compound, depth int) {
	if c == nil {
		fmt.Fprintf(p.sb, "%s: Compound{0}\n", label)
		return
	}
	fmt.Fprintf(p.sb, "%s: Compound{%d}:\n", label, c.Len())
	c.Range(func(name string, t Tag) bool {
		p.visit(name, t, depth+1)
		return true
	})
}

// inlineNumericList reports whether l is short enough and made of scalar
// numeric elements to render as a single-line value list.
func inlineNumericList(l *List) (string, bool) {
	if l.Len() == 0 || l.Len() > numericListInlineMax {
		return "", false
	}
	switch l.ElemKind() {
	case KindByte, KindShort, KindInt, KindLong, KindFloat, KindDouble:
	default:
		return "", false
	}
	parts := make([]string, l.Len())
	for i, elem := range l.Elems() {
		parts[i] = scalarString(elem)
	}
	return "[" + strings.Join(parts, ", ") + "]", true
}

func scalarString(t Tag) string {
	switch t.kind {
	case KindByte:
		return fmt.Sprintf("%d", t.b8)
	case KindShort:
		return fmt.Sprintf("%d", t.s16)
	case KindInt:
		return fmt.Sprintf("%d", t.i32)
	case KindLong:
		return fmt.Sprintf("%d", t.i64)
	case KindFloat:
		return fmt.Sprintf("%v", t.f32)
	case KindDouble:
		return fmt.Sprintf("%v", t.f64)
	default:
		return "?"
	}
}
