package vtree

import (
	"html"

	"github.com/valyala/bytebufferpool"
)

// Markup renders a node to a deterministic HTML-like string. It exists for
// tests, traces, and debugging; the core's scheduling decisions never
// depend on it.
func Markup(n *Node) string {
	if n == nil {
		return ""
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	writeNode(buf, n)
	return buf.String()
}

func writeNode(buf *bytebufferpool.ByteBuffer, n *Node) {
	switch n.kind {
	case KindText:
		_, _ = buf.WriteString(html.EscapeString(n.text))
	case KindFragment:
		for _, c := range n.children {
			writeNode(buf, c)
		}
	case KindElement:
		_ = buf.WriteByte('<')
		_, _ = buf.WriteString(n.tag)
		for _, a := range n.attrs {
			_ = buf.WriteByte(' ')
			_, _ = buf.WriteString(a.Name)
			_, _ = buf.WriteString(`="`)
			_, _ = buf.WriteString(html.EscapeString(a.Value))
			_ = buf.WriteByte('"')
		}
		if len(n.children) == 0 {
			_, _ = buf.WriteString("/>")
			return
		}
		_ = buf.WriteByte('>')
		for _, c := range n.children {
			writeNode(buf, c)
		}
		_, _ = buf.WriteString("</")
		_, _ = buf.WriteString(n.tag)
		_ = buf.WriteByte('>')
	}
}
