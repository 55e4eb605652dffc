package inspect

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/dispatch"
	"github.com/connman-go/connman/pkg/variant"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowPaths prints full object paths instead of their last segment.
	ShowPaths bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int

	// TimeFormat is used for notification timestamps.
	TimeFormat string
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		IndentWidth: 2,
		TimeFormat:  "15:04:05.000",
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue renders a value compactly. Variant wrappers are transparent,
// strings are quoted and object paths are not.
func (f *Formatter) FormatValue(v variant.Value) string {
	var sb strings.Builder
	f.writeValue(&sb, v)
	return sb.String()
}

func (f *Formatter) writeValue(sb *strings.Builder, v variant.Value) {
	v = v.Unwrap()
	switch v.Kind() {
	case variant.KindBool:
		b, _ := v.AsBool()
		fmt.Fprintf(sb, "%t", b)
	case variant.KindUint8, variant.KindUint16, variant.KindUint32:
		u := uintOf(v)
		fmt.Fprintf(sb, "%d", u)
	case variant.KindUint64:
		u, _ := v.AsUint64()
		fmt.Fprintf(sb, "%d", u)
	case variant.KindString:
		s, _ := v.AsString()
		fmt.Fprintf(sb, "%q", s)
	case variant.KindObjectPath:
		p, _ := v.AsObjectPath()
		sb.WriteString(string(p))
	case variant.KindArray:
		elems, _ := v.Elements()
		sb.WriteString("[")
		for i, e := range elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			f.writeValue(sb, e)
		}
		sb.WriteString("]")
	case variant.KindDict:
		entries, _ := v.Entries()
		sb.WriteString("{")
		for i, e := range entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.Key)
			sb.WriteString("=")
			f.writeValue(sb, e.Value)
		}
		sb.WriteString("}")
	default:
		sb.WriteString("null")
	}
}

func uintOf(v variant.Value) uint64 {
	if u, ok := v.AsUint8(); ok {
		return uint64(u)
	}
	if u, ok := v.AsUint16(); ok {
		return uint64(u)
	}
	u, _ := v.AsUint32()
	return uint64(u)
}

// FormatProperties renders a raw snapshot as "Key = value" lines in key
// order.
func (f *Formatter) FormatProperties(depth int, m variant.Map) string {
	if len(m) == 0 {
		return f.Indent(depth, "(no properties)") + "\n"
	}
	var sb strings.Builder
	for _, k := range m.Keys() {
		sb.WriteString(f.Indent(depth, k+" = "+f.FormatValue(m[k])))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatManager renders the manager properties.
func (f *Formatter) FormatManager(p connman.ManagerProperties) string {
	session := "(unset)"
	if p.SessionMode != nil {
		session = fmt.Sprintf("%t", *p.SessionMode)
	}
	return fmt.Sprintf("State = %s\nOfflineMode = %t\nSessionMode = %s\n", p.State, p.OfflineMode, session)
}

// FormatTechnology renders one technology as a header line followed by
// its properties. The tethering passphrase is never printed.
func (f *Formatter) FormatTechnology(t *connman.Technology) string {
	var sb strings.Builder
	sb.WriteString(f.path(t.Path) + "\n")
	p := t.Props
	lines := []string{
		"Name = " + p.Name,
		"Type = " + string(p.Type),
		fmt.Sprintf("Powered = %t", p.Powered),
		fmt.Sprintf("Connected = %t", p.Connected),
		fmt.Sprintf("Tethering = %t", p.Tethering),
	}
	if p.TetheringIdentifier != nil {
		lines = append(lines, "TetheringIdentifier = "+*p.TetheringIdentifier)
	}
	for _, l := range lines {
		sb.WriteString(f.Indent(1, l) + "\n")
	}
	return sb.String()
}

// FormatServiceLine renders a service in one line:
//
//	*AO Office                wifi_0123_4f6666696365_managed_psk
//
// The flags are favorite (*), autoconnect (A) and state (O online,
// R ready, F failure).
func (f *Formatter) FormatServiceLine(s *connman.Service) string {
	flags := []byte("   ")
	if s.Props.Favorite {
		flags[0] = '*'
	}
	if s.Props.AutoConnect {
		flags[1] = 'A'
	}
	switch s.Props.State {
	case connman.ServiceStateOnline:
		flags[2] = 'O'
	case connman.ServiceStateReady:
		flags[2] = 'R'
	case connman.ServiceStateFailure:
		flags[2] = 'F'
	}

	name := "(hidden)"
	if s.Props.Name != nil && *s.Props.Name != "" {
		name = *s.Props.Name
	}
	return fmt.Sprintf("%s %-24s %s", flags, name, f.path(s.Path))
}

// FormatNotification renders a dispatched notification in one line with
// the event as JSON.
func (f *Formatter) FormatNotification(n dispatch.Notification) string {
	layout := f.TimeFormat
	if layout == "" {
		layout = "15:04:05.000"
	}
	body, err := json.Marshal(n.Event)
	if err != nil {
		body = []byte(fmt.Sprintf("%q", err.Error()))
	}
	return fmt.Sprintf("%s %s %s %s", n.Received.Format(layout), n.Kind, f.path(n.Path), body)
}

func (f *Formatter) path(p variant.ObjectPath) string {
	if f.ShowPaths || p == "/" {
		return string(p)
	}
	return path.Base(string(p))
}
