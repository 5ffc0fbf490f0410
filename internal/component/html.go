package component

import (
	"html"
	"strings"

	"github.com/rohanthewiz/element"
)

// esc escapes text and attribute values; element writes strings verbatim.
func esc(s string) string {
	return html.EscapeString(s)
}

// classIf appends extra to base when on is set.
func classIf(base, extra string, on bool) string {
	if !on {
		return base
	}
	return strings.Join([]string{base, extra}, " ")
}

// actionButton renders a one-button form posting to action. Extra hidden
// fields come in name/value pairs.
func actionButton(b *element.Builder, action, label string, disabled bool, class string, hidden ...string) any {
	attrs := []string{"type", "submit", "class", class}
	if disabled {
		attrs = append(attrs, "disabled", "disabled")
	}
	b.Form("method", "post", "action", esc(action)).R(
		func() any {
			for i := 0; i+1 < len(hidden); i += 2 {
				b.Input("type", "hidden", "name", hidden[i], "value", esc(hidden[i+1])).R()
			}
			return nil
		}(),
		b.Button(attrs...).T(esc(label)),
	)
	return nil
}

// tabLabels renders one button per label, highlighting the active one.
func tabLabels(b *element.Builder, action string, labels []string, active string) any {
	b.Div("class", "tab-labels").R(
		func() any {
			for _, label := range labels {
				actionButton(b, action, label, false,
					classIf("tab", "activeTab", label == active),
					"tab", label)
			}
			return nil
		}(),
	)
	return nil
}
