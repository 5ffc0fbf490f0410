package component

import "github.com/rohanthewiz/element"

// DetailsList renders the product's detail lines as a bullet list.
type DetailsList []string

// Render implements element.Component.
func (l DetailsList) Render(b *element.Builder) any {
	b.Ul("class", "details").R(
		func() any {
			for _, line := range l {
				b.Li().T(esc(line))
			}
			return nil
		}(),
	)
	return nil
}
