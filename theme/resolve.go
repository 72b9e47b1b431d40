package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ByLCY/textshot/layout"
)

// namedColors maps the color keywords accepted in theme files to hex values.
var namedColors = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"blue":   "#0000ff",
	"red":    "#ff0000",
	"green":  "#008000",
	"gray":   "#808080",
	"grey":   "#808080",
	"silver": "#c0c0c0",
	"yellow": "#ffff00",
}

// Resolve applies a parsed theme document on top of a base style.
// Unknown keys and type mismatches are reported as errors with positions.
func Resolve(doc *Document, base layout.Style) (layout.Style, error) {
	st := base
	if doc == nil || doc.Block == nil {
		return st, nil
	}
	for _, entry := range doc.Block.Entries {
		if err := apply(&st, entry); err != nil {
			return layout.Style{}, fmt.Errorf("%s: %w", entry.Pos, err)
		}
	}
	return st, nil
}

func apply(st *layout.Style, entry *Entry) error {
	key := strings.ToLower(entry.Key)
	switch key {
	case "font-size":
		return setLength(&st.FontSize, key, entry.Value)
	case "line-spacing":
		return setLength(&st.LineSpacing, key, entry.Value)
	case "padding":
		return setLength(&st.Padding, key, entry.Value)
	case "border-width":
		return setLength(&st.BorderWidth, key, entry.Value)
	case "max-width":
		return setLength(&st.MaxWidth, key, entry.Value)
	case "column-spacing":
		return setLength(&st.ColumnSpacing, key, entry.Value)
	case "section-spacing":
		return setLength(&st.SectionSpacing, key, entry.Value)
	case "background":
		return setColor(&st.Background, key, entry.Value)
	case "text":
		return setColor(&st.Text, key, entry.Value)
	case "border":
		return setColor(&st.Border, key, entry.Value)
	case "filename":
		return setColor(&st.Filename, key, entry.Value)
	case "header-template":
		if entry.Value.String == nil {
			return fmt.Errorf("%s expects a string value", key)
		}
		st.HeaderTemplate = string(*entry.Value.String)
		return nil
	default:
		return fmt.Errorf("unknown theme key %q", entry.Key)
	}
}

func setLength(dst *float64, key string, v *Value) error {
	if v.Number == nil {
		return fmt.Errorf("%s expects a length value", key)
	}
	*dst = layout.ParseLength(*v.Number).ToPX()
	return nil
}

func setColor(dst *layout.Color, key string, v *Value) error {
	var hex string
	switch {
	case v.Color != nil:
		hex = *v.Color
	case v.Ident != nil:
		named, ok := namedColors[strings.ToLower(*v.Ident)]
		if !ok {
			return fmt.Errorf("%s: unknown color name %q", key, *v.Ident)
		}
		hex = named
	default:
		return fmt.Errorf("%s expects a color value", key)
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = layout.Color{
		R: int(c.R*255 + 0.5),
		G: int(c.G*255 + 0.5),
		B: int(c.B*255 + 0.5),
	}
	return nil
}
