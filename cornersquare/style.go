package cornersquare

// Style identifies the visual variant of a locator marker.
type Style string

const (
	Dot          Style = "dot"
	Square       Style = "square"
	ExtraRounded Style = "extra-rounded"
	Style2       Style = "style_2"
	Style3       Style = "style_3"
	Style4       Style = "style_4"
)

// AvailableStyles lists the supported styles.
var AvailableStyles = []Style{Dot, Square, ExtraRounded, Style2, Style3, Style4}

func (s Style) String() string { return string(s) }

// ParseStyle returns the style named `s`, and false
// if it is not one of AvailableStyles.
// The returned style is usable anyway: drawing with it falls back to Dot.
func ParseStyle(s string) (Style, bool) {
	_, ok := geometries[Style(s)]
	return Style(s), ok
}
