package notify

import "slices"

// Style is a descriptive tag attached to a message. The set is open: any
// string is accepted, the constants below are the built-in vocabulary.
type Style string

const (
	StyleInfo    Style = "info"
	StyleSuccess Style = "success"
	StyleWarning Style = "warning"
	StyleError   Style = "error"
	StyleMessage Style = "message"

	StyleMagicBlack Style = "magic-black"
	StyleMagicGray  Style = "magic-gray"
	StyleMagicWhite Style = "magic-white"
)

// DefaultStyle is applied to messages published without a style.
const DefaultStyle = StyleMessage

var builtin = []Style{
	StyleInfo,
	StyleSuccess,
	StyleWarning,
	StyleError,
	StyleMessage,
	StyleMagicBlack,
	StyleMagicGray,
	StyleMagicWhite,
}

// Styles returns the built-in styles in display order.
func Styles() []Style {
	return slices.Clone(builtin)
}

// IsBuiltin reports whether s is part of the built-in vocabulary.
func (s Style) IsBuiltin() bool {
	return slices.Contains(builtin, s)
}

// OrDefault returns s, or DefaultStyle when s is empty.
func (s Style) OrDefault() Style {
	if s == "" {
		return DefaultStyle
	}
	return s
}

// Next returns the built-in style after s, wrapping around. Custom styles
// restart at the first built-in style.
func (s Style) Next() Style {
	i := slices.Index(builtin, s)
	return builtin[(i+1)%len(builtin)]
}
