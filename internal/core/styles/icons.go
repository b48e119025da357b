package styles

import "github.com/hay-kot/toastq/internal/core/notify"

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconNotifyInfo    = "\uf05a" // nf-fa-info_circle
	IconNotifySuccess = "\uf058" // nf-fa-check_circle
	IconNotifyWarning = "\uf071" // nf-fa-warning
	IconNotifyError   = "\uf057" // nf-fa-times_circle
	IconNotifyMessage = "\uf0e0" // nf-fa-envelope
	IconClose         = "\uf00d" // nf-fa-close
	IconSelected      = "\u25b6"
)

// IconFor returns the default icon for a message style. Custom and cosmetic
// styles use the generic message icon.
func IconFor(s notify.Style) string {
	switch s {
	case notify.StyleInfo:
		return IconNotifyInfo
	case notify.StyleSuccess:
		return IconNotifySuccess
	case notify.StyleWarning:
		return IconNotifyWarning
	case notify.StyleError:
		return IconNotifyError
	default:
		return IconNotifyMessage
	}
}
