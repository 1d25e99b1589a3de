// internal/dispatch/render.go
package dispatch

import (
	"strings"

	"github.com/openchurch/campaign-service/internal/model"
)

// RenderBody substitutes the {prenom}/{nom} placeholders with the recipient's
// names. A placeholder whose field is empty renders as an empty string so the
// literal token never leaks into delivered content.
func RenderBody(body string, to model.Contact) string {
	rendered := strings.ReplaceAll(body, "{prenom}", to.FirstName)
	rendered = strings.ReplaceAll(rendered, "{nom}", to.LastName)
	return rendered
}
