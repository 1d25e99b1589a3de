package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openchurch/campaign-service/internal/dispatch"
	"github.com/openchurch/campaign-service/internal/model"
)

func TestRenderBody(t *testing.T) {
	to := model.Contact{FirstName: "Jean", LastName: "Dupont"}
	assert.Equal(t, "Bonjour Jean Dupont !", dispatch.RenderBody("Bonjour {prenom} {nom} !", to))
}

func TestRenderBodyEmptyFieldNeverLeaksToken(t *testing.T) {
	to := model.Contact{FirstName: "Marie"}
	rendered := dispatch.RenderBody("Salut {prenom} {nom}", to)
	assert.Equal(t, "Salut Marie ", rendered)
	assert.NotContains(t, rendered, "{nom}")
}

func TestRenderBodyNoPlaceholders(t *testing.T) {
	to := model.Contact{FirstName: "Jean"}
	assert.Equal(t, "Culte dimanche 10h", dispatch.RenderBody("Culte dimanche 10h", to))
}
