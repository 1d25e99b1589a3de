// internal/controller/contact_group_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openchurch/campaign-service/internal/extractor"
	"github.com/openchurch/campaign-service/internal/middleware"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/service"
)

type ContactGroupController struct {
	GroupService *service.ContactGroupService
	Extractor    *extractor.Extractor
}

func (c *ContactGroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string          `json:"name"`
		Contacts []model.Contact `json:"contacts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	scope := middleware.ScopeFromContext(r.Context())
	group, err := c.GroupService.CreateGroup(scope, body.Name, body.Contacts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (c *ContactGroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	scope := middleware.ScopeFromContext(r.Context())
	groups, err := c.GroupService.ListGroups(scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": groups})
}

func (c *ContactGroupController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return
	}

	if err := c.GroupService.DeleteGroup(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExtractContacts turns pasted free text into a contact list for the compose
// and group-creation screens.
func (c *ContactGroupController) ExtractContacts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text  string `json:"text"`
		Mode  string `json:"mode"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	ex := c.Extractor
	if body.Limit > 0 {
		ex = &extractor.Extractor{Limit: body.Limit}
	}

	contacts, err := ex.Extract(body.Text, body.Mode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"count":    len(contacts),
	})
}
