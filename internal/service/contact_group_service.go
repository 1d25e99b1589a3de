// internal/service/contact_group_service.go
package service

import (
	"strings"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

type ContactGroupService struct {
	GroupRepo repository.ContactGroupRepositoryInterface
}

// CreateGroup persists a named recipient list for the given owner scope.
func (s *ContactGroupService) CreateGroup(ownerScope, name string, contacts []model.Contact) (*model.ContactGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.NewInvalidArgument("group name must not be empty")
	}
	for _, c := range contacts {
		if c.Key() == "" {
			return nil, appErrors.NewInvalidArgument(
				"contact %s %s has neither email nor phone", c.FirstName, c.LastName)
		}
	}
	contacts = model.DedupContacts(contacts)
	if len(contacts) == 0 {
		return nil, appErrors.NewInvalidArgument("group must contain at least one contact")
	}

	g := &model.ContactGroup{
		OwnerScope: ownerScope,
		Name:       name,
		Contacts:   contacts,
	}
	if err := s.GroupRepo.Create(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *ContactGroupService) ListGroups(ownerScope string) ([]model.ContactGroup, error) {
	return s.GroupRepo.ListByOwner(ownerScope)
}

// DeleteGroup is idempotent: deleting an already-absent group succeeds.
func (s *ContactGroupService) DeleteGroup(id int) error {
	return s.GroupRepo.Delete(id)
}
