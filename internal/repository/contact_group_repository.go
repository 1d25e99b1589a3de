package repository

import (
	"database/sql"
	"time"

	"github.com/openchurch/campaign-service/internal/model"
)

// ContactGroupRepositoryInterface defines methods used by services.
type ContactGroupRepositoryInterface interface {
	Create(g *model.ContactGroup) error
	GetByID(id int) (*model.ContactGroup, error)
	ListByOwner(ownerScope string) ([]model.ContactGroup, error)
	Delete(id int) error
}

// ContactGroupRepository is the concrete implementation.
type ContactGroupRepository struct {
	DB *sql.DB
}

func (r *ContactGroupRepository) Create(g *model.ContactGroup) error {
	g.CreatedAt = time.Now()

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
        INSERT INTO contact_groups (owner_scope, name, created_at)
        VALUES ($1, $2, $3)
        RETURNING id
    `, g.OwnerScope, g.Name, g.CreatedAt).Scan(&g.ID)
	if err != nil {
		return err
	}

	for _, c := range g.Contacts {
		_, err = tx.Exec(`
            INSERT INTO contact_group_members (group_id, member_key, first_name, last_name, email, phone)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (group_id, member_key) DO NOTHING
        `, g.ID, c.Key(), c.FirstName, c.LastName, c.Email, c.Phone)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID fetches a group with its members. Returns (nil, nil) when absent.
func (r *ContactGroupRepository) GetByID(id int) (*model.ContactGroup, error) {
	var g model.ContactGroup
	err := r.DB.QueryRow(`
        SELECT id, owner_scope, name, created_at
        FROM contact_groups WHERE id=$1
    `, id).Scan(&g.ID, &g.OwnerScope, &g.Name, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	contacts, err := r.members(g.ID)
	if err != nil {
		return nil, err
	}
	g.Contacts = contacts
	return &g, nil
}

func (r *ContactGroupRepository) ListByOwner(ownerScope string) ([]model.ContactGroup, error) {
	rows, err := r.DB.Query(`
        SELECT id, owner_scope, name, created_at
        FROM contact_groups WHERE owner_scope=$1
        ORDER BY id DESC
    `, ownerScope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []model.ContactGroup{}
	for rows.Next() {
		var g model.ContactGroup
		if err := rows.Scan(&g.ID, &g.OwnerScope, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		contacts, err := r.members(groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Contacts = contacts
	}
	return groups, nil
}

// Delete is idempotent: removing an absent group is not an error.
func (r *ContactGroupRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM contact_groups WHERE id=$1`, id)
	return err
}

func (r *ContactGroupRepository) members(groupID int) ([]model.Contact, error) {
	rows, err := r.DB.Query(`
        SELECT first_name, last_name, email, phone
        FROM contact_group_members WHERE group_id=$1
        ORDER BY member_key
    `, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

var _ ContactGroupRepositoryInterface = (*ContactGroupRepository)(nil)
