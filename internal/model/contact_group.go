// internal/model/contact_group.go
package model

import "time"

// ContactGroup is a named, reusable recipient list ("box") owned by one
// user scope. Campaigns built from a group copy its contacts at creation
// time; later edits to the group never touch existing campaigns.
type ContactGroup struct {
	ID         int       `db:"id" json:"id"`
	OwnerScope string    `db:"owner_scope" json:"-"`
	Name       string    `db:"name" json:"name"`
	Contacts   []Contact `json:"contacts"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
