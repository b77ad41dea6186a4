package models

import "time"

// EventInfo is the narrow view of an event used to authorize booking
// creation. Collaborators may book on the owner's behalf.
type EventInfo struct {
	ID              int64     `json:"id"`
	OwnerID         int64     `json:"ownerId"`
	CollaboratorIDs []int64   `json:"collaboratorIds"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
}

func (e EventInfo) CanBeBookedBy(userID int64) bool {
	if e.OwnerID == userID {
		return true
	}
	for _, id := range e.CollaboratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VendorInfo is the narrow view of a vendor profile consumed by the booking
// core: owning user for notification routing plus offered service ids.
type VendorInfo struct {
	ID           int64   `json:"id"`
	OwnerUserID  int64   `json:"ownerUserId"`
	BusinessName string  `json:"businessName"`
	ServiceIDs   []int64 `json:"serviceIds"`
}

func (v VendorInfo) HasService(serviceID int64) bool {
	for _, id := range v.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// UserInfo resolves a user id to a notifiable identity.
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
