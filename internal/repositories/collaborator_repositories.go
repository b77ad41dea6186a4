package repositories

import (
	"database/sql"
	"errors"

	"eventease-backend/internal/domain/models"
)

// The event, vendor and user tables belong to subsystems outside the booking
// core. These repositories expose only the narrow views the core consumes.

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrVendorNotFound = errors.New("vendor not found")
	ErrUserNotFound   = errors.New("user not found")
)

type EventRepository struct {
	DB *sql.DB
}

func (r EventRepository) GetByID(id int64) (models.EventInfo, error) {
	var e models.EventInfo
	err := r.DB.QueryRow(`
		SELECT id, created_by, event_name, event_date FROM events WHERE id=? LIMIT 1
	`, id).Scan(&e.ID, &e.OwnerID, &e.Name, &e.Date)
	if err == sql.ErrNoRows {
		return e, ErrEventNotFound
	}
	if err != nil {
		return e, err
	}

	rows, err := r.DB.Query(`SELECT user_id FROM event_collaborators WHERE event_id=?`, id)
	if err != nil {
		return e, err
	}
	defer rows.Close()
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return e, err
		}
		e.CollaboratorIDs = append(e.CollaboratorIDs, uid)
	}
	return e, rows.Err()
}

type VendorRepository struct {
	DB *sql.DB
}

func (r VendorRepository) GetByID(id int64) (models.VendorInfo, error) {
	var v models.VendorInfo
	err := r.DB.QueryRow(`
		SELECT id, user_id, business_name FROM vendors WHERE id=? LIMIT 1
	`, id).Scan(&v.ID, &v.OwnerUserID, &v.BusinessName)
	if err == sql.ErrNoRows {
		return v, ErrVendorNotFound
	}
	if err != nil {
		return v, err
	}
	return r.withServices(v)
}

// GetByUserID resolves the vendor profile owned by a user account.
func (r VendorRepository) GetByUserID(userID int64) (models.VendorInfo, error) {
	var v models.VendorInfo
	err := r.DB.QueryRow(`
		SELECT id, user_id, business_name FROM vendors WHERE user_id=? LIMIT 1
	`, userID).Scan(&v.ID, &v.OwnerUserID, &v.BusinessName)
	if err == sql.ErrNoRows {
		return v, ErrVendorNotFound
	}
	if err != nil {
		return v, err
	}
	return r.withServices(v)
}

func (r VendorRepository) withServices(v models.VendorInfo) (models.VendorInfo, error) {
	rows, err := r.DB.Query(`SELECT id FROM vendor_services WHERE vendor_id=?`, v.ID)
	if err != nil {
		return v, err
	}
	defer rows.Close()
	for rows.Next() {
		var sid int64
		if err := rows.Scan(&sid); err != nil {
			return v, err
		}
		v.ServiceIDs = append(v.ServiceIDs, sid)
	}
	return v, rows.Err()
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) GetByID(id int64) (models.UserInfo, error) {
	var u models.UserInfo
	err := r.DB.QueryRow(`
		SELECT id, name, email FROM users WHERE id=? LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Email)
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}
