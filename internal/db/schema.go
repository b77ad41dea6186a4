package db

import "database/sql"

// EnsureSchema creates the tables the booking core needs when they do not
// exist yet. Statements are idempotent so startup is safe to repeat.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_user_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS events (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		created_by BIGINT NOT NULL,
		event_name VARCHAR(255) NOT NULL,
		event_date DATETIME NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_event_owner (created_by)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS event_collaborators (
		event_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		PRIMARY KEY (event_id, user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vendors (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		business_name VARCHAR(100) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_vendor_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vendor_services (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vendor_id BIGINT NOT NULL,
		name VARCHAR(100) NOT NULL,
		KEY idx_service_vendor (vendor_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vendor_availability (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vendor_id BIGINT NOT NULL,
		date DATE NOT NULL,
		is_fully_booked TINYINT(1) NOT NULL DEFAULT 0,
		is_unavailable TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_vendor_date (vendor_id, date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS availability_slots (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		availability_id BIGINT NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		is_booked TINYINT(1) NOT NULL DEFAULT 0,
		booking_id BIGINT NULL,
		UNIQUE KEY uniq_entry_slot (availability_id, start_time, end_time),
		KEY idx_slot_entry (availability_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		event_id BIGINT NOT NULL,
		vendor_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		service_id BIGINT NOT NULL,
		booking_date DATETIME NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		requirements VARCHAR(1000) NOT NULL DEFAULT '',
		price DECIMAL(12,2) NOT NULL DEFAULT 0,
		payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(20) NOT NULL DEFAULT 'none',
		payment_transaction_id VARCHAR(255) NOT NULL DEFAULT '',
		payment_paid_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
		payment_paid_at DATETIME NULL,
		notes VARCHAR(1000) NOT NULL DEFAULT '',
		cancellation_reason VARCHAR(500) NOT NULL DEFAULT '',
		cancelled_by VARCHAR(10) NOT NULL DEFAULT 'none',
		cancelled_at DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_booking_user (user_id),
		KEY idx_booking_vendor (vendor_id),
		KEY idx_booking_event (event_id),
		KEY idx_booking_status (status),
		KEY idx_booking_date (booking_date),
		KEY idx_booking_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS booking_events (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		event_type VARCHAR(40) NOT NULL,
		recipient_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		message VARCHAR(1000) NOT NULL,
		priority VARCHAR(10) NOT NULL DEFAULT 'medium',
		action_link VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		dispatched_at DATETIME NULL,
		KEY idx_outbox_pending (dispatched_at),
		KEY idx_outbox_booking (booking_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		recipient_id BIGINT NOT NULL,
		type VARCHAR(40) NOT NULL,
		title VARCHAR(255) NOT NULL,
		message VARCHAR(1000) NOT NULL,
		related_kind VARCHAR(20) NOT NULL DEFAULT 'booking',
		related_id BIGINT NOT NULL DEFAULT 0,
		priority VARCHAR(10) NOT NULL DEFAULT 'medium',
		action_link VARCHAR(255) NOT NULL DEFAULT '',
		is_read TINYINT(1) NOT NULL DEFAULT 0,
		read_at DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_notification_recipient (recipient_id),
		KEY idx_notification_read (is_read),
		KEY idx_notification_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}
