package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		password_hash TEXT,
		first_name TEXT,
		last_name TEXT,
		profile_image_url TEXT,
		role TEXT NOT NULL,
		merchant_id TEXT,
		demo_active BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createMerchantTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		legal_name TEXT,
		dba_name TEXT,
		ein TEXT,
		business_type TEXT,
		website TEXT,
		product_info TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		city TEXT,
		state TEXT,
		postal_code TEXT,
		country TEXT,
		status TEXT NOT NULL,
		risk_level TEXT,
		expected_monthly_volume REAL,
		average_ticket REAL,
		bank_name TEXT,
		routing_number TEXT,
		account_number TEXT,
		voided_check_url TEXT,
		business_license_url TEXT,
		rejection_reason TEXT,
		submitted_at DATETIME,
		approved_at DATETIME,
		rejected_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE merchant_owners (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT,
		home_address TEXT,
		ssn TEXT,
		ownership_percent REAL NOT NULL,
		gov_id_front_url TEXT,
		gov_id_back_url TEXT,
		kyc_consent BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createMembershipTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE memberships (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		merchant_role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		UNIQUE(merchant_id, user_id)
	);`)
}

func createAuditTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchant_notes (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE merchant_events (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		detail TEXT,
		created_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		transaction_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT,
		amount REAL NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL,
		risk_tier TEXT,
		avs_result TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		UNIQUE(user_id, transaction_id)
	);`)
}

func createBillingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		number TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT,
		status TEXT NOT NULL,
		amount REAL NOT NULL DEFAULT 0,
		due_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE invoice_items (
		id TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL,
		description TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		unit_price REAL NOT NULL
	);`)
	mustExec(t, db, `CREATE TABLE payouts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		method TEXT NOT NULL,
		arrival_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSettingsTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE checkout_settings (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL UNIQUE,
		accept_cards BOOLEAN NOT NULL DEFAULT true,
		accept_ach BOOLEAN NOT NULL DEFAULT false,
		success_url TEXT,
		cancel_url TEXT,
		brand_color TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE wix_integrations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		site_id TEXT NOT NULL,
		api_key TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createImportTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bankful_imports (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		imported_count INTEGER NOT NULL DEFAULT 0,
		skipped_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
