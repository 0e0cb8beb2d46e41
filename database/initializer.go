package database

import (
	"log"
)

func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgreSQL Database.", "Initializing Tables")
	return s.InitTables()
}

// InitTables creates the raw-SQL entity tables. The users and
// research_projects tables are owned by the GORM store's AutoMigrate,
// which must run first so faculty-side foreign keys resolve.
func (s *PostgreSQLStore) InitTables() error {

	// faculty table
	faculty_table := `
	CREATE TABLE IF NOT EXISTS faculty (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		designation VARCHAR(255),
		department VARCHAR(255),
		specialization TEXT,
		bio TEXT,
		email VARCHAR(255),
		profile_image VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// publications table
	publications_table := `
	CREATE TABLE IF NOT EXISTS publications (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		authors TEXT,
		journal_name VARCHAR(512),
		publication_type VARCHAR(100),
		year INTEGER,
		indexing VARCHAR(100),
		doi VARCHAR(255),
		abstract TEXT,
		national_international VARCHAR(50),
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		pdf_url VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// patents table
	patents_table := `
	CREATE TABLE IF NOT EXISTS patents (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		patent_number VARCHAR(100),
		inventors TEXT,
		department VARCHAR(255),
		status VARCHAR(100),
		filing_date DATE,
		grant_date DATE,
		description TEXT,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// ipr table
	ipr_table := `
	CREATE TABLE IF NOT EXISTS ipr (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		ipr_type VARCHAR(100),
		application_number VARCHAR(100),
		status VARCHAR(100),
		filing_date DATE,
		publication_date DATE,
		grant_date DATE,
		inventors TEXT,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		department VARCHAR(255),
		description TEXT,
		pdf_url VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// ip_assets table
	ip_assets_table := `
	CREATE TABLE IF NOT EXISTS ip_assets (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name TEXT NOT NULL,
		type VARCHAR(100),
		owner VARCHAR(255),
		inventors TEXT,
		department VARCHAR(255),
		filing_year INTEGER,
		filing_date DATE,
		published_date DATE,
		granted_date DATE,
		expiry_date DATE,
		status VARCHAR(100),
		application_number VARCHAR(100),
		registration_number VARCHAR(100),
		description TEXT,
		pdf_url VARCHAR(512),
		commercialized BOOLEAN NOT NULL DEFAULT FALSE,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// research_labs table
	research_labs_table := `
	CREATE TABLE IF NOT EXISTS research_labs (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		department VARCHAR(255),
		head VARCHAR(255),
		description TEXT,
		focus_areas TEXT[],
		established_year INTEGER,
		image_url VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// research_centers table
	research_centers_table := `
	CREATE TABLE IF NOT EXISTS research_centers (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		head VARCHAR(255),
		department VARCHAR(255),
		established_year INTEGER,
		focus_areas TEXT[],
		facilities TEXT,
		image_url VARCHAR(512),
		website_url VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// consultancy table
	consultancy_table := `
	CREATE TABLE IF NOT EXISTS consultancy (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		client_name VARCHAR(255),
		department VARCHAR(255),
		amount_earned NUMERIC(14,2),
		start_date DATE,
		end_date DATE,
		description TEXT,
		status VARCHAR(100),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// teaching_materials table
	teaching_materials_table := `
	CREATE TABLE IF NOT EXISTS teaching_materials (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		department VARCHAR(255),
		course_name VARCHAR(255),
		material_type VARCHAR(100),
		file_url VARCHAR(512),
		video_link VARCHAR(512),
		description TEXT,
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// awards table
	awards_table := `
	CREATE TABLE IF NOT EXISTS awards (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		award_type VARCHAR(100),
		awarded_by VARCHAR(255),
		year INTEGER,
		date_received DATE,
		description TEXT,
		certificate_url VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	// student_projects table
	student_projects_table := `
	CREATE TABLE IF NOT EXISTS student_projects (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title TEXT NOT NULL,
		faculty_id BIGINT REFERENCES faculty(id) ON DELETE SET NULL,
		student_names TEXT,
		department VARCHAR(255),
		project_type VARCHAR(100),
		academic_year VARCHAR(20),
		abstract TEXT,
		pdf_url VARCHAR(512),
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	tables := []string{
		faculty_table,
		publications_table,
		patents_table,
		ipr_table,
		ip_assets_table,
		research_labs_table,
		research_centers_table,
		consultancy_table,
		teaching_materials_table,
		awards_table,
		student_projects_table,
	}

	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			log.Println("Error creating table:", err)
			return err
		}
	}

	return nil
}
