// Command seed wipes the domain tables and loads a small sample
// dataset for local development. Users are preserved except for the
// bootstrap admin, which is created when missing.
package main

import (
	"log"
	"time"

	"github.com/sahilchouksey/research-portal-api/config"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/auth"
	"gorm.io/gorm"
)

func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatal(err)
	}
	if _, err := config.Get(); err != nil {
		log.Fatal(err)
	}

	gormStore, err := database.StartGORM()
	if err != nil {
		log.Fatal(err)
	}
	defer gormStore.Close()
	if err := gormStore.Init(); err != nil {
		log.Fatal(err)
	}

	store, err := database.Start()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()
	if err := store.Init(); err != nil {
		log.Fatal(err)
	}

	if err := seed(store, gormStore.DB()); err != nil {
		log.Fatal("Seeding failed: ", err)
	}
	log.Println("Seeding complete")
}

func seed(store *database.PostgreSQLStore, orm *gorm.DB) error {
	db := store.DB()

	log.Println("Clearing existing data")
	for _, table := range []string{
		"teaching_materials", "student_projects", "awards", "consultancy",
		"ipr", "publications", "patents", "ip_assets",
		"research_labs", "research_centers", "faculty",
	} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	if err := orm.Where("1 = 1").Delete(&model.ResearchProject{}).Error; err != nil {
		return err
	}

	if err := seedAdmin(orm); err != nil {
		return err
	}

	log.Println("Inserting faculty")
	rows, err := db.Query(`
		INSERT INTO faculty (name, designation, department, specialization, email, created_by)
		VALUES
			('Dr. Rajesh Kumar', 'Professor', 'Computer Science', 'Machine Learning, AI', 'rajesh.kumar@vnrvjiet.ac.in', 1),
			('Dr. Priya Sharma', 'Associate Professor', 'Electronics', 'VLSI Design, IoT', 'priya.sharma@vnrvjiet.ac.in', 1),
			('Dr. Amit Patel', 'Assistant Professor', 'Mechanical', 'Robotics, Automation', 'amit.patel@vnrvjiet.ac.in', 1),
			('Dr. Sneha Reddy', 'Professor', 'Civil', 'Structural Engineering', 'sneha.reddy@vnrvjiet.ac.in', 1)
		RETURNING id`)
	if err != nil {
		return err
	}
	facultyIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		facultyIDs = append(facultyIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	log.Println("Inserting research centers")
	if _, err := db.Exec(`
		INSERT INTO research_centers (name, description, head, department, established_year, focus_areas, created_by)
		VALUES
			('AI & ML Research Center', 'Advanced research in artificial intelligence and machine learning', 'Dr. Rajesh Kumar', 'Computer Science', 2020, ARRAY['Machine Learning', 'Deep Learning', 'NLP'], 1),
			('IoT Innovation Lab', 'Research and development in Internet of Things applications', 'Dr. Priya Sharma', 'Electronics', 2019, ARRAY['IoT', 'Smart Systems', 'Embedded Systems'], 1),
			('Robotics Research Lab', 'Advanced robotics and automation research', 'Dr. Amit Patel', 'Mechanical', 2021, ARRAY['Robotics', 'Automation', 'Control Systems'], 1)`); err != nil {
		return err
	}

	log.Println("Inserting research projects")
	if err := seedProjects(orm); err != nil {
		return err
	}

	log.Println("Inserting publications")
	if _, err := db.Exec(`
		INSERT INTO publications (title, journal_name, publication_type, year, indexing, national_international, faculty_id, created_by)
		VALUES
			('Deep Learning Approaches for Medical Image Analysis', 'IEEE Transactions on Medical Imaging', 'journal', 2024, 'SCI', 'international', $1, 1),
			('IoT-Based Smart Agriculture Monitoring System', 'Journal of Agricultural Engineering', 'journal', 2023, 'Scopus', 'international', $2, 1),
			('Advances in Autonomous Mobile Robotics', 'International Conference on Robotics and Automation', 'conference', 2024, 'Scopus', 'international', $3, 1)`,
		facultyIDs[0], facultyIDs[1], facultyIDs[2]); err != nil {
		return err
	}

	log.Println("Inserting IPR records")
	if _, err := db.Exec(`
		INSERT INTO ipr (title, ipr_type, application_number, status, filing_date, inventors, faculty_id, department, description, created_by)
		VALUES
			('AI-Based Disease Detection System', 'patent', 'IN202341001234', 'published', '2023-03-15', 'Dr. Rajesh Kumar, Dr. Priya Sharma', $1, 'Computer Science', 'Novel AI algorithm for early detection of diseases using medical imaging', 1),
			('Smart Irrigation Control System', 'patent', 'IN202341005678', 'filed', '2023-08-20', 'Dr. Priya Sharma', $2, 'Electronics', 'IoT-based automated irrigation system with soil moisture monitoring', 1),
			('VNRVJIET Logo', 'trademark', 'TM/2020/001234', 'granted', '2020-05-10', 'Institution', NULL, 'Administration', 'Official logo trademark for the institution', 1)`,
		facultyIDs[0], facultyIDs[1]); err != nil {
		return err
	}

	log.Println("Inserting consultancy records")
	if _, err := db.Exec(`
		INSERT INTO consultancy (title, client_name, faculty_id, department, amount_earned, start_date, end_date, status, description, created_by)
		VALUES
			('AI Implementation Consulting', 'Tech Solutions Pvt Ltd', $1, 'Computer Science', 500000, '2023-09-01', '2024-02-28', 'completed', 'Consulting on AI/ML implementation for business analytics', 1),
			('IoT System Design and Implementation', 'Smart Home Industries', $2, 'Electronics', 350000, '2024-01-15', '2024-06-30', 'ongoing', 'Design and implementation of IoT-based home automation system', 1)`,
		facultyIDs[0], facultyIDs[1]); err != nil {
		return err
	}

	log.Println("Inserting student projects")
	if _, err := db.Exec(`
		INSERT INTO student_projects (title, project_type, student_names, faculty_id, department, academic_year, abstract, created_by)
		VALUES
			('Blockchain-Based Voting System', 'UG', 'Rahul Verma, Priya Singh, Amit Kumar, Sneha Patel', $1, 'Computer Science', '2024', 'A secure and transparent voting system using blockchain technology to ensure data integrity and prevent tampering', 1),
			('Smart Waste Management System using IoT', 'UG', 'Kiran Reddy, Lakshmi Devi, Mohan Rao', $2, 'Electronics', '2024', 'IoT-based system for monitoring waste levels in bins and optimizing collection routes', 1),
			('Design and Fabrication of Industrial Robotic Arm', 'PG', 'Vijay Kumar, Sanjay Sharma', $3, 'Mechanical', '2024', 'Design, simulation, and fabrication of a 6-DOF robotic arm for industrial pick-and-place operations', 1)`,
		facultyIDs[0], facultyIDs[1], facultyIDs[2]); err != nil {
		return err
	}

	log.Println("Inserting awards")
	if _, err := db.Exec(`
		INSERT INTO awards (title, faculty_id, award_type, awarded_by, year, description, created_by)
		VALUES
			('Best Research Paper Award', $1, 'Research Excellence', 'IEEE', 2024, 'Best paper award at IEEE International Conference on AI and ML', 1),
			('Young Innovator Award', $2, 'Innovation', 'Department of Science and Technology', 2023, 'Recognition for innovative IoT-based solutions in agriculture', 1),
			('Best Department Award', NULL, 'Excellence', 'University', 2023, 'Outstanding performance in research and academics', 1)`,
		facultyIDs[0], facultyIDs[1]); err != nil {
		return err
	}

	log.Println("Inserting teaching materials")
	if _, err := db.Exec(`
		INSERT INTO teaching_materials (title, description, material_type, faculty_id, course_name, department, created_by)
		VALUES
			('Introduction to Machine Learning', 'Comprehensive lecture notes covering ML fundamentals', 'pdf', $1, 'Machine Learning', 'Computer Science', 1),
			('VLSI Design Fundamentals', 'PPT slides on VLSI design principles and techniques', 'ppt', $2, 'VLSI Design', 'Electronics', 1)`,
		facultyIDs[0], facultyIDs[1]); err != nil {
		return err
	}

	return nil
}

func seedAdmin(orm *gorm.DB) error {
	var count int64
	if err := orm.Model(&model.User{}).Where("email = ?", "admin@vnrvjiet.ac.in").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	return orm.Create(&model.User{
		Email:        "admin@vnrvjiet.ac.in",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}).Error
}

func seedProjects(orm *gorm.DB) error {
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	str := func(s string) *string { return &s }
	amount := func(f float64) *float64 { return &f }

	projects := []model.ResearchProject{
		{
			Title:                   "Development of Smart City Solutions using IoT",
			FundingAgency:           str("Department of Science and Technology"),
			AgencyScientist:         str("Dr. K. Venkatesh"),
			FileNumber:              str("DST/2023/001"),
			SanctionedAmount:        amount(5000000),
			StartDate:               date(2023, time.January, 1),
			EndDate:                 date(2025, time.December, 31),
			PrincipalInvestigator:   str("Dr. Priya Sharma"),
			CoPrincipalInvestigator: str("Dr. Rajesh Kumar"),
			Department:              str("Electronics"),
			Objectives:              str("To develop innovative IoT-based solutions for smart city infrastructure"),
		},
		{
			Title:                 "AI-Powered Healthcare Diagnosis System",
			FundingAgency:         str("ICMR"),
			AgencyScientist:       str("Dr. M. Srinivas"),
			FileNumber:            str("ICMR/2023/AI-001"),
			SanctionedAmount:      amount(3500000),
			StartDate:             date(2023, time.June, 1),
			EndDate:               date(2025, time.May, 31),
			PrincipalInvestigator: str("Dr. Rajesh Kumar"),
			Department:            str("Computer Science"),
			Objectives:            str("Development of AI algorithms for early disease detection"),
		},
		{
			Title:                 "Autonomous Robotic Systems for Manufacturing",
			FundingAgency:         str("DRDO"),
			AgencyScientist:       str("Dr. P. Krishnan"),
			FileNumber:            str("DRDO/2024/ROB-001"),
			SanctionedAmount:      amount(7500000),
			StartDate:             date(2024, time.January, 1),
			EndDate:               date(2026, time.December, 31),
			PrincipalInvestigator: str("Dr. Amit Patel"),
			Department:            str("Mechanical"),
			Objectives:            str("Design and development of autonomous robotic systems for industrial applications"),
		},
	}

	return orm.Create(&projects).Error
}
