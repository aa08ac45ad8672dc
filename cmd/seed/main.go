package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bizdesk/internal/database"
	"bizdesk/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bizdesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM milestone_employees")
	db.Exec("DELETE FROM project_members")
	db.Exec("DELETE FROM communication_logs")
	db.Exec("DELETE FROM project_milestones")
	db.Exec("DELETE FROM projects")
	db.Exec("DELETE FROM employees")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Admin",
		Email:        "admin@bizdesk.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@bizdesk.local / admin123")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Name:         "Staff User",
		Email:        "staff@bizdesk.local",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
	}
	db.Create(&staff)

	// ================== CLIENTS ==================
	log.Println("Creating clients...")

	clientNames := []struct {
		name    string
		company string
		email   string
	}{
		{"Alice Norman", "Norman Interiors", "alice@normaninteriors.com"},
		{"Viktor Pavlov", "Pavlov Logistics", "viktor@pavlovlogistics.com"},
		{"Jade Chen", "Chen Marketing", "jade@chenmarketing.io"},
		{"Omar Haddad", "Haddad Retail Group", "omar@haddadretail.com"},
		{"Eva Lindqvist", "Lindqvist Design", "eva@lindqvistdesign.se"},
	}
	clients := make([]domain.Client, 0, len(clientNames))
	for i, c := range clientNames {
		phone := fmt.Sprintf("+1 555 010 %04d", i+1)
		client := domain.Client{
			Name:        c.name,
			CompanyName: &c.company,
			Email:       &c.email,
			Phone:       &phone,
		}
		db.Create(&client)
		clients = append(clients, client)
	}

	// ================== EMPLOYEES ==================
	log.Println("Creating employees...")

	employeeRows := []struct {
		name       string
		position   string
		department string
		salary     float64
	}{
		{"Marta Silva", "Project Manager", "Delivery", 6200},
		{"Denis Orlov", "Senior Engineer", "Engineering", 7100},
		{"Priya Nair", "Designer", "Design", 5400},
		{"Tom Becker", "Engineer", "Engineering", 5800},
		{"Sofia Ricci", "Account Manager", "Sales", 5100},
	}
	employees := make([]domain.Employee, 0, len(employeeRows))
	for i, e := range employeeRows {
		email := fmt.Sprintf("employee%d@bizdesk.local", i+1)
		hireDate := time.Now().AddDate(-1, -i, 0)
		salary := e.salary
		emp := domain.Employee{
			Name:       e.name,
			Email:      &email,
			Position:   &e.position,
			Department: &e.department,
			Salary:     &salary,
			HireDate:   &hireDate,
			Status:     domain.EmployeeActive,
		}
		db.Create(&emp)
		employees = append(employees, emp)
	}

	// ================== PROJECTS ==================
	log.Println("Creating projects...")

	projectRows := []struct {
		name     string
		client   int
		status   domain.ProjectStatus
		priority domain.ProjectPriority
		budget   float64
		paid     float64
	}{
		{"Office Renovation", 0, domain.ProjectActive, domain.PriorityHigh, 42000, 21000},
		{"Warehouse Tracking System", 1, domain.ProjectActive, domain.PriorityUrgent, 63000, 15000},
		{"Spring Campaign", 2, domain.ProjectCompleted, domain.PriorityMedium, 18000, 18000},
		{"Storefront Redesign", 3, domain.ProjectOnHold, domain.PriorityLow, 27500, 5000},
		{"Brand Refresh", 4, domain.ProjectDraft, domain.PriorityMedium, 12000, 0},
		{"Fleet Dashboard", 1, domain.ProjectActive, domain.PriorityHigh, 38000, 19000},
	}
	projects := make([]domain.Project, 0, len(projectRows))
	for i, p := range projectRows {
		start := time.Now().AddDate(0, -i, 0)
		proj := domain.Project{
			ProjectName: p.name,
			ClientID:    clients[p.client].ID,
			Status:      p.status,
			Priority:    p.priority,
			StartDate:   &start,
			TotalBudget: p.budget,
			AmountPaid:  p.paid,
		}
		db.Create(&proj)
		projects = append(projects, proj)
	}

	// ================== MILESTONES ==================
	log.Println("Creating milestones...")

	for i, proj := range projects {
		for j := 0; j < 3; j++ {
			due := time.Now().AddDate(0, j+1, 0)
			status := domain.MilestonePending
			if j == 0 {
				status = domain.MilestoneCompleted
			} else if j == 1 && i%2 == 0 {
				status = domain.MilestoneInProgress
			}
			db.Create(&domain.ProjectMilestone{
				ProjectID: proj.ID,
				Name:      fmt.Sprintf("Phase %d", j+1),
				DueDate:   &due,
				Status:    status,
			})
		}
	}

	// ================== TEAM ASSIGNMENTS ==================
	log.Println("Assigning project members...")

	for i, proj := range projects {
		db.Create(&domain.ProjectMember{
			ProjectID:  proj.ID,
			EmployeeID: employees[i%len(employees)].ID,
		})
		db.Create(&domain.ProjectMember{
			ProjectID:  proj.ID,
			EmployeeID: employees[(i+1)%len(employees)].ID,
		})
	}

	// ================== COMMUNICATIONS ==================
	log.Println("Creating communication logs...")

	modes := []domain.CommunicationMode{domain.ModeEmail, domain.ModeCall, domain.ModeMeeting}
	summaries := []string{
		"Discussed updated delivery timeline and agreed on a revised milestone plan for the next quarter.",
		"Client requested a detailed cost breakdown before approving the remaining budget items.",
		"Walked through the latest design drafts; feedback was positive, minor copy changes requested.",
		"Follow-up on the outstanding invoice; payment expected by the end of next week.",
	}
	for i, proj := range projects {
		projectID := proj.ID
		date := time.Now().AddDate(0, 0, -i*3)
		followUp := i%2 == 0
		var followUpDate *time.Time
		if followUp {
			d := date.AddDate(0, 0, 7)
			followUpDate = &d
		}
		db.Create(&domain.CommunicationLog{
			ClientID:         proj.ClientID,
			ProjectID:        &projectID,
			Date:             date,
			Mode:             modes[i%len(modes)],
			Summary:          summaries[i%len(summaries)],
			FollowUpRequired: followUp,
			FollowUpDate:     followUpDate,
		})
	}

	log.Println("Seed complete.")
}
