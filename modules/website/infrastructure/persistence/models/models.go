package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Job struct {
	ID             uuid.UUID `db:"id"`
	Order          int       `db:"order"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Title          string    `db:"title"`
	Department     string    `db:"department"`
	Location       string    `db:"location"`
	EmploymentType string    `db:"employment_type"`
	Summary        string    `db:"summary"`
	Description    string    `db:"description"`
	Requirements   []string  `db:"requirements"`
}

type Location struct {
	ID             uuid.UUID `db:"id"`
	Order          int       `db:"order"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Name           string    `db:"name"`
	City           string    `db:"city"`
	Country        string    `db:"country"`
	Address        string    `db:"address"`
	Phone          string    `db:"phone"`
	Email          string    `db:"email"`
	MapURL         string    `db:"map_url"`
	IsHeadquarters bool      `db:"is_headquarters"`
}

type TeamMember struct {
	ID          uuid.UUID `db:"id"`
	Order       int       `db:"order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	Name        string    `db:"name"`
	Role        string    `db:"role"`
	Bio         string    `db:"bio"`
	PhotoKey    string    `db:"photo_key"`
	LinkedInURL string    `db:"linkedin_url"`
}

type Partner struct {
	ID          uuid.UUID `db:"id"`
	Order       int       `db:"order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	Name        string    `db:"name"`
	LogoKey     string    `db:"logo_key"`
	WebsiteURL  string    `db:"website_url"`
	Description string    `db:"description"`
}

type PricingPlan struct {
	ID           uuid.UUID      `db:"id"`
	Order        int            `db:"order"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	Name         string         `db:"name"`
	Tagline      string         `db:"tagline"`
	Currency     string         `db:"currency"`
	MonthlyPrice pgtype.Numeric `db:"monthly_price"`
	YearlyPrice  pgtype.Numeric `db:"yearly_price"`
	Features     []byte         `db:"features"`
	IsPopular    bool           `db:"is_popular"`
	CTALabel     string         `db:"cta_label"`
	CTAURL       string         `db:"cta_url"`
}

type Industry struct {
	ID          uuid.UUID `db:"id"`
	Order       int       `db:"order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	Slug        string    `db:"slug"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
}

type Solution struct {
	ID          uuid.UUID `db:"id"`
	Order       int       `db:"order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	IndustryID  uuid.UUID `db:"industry_id"`
	Title       string    `db:"title"`
	Summary     string    `db:"summary"`
	Description string    `db:"description"`
}

type Page struct {
	Slug      string      `db:"slug"`
	Title     string      `db:"title"`
	Content   []byte      `db:"content"`
	UpdatedBy pgtype.UUID `db:"updated_by"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

type Inquiry struct {
	ID        uuid.UUID   `db:"id"`
	Kind      string      `db:"kind"`
	Name      string      `db:"name"`
	Email     string      `db:"email"`
	Phone     string      `db:"phone"`
	Company   string      `db:"company"`
	Message   string      `db:"message"`
	JobID     pgtype.UUID `db:"job_id"`
	ResumeKey string      `db:"resume_key"`
	IP        string      `db:"ip"`
	UserAgent string      `db:"user_agent"`
	CreatedAt time.Time   `db:"created_at"`
}
