package services

import (
	"strings"
	"time"

	"github.com/mastrovia/devxtra-team/internal/models"
)

const defaultQuote = "Building the future."

// PublicProject is a work as shown on the public site.
type PublicProject struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Year        string     `json:"year"`
	Tags        []string   `json:"tags"`
	Link        *string    `json:"link,omitempty"`
	Images      []string   `json:"images"`
	Metrics     *string    `json:"metrics,omitempty"`
	Category    *string    `json:"category,omitempty"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TimelineItem struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PublicMember is a roster entry as shown on the public site.
type PublicMember struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Bio          string          `json:"bio"`
	Quote        string          `json:"quote"`
	Avatar       string          `json:"avatar"`
	Skills       []string        `json:"skills"`
	GithubURL    *string         `json:"github_url,omitempty"`
	LinkedinURL  *string         `json:"linkedin_url,omitempty"`
	PortfolioURL *string         `json:"portfolio_url,omitempty"`
	Works        []PublicProject `json:"works"`
	Timeline     []TimelineItem  `json:"timeline"`
}

type PublicProjectDetail struct {
	PublicProject
	Team []PublicMember `json:"team"`
}

type LandingStats struct {
	Experts int64 `json:"experts"`
	Shipped int64 `json:"shipped"`
}

func toPublicProject(p *models.Project) PublicProject {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	return PublicProject{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Year:        monthYear(p.StartedAt()),
		Tags:        tags,
		Link:        p.Link,
		Images:      images,
		Metrics:     p.Metrics,
		Category:    p.Category,
		StartDate:   p.StartDate,
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
	}
}

func toPublicMember(m *models.TeamMember) PublicMember {
	skills := []string(m.Skills)
	if skills == nil {
		skills = []string{}
	}
	var bio string
	if m.Bio != nil {
		bio = *m.Bio
	}
	return PublicMember{
		ID:           m.ID,
		Name:         m.Name,
		Role:         m.Role,
		Bio:          bio,
		Quote:        quoteFromBio(bio),
		Avatar:       m.Avatar,
		Skills:       skills,
		GithubURL:    m.GithubURL,
		LinkedinURL:  m.LinkedinURL,
		PortfolioURL: m.PortfolioURL,
		Works:        []PublicProject{},
		Timeline:     []TimelineItem{},
	}
}

// quoteFromBio returns the bio up to its first period.
func quoteFromBio(bio string) string {
	if bio == "" {
		return defaultQuote
	}
	if i := strings.Index(bio, "."); i >= 0 {
		return bio[:i]
	}
	return bio
}
