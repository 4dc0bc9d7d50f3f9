package domain

import (
	"fmt"
	"time"
)

// KnowledgeArticle represents an article in the media knowledge base.
// Views is a monotonically non-decreasing counter bumped on every
// detail read.
type KnowledgeArticle struct {
	ID        int
	Title     string
	Category  string
	Type      string
	Content   string
	Tags      []string
	Author    string
	Views     int
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateKnowledgeArticle validates a KnowledgeArticle instance
func ValidateKnowledgeArticle(a *KnowledgeArticle) error {
	if a == nil {
		return fmt.Errorf("article cannot be nil")
	}

	if a.Title == "" {
		return fmt.Errorf("article Title is required")
	}

	if a.Category == "" {
		return fmt.Errorf("article Category is required")
	}

	if a.Content == "" {
		return fmt.Errorf("article Content is required")
	}

	if a.Views < 0 {
		return fmt.Errorf("article Views cannot be negative")
	}

	if a.Rating < 0.0 || a.Rating > 5.0 {
		return fmt.Errorf("article Rating must be between 0.0 and 5.0")
	}

	return nil
}
