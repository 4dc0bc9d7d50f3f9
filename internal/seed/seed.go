// Package seed loads the sample dataset: eight RFPs, the knowledge
// base starter articles, the agency team and the import mailbox.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adresponse/adresponse/internal/domain"
)

// RFPWriter is the subset of the RFP repository used for seeding
type RFPWriter interface {
	Create(ctx context.Context, r *domain.RFP) error
	ListAll(ctx context.Context) ([]*domain.RFP, error)
}

// ArticleWriter creates knowledge base articles
type ArticleWriter interface {
	Create(ctx context.Context, a *domain.KnowledgeArticle) error
}

// TeamWriter creates team members
type TeamWriter interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	List(ctx context.Context) ([]*domain.TeamMember, error)
}

// EmailWriter creates mailbox emails
type EmailWriter interface {
	Create(ctx context.Context, e *domain.EmailRFP) error
}

// Stores groups the repositories the seeder writes to. Both the
// in-memory stores and the Postgres repositories satisfy it.
type Stores struct {
	RFPs     RFPWriter
	Articles ArticleWriter
	Team     TeamWriter
	Emails   EmailWriter
}

// Run loads the sample dataset. It is a no-op when RFPs already exist,
// so restarting a seeded server does not duplicate data.
func Run(ctx context.Context, stores Stores) error {
	existing, err := stores.RFPs.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing rfps: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("seed: skipped, %d rfps already present", len(existing))
		return nil
	}

	memberIDs, err := seedTeam(ctx, stores.Team)
	if err != nil {
		return err
	}
	if err := seedRFPs(ctx, stores.RFPs, memberIDs); err != nil {
		return err
	}
	if err := seedArticles(ctx, stores.Articles); err != nil {
		return err
	}
	if err := seedEmails(ctx, stores.Emails); err != nil {
		return err
	}

	log.Println("seed: sample data loaded")
	return nil
}

func seedTeam(ctx context.Context, team TeamWriter) (map[string]int, error) {
	members := []*domain.TeamMember{
		{Name: "John Doe", Role: "Media Director", Email: "john.doe@adresponse.io"},
		{Name: "Amanda Smith", Role: "Digital Strategist", Email: "amanda.smith@adresponse.io"},
		{Name: "Robert Johnson", Role: "Ad Operations", Email: "robert.johnson@adresponse.io"},
		{Name: "Maria Lopez", Role: "Sales Manager", Email: "maria.lopez@adresponse.io"},
	}

	existing, err := team.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	ids := make(map[string]int)
	if len(existing) > 0 {
		for _, m := range existing {
			ids[m.Name] = m.ID
		}
		return ids, nil
	}

	for _, m := range members {
		if err := team.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to create team member %q: %w", m.Name, err)
		}
		ids[m.Name] = m.ID
	}
	return ids, nil
}

type rfpSeed struct {
	name         string
	agency       string
	advertiser   string
	campaignType string
	budgetRange  string
	dueDate      string
	status       domain.RFPStatus
	completion   int
	team         []string
}

func seedRFPs(ctx context.Context, rfps RFPWriter, memberIDs map[string]int) error {
	samples := []rfpSeed{
		{"Q3 Digital Media Campaign", "MediaBuyers Agency", "TechGadgets Inc.",
			"Digital Media", "$500K - $750K", "2025-04-15", domain.RFPStatusInProgress, 72,
			[]string{"John Doe", "Amanda Smith", "Robert Johnson", "Maria Lopez"}},
		{"Summer Retail Promotion", "BrandMax Advertising", "FashionRetail Co.",
			"Multi-platform", "$300K - $450K", "2025-04-10", domain.RFPStatusInProgress, 45,
			[]string{"Amanda Smith", "Robert Johnson", "Maria Lopez"}},
		{"Fall TV Sponsorship Package", "GlobalMedia Partners", "LuxuryCars Inc.",
			"Broadcast & Digital", "$1M - $1.5M", "2025-04-22", domain.RFPStatusCompleted, 100,
			[]string{"John Doe", "Maria Lopez"}},
		{"Holiday Campaign Planning", "DigitalFirst Agency", "HomeGoods Plus",
			"Digital & Social", "$250K - $400K", "2025-04-12", domain.RFPStatusUrgent, 30,
			[]string{"Amanda Smith", "Robert Johnson"}},
		{"B2B Tech Solutions Campaign", "AdVantage Media", "EnterpriseCloud Solutions",
			"B2B Digital", "$150K - $200K", "2025-04-28", domain.RFPStatusNew, 5,
			[]string{"John Doe", "Robert Johnson"}},
		{"Financial Services Awareness", "MediaPlan Group", "TrustBank Financial",
			"Multi-channel", "$400K - $600K", "2025-04-18", domain.RFPStatusInProgress, 60,
			[]string{"Amanda Smith", "Maria Lopez"}},
		{"Mobile App Launch Campaign", "CreativeEdge Partners", "FitLife App",
			"Mobile & Social", "$200K - $350K", "2025-05-05", domain.RFPStatusNotStarted, 0,
			[]string{"Robert Johnson"}},
		{"CPG Brand Relaunch", "StrategyPlus Media", "EcoClean Products",
			"Integrated Media", "$350K - $500K", "2025-04-25", domain.RFPStatusInProgress, 25,
			[]string{"John Doe", "Amanda Smith"}},
	}

	now := time.Now().UTC()
	for _, s := range samples {
		dueDate, err := time.Parse(domain.DueDateFormat, s.dueDate)
		if err != nil {
			return fmt.Errorf("bad due date %q: %w", s.dueDate, err)
		}

		var teamIDs []int
		for _, name := range s.team {
			if id, ok := memberIDs[name]; ok {
				teamIDs = append(teamIDs, id)
			}
		}

		rfp := &domain.RFP{
			Name:                 s.name,
			AgencyName:           s.agency,
			AdvertiserClientName: s.advertiser,
			CampaignType:         s.campaignType,
			BudgetRange:          s.budgetRange,
			DueDate:              dueDate,
			Status:               s.status,
			CompletionPercentage: s.completion,
			Content: fmt.Sprintf(
				"RFP for %s campaign targeting %s channels with budget range %s.",
				s.name, s.campaignType, s.budgetRange),
			AIProcessingEnabled: true,
			TeamMemberIDs:       teamIDs,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := rfps.Create(ctx, rfp); err != nil {
			return fmt.Errorf("failed to create rfp %q: %w", s.name, err)
		}
	}
	return nil
}

func seedArticles(ctx context.Context, articles ArticleWriter) error {
	now := time.Now().UTC()
	samples := []*domain.KnowledgeArticle{
		{
			Title:    "Digital Media Planning Best Practices",
			Category: "Strategy",
			Type:     "Article",
			Content:  "Digital media planning is the strategic process of identifying and selecting optimal digital channels...",
			Tags:     []string{"Digital", "Planning", "Strategy"},
			Author:   "Media Strategy Team",
			Views:    245,
			Rating:   4.8,
		},
		{
			Title:    "Programmatic Advertising Fundamentals",
			Category: "Technology",
			Type:     "Guide",
			Content:  "Programmatic advertising represents the automated buying and selling of digital advertising space...",
			Tags:     []string{"Programmatic", "RTB", "Technology"},
			Author:   "Tech Innovation Team",
			Views:    189,
			Rating:   4.6,
		},
		{
			Title:    "Advanced Media Buying Strategies for 2025",
			Category: "Strategy",
			Type:     "Article",
			Content:  "This comprehensive guide covers the latest media buying strategies for 2025, including programmatic advertising trends, AI-powered optimization techniques, and cross-platform campaign management.",
			Tags:     []string{"strategy", "digital media", "best practices"},
			Author:   "AI Assistant",
			Views:    0,
			Rating:   3.1,
		},
	}

	for _, a := range samples {
		a.CreatedAt = now
		a.UpdatedAt = now
		if err := articles.Create(ctx, a); err != nil {
			return fmt.Errorf("failed to create article %q: %w", a.Title, err)
		}
	}
	return nil
}

func seedEmails(ctx context.Context, emails EmailWriter) error {
	now := time.Now().UTC()
	samples := []*domain.EmailRFP{
		{
			Subject:      "MediaBuyers Agency - Q3 Digital Campaign RFP (2 attachments)",
			Sender:       "MediaBuyers Agency",
			ReceivedDate: now.AddDate(0, 0, -1),
			Attachments: []domain.EmailAttachment{
				{Filename: "TechGadgets_Q3_Digital_RFP.pdf", Type: "Primary RFP"},
				{Filename: "TechGadgets_Media_Requirements.xlsx", Type: "Supporting"},
			},
		},
		{
			Subject:      "BrandMax Advertising - Summer Retail Promotion RFP (1 attachment)",
			Sender:       "BrandMax Advertising",
			ReceivedDate: now.AddDate(0, 0, -2),
			Attachments: []domain.EmailAttachment{
				{Filename: "Summer_Retail_RFP.pdf", Type: "Primary RFP"},
			},
		},
		{
			Subject:      "DigitalFirst Agency - Holiday Campaign Planning RFP (3 attachments)",
			Sender:       "DigitalFirst Agency",
			ReceivedDate: now.AddDate(0, 0, -3),
			Attachments: []domain.EmailAttachment{
				{Filename: "Holiday_Campaign_RFP.pdf", Type: "Primary RFP"},
				{Filename: "Media_Requirements.xlsx", Type: "Supporting"},
				{Filename: "Brand_Guidelines.pdf", Type: "Supporting"},
			},
		},
		{
			Subject:      "AdVantage Media - B2B Tech Solutions Campaign RFP (1 attachment)",
			Sender:       "AdVantage Media",
			ReceivedDate: now.AddDate(0, 0, -4),
			Attachments: []domain.EmailAttachment{
				{Filename: "B2B_Tech_RFP.pdf", Type: "Primary RFP"},
			},
		},
	}

	for _, e := range samples {
		if err := emails.Create(ctx, e); err != nil {
			return fmt.Errorf("failed to create email %q: %w", e.Subject, err)
		}
	}
	return nil
}
