package entity

import "context"

type LeadSummary struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Company string     `json:"company,omitempty"`
	Status  LeadStatus `json:"status"`
	Score   int        `json:"score"`
}

type DashboardSummary struct {
	TotalLeads            int            `json:"totalLeads"`
	TotalClients          int            `json:"totalClients"`
	TotalContacts         int            `json:"totalContacts"`
	TotalActivities       int            `json:"totalActivities"`
	PendingTasks          int            `json:"pendingTasks"`
	OverdueTasks          int            `json:"overdueTasks"`
	AverageLeadScore      float64        `json:"averageLeadScore"`
	ConversionRate        float64        `json:"conversionRate"`
	LeadsByStatus         map[string]int `json:"leadsByStatus"`
	LeadsBySource         map[string]int `json:"leadsBySource"`
	InteractionsLast7Days int            `json:"interactionsLast7Days"`
	TopLeads              []LeadSummary  `json:"topLeads"`
}

type DashboardRepositoryInterface interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}
