package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Demographics are the lead fields that feed the demographic sub-score.
type Demographics struct {
	CompanySize string
	Industry    string
	Budget      *float64
	CreatedAt   time.Time
}

// Signal is the part of an interaction the calculator looks at.
type Signal struct {
	Type      entity.InteractionType
	Outcome   string
	CreatedAt time.Time
}

type Breakdown struct {
	Demographic int `json:"demographic"`
	Engagement  int `json:"engagement"`
	Behavioral  int `json:"behavioral"`
	Score       int `json:"score"`
}

func DemographicsOf(l *entity.Lead) Demographics {
	return Demographics{
		CompanySize: l.CompanySize,
		Industry:    l.Industry,
		Budget:      l.Budget,
		CreatedAt:   l.CreatedAt,
	}
}

func SignalsOf(interactions []*entity.Interaction) []Signal {
	out := make([]Signal, 0, len(interactions))
	for _, i := range interactions {
		s := Signal{Type: i.Type, CreatedAt: i.CreatedAt}
		if i.Outcome != nil {
			s.Outcome = *i.Outcome
		}
		out = append(out, s)
	}
	return out
}

// Calculate scores with the default rules.
func Calculate(d Demographics, signals []Signal, now time.Time) Breakdown {
	return defaultRules.Calculate(d, signals, now)
}

func (r Rules) Calculate(d Demographics, signals []Signal, now time.Time) Breakdown {
	b := Breakdown{
		Demographic: r.demographic(d),
		Engagement:  r.engagement(d.CreatedAt, signals, now),
		Behavioral:  r.behavioralScore(signals),
	}
	weighted := float64(b.Demographic)*DemographicWeight +
		float64(b.Engagement)*EngagementWeight +
		float64(b.Behavioral)*BehavioralWeight
	b.Score = clamp(int(math.Round(weighted)))
	return b
}

func (r Rules) demographic(d Demographics) int {
	points := r.companySize[normalize(d.CompanySize)]

	if industry := normalize(d.Industry); industry != "" {
		if p, ok := r.industry[industry]; ok {
			points += p
		} else {
			points += r.industryFallback
		}
	}

	// A zero or negative budget is treated as not provided.
	if d.Budget != nil && *d.Budget > 0 {
		for _, tier := range r.budgetTiers {
			if *d.Budget > tier.min || (!tier.exclusive && *d.Budget == tier.min) {
				points += tier.points
				break
			}
		}
	}
	return points
}

func (r Rules) engagement(leadCreatedAt time.Time, signals []Signal, now time.Time) int {
	if len(signals) == 0 {
		return 0
	}

	ordered := make([]Signal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	points := 0
	for _, s := range ordered {
		points += r.interactionType[s.Type]
	}

	// Gaps are taken between neighbours in newest-first order. The newest
	// interaction has no neighbour before it and earns no gap bonus.
	for i := 1; i < len(ordered); i++ {
		gap := ordered[i-1].CreatedAt.Sub(ordered[i].CreatedAt)
		if gap < 0 {
			gap = -gap
		}
		for _, g := range r.gapBonuses {
			if gap <= g.within {
				points += g.points
				break
			}
		}
	}

	points += r.frequency(len(ordered), leadCreatedAt, now)
	return points
}

func (r Rules) frequency(count int, leadCreatedAt time.Time, now time.Time) int {
	days := 0
	if !leadCreatedAt.IsZero() && now.After(leadCreatedAt) {
		days = int(now.Sub(leadCreatedAt).Hours() / 24)
	}
	weeks := int(math.Ceil(float64(days) / 7))
	if weeks < 1 {
		weeks = 1
	}
	rate := float64(count) / float64(weeks)

	for _, f := range r.frequencyBonuses {
		if rate > f.above || (f.inclusive && rate == f.above) {
			return f.points
		}
	}
	return r.frequencyFloor
}

func (r Rules) behavioralScore(signals []Signal) int {
	points := 0
	for _, bonus := range r.behavioral {
		for _, s := range signals {
			if bonus.matches(s) {
				points += bonus.points
				break
			}
		}
	}
	return points
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
