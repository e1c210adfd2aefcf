// Package scoring computes the 0-100 lead score from demographic fields and
// the lead's interaction history. Everything here is pure: callers load the
// data and persist the result.
package scoring

import (
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	DemographicWeight = 0.2
	EngagementWeight  = 0.4
	BehavioralWeight  = 0.4

	MinScore = 0
	MaxScore = 100
)

type budgetTier struct {
	min       float64
	exclusive bool
	points    int
}

type gapBonus struct {
	within time.Duration
	points int
}

type frequencyBonus struct {
	above     float64
	inclusive bool
	points    int
}

type behavioralBonus struct {
	name    string
	points  int
	matches func(Signal) bool
}

// Rules holds the fixed point tables. It is built once by newDefaultRules and
// only read afterwards.
type Rules struct {
	companySize      map[string]int
	industry         map[string]int
	industryFallback int
	budgetTiers      []budgetTier
	interactionType  map[entity.InteractionType]int
	gapBonuses       []gapBonus
	frequencyBonuses []frequencyBonus
	frequencyFloor   int
	behavioral       []behavioralBonus
}

var defaultRules = newDefaultRules()

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return defaultRules
}

func newDefaultRules() Rules {
	return Rules{
		companySize: map[string]int{
			normalize(entity.CompanySizeEnterprise):    20,
			normalize(entity.CompanySizeMidMarket):     15,
			normalize(entity.CompanySizeSmallBusiness): 10,
			normalize(entity.CompanySizeStartup):       5,
		},
		industry: map[string]int{
			"technology":    20,
			"healthcare":    18,
			"finance":       18,
			"manufacturing": 15,
			"retail":        12,
		},
		industryFallback: 10,
		// Ordered from the highest threshold down; first match wins.
		budgetTiers: []budgetTier{
			{min: 100000, exclusive: true, points: 20},
			{min: 50000, points: 15},
			{min: 10000, points: 10},
			{min: 0, exclusive: true, points: 5},
		},
		interactionType: map[entity.InteractionType]int{
			entity.InteractionMeeting: 15,
			entity.InteractionCall:    10,
			entity.InteractionEmail:   5,
			entity.InteractionNote:    2,
			entity.InteractionOther:   1,
		},
		gapBonuses: []gapBonus{
			{within: 24 * time.Hour, points: 10},
			{within: 7 * 24 * time.Hour, points: 5},
		},
		frequencyBonuses: []frequencyBonus{
			{above: 3, points: 15},
			{above: 1, inclusive: true, points: 10},
		},
		frequencyFloor: 5,
		behavioral: []behavioralBonus{
			{name: "attended_meeting", points: 15, matches: func(s Signal) bool {
				return s.Type == entity.InteractionMeeting && strings.EqualFold(strings.TrimSpace(s.Outcome), entity.OutcomeAttended)
			}},
			{name: "document", points: 5, matches: isType(entity.InteractionDocument)},
			{name: "proposal", points: 20, matches: isType(entity.InteractionProposal)},
			{name: "demo", points: 15, matches: isType(entity.InteractionDemo)},
			{name: "quote", points: 10, matches: isType(entity.InteractionQuote)},
		},
	}
}

func isType(t entity.InteractionType) func(Signal) bool {
	return func(s Signal) bool { return s.Type == t }
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
