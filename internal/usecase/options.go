package usecase

import "github.com/xavierca1/ligue-crm/internal/entity"

// FormOptions lists the enumerations the forms offer.
func FormOptions() Options {
	return Options{
		CompanySizes:     entity.CompanySizes,
		Industries:       entity.Industries,
		LeadStatuses:     entity.LeadStatuses,
		LeadSources:      entity.LeadSources,
		InteractionTypes: entity.InteractionTypes,
		Outcomes:         entity.InteractionOutcomes,
		TaskPriorities:   entity.TaskPriorities,
		TaskStatuses:     entity.TaskStatuses,
		ActivityTypes:    entity.ActivityTypes,
		Roles:            entity.Roles,
	}
}
