package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	minPasswordLength = 8
	maxNameLength     = 200
	maxTitleLength    = 255
)

var nonDigit = regexp.MustCompile(`\D`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type validator struct {
	errors []ValidationError
}

func (v *validator) add(field, message string) {
	v.errors = append(v.errors, ValidationError{field, message})
}

func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
		return false
	}
	return true
}

func (v *validator) maxLen(field, value string, n int) {
	if len(value) > n {
		v.add(field, fmt.Sprintf("must not exceed %d characters", n))
	}
}

func (v *validator) email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "is invalid")
	}
}

func (v *validator) phone(field, value string) {
	if value == "" {
		return
	}
	if !isValidPhoneNumber(value) {
		v.add(field, "must be a valid phone number")
	}
}

func (v *validator) oneOf(field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if a == value {
			return
		}
	}
	v.add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return invalid(v.errors...)
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigit.ReplaceAllString(phone, "")
	return len(cleaned) >= 8 && len(cleaned) <= 15
}

func isValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Host != ""
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func ValidateRegisterInput(input RegisterInput) error {
	var v validator
	if v.required("name", input.Name) {
		v.maxLen("name", input.Name, maxNameLength)
	}
	if v.required("email", input.Email) {
		v.email("email", input.Email)
	}
	if len(input.Password) < minPasswordLength {
		v.add("password", fmt.Sprintf("must have at least %d characters", minPasswordLength))
	}
	return v.err()
}

func ValidateCreateUserInput(input CreateUserInput) error {
	var v validator
	if err := ValidateRegisterInput(RegisterInput{input.Name, input.Email, input.Password}); err != nil {
		v.errors = append(v.errors, err.(*DomainError).Details...)
	}
	v.oneOf("role", string(input.Role), stringsOf(entity.Roles))
	return v.err()
}

func ValidateUpdateUserInput(input UpdateUserInput) error {
	var v validator
	if input.Name != nil && v.required("name", *input.Name) {
		v.maxLen("name", *input.Name, maxNameLength)
	}
	if input.Email != nil && v.required("email", *input.Email) {
		v.email("email", *input.Email)
	}
	if input.Password != nil && len(*input.Password) < minPasswordLength {
		v.add("password", fmt.Sprintf("must have at least %d characters", minPasswordLength))
	}
	if input.Role != nil && !input.Role.Valid() {
		v.add("role", "must be one of "+strings.Join(stringsOf(entity.Roles), ", "))
	}
	return v.err()
}

func validateLeadFields(v *validator, email, phone, source, status, companySize string, budget *float64) {
	v.email("email", email)
	v.phone("phone", phone)
	v.oneOf("source", source, entity.LeadSources)
	v.oneOf("status", status, stringsOf(entity.LeadStatuses))
	v.oneOf("companySize", companySize, entity.CompanySizes)
	if budget != nil && *budget < 0 {
		v.add("budget", "must not be negative")
	}
}

func ValidateCreateLeadInput(input CreateLeadInput) error {
	var v validator
	if v.required("firstName", input.FirstName) {
		v.maxLen("firstName", input.FirstName, maxNameLength)
	}
	v.maxLen("lastName", input.LastName, maxNameLength)
	v.required("email", input.Email)
	validateLeadFields(&v, input.Email, input.Phone, input.Source, input.Status, input.CompanySize, input.Budget)
	return v.err()
}

func ValidateUpdateLeadInput(input UpdateLeadInput) error {
	var v validator
	if input.FirstName != nil && v.required("firstName", *input.FirstName) {
		v.maxLen("firstName", *input.FirstName, maxNameLength)
	}
	if input.Email != nil {
		v.required("email", *input.Email)
	}
	if input.OwnerID != nil {
		v.required("ownerId", *input.OwnerID)
	}
	validateLeadFields(&v, deref(input.Email), deref(input.Phone), deref(input.Source),
		deref(input.Status), deref(input.CompanySize), input.Budget)
	return v.err()
}

func ValidateCreateInteractionInput(input CreateInteractionInput) error {
	var v validator
	if v.required("type", input.Type) && !entity.InteractionType(input.Type).Valid() {
		v.add("type", "must be one of "+strings.Join(stringsOf(entity.InteractionTypes), ", "))
	}
	if v.required("title", input.Title) {
		v.maxLen("title", input.Title, maxTitleLength)
	}
	if input.InteractionDate == nil || input.InteractionDate.IsZero() {
		v.add("interactionDate", "is required")
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		v.add("durationMinutes", "must not be negative")
	}
	if input.Outcome != nil {
		v.maxLen("outcome", strings.TrimSpace(*input.Outcome), maxTitleLength)
	}
	if len(input.Metadata) > 0 && !isJSONObject(input.Metadata) {
		v.add("metadata", "must be a JSON object")
	}
	return v.err()
}

func ValidateClientInput(input ClientInput, creating bool) error {
	var v validator
	if creating || input.Name != nil {
		if v.required("name", deref(input.Name)) {
			v.maxLen("name", *input.Name, maxNameLength)
		}
	}
	v.email("email", deref(input.Email))
	v.phone("phone", deref(input.Phone))
	if w := deref(input.Website); w != "" && !isValidURL(w) {
		v.add("website", "must be a valid URL")
	}
	v.oneOf("status", deref(input.Status), []string{entity.ClientStatusActive, entity.ClientStatusInactive})
	return v.err()
}

func ValidateContactInput(input ContactInput, creating bool) error {
	var v validator
	if creating || input.ClientID != nil {
		v.required("clientId", deref(input.ClientID))
	}
	if creating || input.FirstName != nil {
		v.required("firstName", deref(input.FirstName))
	}
	v.email("email", deref(input.Email))
	v.phone("phone", deref(input.Phone))
	return v.err()
}

func ValidateActivityInput(input ActivityInput, creating bool) error {
	var v validator
	if creating || input.Type != nil {
		if v.required("type", deref(input.Type)) {
			v.oneOf("type", *input.Type, entity.ActivityTypes)
		}
	}
	if creating || input.Subject != nil {
		if v.required("subject", deref(input.Subject)) {
			v.maxLen("subject", *input.Subject, maxTitleLength)
		}
	}
	return v.err()
}

func ValidateTaskInput(input TaskInput, creating bool) error {
	var v validator
	if creating || input.Title != nil {
		if v.required("title", deref(input.Title)) {
			v.maxLen("title", *input.Title, maxTitleLength)
		}
	}
	v.oneOf("priority", deref(input.Priority), entity.TaskPriorities)
	v.oneOf("status", deref(input.Status), stringsOf(entity.TaskStatuses))
	if input.AssignedTo != nil {
		v.required("assignedTo", *input.AssignedTo)
	}
	return v.err()
}

func isJSONObject(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
