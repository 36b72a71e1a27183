package models

import "time"

// Language is the user's response language for chat and generated plans.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSinhala Language = "si"
)

// ValidLanguage reports whether s is a supported language code.
func ValidLanguage(s string) bool {
	return Language(s) == LanguageEnglish || Language(s) == LanguageSinhala
}

// Theme is the user's display theme preference.
type Theme string

const (
	ThemeColorful Theme = "COLORFUL"
	ThemeDark     Theme = "DARK"
)

// ValidTheme reports whether s is a supported theme.
func ValidTheme(s string) bool {
	return Theme(s) == ThemeColorful || Theme(s) == ThemeDark
}

// UserProfile is the durable record for one registered user. Username is the
// store key and never changes after signup. Name stays empty until onboarding
// completes. A nil LastQuizAt means the daily check-in has never been done.
type UserProfile struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never returned in JSON
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Name          string     `json:"name"`
	WellnessScore int        `json:"wellness_score"` // 0-100, set by the daily check-in
	LastQuizAt    *time.Time `json:"last_quiz_at,omitempty"`
	Language      Language   `json:"language"`
	Theme         Theme      `json:"theme"`

	// Optional demographics, free-form
	Email       string `json:"email,omitempty"`
	Birthday    string `json:"birthday,omitempty"`
	Sex         string `json:"sex,omitempty"`
	CivilStatus string `json:"civil_status,omitempty"`
	City        string `json:"city,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Clone returns a deep copy so store implementations never hand out aliased
// records.
func (p *UserProfile) Clone() *UserProfile {
	cp := *p
	if p.LastQuizAt != nil {
		t := *p.LastQuizAt
		cp.LastQuizAt = &t
	}
	return &cp
}

// ProfileUpdate is a partial profile change. Nil fields are left untouched;
// non-nil fields overwrite, including explicit empty strings.
type ProfileUpdate struct {
	Name          *string
	WellnessScore *int
	LastQuizAt    *time.Time
	Language      *Language
	Theme         *Theme
	Email         *string
	Birthday      *string
	Sex           *string
	CivilStatus   *string
	City          *string
	AvatarURL     *string
}

// Apply merges the update into p.
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.WellnessScore != nil {
		p.WellnessScore = *u.WellnessScore
	}
	if u.LastQuizAt != nil {
		t := *u.LastQuizAt
		p.LastQuizAt = &t
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
	if u.Theme != nil {
		p.Theme = *u.Theme
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Birthday != nil {
		p.Birthday = *u.Birthday
	}
	if u.Sex != nil {
		p.Sex = *u.Sex
	}
	if u.CivilStatus != nil {
		p.CivilStatus = *u.CivilStatus
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
}
