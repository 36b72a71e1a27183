package models

// PhobiaStep is one rung of a systematic desensitization hierarchy.
type PhobiaStep struct {
	Level       int    `json:"level"` // 1 (easiest) to 5 (hardest)
	Description string `json:"description"`
	CopingTip   string `json:"copingTip"`
}

// PhobiaHierarchy is a 5-step exposure ladder for a single fear,
// ordered from least to most anxiety-provoking.
type PhobiaHierarchy struct {
	Title string       `json:"title"`
	Steps []PhobiaStep `json:"steps"`
}

// RecoveryWeek is one week of an addiction recovery plan.
type RecoveryWeek struct {
	WeekNumber int      `json:"weekNumber"` // 1-4
	Focus      string   `json:"focus"`
	Tasks      []string `json:"tasks"`
}

// AddictionPlan is a 30-day recovery plan broken into 4 weekly blocks.
type AddictionPlan struct {
	Title string         `json:"title"`
	Weeks []RecoveryWeek `json:"weeks"`
}
