package services

import (
	"time"

	"github.com/standapp/standapp-backend/internal/models"
)

// NeedsDailyCheckIn reports whether the daily wellness check-in is due.
// The gate resets at local midnight, not on a rolling 24-hour window: a
// check-in at 23:58 followed by a lookup at 00:02 is already "a new day".
// Comparison happens in now's location so the caller controls the timezone.
func NeedsDailyCheckIn(profile *models.UserProfile, now time.Time) bool {
	if profile == nil || profile.LastQuizAt == nil {
		return true
	}
	last := profile.LastQuizAt.In(now.Location())
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	return ly != ny || lm != nm || ld != nd
}
