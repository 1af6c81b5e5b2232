package database

import "goodquestions/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Question{},
		&models.WeeklyRound{},
		&models.Answer{},
		&models.Vote{},
		&models.Connection{},
		&models.Invite{},
		&models.OnboardingAnswer{},
	}
}
