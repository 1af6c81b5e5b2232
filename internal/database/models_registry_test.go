package database

import (
	"testing"

	"goodquestions/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesWeeklyRound(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*models.WeeklyRound); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include WeeklyRound")
}
