// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"goodquestions/internal/bootstrap"
	"goodquestions/internal/models"
	"goodquestions/internal/weekly"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumDays     int
	ShouldClean bool
}

// SeedPassword is the password every seeded account signs in with.
const SeedPassword = "SeedPassword123"

var questionTexts = []string{
	"What's a small thing that made you smile this week?",
	"Which book changed how you see the world?",
	"What did you want to be when you were ten?",
	"What's the best meal you've ever cooked?",
	"Who taught you the most about friendship?",
	"What's a habit you're proud of keeping?",
	"Where would you live for a year if money didn't matter?",
	"What song do you never skip?",
	"What's the most useful thing you own?",
	"What's something you've changed your mind about recently?",
	"What skill would you learn if you had a free month?",
	"What's your favorite way to waste an afternoon?",
	"What piece of advice do you find yourself repeating?",
	"What's a place you keep going back to?",
	"What made you laugh hardest this month?",
}

var weeklyTexts = []string{
	"What's one thing you believed strongly five years ago that you no longer believe?",
	"What would you do with an extra hour every day?",
	"Which stranger do you still think about, and why?",
	"What's the hardest thing you've ever had to unlearn?",
}

// Seed populates the database with a realistic social graph: users, mutual
// connections, a current weekly round, daily questions with answers and
// votes, and a handful of open invites.
func Seed(db *gorm.DB, loc *time.Location, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumDays <= 0 {
		opts.NumDays = 7
	}

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("created %d users", len(users))

	if err := createConnections(db, r, users); err != nil {
		return err
	}

	if err := createWeeklyRound(db, r, loc, users); err != nil {
		return err
	}

	if err := createDailyQuestions(db, r, loc, users, opts.NumDays); err != nil {
		return err
	}

	if err := createInvites(db, r, users); err != nil {
		return err
	}

	return nil
}

func clearData(db *gorm.DB) error {
	// Child tables first to respect foreign keys.
	tables := []string{
		"votes", "answers", "weekly_rounds", "questions",
		"onboarding_answers", "invites", "connections", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s %s %d", gofakeit.FirstName(), gofakeit.LastName(), i+1)
		user := models.User{
			DisplayName: name,
			Email:       gofakeit.Email(),
			Password:    string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user %q: %w", name, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// createConnections links each user with a few mutual peers so that every
// account has a populated feed.
func createConnections(db *gorm.DB, r *rand.Rand, users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	type pair struct{ a, b uint }
	seen := make(map[pair]bool)

	for i := range users {
		peers := 2 + r.Intn(3)
		for p := 0; p < peers; p++ {
			j := r.Intn(len(users))
			if j == i {
				continue
			}
			a, b := users[i].ID, users[j].ID
			if a > b {
				a, b = b, a
			}
			if seen[pair{a, b}] {
				continue
			}
			seen[pair{a, b}] = true

			edges := []models.Connection{
				{UserID: a, PeerID: b},
				{UserID: b, PeerID: a},
			}
			if err := db.Create(&edges).Error; err != nil {
				return fmt.Errorf("create connection %d<->%d: %w", a, b, err)
			}
		}
	}
	return nil
}

func createWeeklyRound(db *gorm.DB, r *rand.Rand, loc *time.Location, users []models.User) error {
	author, err := bootstrap.EnsureSystemAuthor(db)
	if err != nil {
		return err
	}

	weekStart := weekly.WeekStartMonday(time.Now().In(loc))
	question := models.Question{
		UserID: author.ID,
		QDate:  weekStart,
		Text:   weeklyTexts[r.Intn(len(weeklyTexts))],
	}
	if err := db.Create(&question).Error; err != nil {
		return fmt.Errorf("create weekly question: %w", err)
	}

	round := models.WeeklyRound{
		WeekStart:   weekStart,
		QuestionID:  question.ID,
		PublishedAt: time.Now(),
	}
	if err := db.Create(&round).Error; err != nil {
		return fmt.Errorf("create weekly round: %w", err)
	}

	// Roughly half the community has already answered.
	for i := range users {
		if r.Intn(2) == 0 {
			continue
		}
		answer := models.Answer{
			QuestionID:   question.ID,
			RespondentID: users[i].ID,
			Text:         gofakeit.Paragraph(1, 2, 8, " "),
		}
		if err := db.Create(&answer).Error; err != nil {
			return fmt.Errorf("create weekly answer: %w", err)
		}
	}

	log.Printf("published weekly round for %s", weekStart)
	return nil
}

// createDailyQuestions backfills per-user daily questions for the last few
// days, with answers from connected peers and votes from the owners.
func createDailyQuestions(db *gorm.DB, r *rand.Rand, loc *time.Location, users []models.User, days int) error {
	questions := 0
	for i := range users {
		peers, err := connectedPeers(db, users[i].ID)
		if err != nil {
			return err
		}

		for d := 1; d <= days; d++ {
			// Not everyone asks every day.
			if r.Intn(3) == 0 {
				continue
			}
			qdate := time.Now().In(loc).AddDate(0, 0, -d).Format(weekly.DateLayout)
			question := models.Question{
				UserID: users[i].ID,
				QDate:  qdate,
				Text:   questionTexts[r.Intn(len(questionTexts))],
			}
			if err := db.Create(&question).Error; err != nil {
				return fmt.Errorf("create question: %w", err)
			}
			questions++

			for _, peerID := range peers {
				if r.Intn(2) == 0 {
					continue
				}
				answer := models.Answer{
					QuestionID:   question.ID,
					RespondentID: peerID,
					Text:         gofakeit.Sentence(12),
				}
				if err := db.Create(&answer).Error; err != nil {
					return fmt.Errorf("create answer: %w", err)
				}
				if r.Intn(3) == 0 {
					vote := models.Vote{AnswerID: answer.ID, VoterID: users[i].ID}
					if err := db.Create(&vote).Error; err != nil {
						return fmt.Errorf("create vote: %w", err)
					}
				}
			}
		}
	}
	log.Printf("created %d daily questions", questions)
	return nil
}

func connectedPeers(db *gorm.DB, userID uint) ([]uint, error) {
	var peers []uint
	err := db.Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Pluck("peer_id", &peers).Error
	if err != nil {
		return nil, fmt.Errorf("list peers for %d: %w", userID, err)
	}
	return peers, nil
}

func createInvites(db *gorm.DB, r *rand.Rand, users []models.User) error {
	created := 0
	for i := range users {
		if r.Intn(4) != 0 {
			continue
		}
		invite := models.Invite{
			Token:     gofakeit.UUID(),
			InviterID: users[i].ID,
		}
		if err := db.Create(&invite).Error; err != nil {
			return fmt.Errorf("create invite: %w", err)
		}
		created++
	}
	log.Printf("created %d open invites", created)
	return nil
}
