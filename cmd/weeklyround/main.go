// Command weeklyround publishes the shared question for the current week.
// It is intended to run from a scheduler early on Monday. Re-running within
// the same week is a no-op.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"goodquestions/internal/ai"
	"goodquestions/internal/bootstrap"
	"goodquestions/internal/config"
	"goodquestions/internal/featureflags"
	"goodquestions/internal/repository"
	"goodquestions/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	text := flag.String("text", "", "question text to publish; when empty the text is AI-generated")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	author, err := bootstrap.EnsureSystemAuthor(db)
	if err != nil {
		return err
	}

	questionText := strings.TrimSpace(*text)
	if questionText == "" {
		questionText, err = generateText(ctx, cfg)
		if err != nil {
			return err
		}
	}

	weeklySvc := service.NewWeeklyService(
		repository.NewQuestionRepository(db),
		repository.NewAnswerRepository(db),
		repository.NewWeeklyRoundRepository(db),
		cfg.Location(),
		nil,
	)

	round, outcome, err := weeklySvc.PublishRound(ctx, author.ID, questionText)
	if err != nil {
		return fmt.Errorf("publish round: %w", err)
	}

	if outcome == repository.AlreadyExists {
		log.Printf("round for week %s already published (question %d)", round.WeekStart, round.QuestionID)
		return nil
	}
	log.Printf("published round for week %s (question %d)", round.WeekStart, round.QuestionID)
	return nil
}

func generateText(ctx context.Context, cfg *config.Config) (string, error) {
	flags := featureflags.NewManager(cfg.FeatureFlags)
	if !flags.Enabled(featureflags.FlagWeeklyAI, 0) {
		return "", fmt.Errorf("no -text given and the %s flag is off", featureflags.FlagWeeklyAI)
	}
	if cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("no -text given and GEMINI_API_KEY is not set")
	}

	aiSvc, err := ai.NewService(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return "", fmt.Errorf("init AI client: %w", err)
	}
	return aiSvc.GenerateWeeklyQuestion(ctx)
}
