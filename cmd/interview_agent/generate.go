package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/interview"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/logging"
	"github.com/jonathan/interview-coach/internal/types"
)

var (
	generateRole   string
	generateTopics []string
	generateCount  int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate interview questions and print them as JSON",
	Long: `Generate a question set for a role and topic selection without starting the server.
Topics are given as name=difficulty pairs, e.g. --topic "Arrays=Easy" --topic "Graphs (BFS, DFS, Dijkstra)=Hard".`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateRole, "role", "r", "", "Interview role (required)")
	generateCmd.Flags().StringArrayVarP(&generateTopics, "topic", "t", nil, "Topic with difficulty as name=difficulty (repeatable, required)")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 0, "Number of questions (defaults to one per topic)")

	generateCmd.MarkFlagRequired("role")
	generateCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	topics, err := parseTopicFlags(generateTopics)
	if err != nil {
		return err
	}

	count := generateCount
	if count == 0 {
		count = len(topics)
	}

	req := types.InterviewRequest{
		Role:          generateRole,
		Topics:        topics,
		QuestionCount: count,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPretty, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client, err := llm.NewClient(cmd.Context(), nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	generator := interview.NewGenerator(client, logger.Named("interview"))
	questions, err := generator.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(types.GeneratedQuestions{Questions: questions})
}

// parseTopicFlags parses repeated name=difficulty pairs.
func parseTopicFlags(pairs []string) (map[string]types.Difficulty, error) {
	topics := make(map[string]types.Difficulty, len(pairs))
	for _, pair := range pairs {
		eq := strings.LastIndex(pair, "=")
		if eq <= 0 || eq == len(pair)-1 {
			return nil, fmt.Errorf("invalid topic %q: expected name=difficulty", pair)
		}
		name := strings.TrimSpace(pair[:eq])
		difficulty := types.Difficulty(strings.TrimSpace(pair[eq+1:]))
		switch difficulty {
		case types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard:
		default:
			return nil, fmt.Errorf("invalid difficulty %q for topic %q: expected Easy, Medium, or Hard", difficulty, name)
		}
		topics[name] = difficulty
	}
	return topics, nil
}
