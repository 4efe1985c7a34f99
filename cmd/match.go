package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/work24-mcp/work24-mcp/internal/tools"
	"github.com/work24-mcp/work24-mcp/internal/youth"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"

	promptSkip = "skip"
	promptDone = "done"
)

var employmentStatuses = []string{"구직자", "재직자", "창업자", "학생"}

var educationStatuses = []string{promptSkip, "재학", "휴학", "졸업", "중퇴"}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match youth support programs against a profile",
	Example: `  work24-mcp match --age 24 --employment-status 구직자 --preference training
  work24-mcp match --interactive --output yaml`,
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Int("age", 0, "age of the applicant (15-50)")
	matchCmd.Flags().String("employment-status", "", "employment status: 구직자, 재직자, 창업자 or 학생")
	matchCmd.Flags().String("education-status", "", "education status: 재학, 휴학, 졸업 or 중퇴")
	matchCmd.Flags().StringSlice("preference", nil, "preferred category, can be repeated")
	matchCmd.Flags().String("region", "", "preferred region code")
	matchCmd.Flags().BoolP("interactive", "i", false, "ask for the profile interactively")
	matchCmd.Flags().StringP("output", "o", outputJSON, "output format: json or yaml")
}

func match(cmd *cobra.Command) {
	logger, config := setup()

	registry, err := newRegistry(config, logger)
	if err != nil {
		logger.Fatal("building tools", zap.Error(err))
	}

	var args tools.MatchYouthProgramsArgs
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		args, err = askProfile()
		if err != nil {
			logger.Fatal("reading the profile", zap.Error(err))
		}
	} else {
		args.Age, _ = cmd.Flags().GetInt("age")
		args.EmploymentStatus, _ = cmd.Flags().GetString("employment-status")
		args.EducationStatus, _ = cmd.Flags().GetString("education-status")
		args.Preferences, _ = cmd.Flags().GetStringSlice("preference")
		args.Region, _ = cmd.Flags().GetString("region")
	}

	input, err := json.Marshal(args)
	if err != nil {
		log.Fatalf("marshaling arguments: %s", err)
	}

	out, err := registry.Call(context.Background(), tools.MatchYouthPrograms, string(input))
	if err != nil {
		logger.Fatal("matching programs", zap.String("error", tools.Describe(err)))
	}

	output, _ := cmd.Flags().GetString("output")
	rendered, err := render(out, output)
	if err != nil {
		logger.Fatal("rendering the result", zap.Error(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
}

// render converts the tool's JSON output to the requested format.
func render(out, format string) (string, error) {
	switch format {
	case outputJSON:
		return out, nil
	case outputYAML:
		var result youth.MatchResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			return "", errors.Wrap(err, "decoding the match result")
		}
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", errors.Wrap(err, "encoding yaml")
		}
		return string(data), nil
	default:
		return "", errors.Newf("unknown output format %q", format)
	}
}

func askProfile() (tools.MatchYouthProgramsArgs, error) {
	var args tools.MatchYouthProgramsArgs

	agePrompt := promptui.Prompt{
		Label: "Age",
		Validate: func(s string) error {
			age, err := strconv.Atoi(s)
			if err != nil {
				return errors.New("age must be a number")
			}
			if age < 15 || age > 50 {
				return errors.New("age must be between 15 and 50")
			}
			return nil
		},
	}
	ageInput, err := agePrompt.Run()
	if err != nil {
		return args, err
	}
	args.Age, _ = strconv.Atoi(ageInput)

	employmentPrompt := promptui.Select{
		Label: "Employment status",
		Items: employmentStatuses,
	}
	if _, args.EmploymentStatus, err = employmentPrompt.Run(); err != nil {
		return args, err
	}

	educationPrompt := promptui.Select{
		Label: "Education status",
		Items: educationStatuses,
	}
	_, education, err := educationPrompt.Run()
	if err != nil {
		return args, err
	}
	if education != promptSkip {
		args.EducationStatus = education
	}

	args.Preferences, err = askPreferences()
	return args, err
}

// askPreferences collects categories until the user picks "done".
func askPreferences() ([]string, error) {
	var selected []string
	for {
		remaining := remainingCategories(selected)
		if len(remaining) == 0 {
			return selected, nil
		}

		preferencePrompt := promptui.Select{
			Label: "Add a preferred category",
			Items: append([]string{promptDone}, remaining...),
		}
		_, choice, err := preferencePrompt.Run()
		if err != nil {
			return nil, err
		}
		if choice == promptDone {
			return selected, nil
		}
		selected = append(selected, choice)
	}
}

// remainingCategories lists the categories not picked yet, in display order.
func remainingCategories(selected []string) []string {
	var remaining []string
	for _, c := range youth.Categories {
		if !slices.Contains(selected, string(c)) {
			remaining = append(remaining, string(c))
		}
	}
	return remaining
}
