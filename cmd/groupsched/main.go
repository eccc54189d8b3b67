// Command groupsched assigns survey respondents and roster entries to
// project groups under the hard and soft constraints of the group
// assignment model, and reports the result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/classgroups/groupsched/internal/apperr"
	"github.com/classgroups/groupsched/internal/assign"
	"github.com/classgroups/groupsched/internal/config"
	"github.com/classgroups/groupsched/internal/model"
	"github.com/classgroups/groupsched/internal/orchestrator"
	"github.com/classgroups/groupsched/internal/report"
	"github.com/classgroups/groupsched/internal/roster"
	"github.com/classgroups/groupsched/internal/tabular"
	"github.com/classgroups/groupsched/internal/telemetry"
)

var (
	surveyPath     string
	rosterPath     string
	assignmentPath string
	outputPath     string
	reportPath     string
	configPath     string
	includeMissing bool
	timeBudgetS    int
	weightAvail    int
	weightMeet     int
	weightSection  int
	seed           int64
	workers        int
	verbose        bool
)

func main() {
	root := &cobra.Command{
		Use:   "groupsched",
		Short: "Group assignment solver",
		Long:  "Assigns students to project groups under size, preference, skill, and dispersion constraints.",
	}

	cmdRun := &cobra.Command{
		Use:   "run",
		Short: "reconcile inputs, solve for an assignment, and write the results",
		RunE:  runCommand,
	}
	cmdRun.Flags().StringVar(&surveyPath, "survey", "", "path to the survey CSV (required)")
	cmdRun.Flags().StringVar(&rosterPath, "roster", "", "path to the roster CSV (required)")
	cmdRun.Flags().StringVar(&outputPath, "output", "assignment.csv", "path to write the assignment table")
	cmdRun.Flags().StringVar(&reportPath, "report", "report.txt", "path to write the textual report")
	cmdRun.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	cmdRun.Flags().BoolVar(&includeMissing, "include-missing", false, "synthesize placeholders for roster-only students")
	cmdRun.Flags().IntVar(&timeBudgetS, "time-budget-s", 600, "solver wall-clock budget in seconds")
	cmdRun.Flags().IntVar(&weightAvail, "w-avail", 8, "availability soft-conflict weight")
	cmdRun.Flags().IntVar(&weightMeet, "w-meet", 4, "meeting-mode soft-conflict weight")
	cmdRun.Flags().IntVar(&weightSection, "w-section", 1, "section soft-conflict weight")
	cmdRun.Flags().Int64Var(&seed, "seed", 0, "solver random seed")
	cmdRun.Flags().IntVar(&workers, "workers", 0, "number of concurrent search workers (0 = number of CPUs)")
	cmdRun.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.AddCommand(cmdRun)

	cmdScore := &cobra.Command{
		Use:   "score",
		Short: "re-evaluate a previously written assignment against the current inputs",
		RunE:  scoreCommand,
	}
	cmdScore.Flags().StringVar(&surveyPath, "survey", "", "path to the survey CSV (required)")
	cmdScore.Flags().StringVar(&rosterPath, "roster", "", "path to the roster CSV (required)")
	cmdScore.Flags().StringVar(&assignmentPath, "assignment", "assignment.csv", "path to the assignment CSV to re-score")
	cmdScore.Flags().BoolVar(&includeMissing, "include-missing", false, "synthesize placeholders for roster-only students")
	cmdScore.Flags().IntVar(&weightAvail, "w-avail", 8, "availability soft-conflict weight")
	cmdScore.Flags().IntVar(&weightMeet, "w-meet", 4, "meeting-mode soft-conflict weight")
	cmdScore.Flags().IntVar(&weightSection, "w-section", 1, "section soft-conflict weight")
	root.AddCommand(cmdScore)

	if err := root.Execute(); err != nil {
		os.Exit(apperr.ExitCode(err))
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	v.BindPFlag("include_missing", cmd.Flags().Lookup("include-missing"))
	v.BindPFlag("time_budget_s", cmd.Flags().Lookup("time-budget-s"))
	v.BindPFlag("w_avail", cmd.Flags().Lookup("w-avail"))
	v.BindPFlag("w_meet", cmd.Flags().Lookup("w-meet"))
	v.BindPFlag("w_section", cmd.Flags().Lookup("w-section"))
	v.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	v.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return config.Load(v, configPath)
}

func runCommand(cmd *cobra.Command, args []string) error {
	if surveyPath == "" || rosterPath == "" {
		return apperr.New(apperr.InvalidSurveyRow, "--survey and --roster are required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidSurveyRow, "invalid configuration")
	}

	log, err := telemetry.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	surveyFile, err := os.Open(surveyPath)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidSurveyRow, "opening survey file")
	}
	defer surveyFile.Close()

	rosterFile, err := os.Open(rosterPath)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidRoster, "opening roster file")
	}
	defer rosterFile.Close()

	outcome, err := orchestrator.Run(context.Background(), cfg, log, surveyFile, rosterFile)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(apperr.ExitCode(err))
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	if err := tabular.WriteAssignment(outFile, outcome.Groups); err != nil {
		return err
	}

	reportFile, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	defer reportFile.Close()
	if err := report.Write(reportFile, outcome.Groups, outcome.Unassigned, outcome.Loops, outcome.Total); err != nil {
		return err
	}

	fmt.Printf("wrote %d groups to %s, report to %s (status=%s)\n",
		len(outcome.Groups), outputPath, reportPath, outcome.Diagnostics.SolverStatus)
	return nil
}

func scoreCommand(cmd *cobra.Command, args []string) error {
	if surveyPath == "" || rosterPath == "" {
		return apperr.New(apperr.InvalidSurveyRow, "--survey and --roster are required")
	}

	weights, err := model.NewSoftConflictWeights(weightAvail, weightMeet, weightSection)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidSurveyRow, "invalid weights")
	}

	surveyFile, err := os.Open(surveyPath)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidSurveyRow, "opening survey file")
	}
	defer surveyFile.Close()
	rosterFile, err := os.Open(rosterPath)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidRoster, "opening roster file")
	}
	defer rosterFile.Close()
	assignmentFile, err := os.Open(assignmentPath)
	if err != nil {
		return apperr.Wrap(err, apperr.InvalidRoster, "opening assignment file")
	}
	defer assignmentFile.Close()

	surveyRows, _, err := tabular.ParseSurvey(surveyFile)
	if err != nil {
		return err
	}
	rosterEntries, err := tabular.ParseRoster(rosterFile)
	if err != nil {
		return err
	}
	respondents, _ := tabular.CoalesceDuplicates(surveyRows)
	result := roster.Reconcile(respondents, rosterEntries, includeMissing)
	roster.ResolvePreferences(result.Participants)

	groupOf, err := tabular.ReadAssignment(assignmentFile)
	if err != nil {
		return err
	}

	problem, err := assign.Build(result.Participants, nil, weights)
	if err != nil {
		return err
	}
	a, err := problem.AssignmentFromGroupNumbers(groupOf)
	if err != nil {
		return err
	}

	score := problem.Score(a)
	valid := problem.Valid(a)
	fmt.Printf("valid=%v size4=%d preference=%d soft_cost=%d spread=%d\n",
		valid, score.Size4, score.Preference, score.SoftCost, score.Spread)
	return nil
}
