// Package orchestrator sequences the Roster Reconciler, Preference Graph
// Analyzer, Assignment Model Builder, Solver Driver, and Post-Processor
// (§4.6), threading a diagnostics bag through the run. The solver handle
// and worker pool are created and released inside Solve.
package orchestrator

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/classgroups/groupsched/internal/apperr"
	"github.com/classgroups/groupsched/internal/assign"
	"github.com/classgroups/groupsched/internal/config"
	"github.com/classgroups/groupsched/internal/model"
	"github.com/classgroups/groupsched/internal/prefgraph"
	"github.com/classgroups/groupsched/internal/roster"
	"github.com/classgroups/groupsched/internal/tabular"
)

// Outcome is everything the CLI needs to render the assignment table and
// the report.
type Outcome struct {
	Groups      []*model.Group
	Unassigned  []*model.Student
	Loops       []model.PreferenceLoop
	Score       assign.Score
	Diagnostics *model.DiagnosticsBag
	Total       int
}

// Run executes the full pipeline against the given survey and roster
// readers. ctx cancellation is checked at each phase boundary and honored
// inside the Solver Driver's own select loop.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger, surveyR, rosterR io.Reader) (Outcome, error) {
	bag := model.NewDiagnosticsBag()
	log = log.With(zap.String("run_id", bag.RunID.String()))

	weights, err := model.NewSoftConflictWeights(cfg.WeightAvail, cfg.WeightMeet, cfg.WeightSection)
	if err != nil {
		return Outcome{}, apperr.Wrap(err, apperr.InvalidSurveyRow, "invalid configuration")
	}

	// Phase 1: Roster Reconciler.
	phaseStart := time.Now()
	surveyRows, surveyWarnings, err := tabular.ParseSurvey(surveyR)
	if err != nil {
		return Outcome{}, err
	}
	bag.Warnings = append(bag.Warnings, surveyWarnings...)

	rosterEntries, err := tabular.ParseRoster(rosterR)
	if err != nil {
		return Outcome{}, err
	}

	respondents, dupWarnings := tabular.CoalesceDuplicates(surveyRows)
	bag.Warnings = append(bag.Warnings, dupWarnings...)
	bag.DuplicateCount = len(dupWarnings)

	result := roster.Reconcile(respondents, rosterEntries, cfg.IncludeMissing)
	bag.MissingCount = len(result.Missing)

	prefWarnings := roster.ResolvePreferences(result.Participants)
	bag.Warnings = append(bag.Warnings, prefWarnings...)

	bag.TotalProcessed = len(result.Participants)
	bag.RecordPhase("reconcile", time.Since(phaseStart))

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	// Phase 2: Preference Graph Analyzer.
	phaseStart = time.Now()
	loops := prefgraph.FindLoops(result.Participants)
	bag.RecordPhase("prefgraph", time.Since(phaseStart))

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	// Phase 3: Assignment Model Builder.
	phaseStart = time.Now()
	problem, err := assign.Build(result.Participants, loops, weights)
	if err != nil {
		bag.SolverStatus = string(apperr.Infeasible)
		return Outcome{}, err
	}
	bag.RecordPhase("model", time.Since(phaseStart))

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	// Phase 4: Solver Driver. The handle is entirely internal to Solve; the
	// orchestrator makes one blocking call and releases nothing explicitly
	// because Solve owns its own worker pool for its duration.
	phaseStart = time.Now()
	log.Info("starting solver", zap.Int("participants", problem.N()), zap.Int("group_slots", problem.GroupSlots))
	solution, err := problem.Solve(ctx, cfg.TimeBudget(), cfg.Seed, cfg.Workers)
	bag.RecordPhase("solve", time.Since(phaseStart))
	if err != nil {
		if ae, ok := err.(*apperr.Error); ok {
			bag.SolverStatus = string(ae.Kind)
		}
		return Outcome{}, err
	}
	bag.SolverStatus = solution.Status.String()
	log.Info("solver finished", zap.String("status", solution.Status.String()),
		zap.Int("size4", solution.Score.Size4), zap.Int("preference", solution.Score.Preference),
		zap.Int("soft_cost", solution.Score.SoftCost), zap.Int("spread", solution.Score.Spread))

	// Phase 5: Post-Processor.
	phaseStart = time.Now()
	groups, unassigned := problem.Decode(solution.Assignment)
	bag.RecordPhase("postprocess", time.Since(phaseStart))

	return Outcome{
		Groups:      groups,
		Unassigned:  unassigned,
		Loops:       loops,
		Score:       solution.Score,
		Diagnostics: bag,
		Total:       bag.TotalProcessed,
	}, nil
}
