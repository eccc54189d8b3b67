package assign

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/crillab/gophersat/solver"

	"github.com/classgroups/groupsched/internal/apperr"
)

// Status mirrors §4.4's solve() outcome.
type Status int

const (
	StatusOptimal Status = iota
	StatusTimeLimit
)

func (s Status) String() string {
	if s == StatusTimeLimit {
		return "TimeLimit"
	}
	return "Optimal"
}

// Solution is the Solver Driver's output: a valid participant->slot
// assignment plus the score it achieved.
type Solution struct {
	Assignment []int
	Score      Score
	Status     Status
}

// varOf returns the 1-indexed DIMACS variable number for x[s,g].
func (p *Problem) varOf(s, g int) int {
	return s*p.GroupSlots + g + 1
}

// buildCNF encodes the purely boolean hard constraints of §4.3 --
// exactly-one, mutual-preference equivalence, and placeholder dispersion --
// as CNF clauses for gophersat. Size bounds, the four-definition, and the
// skill floor are not boolean-linear in a convenient form and are instead
// enforced by construction and repair in the local search below.
func (p *Problem) buildCNF() [][]int {
	var clauses [][]int

	for s := range p.Participants {
		atLeastOne := make([]int, p.GroupSlots)
		for g := 0; g < p.GroupSlots; g++ {
			atLeastOne[g] = p.varOf(s, g)
		}
		clauses = append(clauses, atLeastOne)
		for g1 := 0; g1 < p.GroupSlots; g1++ {
			for g2 := g1 + 1; g2 < p.GroupSlots; g2++ {
				clauses = append(clauses, []int{-p.varOf(s, g1), -p.varOf(s, g2)})
			}
		}
	}

	for _, pair := range p.mutualPairs {
		a, b := pair[0], pair[1]
		for g := 0; g < p.GroupSlots; g++ {
			clauses = append(clauses, []int{-p.varOf(a, g), p.varOf(b, g)})
			clauses = append(clauses, []int{-p.varOf(b, g), p.varOf(a, g)})
		}
	}

	var placeholders []int
	for s, part := range p.Participants {
		if part.IsPlaceholder {
			placeholders = append(placeholders, s)
		}
	}
	for g := 0; g < p.GroupSlots; g++ {
		for i := 0; i < len(placeholders); i++ {
			for j := i + 1; j < len(placeholders); j++ {
				clauses = append(clauses, []int{-p.varOf(placeholders[i], g), -p.varOf(placeholders[j], g)})
			}
		}
	}

	return clauses
}

// checkBooleanFeasibility calls gophersat once to prove that the purely
// boolean hard constraints (exactly-one, mutual equivalence, placeholder
// dispersion) admit at least one assignment, before any time is spent on
// the local search. It is a fast structural pre-check, not the full
// feasibility proof (size bounds and the skill floor are checked only once
// a candidate assignment exists).
func (p *Problem) checkBooleanFeasibility() (bool, error) {
	pb := solver.ParseSlice(p.buildCNF())
	s := solver.New(pb)
	return s.Solve() == solver.Sat, nil
}

// skillFloorFeasible reports whether the skill floor (§4.3: every group's
// skill total >= 5*size) can possibly be met by any partition of the
// participants into groups of size 3 or 4. Summing the floor requirement
// 5*size_g over every group in any such partition always equals 5*N
// (since sizes sum to N regardless of how many groups are 3s vs. 4s), and
// summing each group's actual skill total over the same partition equals
// the participants' total skill. A valid assignment needs the per-group
// inequality to hold everywhere, so it needs the two sums to satisfy
// total skill >= 5*N; this is a necessary (if not sufficient) condition,
// cheap enough to check before spending the search's wall-clock budget on
// an input that can never satisfy the floor no matter how it is packed.
func (p *Problem) skillFloorFeasible() bool {
	total := 0
	for _, s := range p.Participants {
		total += s.SkillTotal()
	}
	return total >= 5*p.N()
}

// workerOutcome is one worker's best candidate after running its fixed
// iteration budget, or found=false if it never constructed a feasible seed.
type workerOutcome struct {
	assignment []int
	score      Score
	found      bool
}

// iterationsForBudget converts the configured wall-clock budget into a
// fixed per-worker iteration cap. The search loop below stops on this
// count, not on elapsed time, so the number of candidates a given worker
// explores for a given seed and budget never depends on how fast the
// machine happens to run that instant -- only the budget's Duration value
// and the worker's seed determine the work performed (§4.4 point 4, P9).
// time.Now() is still consulted as a hard backstop against pathological
// per-candidate cost, never as the primary stopping condition.
const itersPerBudgetSecond = 2000

func iterationsForBudget(budget time.Duration) int {
	n := int(budget.Seconds() * itersPerBudgetSecond)
	if n < 1 {
		n = 1
	}
	return n
}

// Solve runs the Solver Driver: a gophersat feasibility pre-check, an
// analytic skill-floor feasibility check, and then a concurrent,
// randomized-restart local search adapted from the teacher's
// PlaceSections/SearchSwaps shape, improving the (size4, preference,
// softcost, spread) tuple over a seed-derived, fixed amount of work per
// worker. ctx cancellation is honored inside the worker loop, stopping the
// search early and returning the best solution found so far. Each
// worker's own best candidate is kept locally and only combined into the
// overall result after every worker has finished its fixed iteration
// count, in worker-index order, so the result depends only on (seed,
// budget, workers) and never on goroutine scheduling.
func (p *Problem) Solve(ctx context.Context, budget time.Duration, seed int64, workers int) (Solution, error) {
	ok, err := p.checkBooleanFeasibility()
	if err != nil {
		return Solution{}, err
	}
	if !ok {
		return Solution{}, apperr.New(apperr.Infeasible, "mutual-preference and placeholder-dispersion constraints cannot be satisfied simultaneously")
	}
	if !p.skillFloorFeasible() {
		return Solution{}, apperr.New(apperr.Infeasible, "no partition into groups of size 3 or 4 can meet the skill floor for this participant set")
	}

	if workers < 1 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	sizes := IdealSizes(p.N())
	if len(sizes) > p.GroupSlots {
		return Solution{}, apperr.New(apperr.Infeasible, "not enough group slots for the required size partition")
	}

	deadline := time.Now().Add(budget)
	iterations := iterationsForBudget(budget)

	outcomes := make([]workerOutcome, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerIndex int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(workerIndex)*1_000_003))

			var best []int
			var bestScore Score
			haveBest := false

			for iter := 0; iter < iterations; iter++ {
				select {
				case <-ctx.Done():
					outcomes[workerIndex] = workerOutcome{best, bestScore, haveBest}
					return
				default:
				}
				if !time.Now().Before(deadline) {
					break
				}

				candidate := p.construct(sizes, rng)
				if candidate == nil {
					continue
				}
				candidate = p.hillClimb(candidate, rng, ctx)
				score := p.Score(candidate)

				if !haveBest || Better(score, bestScore) {
					haveBest = true
					bestScore = score
					best = candidate
				}
			}
			outcomes[workerIndex] = workerOutcome{best, bestScore, haveBest}
		}(w)
	}
	wg.Wait()

	var best []int
	var bestScore Score
	haveBest := false
	for _, o := range outcomes {
		if !o.found {
			continue
		}
		if !haveBest || Better(o.score, bestScore) {
			haveBest = true
			bestScore = o.score
			best = o.assignment
		}
	}

	if !haveBest {
		return Solution{}, apperr.New(apperr.SolverTimeout, "no feasible assignment found within the time budget")
	}

	status := StatusTimeLimit
	return Solution{Assignment: best, Score: bestScore, Status: status}, nil
}

// construct builds one randomized, hard-feasible seed assignment: mutual
// pairs are placed as a single unit, placeholders are dispersed one per
// slot by construction, and the units, in shuffled order, are each placed
// in the first slot (in a random slot order) with room left under its
// target size. Returns nil if no
// feasible packing was found (mirroring PlaceSections' nil-on-failure
// contract), in which case the caller simply retries with a new draw.
func (p *Problem) construct(sizes []int, rng *rand.Rand) []int {
	n := p.N()
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = -1
	}

	capacity := make([]int, len(sizes))
	copy(capacity, sizes)
	placeholderUsed := make([]bool, len(sizes))

	inUnit := make(map[int]bool)
	var units [][]int
	for _, pair := range p.mutualPairs {
		units = append(units, []int{pair[0], pair[1]})
		inUnit[pair[0]] = true
		inUnit[pair[1]] = true
	}
	for s := range p.Participants {
		if !inUnit[s] {
			units = append(units, []int{s})
		}
	}
	rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })

	slotOrder := rng.Perm(len(sizes))

	for _, unit := range units {
		placed := false
		hasPlaceholder := false
		for _, s := range unit {
			if p.Participants[s].IsPlaceholder {
				hasPlaceholder = true
			}
		}

		for _, g := range slotOrder {
			if capacity[g] < len(unit) {
				continue
			}
			if hasPlaceholder && placeholderUsed[g] {
				continue
			}
			for _, s := range unit {
				assignment[s] = g
			}
			capacity[g] -= len(unit)
			if hasPlaceholder {
				placeholderUsed[g] = true
			}
			placed = true
			break
		}
		if !placed {
			return nil
		}
	}

	if !p.Valid(assignment) {
		return nil
	}
	return assignment
}

// hillClimb runs bounded-depth pairwise swaps (the teacher's SearchSwaps
// idea, simplified: since group sizes are fixed once construct succeeds,
// an accepted move is always a swap of two participants across groups,
// which never disturbs size bounds or the four-definition and only needs
// the skill floor, placeholder dispersion, and mutual constraints
// re-checked). It hill-climbs until a fixed number of consecutive
// non-improving attempts is reached -- a pure function of rng's draws, not
// of wall-clock time, so the same seed always performs the same climb.
func (p *Problem) hillClimb(assignment []int, rng *rand.Rand, ctx context.Context) []int {
	current := make([]int, len(assignment))
	copy(current, assignment)
	currentScore := p.Score(current)

	const maxStale = 500
	stale := 0
	n := len(current)
	if n < 2 {
		return current
	}

	for stale < maxStale {
		select {
		case <-ctx.Done():
			return current
		default:
		}
		i := rng.Intn(n)
		j := rng.Intn(n)
		if i == j || current[i] == current[j] {
			stale++
			continue
		}

		current[i], current[j] = current[j], current[i]
		if !p.Valid(current) {
			current[i], current[j] = current[j], current[i]
			stale++
			continue
		}

		candidateScore := p.Score(current)
		if Better(candidateScore, currentScore) {
			currentScore = candidateScore
			stale = 0
		} else {
			current[i], current[j] = current[j], current[i]
			stale++
		}
	}

	return current
}
