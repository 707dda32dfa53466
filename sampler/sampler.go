package sampler

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/gpsrgen/corpus"
)

const (
	// DefaultMaxConsecutiveDuplicates is the duplicate streak that ends a session.
	DefaultMaxConsecutiveDuplicates = 10000

	// DefaultProgressInterval is how many accepted commands pass between
	// progress reports.
	DefaultProgressInterval = 100000
)

// Generator produces one command per call. An empty category hint means no
// restriction.
type Generator interface {
	Generate(categoryHint string) string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(categoryHint string) string

// Generate calls f.
func (f GeneratorFunc) Generate(categoryHint string) string {
	return f(categoryHint)
}

// State is the sampler's position in its two-state lifecycle.
type State int

// StateSampling and StateSaturated are the only states; Saturated is terminal.
const (
	StateSampling State = iota
	StateSaturated
)

func (s State) String() string {
	if s == StateSaturated {
		return "saturated"
	}
	return "sampling"
}

// Options configures a Sampler. Zero values take the defaults.
type Options struct {
	// MaxConsecutiveDuplicates ends the session once this many draws in a
	// row were already in the corpus.
	MaxConsecutiveDuplicates int

	// ProgressInterval emits a progress report every this many accepted
	// commands. Negative disables reports.
	ProgressInterval int

	// CategoryHint is passed to every Generate call.
	CategoryHint string

	// OnProgress receives progress reports. Defaults to an info log line.
	OnProgress func(Progress)

	// Metrics records per-attempt counters when set.
	Metrics *Metrics

	// Now overrides the clock.
	Now func() time.Time
}

// Session is the mutable state of one generation run.
type Session struct {
	ID                       string
	StartTime                time.Time
	Attempts                 int
	TotalAccepted            int
	ConsecutiveDuplicates    int
	MaxConsecutiveDuplicates int
	LongestStreak            int
}

// Progress is an observation emitted while sampling.
type Progress struct {
	SessionID string
	Accepted  int
	Attempts  int
	Elapsed   time.Duration
}

// Result is the outcome of a finished session.
type Result struct {
	Corpus  *corpus.Set
	Session Session
	Elapsed time.Duration
}

// Sampler repeatedly draws from a Generator into a corpus until saturated.
type Sampler struct {
	gen     Generator
	opts    Options
	logger  *slog.Logger
	corpus  *corpus.Set
	session Session
	state   State
}

// New creates a sampler with a fresh session.
func New(gen Generator, opts Options, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxConsecutiveDuplicates <= 0 {
		opts.MaxConsecutiveDuplicates = DefaultMaxConsecutiveDuplicates
	}
	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Sampler{
		gen:    gen,
		opts:   opts,
		logger: logger,
		corpus: corpus.NewSet(),
		session: Session{
			ID:                       uuid.New().String(),
			StartTime:                opts.Now(),
			MaxConsecutiveDuplicates: opts.MaxConsecutiveDuplicates,
		},
	}
	if s.opts.OnProgress == nil {
		s.opts.OnProgress = s.logProgress
	}
	return s
}

// Step makes one sampling attempt and returns the resulting state. Once
// saturated, Step does nothing.
func (s *Sampler) Step() State {
	if s.state == StateSaturated {
		return s.state
	}

	cmd := s.gen.Generate(s.opts.CategoryHint)
	s.session.Attempts++

	if s.corpus.Add(cmd) {
		s.session.ConsecutiveDuplicates = 0
		s.session.TotalAccepted++
		s.opts.Metrics.accepted(s.corpus.Len())
		s.maybeReportProgress()
	} else {
		s.session.ConsecutiveDuplicates++
		if s.session.ConsecutiveDuplicates > s.session.LongestStreak {
			s.session.LongestStreak = s.session.ConsecutiveDuplicates
		}
		s.opts.Metrics.duplicate(s.session.LongestStreak)
	}

	if s.session.ConsecutiveDuplicates >= s.session.MaxConsecutiveDuplicates {
		s.state = StateSaturated
	}
	return s.state
}

// Run samples until saturated and returns the corpus.
func (s *Sampler) Run() *Result {
	s.logger.Debug("Sampling started",
		"session", s.session.ID,
		"max_consecutive_duplicates", s.session.MaxConsecutiveDuplicates,
		"category", s.opts.CategoryHint)

	for s.state == StateSampling {
		s.Step()
	}

	elapsed := s.opts.Now().Sub(s.session.StartTime)
	s.logger.Info("Max retries reached, corpus saturated",
		"session", s.session.ID,
		"commands", s.session.TotalAccepted,
		"attempts", s.session.Attempts,
		"elapsed", elapsed)

	return &Result{
		Corpus:  s.corpus,
		Session: s.session,
		Elapsed: elapsed,
	}
}

// State returns the current state.
func (s *Sampler) State() State {
	return s.state
}

// Session returns a copy of the session state.
func (s *Sampler) Session() Session {
	return s.session
}

// Corpus returns the corpus built so far.
func (s *Sampler) Corpus() *corpus.Set {
	return s.corpus
}

func (s *Sampler) maybeReportProgress() {
	interval := s.opts.ProgressInterval
	if interval <= 0 || s.session.ConsecutiveDuplicates != 0 || s.session.TotalAccepted%interval != 0 {
		return
	}
	s.opts.OnProgress(Progress{
		SessionID: s.session.ID,
		Accepted:  s.session.TotalAccepted,
		Attempts:  s.session.Attempts,
		Elapsed:   s.opts.Now().Sub(s.session.StartTime),
	})
}

func (s *Sampler) logProgress(p Progress) {
	s.logger.Info("Generated commands",
		"count", p.Accepted,
		"attempts", p.Attempts,
		"elapsed", p.Elapsed)
}
