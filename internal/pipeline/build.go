package pipeline

import (
	"log/slog"

	"github.com/roach88/symhash/internal/pass"
)

// Adaptor names recognized in pipeline text.
const (
	AdaptorModule   = "module"
	AdaptorFunction = "function"
)

// DefaultText is the pipeline used when none is configured.
const DefaultText = "function(md5-function-name-pass)"

// Pipeline is an ordered list of function passes ready to run.
type Pipeline struct {
	desc   *Description
	passes []pass.FunctionPass
	rec    pass.Recorder
	runIDs RunIDGenerator
	clock  Sequencer
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRunIDGenerator overrides the UUIDv7 run id source.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(p *Pipeline) { p.runIDs = g }
}

// WithClock overrides the logical clock, e.g. to resume sequence numbers.
func WithClock(c Sequencer) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithLogger sets the structured logger for host-level progress.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// Build parses text and instantiates every named pass from reg.
// Each pass reports decisions to rec; the host reports its own optnone
// skips there too.
func Build(text string, reg *pass.Registry, rec pass.Recorder, opts ...Option) (*Pipeline, error) {
	desc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = pass.NopRecorder{}
	}

	p := &Pipeline{
		desc:   desc,
		rec:    rec,
		runIDs: UUIDv7Generator{},
		clock:  NewClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.collect(desc.Elements, false, reg); err != nil {
		return nil, err
	}
	if len(p.passes) == 0 {
		return nil, &BuildError{Code: ErrCodeEmptyPipeline, Message: "pipeline names no passes"}
	}
	return p, nil
}

// collect flattens elements into p.passes in declaration order.
// inFunction is true inside a function(...) adaptor.
func (p *Pipeline) collect(elems []Element, inFunction bool, reg *pass.Registry) error {
	for _, e := range elems {
		switch e.Name {
		case AdaptorModule:
			if inFunction {
				return &BuildError{Code: ErrCodeMisplaced, Element: e.Name, Column: e.Column,
					Message: "module adaptor cannot nest inside function"}
			}
			if err := p.collect(e.Children, false, reg); err != nil {
				return err
			}
		case AdaptorFunction:
			if err := p.collect(e.Children, true, reg); err != nil {
				return err
			}
		default:
			if e.Nested {
				return &BuildError{Code: ErrCodeUnexpectedArg, Element: e.Name, Column: e.Column,
					Message: "function passes take no nested pipeline"}
			}
			fp, err := reg.New(e.Name, p.rec)
			if err != nil {
				return &BuildError{Code: ErrCodeUnknownPass, Element: e.Name, Column: e.Column,
					Message: "cannot instantiate pass", Err: err}
			}
			p.passes = append(p.passes, fp)
		}
	}
	return nil
}

// String returns the canonical pipeline text.
func (p *Pipeline) String() string {
	return p.desc.String()
}

// Passes returns pass names in execution order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, fp := range p.passes {
		names[i] = fp.Name()
	}
	return names
}
