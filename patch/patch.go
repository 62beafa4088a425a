package patch

import (
	"fmt"
	"log/slog"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/rdf/turtle"
	"github.com/ontoforge/guidance/vocabulary/guidance"
)

// Action is the kind of change an operation makes.
type Action string

const (
	// ActionReplace removes every (subject, predicate, *) triple, then
	// inserts the operation's objects.
	ActionReplace Action = "replace"

	// ActionAdd inserts the operation's objects, keeping existing triples.
	ActionAdd Action = "add"

	// ActionRemove deletes matching triples. With no objects it clears the
	// whole (subject, predicate) slot.
	ActionRemove Action = "remove"
)

// Operation is a single change to one (subject, predicate) slot.
type Operation struct {
	Subject   rdf.IRI
	Predicate rdf.IRI
	Action    Action
	Objects   []rdf.Term
}

// Patch is an ordered list of operations applied as one unit.
type Patch struct {
	// ID identifies the patch in logs and reports.
	ID string

	// Description says what the patch fixes.
	Description string

	Operations []Operation
}

// Result summarizes what an Apply changed.
type Result struct {
	Removed int
	Added   int
}

// Changed reports whether the patch modified the graph.
func (r Result) Changed() bool { return r.Removed > 0 || r.Added > 0 }

// Apply runs every operation against g in order.
func (p *Patch) Apply(g *rdf.Graph) (Result, error) {
	var res Result
	for _, op := range p.Operations {
		switch op.Action {
		case ActionReplace:
			res.Removed += g.RemoveMatching(op.Subject, op.Predicate, nil)
			for _, o := range op.Objects {
				if g.AddTriple(op.Subject, op.Predicate, o) {
					res.Added++
				}
			}
		case ActionAdd:
			for _, o := range op.Objects {
				if g.AddTriple(op.Subject, op.Predicate, o) {
					res.Added++
				}
			}
		case ActionRemove:
			if len(op.Objects) == 0 {
				res.Removed += g.RemoveMatching(op.Subject, op.Predicate, nil)
				continue
			}
			for _, o := range op.Objects {
				res.Removed += g.RemoveMatching(op.Subject, op.Predicate, o)
			}
		default:
			return res, fmt.Errorf("patch %s: unknown action %q", p.ID, op.Action)
		}
	}
	return res, nil
}

// Options controls ApplyToFile behavior.
type Options struct {
	// Backup keeps the previous file content with a .bak suffix.
	Backup bool

	// DryRun applies the patch in memory and reports the result without
	// writing the file.
	DryRun bool

	Logger *slog.Logger
}

// ApplyToFile loads a Turtle file, applies the patch, and writes the result
// back atomically. A parse failure aborts before anything is written.
func ApplyToFile(path string, p *Patch, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g, err := turtle.ParseFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", path, err)
	}

	res, err := p.Apply(g)
	if err != nil {
		return res, err
	}
	logger.Info("patch applied",
		"patch", p.ID,
		"file", path,
		"removed", res.Removed,
		"added", res.Added,
		"dry_run", opts.DryRun)

	if opts.DryRun || !res.Changed() {
		return res, nil
	}
	if err := turtle.WriteFile(path, g, opts.Backup); err != nil {
		return res, err
	}
	return res, nil
}

// NormalizePriorities rewrites every guidance:hasPriority literal to the
// canonical enum string. Unparseable values are left in place and reported.
func NormalizePriorities(g *rdf.Graph) (changed int, invalid []rdf.Triple) {
	for _, t := range g.Match(nil, guidance.HasPriority, nil) {
		lit, ok := t.Object.(rdf.Literal)
		if !ok {
			invalid = append(invalid, t)
			continue
		}
		p, err := guidance.ParsePriority(lit.Value)
		if err != nil {
			invalid = append(invalid, t)
			continue
		}
		canonical := rdf.NewLiteral(string(p))
		if lit.Equal(canonical) {
			continue
		}
		g.Remove(t)
		g.AddTriple(t.Subject, t.Predicate, canonical)
		changed++
	}
	return changed, invalid
}
