package sparql

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ontoforge/guidance/rdf"
)

// Binding maps variable names to terms.
type Binding map[string]rdf.Term

// Solutions is an ordered result set.
type Solutions struct {
	// Vars is the projection in declaration order.
	Vars     []string
	Bindings []Binding
}

// Result carries the outcome of a query: Boolean for ASK, Solutions for
// SELECT.
type Result struct {
	Form      QueryForm
	Boolean   bool
	Solutions *Solutions
}

// Eval runs a parsed query against a graph.
func Eval(g *rdf.Graph, q *Query) (*Result, error) {
	bindings := evalElements(g, q.Where, []Binding{{}})

	if q.Form == FormAsk {
		return &Result{Form: FormAsk, Boolean: len(bindings) > 0}, nil
	}

	vars := q.Vars
	if len(vars) == 0 {
		vars = collectVars(q.Where)
	}

	projected := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		pb := make(Binding, len(vars))
		for _, v := range vars {
			if t, ok := b[v]; ok {
				pb[v] = t
			}
		}
		projected = append(projected, pb)
	}

	if q.Distinct {
		projected = dedup(vars, projected)
	}
	orderBindings(vars, projected, q.OrderBy)

	if q.Offset > 0 {
		if q.Offset >= len(projected) {
			projected = nil
		} else {
			projected = projected[q.Offset:]
		}
	}
	if q.Limit > 0 && len(projected) > q.Limit {
		projected = projected[:q.Limit]
	}

	return &Result{
		Form:      FormSelect,
		Solutions: &Solutions{Vars: vars, Bindings: projected},
	}, nil
}

// QueryGraph parses and evaluates in one step.
func QueryGraph(g *rdf.Graph, query string) (*Result, error) {
	q, err := Parse(query)
	if err != nil {
		return nil, err
	}
	return Eval(g, q)
}

func evalElements(g *rdf.Graph, elements []Element, in []Binding) []Binding {
	out := in
	for _, el := range elements {
		switch e := el.(type) {
		case TriplePattern:
			out = evalPattern(g, e, out)
		case Filter:
			out = evalFilter(g, e, out)
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

func evalPattern(g *rdf.Graph, tp TriplePattern, in []Binding) []Binding {
	var out []Binding
	for _, b := range in {
		s := resolve(tp.Subject, b)
		pTerm := resolve(tp.Predicate, b)
		o := resolve(tp.Object, b)

		if tp.Transitive {
			pred, ok := pTerm.(rdf.IRI)
			if !ok {
				continue
			}
			for _, pair := range closurePairs(g, pred, s, o) {
				if nb, ok := extend(b, tp, pair[0], pred, pair[1]); ok {
					out = append(out, nb)
				}
			}
			continue
		}

		var p rdf.IRI
		if pTerm != nil {
			iri, ok := pTerm.(rdf.IRI)
			if !ok {
				continue
			}
			p = iri
		}
		for _, t := range g.Match(s, p, o) {
			if nb, ok := extend(b, tp, t.Subject, t.Predicate, t.Object); ok {
				out = append(out, nb)
			}
		}
	}
	return out
}

// closurePairs enumerates (start, end) pairs in the transitive closure of
// pred, constrained by the optionally bound endpoints.
func closurePairs(g *rdf.Graph, pred rdf.IRI, s, o rdf.Term) [][2]rdf.Term {
	starts := make(map[string]rdf.Term)
	if s != nil {
		starts[s.String()] = s
	} else {
		for _, t := range g.Match(nil, pred, nil) {
			starts[t.Subject.String()] = t.Subject
		}
	}

	var out [][2]rdf.Term
	for _, start := range starts {
		reached := make(map[string]rdf.Term)
		frontier := []rdf.Term{start}
		for len(frontier) > 0 {
			next := frontier[0]
			frontier = frontier[1:]
			for _, t := range g.Match(next, pred, nil) {
				key := t.Object.String()
				if _, seen := reached[key]; seen {
					continue
				}
				reached[key] = t.Object
				frontier = append(frontier, t.Object)
			}
		}
		for _, end := range reached {
			if o != nil && !o.Equal(end) {
				continue
			}
			out = append(out, [2]rdf.Term{start, end})
		}
	}
	return out
}

func resolve(pt PatternTerm, b Binding) rdf.Term {
	if !pt.IsVar() {
		return pt.Term
	}
	if t, ok := b[pt.Var]; ok {
		return t
	}
	return nil
}

func extend(b Binding, tp TriplePattern, s rdf.Term, p rdf.IRI, o rdf.Term) (Binding, bool) {
	nb := make(Binding, len(b)+3)
	for k, v := range b {
		nb[k] = v
	}
	bind := func(pt PatternTerm, t rdf.Term) bool {
		if !pt.IsVar() {
			return true
		}
		if existing, ok := nb[pt.Var]; ok {
			return existing.Equal(t)
		}
		nb[pt.Var] = t
		return true
	}
	if !bind(tp.Subject, s) || !bind(tp.Predicate, p) || !bind(tp.Object, o) {
		return nil, false
	}
	return nb, true
}

func evalFilter(g *rdf.Graph, f Filter, in []Binding) []Binding {
	var out []Binding
	for _, b := range in {
		if filterHolds(g, f, b) {
			out = append(out, b)
		}
	}
	return out
}

func filterHolds(g *rdf.Graph, f Filter, b Binding) bool {
	switch {
	case f.NotExists != nil:
		return len(evalElements(g, f.NotExists, []Binding{b})) == 0
	case f.Regex != nil:
		t, ok := b[f.Regex.Var]
		if !ok {
			return false
		}
		return f.Regex.Pattern.MatchString(lexical(t))
	case f.Comparison != nil:
		left := resolve(f.Comparison.Left, b)
		right := resolve(f.Comparison.Right, b)
		if left == nil || right == nil {
			return false
		}
		return compare(f.Comparison.Op, left, right)
	default:
		return true
	}
}

func compare(op string, left, right rdf.Term) bool {
	switch op {
	case "=":
		return left.Equal(right)
	case "!=":
		return !left.Equal(right)
	}

	// Ordering comparisons: numeric when both sides parse as numbers,
	// lexical otherwise.
	ln, lok := numericValue(left)
	rn, rok := numericValue(right)
	var cmp int
	if lok && rok {
		switch {
		case ln < rn:
			cmp = -1
		case ln > rn:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(lexical(left), lexical(right))
	}
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

func numericValue(t rdf.Term) (float64, bool) {
	lit, ok := t.(rdf.Literal)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lexical(t rdf.Term) string {
	switch v := t.(type) {
	case rdf.Literal:
		return v.Value
	case rdf.IRI:
		return string(v)
	default:
		return t.String()
	}
}

func collectVars(elements []Element) []string {
	seen := make(map[string]bool)
	var out []string
	note := func(pt PatternTerm) {
		if pt.IsVar() && !seen[pt.Var] {
			seen[pt.Var] = true
			out = append(out, pt.Var)
		}
	}
	for _, el := range elements {
		if tp, ok := el.(TriplePattern); ok {
			note(tp.Subject)
			note(tp.Predicate)
			note(tp.Object)
		}
	}
	return out
}

func dedup(vars []string, in []Binding) []Binding {
	seen := make(map[string]bool, len(in))
	var out []Binding
	for _, b := range in {
		k := bindingKey(vars, b)
		if !seen[k] {
			seen[k] = true
			out = append(out, b)
		}
	}
	return out
}

func bindingKey(vars []string, b Binding) string {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		if t, ok := b[v]; ok {
			parts = append(parts, t.String())
		} else {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "\x00")
}

// orderBindings sorts by the ORDER BY keys, falling back to the full
// binding key so results are deterministic even without ORDER BY.
func orderBindings(vars []string, bindings []Binding, keys []OrderKey) {
	sort.SliceStable(bindings, func(i, j int) bool {
		for _, k := range keys {
			li, lj := sortValue(bindings[i][k.Var]), sortValue(bindings[j][k.Var])
			if li == lj {
				continue
			}
			if k.Desc {
				return li > lj
			}
			return li < lj
		}
		return bindingKey(vars, bindings[i]) < bindingKey(vars, bindings[j])
	})
}

func sortValue(t rdf.Term) string {
	if t == nil {
		return ""
	}
	if n, ok := numericValue(t); ok {
		// Offset and zero-pad so numeric order survives the string
		// comparison, negatives included.
		return fmt.Sprintf("%024.6f", n+1e12)
	}
	return lexical(t)
}
