// Package selector implements MF2 pattern selection: ranking a select
// message's variants against its resolved selectors and returning the
// winning pattern.
package selector

import (
	"github.com/mf2compile/messageformat/internal/resolve"
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/logger"
)

// log tags every warning raised during variant ranking with
// component=selector.
var log = logger.Component("selector")

// SelectPattern returns the pattern to format: a pattern message's own
// body, or the best-matching variant of a select message. Selection
// failures degrade to the catch-all variant, never to a panic.
func SelectPattern(context *resolve.Context, message datamodel.Message) datamodel.Pattern {
	switch msg := message.(type) {
	case *datamodel.PatternMessage:
		return msg.Pattern()
	case *datamodel.SelectMessage:
		return pickVariant(context, msg)
	}

	log.Warn("unsupported message type for pattern selection", "type", message.Type())
	if context.OnError != nil {
		context.OnError(errors.NewBadSelectorError(nil))
	}
	return datamodel.NewPattern(nil)
}

// picker is the per-selector ranking state: the chosen best key, and the
// candidate key set it was chosen from (nil until computed, shrunk when
// backtracking).
type picker struct {
	choose func(keys map[string]bool) *string
	best   *string
	keys   map[string]bool
}

// pickVariant implements the iterative filter-with-backtracking ranking:
// each selector in turn picks its preferred key from the keys the
// remaining candidate variants offer at its position, then filters the
// candidates to those matching (catch-all matches only when no concrete
// key was preferred). If a pick empties the candidate set, the previous
// selector drops its choice and the scan restarts.
func pickVariant(context *resolve.Context, msg *datamodel.SelectMessage) datamodel.Pattern {
	selectors := msg.Selectors()
	variants := msg.Variants()

	pickers := make([]*picker, len(selectors))
	for i := range selectors {
		pickers[i] = newPicker(context, &selectors[i])
	}

	candidates := variants
	for i := 0; i < len(pickers); i++ {
		p := pickers[i]

		if p.keys == nil {
			keys, ok := candidateKeys(candidates, i)
			if !ok {
				break // key-mismatch; validation already reported it
			}
			p.keys = keys
		}

		p.best = nil
		if len(p.keys) > 0 {
			p.best = p.choose(p.keys)
		}

		candidates = filterCandidates(candidates, i, p.best)
		if len(candidates) > 0 {
			continue
		}

		// Dead end. Retract the previous selector's pick and restart.
		if i == 0 {
			break
		}
		prev := pickers[i-1]
		if prev.best == nil {
			prev.keys = map[string]bool{}
		} else {
			delete(prev.keys, *prev.best)
		}
		for j := i; j < len(pickers); j++ {
			pickers[j].keys = nil
		}
		candidates = variants
		i = -1
	}

	if len(candidates) == 0 {
		if context.OnError != nil {
			context.OnError(errors.NewNoMatchError(nil))
		}
		return datamodel.NewPattern(nil)
	}
	return candidates[0].Value()
}

// newPicker resolves one selector and wraps its SelectKeys as a
// single-best-key chooser. A value that cannot select reports
// bad-selector and never prefers anything.
func newPicker(context *resolve.Context, sel *datamodel.VariableRef) *picker {
	value := resolve.ResolveSelectorValue(context, sel)

	if _, err := value.SelectKeys([]string{"probe"}); err != nil {
		if context.OnError != nil {
			context.OnError(errors.NewBadSelectorError(err))
		}
		return &picker{choose: func(map[string]bool) *string { return nil }}
	}

	return &picker{choose: func(keys map[string]bool) *string {
		offered := make([]string, 0, len(keys))
		for key := range keys {
			offered = append(offered, key)
		}
		if len(offered) == 0 {
			return nil
		}
		preferred, err := value.SelectKeys(offered)
		if err != nil || len(preferred) == 0 {
			return nil
		}
		return &preferred[0]
	}}
}

// candidateKeys collects the concrete (non-catchall) keys the candidate
// variants offer at position i; false on a key-count mismatch.
func candidateKeys(candidates []datamodel.Variant, i int) (map[string]bool, bool) {
	keys := make(map[string]bool)
	for _, variant := range candidates {
		if i >= len(variant.Keys()) {
			return nil, false
		}
		if lit, ok := variant.Keys()[i].(*datamodel.Literal); ok {
			keys[lit.Value()] = true
		}
	}
	return keys, true
}

// filterCandidates keeps the variants matching position i: the best key
// where one was chosen, otherwise only catch-alls.
func filterCandidates(candidates []datamodel.Variant, i int, best *string) []datamodel.Variant {
	var kept []datamodel.Variant
	for _, variant := range candidates {
		if i >= len(variant.Keys()) {
			continue
		}
		switch key := variant.Keys()[i].(type) {
		case *datamodel.CatchallKey:
			if best == nil {
				kept = append(kept, variant)
			}
		case *datamodel.Literal:
			if best != nil && *best == key.Value() {
				kept = append(kept, variant)
			}
		}
	}
	return kept
}
