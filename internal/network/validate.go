package network

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Validate checks element expressions, chain shapes and fire targets.
// All problems are reported together, wrapped in ErrInvalidModel.
func (m *Model) Validate() error {
	var errs []error

	for _, name := range m.Order {
		el := m.Elements[name]
		switch el.Kind {
		case KindStateSource:
			if err := checkVariables(el.Value); err != nil {
				errs = append(errs, fmt.Errorf("state_source %q: %w", name, err))
			}
		case KindTransform:
			if err := checkVariables(el.Expr, "value"); err != nil {
				errs = append(errs, fmt.Errorf("transform %q: %w", name, err))
			}
		}
	}

	for i, c := range m.Connections {
		if _, err := m.Discipline(c); err != nil {
			errs = append(errs, fmt.Errorf("connect #%d %q: %w", i+1, c.Chain, err))
		}
	}

	if err := m.checkRelayCycles(); err != nil {
		errs = append(errs, err)
	}

	for _, f := range m.Fires {
		el, ok := m.Elements[f.Target]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("fire %q: unknown element", f.Target))
		case el.Kind != KindEventSource:
			errs = append(errs, fmt.Errorf("fire %q: target is a %s, not an event_source", f.Target, el.Kind))
		}
		if err := checkVariables(f.Value); err != nil {
			errs = append(errs, fmt.Errorf("fire %q: %w", f.Target, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidModel, errors.Join(errs...))
	}
	return nil
}

// Discipline resolves the discipline of c from its endpoints and checks
// that everything between them is a transform.
func (m *Model) Discipline(c *Connection) (Discipline, error) {
	if len(c.Chain) < 2 {
		return 0, errors.New("a chain needs at least a source and a sink")
	}
	chain := make([]*Element, len(c.Chain))
	for i, name := range c.Chain {
		el, ok := m.Elements[name]
		if !ok {
			return 0, fmt.Errorf("unknown element %q", name)
		}
		chain[i] = el
	}

	first, last := chain[0], chain[len(chain)-1]
	var d Discipline
	switch first.Kind {
	case KindStateSource, KindStateRelay:
		d = State
		if last.Kind != KindStateSink && last.Kind != KindStateRelay {
			return 0, fmt.Errorf("state chain from %q must end at a state_sink or state_relay, not %s %q", first.Name, last.Kind, last.Name)
		}
	case KindEventSource:
		d = Event
		if last.Kind != KindEventSink {
			return 0, fmt.Errorf("event chain from %q must end at an event_sink, not %s %q", first.Name, last.Kind, last.Name)
		}
	default:
		return 0, fmt.Errorf("chain must start at a source, not %s %q", first.Kind, first.Name)
	}

	for _, el := range chain[1 : len(chain)-1] {
		if el.Kind != KindTransform {
			return 0, fmt.Errorf("%s %q cannot sit inside a chain, only transforms can", el.Kind, el.Name)
		}
	}
	return d, nil
}

// checkRelayCycles rejects relays that end up pulling from themselves. A
// state sink reads from the last chain connected to it, so only the last
// connect block feeding each relay is followed.
func (m *Model) checkRelayCycles() error {
	feeds := make(map[string]string)
	for _, c := range m.Connections {
		if d, err := m.Discipline(c); err != nil || d != State {
			continue
		}
		sink := c.Chain[len(c.Chain)-1]
		if m.Elements[sink].Kind != KindStateRelay {
			continue
		}
		if m.Elements[c.Chain[0]].Kind == KindStateRelay {
			feeds[sink] = c.Chain[0]
		} else {
			delete(feeds, sink)
		}
	}

	var errs []error
	reported := make(map[string]bool)
	for _, name := range m.Order {
		if _, ok := feeds[name]; !ok || reported[name] {
			continue
		}
		path := []string{name}
		seen := map[string]int{name: 0}
		for cur := name; ; {
			next, ok := feeds[cur]
			if !ok {
				break
			}
			if at, looped := seen[next]; looped {
				cycle := path[at:]
				if !reported[cycle[0]] {
					for _, r := range cycle {
						reported[r] = true
					}
					errs = append(errs, fmt.Errorf("state_relay cycle %s", describeCycle(cycle)))
				}
				break
			}
			seen[next] = len(path)
			path = append(path, next)
			cur = next
		}
	}
	return errors.Join(errs...)
}

// describeCycle renders a cycle of relays in data flow order, e.g.
// "b -> c -> b". cycle lists each relay followed by the relay feeding it.
func describeCycle(cycle []string) string {
	names := make([]string, 0, len(cycle)+1)
	for i := len(cycle) - 1; i >= 0; i-- {
		names = append(names, cycle[i])
	}
	names = append(names, names[0])
	return strings.Join(names, " -> ")
}

// checkVariables rejects expressions referencing variables outside allowed.
func checkVariables(expr hcl.Expression, allowed ...string) error {
	if expr == nil {
		return nil
	}
	for _, tr := range expr.Variables() {
		if root := tr.RootName(); !slices.Contains(allowed, root) {
			return fmt.Errorf("unknown variable %q", root)
		}
	}
	return nil
}
