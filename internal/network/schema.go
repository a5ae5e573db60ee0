package network

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a network file may contain.
type fileRoot struct {
	StateSources []*stateSourceBlock `hcl:"state_source,block"`
	StateSinks   []*portBlock        `hcl:"state_sink,block"`
	StateRelays  []*portBlock        `hcl:"state_relay,block"`
	EventSources []*portBlock        `hcl:"event_source,block"`
	EventSinks   []*portBlock        `hcl:"event_sink,block"`
	Transforms   []*transformBlock   `hcl:"transform,block"`
	Connects     []*connectBlock     `hcl:"connect,block"`
	Fires        []*fireBlock        `hcl:"fire,block"`
}

type stateSourceBlock struct {
	Name        string         `hcl:"name,label"`
	Value       hcl.Expression `hcl:"value"`
	Description string         `hcl:"description,optional"`
}

type portBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

type transformBlock struct {
	Name        string         `hcl:"name,label"`
	Expr        hcl.Expression `hcl:"expr"`
	Tracked     *bool          `hcl:"tracked,optional"`
	Description string         `hcl:"description,optional"`
}

type connectBlock struct {
	Chain []string `hcl:"chain"`
}

type fireBlock struct {
	Target string         `hcl:"target,label"`
	Value  hcl.Expression `hcl:"value"`
}
