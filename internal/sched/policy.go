package sched

import (
	"fmt"
	"strings"
)

// Policy computes a timeline for a task set. Implementations copy the input
// and never modify it.
type Policy interface {
	Name() string
	Schedule(tasks []Task) (Timeline, error)
}

// Policy names accepted by Build.
const (
	NameFIFO = "fifo"
	NameSJF  = "sjf"
	NameSTCF = "stcf"
	NameRR   = "rr"
	NameMLFQ = "mlfq"
)

// PolicyNames lists every registered policy in presentation order.
var PolicyNames = []string{NameFIFO, NameSJF, NameSTCF, NameRR, NameMLFQ}

// Build creates the named policy from cfg. rng is only used by MLFQ; nil
// means a source seeded from cfg.Seed.
func Build(name string, cfg Config, rng Rand, obs Observer) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameFIFO:
		return &FIFO{Observer: obs}, nil
	case NameSJF:
		return &SJF{Observer: obs}, nil
	case NameSTCF:
		return &STCF{Spans: cfg.STCFSpans, Observer: obs}, nil
	case NameRR:
		rr, err := NewRoundRobin(cfg.Quantum)
		if err != nil {
			return nil, err
		}
		rr.Observer = obs
		return rr, nil
	case NameMLFQ:
		if rng == nil {
			rng = NewRand(cfg.Seed)
		}
		m, err := NewMLFQ(cfg.Levels, cfg.BoostInterval, rng)
		if err != nil {
			return nil, err
		}
		m.Observer = obs
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// ParseNames splits a comma separated list, expanding "all".
func ParseNames(list string) ([]string, error) {
	var out []string
	for _, n := range strings.Split(list, ",") {
		n = strings.ToLower(strings.TrimSpace(n))
		switch {
		case n == "":
			continue
		case n == "all":
			out = append(out, PolicyNames...)
		case known(n):
			out = append(out, n)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, n)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty policy list", ErrUnknownPolicy)
	}
	return out, nil
}

func known(name string) bool {
	for _, n := range PolicyNames {
		if n == name {
			return true
		}
	}
	return false
}
