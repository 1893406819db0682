package report

import (
	"fmt"
	"io"

	"github.com/google/pprof/profile"

	"github.com/sarchlab/instclass/classify"
)

// Profile exports the summary as a pprof profile. Each non-zero
// (function, category) pair becomes a sample whose stack is
// [category, function] and whose value is the instruction count, so
// `go tool pprof -top` ranks categories and `-peek` breaks them down by
// function.
func (s *Summary) Profile() *profile.Profile {
	opsType := &profile.ValueType{Type: "operations", Unit: "count"}
	p := &profile.Profile{
		SampleType: []*profile.ValueType{opsType},
		PeriodType: opsType,
		Period:     1,
	}

	categoryLocs := make([]*profile.Location, classify.NumCategories)
	for _, c := range classify.Categories() {
		categoryLocs[c] = addFrame(p, c.String())
	}

	functionLocs := make(map[string]*profile.Location)
	for _, r := range s.rows {
		name := r.Function
		if name == "" {
			name = anonymousFunction
		}

		fnLoc, ok := functionLocs[name]
		if !ok {
			fnLoc = addFrame(p, name)
			functionLocs[name] = fnLoc
		}

		for c, n := range r.Counts {
			if n == 0 {
				continue
			}
			p.Sample = append(p.Sample, &profile.Sample{
				Location: []*profile.Location{categoryLocs[c], fnLoc},
				Value:    []int64{int64(n)},
				Label: map[string][]string{
					"category": {classify.Category(c).String()},
				},
			})
		}
	}

	return p
}

// WriteProfile writes the gzipped pprof export of the summary.
func (s *Summary) WriteProfile(w io.Writer) error {
	p := s.Profile()
	if err := p.CheckValid(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if err := p.Write(w); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// addFrame adds a function and a location pointing at it.
func addFrame(p *profile.Profile, name string) *profile.Location {
	fn := &profile.Function{
		ID:         uint64(len(p.Function) + 1),
		Name:       name,
		SystemName: name,
	}
	p.Function = append(p.Function, fn)

	loc := &profile.Location{
		ID:   uint64(len(p.Location) + 1),
		Line: []profile.Line{{Function: fn}},
	}
	p.Location = append(p.Location, loc)

	return loc
}
