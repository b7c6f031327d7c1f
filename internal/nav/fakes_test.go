package nav

import (
	"context"
	"errors"
	"fmt"
)

var errDisplay = errors.New("display failed")

type fakeRenderer struct {
	displayed []string
	fail      map[string]bool
	nexts     int
	prevs     int
	engineErr error
	state     *ReadingState
}

func (r *fakeRenderer) Display(_ context.Context, target string) error {
	if r.fail[target] {
		return fmt.Errorf("%w: %s", errDisplay, target)
	}
	r.displayed = append(r.displayed, target)
	if r.state != nil {
		r.state.Update(Location{Href: target, CFI: "epubcfi(" + target + ")"}, "", false)
	}
	return nil
}

func (r *fakeRenderer) Next(context.Context) error {
	r.nexts++
	return r.engineErr
}

func (r *fakeRenderer) Prev(context.Context) error {
	r.prevs++
	return r.engineErr
}

type fakeLocations struct {
	length      int
	generated   int
	granularity int
	cfis        map[float64]string
	requested   []float64
	genErr      error
}

func (l *fakeLocations) Len() int { return l.length }

func (l *fakeLocations) Generate(_ context.Context, granularity int) error {
	l.generated++
	l.granularity = granularity
	if l.genErr != nil {
		return l.genErr
	}
	l.length = 10
	return nil
}

func (l *fakeLocations) CFIFromPercentage(p float64) (string, error) {
	if l.length == 0 {
		return "", errors.New("locations not generated")
	}
	l.requested = append(l.requested, p)
	return l.cfis[p], nil
}
