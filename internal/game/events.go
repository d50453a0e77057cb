// Market event selection and informant tip generation.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

const (
	// eventBaseProb is the chance any market event fires on arrival.
	eventBaseProb = 0.30

	// tipOverrideProb redirects event selection toward a mature accurate
	// tip. Under 1 on purpose: the informant is believable, not an oracle.
	tipOverrideProb = 0.55
)

// pickEvent selects the active market event for the player's location, or
// nil. Selection is filtered to events whose region scope matches (or is
// unscoped), with a possible redirect toward a matured accurate tip.
func (e *Engine) pickEvent(p *PlayerState) *catalog.MarketEvent {
	region := e.Catalog.RegionOf(p.Location)
	eligible := e.Catalog.EventsFor(region.ID)
	if len(eligible) == 0 {
		return nil
	}

	// A matured accurate tip can hijack selection: the warned-about event
	// fires where the player is standing.
	if tip := p.matureTip(); tip != nil && tip.Accurate && e.Rand.Chance(tipOverrideProb) {
		for _, ev := range eligible {
			if ev.Commodity == tip.Commodity && ev.Spike() == tip.Spike {
				return ev
			}
		}
	}

	if !e.Rand.Chance(eventBaseProb) {
		return nil
	}
	return eligible[e.Rand.IntN(0, len(eligible)-1)]
}

// matureTip returns the pending tip if its countdown has reached zero.
func (p *PlayerState) matureTip() *Tip {
	if p.Informant == nil || p.Informant.Status != InformantHired {
		return nil
	}
	if t := p.Informant.Tip; t != nil && t.Countdown <= 0 {
		return t
	}
	return nil
}

// generateTip produces a new forecast from the informant. Accuracy scales
// with skill; inaccurate tips are uniform noise over commodity and
// direction, indistinguishable from real ones except statistically.
func (e *Engine) generateTip(p *PlayerState) *Tip {
	inf := p.Informant
	accuracy := 0.35 + 0.15*float64(inf.Skill)
	countdown := e.Rand.IntN(1, 3)

	if e.Rand.Chance(accuracy) {
		// Reference a real event that can actually fire somewhere.
		ev := &e.Catalog.Events[e.Rand.IntN(0, len(e.Catalog.Events)-1)]
		return &Tip{
			Commodity: ev.Commodity,
			Spike:     ev.Spike(),
			Accurate:  true,
			Countdown: countdown,
			EventID:   ev.ID,
		}
	}

	cm := &e.Catalog.Commodities[e.Rand.IntN(0, len(e.Catalog.Commodities)-1)]
	return &Tip{
		Commodity: cm.ID,
		Spike:     e.Rand.Chance(0.5),
		Countdown: countdown,
	}
}

// tickTip advances the pending tip countdown during travel. Tips that were
// already mature before this travel expire unheard.
func (p *PlayerState) tickTip(days int) {
	if p.Informant == nil || p.Informant.Tip == nil {
		return
	}
	t := p.Informant.Tip
	if t.Countdown <= 0 {
		// Had its moment on the previous refresh.
		p.Informant.Tip = nil
		return
	}
	t.Countdown -= days
	if t.Countdown < 0 {
		t.Countdown = 0
	}
}
