// Offer generation and resolution. At most one offer is pending at a time
// and an active encounter suppresses new ones entirely.
package game

import (
	"fmt"

	"github.com/talgya/kingpin/internal/catalog"
)

// Offer generation odds, checked in priority order. Consignment beats a
// mission beats the incidentals.
const (
	consignOfferProb   = 0.22
	missionOfferProb   = 0.18
	equipmentOfferProb = 0.12
	informantOfferProb = 0.10
	territoryOfferProb = 0.08

	gunPrice = 900

	consignMinRelation = -5
)

// maybeGenerateOffer rolls for at most one new offer at the end of a
// travel.
func (e *Engine) maybeGenerateOffer(p *PlayerState, camp *CampaignState, res *Result) {
	if p.Offer != nil || p.Encounter != nil {
		return
	}
	loc := e.Catalog.MustLocation(p.Location)

	if o := e.rollConsignmentOffer(p, loc); o != nil {
		p.Offer = o
	} else if o := e.rollMissionOffer(p, loc); o != nil {
		p.Offer = o
	} else if o := e.rollIncidentalOffer(p, loc); o != nil {
		p.Offer = o
	}
	if p.Offer != nil {
		res.note("%s", p.Offer.Text)
		res.effect(EffectSound("offer"))
	}
}

func (e *Engine) rollConsignmentOffer(p *PlayerState, loc *catalog.Location) *Offer {
	if p.Consignment != nil || loc.Turf == "" || !e.Rand.Chance(consignOfferProb) {
		return nil
	}
	f := e.Catalog.MustFaction(loc.Turf)
	if p.Relation(f.ID) < consignMinRelation {
		return nil
	}
	cm := e.Catalog.MustCommodity(f.Preferred)
	qty := e.Rand.IntN(5, 15)
	owed := int64(qty) * (cm.MinPrice + cm.MaxPrice) / 2
	owed += owed / 8 // their cut on top
	if cap := creditCap(f, p.Relation(f.ID)); owed > cap {
		return nil
	}
	term := e.Rand.IntN(5, 8)
	return &Offer{
		Kind:      OfferConsignment,
		Faction:   f.ID,
		Commodity: f.Preferred,
		Quantity:  qty,
		Amount:    owed,
		Term:      term,
		Text: fmt.Sprintf("%s will front you %d %s. $%d due in %d days — cash or kind.",
			f.Name, qty, cm.Name, owed, term),
	}
}

func (e *Engine) rollMissionOffer(p *PlayerState, loc *catalog.Location) *Offer {
	if p.Mission != nil || loc.Turf == "" || !e.Rand.Chance(missionOfferProb) {
		return nil
	}
	f := e.Catalog.MustFaction(loc.Turf)
	if p.Relation(f.ID) < 0 {
		return nil
	}
	cm := e.Catalog.MustCommodity(f.Preferred)
	qty := e.Rand.IntN(3, 8)
	reward := int64(qty) * cm.MaxPrice * 3 / 4

	if e.Rand.Chance(0.5) {
		// Delivery: they hand over the goods, you move them.
		others := e.otherLocations(loc.ID)
		dest := others[e.Rand.IntN(0, len(others)-1)]
		return &Offer{
			Kind:      OfferMission,
			Faction:   f.ID,
			Commodity: f.Preferred,
			Quantity:  qty,
			Amount:    reward,
			Term:      e.Rand.IntN(4, 7),
			Dest:      dest,
			Text: fmt.Sprintf("%s need %d %s moved to %s. $%d on delivery.",
				f.Name, qty, cm.Name, e.Catalog.MustLocation(dest).Name, reward),
		}
	}
	// Supply: you source the goods and bring them home.
	return &Offer{
		Kind:      OfferMission,
		Faction:   f.ID,
		Commodity: f.Preferred,
		Quantity:  qty,
		Amount:    reward + reward/4,
		Term:      e.Rand.IntN(5, 9),
		Dest:      f.Home,
		Text: fmt.Sprintf("%s are buying: bring %d %s to %s and collect $%d.",
			f.Name, qty, cm.Name, e.Catalog.MustLocation(f.Home).Name, reward+reward/4),
	}
}

func (e *Engine) rollIncidentalOffer(p *PlayerState, loc *catalog.Location) *Offer {
	if !p.Armed && e.Rand.Chance(equipmentOfferProb) {
		return &Offer{
			Kind:   OfferEquipment,
			Amount: gunPrice,
			Text:   fmt.Sprintf("A man by the payphone opens his coat: a clean piece, $%d.", gunPrice),
		}
	}
	if (p.Informant == nil || p.Informant.Status != InformantHired) && e.Rand.Chance(informantOfferProb) {
		cand := &Informant{
			Name:    informantNames[e.Rand.IntN(0, len(informantNames)-1)],
			Skill:   e.Rand.IntN(1, 3),
			Loyalty: e.Rand.IntN(6, 10),
			Status:  InformantUnhired,
		}
		price := int64(1500 * cand.Skill)
		return &Offer{
			Kind:      OfferInformant,
			Amount:    price,
			Candidate: cand,
			Text:      fmt.Sprintf("%s knows everybody's business and will whisper it your way for $%d.", cand.Name, price),
		}
	}
	if _, owned := p.Territory[loc.ID]; !owned && loc.TerritoryCost > 0 && e.Rand.Chance(territoryOfferProb) {
		if loc.Turf != "" && p.Relation(loc.Turf) < 0 {
			return nil
		}
		return &Offer{
			Kind:     OfferTerritory,
			Location: loc.ID,
			Amount:   loc.TerritoryCost,
			Text:     fmt.Sprintf("The block at %s could be yours for $%d. Tribute every day after.", loc.Name, loc.TerritoryCost),
		}
	}
	return nil
}

// AcceptOffer resolves the pending offer. Accepting always clears the
// slot; an offer the player can't actually afford is rejected with the
// slot intact.
func (e *Engine) AcceptOffer(p *PlayerState, camp *CampaignState) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	o := p.Offer
	if o == nil {
		res.note("Nobody's offering you anything.")
		return res
	}

	switch o.Kind {
	case OfferConsignment:
		if p.CarriedTotal()+o.Quantity > p.Capacity() {
			res.note("You can't carry the front. Free up %d slots first.", p.CarriedTotal()+o.Quantity-p.Capacity())
			return res
		}
		f := e.Catalog.MustFaction(o.Faction)
		held := p.Inventory[o.Commodity]
		basis := float64(o.Amount) / float64(o.Quantity)
		p.AvgCost[o.Commodity] = (p.AvgCost[o.Commodity]*float64(held) + basis*float64(o.Quantity)) / float64(held+o.Quantity)
		p.Inventory[o.Commodity] = held + o.Quantity
		p.Consignment = &Consignment{
			Faction:   o.Faction,
			Commodity: o.Commodity,
			Quantity:  o.Quantity,
			Owed:      o.Amount,
			DaysLeft:  o.Term,
		}
		p.logEvent("credit", "Took %d %s on consignment from %s.", o.Quantity,
			e.Catalog.MustCommodity(o.Commodity).Name, f.Name)
		res.note("The goods are yours. $%d due to %s in %d days.", o.Amount, f.Name, o.Term)

	case OfferMission:
		f := e.Catalog.MustFaction(o.Faction)
		kind := MissionSupply
		if o.Dest != f.Home {
			kind = MissionDelivery
			if p.CarriedTotal()+o.Quantity > p.Capacity() {
				res.note("You can't carry the load. Free up %d slots first.", p.CarriedTotal()+o.Quantity-p.Capacity())
				return res
			}
			p.addInventory(o.Commodity, o.Quantity)
		}
		p.Mission = &Mission{
			Kind:      kind,
			Faction:   o.Faction,
			Commodity: o.Commodity,
			Quantity:  o.Quantity,
			Dest:      o.Dest,
			Reward:    o.Amount,
			DaysLeft:  o.Term,
		}
		p.logEvent("mission", "Took a job from %s.", f.Name)
		res.note("The job's yours. %d days.", o.Term)

	case OfferEquipment:
		if p.Cash < o.Amount {
			res.note("You need $%d for the piece.", o.Amount)
			return res
		}
		p.Cash -= o.Amount
		p.Armed = true
		p.logEvent("gear", "Bought a piece for $%d.", o.Amount)
		res.note("It's heavy in your coat. You feel taller already.")
		res.effect(EffectSound("gun"))

	case OfferInformant:
		if p.Cash < o.Amount {
			res.note("You need $%d to put them on the payroll.", o.Amount)
			return res
		}
		p.Cash -= o.Amount
		inf := *o.Candidate
		inf.Status = InformantHired
		p.Informant = &inf
		p.logEvent("informant", "Put %s on the payroll.", inf.Name)
		res.note("%s is on the payroll now. Ask around when you need an edge.", inf.Name)

	case OfferTerritory:
		if p.Cash < o.Amount {
			res.note("The block costs $%d. Come back with it.", o.Amount)
			return res
		}
		loc := e.Catalog.MustLocation(o.Location)
		p.Cash -= o.Amount
		p.Territory[o.Location] = &Territory{
			TributeRate: loc.TributeRate,
			Stash:       make(map[catalog.CommodityID]int),
		}
		p.Reputation += 8
		p.logEvent("territory", "Bought the block at %s.", loc.Name)
		res.note("%s is yours. Tribute starts tomorrow.", loc.Name)
		res.effect(EffectSound("territory"))
	}

	p.Offer = nil
	e.checkMilestones(p, &res)
	return res
}

// DeclineOffer clears the pending offer. Turning down a faction costs a
// sliver of goodwill.
func (e *Engine) DeclineOffer(p *PlayerState) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	o := p.Offer
	if o == nil {
		res.note("Nobody's offering you anything.")
		return res
	}
	if o.Faction != "" {
		p.adjustRelation(o.Faction, -1)
	}
	p.Offer = nil
	res.note("You pass. The street remembers who deals and who doesn't.")
	return res
}

func (e *Engine) otherLocations(except catalog.LocationID) []catalog.LocationID {
	out := make([]catalog.LocationID, 0, len(e.Catalog.Locations)-1)
	for i := range e.Catalog.Locations {
		if id := e.Catalog.Locations[i].ID; id != except {
			out = append(out, id)
		}
	}
	return out
}
