package game

import (
	"fmt"
	"sort"

	"github.com/novafree/nova-server-go/internal/catalog"
)

// Faction identifies one side of an encounter: a player ID, or the ancient
// pseudo-faction. FactionNone marks a draw.
type Faction int

const (
	FactionNone    Faction = 0
	FactionAncient Faction = -1
)

func (f Faction) String() string {
	switch f {
	case FactionNone:
		return "none"
	case FactionAncient:
		return "ancient"
	}
	return fmt.Sprintf("player_%d", int(f))
}

// Shot is one weapon firing, recorded in the encounter log whether or not
// it hit.
type Shot struct {
	SubRound int    `json:"sub_round"`
	Phase    string `json:"phase"` // "missile" or "cannon"
	Attacker ShipID `json:"attacker"`
	Target   ShipID `json:"target"`
	Weapon   string `json:"weapon"`
	Roll     int    `json:"roll"`
	Accuracy int    `json:"accuracy"`
	Shield   int    `json:"shield"`
	Hit      bool   `json:"hit"`
	Damage   int    `json:"damage"`
	// Destroyed is set on the shot that reduced the target to zero hull.
	Destroyed bool `json:"destroyed,omitempty"`
}

// Encounter is the immutable record of one resolved battle.
type Encounter struct {
	Hex      HexID     `json:"hex"`
	Round    int       `json:"round"`
	Factions []Faction `json:"factions"`

	Shots     []Shot `json:"shots"`
	SubRounds int    `json:"sub_rounds"`

	Retreated []ShipID `json:"retreated,omitempty"`
	Destroyed []ShipID `json:"destroyed,omitempty"`
	Winner    Faction  `json:"winner"`
}

// RetreatPolicy is consulted before each cannon sub-round. Returning a hex
// and true withdraws every surviving ship of the faction to that hex; the
// resolver ignores suggestions that fail the retreat preconditions. The
// default policy never retreats, keeping resolution fully deterministic.
type RetreatPolicy interface {
	Retreat(s *State, hex HexID, faction Faction) (HexID, bool)
}

type neverRetreat struct{}

func (neverRetreat) Retreat(*State, HexID, Faction) (HexID, bool) { return 0, false }

type weapon struct {
	component string
	damage    int
}

// combatant carries a ship's derived battle stats. Hull damage accrues on
// hp; the owning Ship record is only written back when resolution completes.
type combatant struct {
	id      ShipID
	faction Faction
	class   string

	hp         int
	initiative int
	accuracy   int
	shield     int

	missiles []weapon
	cannons  []weapon

	classRank int
	ancient   bool
	retreated bool
}

func (c *combatant) alive() bool { return c.hp > 0 && !c.retreated }

// combatantFor derives battle stats for a ship. Player ships read the
// owner's blueprint plus owned technology stat bonuses; ancient ships use
// fixed stat lines.
func (e *Engine) combatantFor(s *State, ship *Ship) combatant {
	c := combatant{
		id:        ship.ID,
		faction:   factionOf(ship),
		class:     ship.Class,
		hp:        ship.HP,
		ancient:   ship.Ancient,
		classRank: e.classRank(ship.Class),
	}

	if ship.Ancient {
		if ship.Guardian {
			c.initiative = 4
			c.accuracy = 2
			c.shield = 3
			c.cannons = []weapon{{"gc_cannon", 4}, {"gc_cannon", 4}}
		} else {
			c.initiative = 4
			c.accuracy = 2
			c.shield = 1
			c.cannons = []weapon{{"ancient_cannon", 2}}
		}
		return c
	}

	owner := s.Players[ship.Owner]
	class, err := e.catalog.ShipClass(ship.Class)
	base := 1
	if err == nil {
		base = class.BaseInitiative
	}

	var slots []string
	if owner != nil {
		slots = owner.Blueprints[ship.Class]
	}
	for _, slot := range slots {
		if slot == "" {
			continue
		}
		comp, err := e.catalog.Component(slot)
		if err != nil {
			continue
		}
		switch comp.Category {
		case catalog.CategoryComputer:
			c.accuracy += comp.Accuracy
		case catalog.CategoryShield:
			c.shield += comp.Shield
		case catalog.CategoryCannon:
			c.cannons = append(c.cannons, weapon{comp.ID, comp.Damage})
		case catalog.CategoryMissile:
			c.missiles = append(c.missiles, weapon{comp.ID, comp.Damage})
		}
	}

	if owner != nil {
		bonus := e.techStatBonuses(owner)
		c.accuracy += bonus["accuracy"]
		c.shield += bonus["shield"]
		c.initiative = base + c.accuracy + bonus["initiative"]
	} else {
		c.initiative = base + c.accuracy
	}
	return c
}

// techStatBonuses sums the stat_bonus effects across a player's owned
// technologies, keyed by attribute.
func (e *Engine) techStatBonuses(p *Player) map[string]int {
	out := map[string]int{}
	for id := range p.Techs {
		tech, err := e.catalog.Technology(id)
		if err != nil {
			continue
		}
		for _, fx := range tech.Effects {
			if fx.EffectType == "stat_bonus" {
				out[fx.Attribute] += fx.Amount
			}
		}
	}
	return out
}

// hullOf returns a class's maximum hull for a player: base HP plus hull
// components on the blueprint plus hull tech bonuses.
func (e *Engine) hullOf(p *Player, class string) int {
	cls, err := e.catalog.ShipClass(class)
	if err != nil {
		return 1
	}
	hull := cls.BaseHP
	for _, slot := range p.Blueprints[class] {
		if slot == "" {
			continue
		}
		comp, err := e.catalog.Component(slot)
		if err == nil {
			hull += comp.ExtraHP
		}
	}
	hull += e.techStatBonuses(p)["hull"]
	return hull
}

// driveOf returns a class's movement rating for a player: the sum of drive
// component movement on the blueprint.
func (e *Engine) driveOf(p *Player, class string) int {
	cls, err := e.catalog.ShipClass(class)
	if err != nil || !cls.CanMove {
		return 0
	}
	if class == "colony_ship" {
		return 1
	}
	move := 0
	for _, slot := range p.Blueprints[class] {
		if slot == "" {
			continue
		}
		comp, err := e.catalog.Component(slot)
		if err == nil {
			move += comp.Movement
		}
	}
	return move
}

// classRank returns a class's position in the configured initiative
// precedence list; unknown classes sort last.
func (e *Engine) classRank(class string) int {
	for i, id := range e.rules.InitiativePrecedence {
		if id == class {
			return i
		}
	}
	return len(e.rules.InitiativePrecedence)
}

// byInitiative sorts combatants for firing order: initiative descending,
// then class precedence, then ship ID.
func byInitiative(cs []*combatant) {
	sort.Slice(cs, func(i, j int) bool { return fireBefore(cs[i], cs[j]) })
}

func fireBefore(a, b *combatant) bool {
	if a.initiative != b.initiative {
		return a.initiative > b.initiative
	}
	if a.classRank != b.classRank {
		return a.classRank < b.classRank
	}
	return a.id < b.id
}

// pickTarget selects the enemy with the most remaining hull, breaking ties
// by lowest ship ID. Deterministic by construction.
func pickTarget(shooter *combatant, all []*combatant) *combatant {
	var best *combatant
	for _, c := range all {
		if !c.alive() || c.faction == shooter.faction {
			continue
		}
		if best == nil || c.hp > best.hp || (c.hp == best.hp && c.id < best.id) {
			best = c
		}
	}
	return best
}

// anyCannons reports whether any surviving combatant can still shoot. A
// weaponless stand-off ends the encounter with no exchange.
func anyCannons(cs []*combatant) bool {
	for _, c := range cs {
		if c.alive() && len(c.cannons) > 0 {
			return true
		}
	}
	return false
}

func aliveFactions(cs []*combatant) []Faction {
	seen := map[Faction]bool{}
	var out []Faction
	for _, c := range cs {
		if c.alive() && !seen[c.faction] {
			seen[c.faction] = true
			out = append(out, c.faction)
		}
	}
	return out
}

// resolveEncounter fights out one contested hex and writes the outcome back
// to the state: hull damage, destroyed ships removed, kill VP credited to
// the shooter that landed the destroying hit.
func (e *Engine) resolveEncounter(s *State, hex HexID) *Encounter {
	ships := s.ShipsInHex(hex)
	combatants := make([]*combatant, 0, len(ships))
	for _, ship := range ships {
		c := e.combatantFor(s, ship)
		combatants = append(combatants, &c)
	}

	enc := &Encounter{
		Hex:      hex,
		Round:    s.Round,
		Factions: aliveFactions(combatants),
	}

	// First retreat window, before any shot. A faction that withdraws now
	// exits without firing and never absorbs the missile exchange.
	e.retreatWindow(s, hex, enc, combatants)

	// Missile volley: every missile fires once before any cannon, in
	// initiative order, with damage applied simultaneously. A ship reduced
	// to zero hull mid-volley still gets its own missiles off.
	byInitiative(combatants)
	type pendingHit struct {
		target *combatant
		shot   int // index into enc.Shots
	}
	var pending []pendingHit
	for _, shooter := range combatants {
		if shooter.retreated {
			continue
		}
		for _, m := range shooter.missiles {
			target := pickTarget(shooter, combatants)
			if target == nil {
				break
			}
			shot := e.fire(shooter, target, m, 0, "missile")
			enc.Shots = append(enc.Shots, shot)
			if shot.Hit {
				pending = append(pending, pendingHit{target, len(enc.Shots) - 1})
			}
		}
	}
	for _, h := range pending {
		if h.target.hp <= 0 {
			continue // already destroyed by an earlier missile
		}
		h.target.hp -= enc.Shots[h.shot].Damage
		if h.target.hp <= 0 {
			h.target.hp = 0
			enc.Shots[h.shot].Destroyed = true
			e.creditKill(s, enc, h.target, enc.Shots[h.shot].Attacker)
		}
	}

	// Cannon sub-rounds: sequential fire in initiative order, destruction
	// immediate. Bounded to keep shield-heavy stand-offs finite.
	for sub := 1; sub <= e.rules.MaxCombatRounds; sub++ {
		if len(aliveFactions(combatants)) < 2 || !anyCannons(combatants) {
			break
		}
		enc.SubRounds = sub
		e.retreatWindow(s, hex, enc, combatants)
		if len(aliveFactions(combatants)) < 2 {
			break
		}

		byInitiative(combatants)
		for _, shooter := range combatants {
			if !shooter.alive() {
				continue
			}
			for _, cannon := range shooter.cannons {
				target := pickTarget(shooter, combatants)
				if target == nil {
					break
				}
				shot := e.fire(shooter, target, cannon, sub, "cannon")
				if shot.Hit {
					target.hp -= shot.Damage
					if target.hp <= 0 {
						target.hp = 0
						shot.Destroyed = true
					}
				}
				enc.Shots = append(enc.Shots, shot)
				if shot.Destroyed {
					e.creditKill(s, enc, target, shooter.id)
				}
			}
		}
	}

	survivors := aliveFactions(combatants)
	if len(survivors) == 1 {
		enc.Winner = survivors[0]
	}

	// Write results back to the board.
	for _, c := range combatants {
		ship := s.Ships[c.id]
		if ship == nil {
			continue
		}
		if c.hp <= 0 {
			s.removeShip(ship)
		} else {
			ship.HP = c.hp
		}
	}
	return enc
}

// fire rolls one attack. Hit when roll + accuracy - shield clears the
// configured threshold.
func (e *Engine) fire(shooter, target *combatant, w weapon, sub int, phase string) Shot {
	roll := e.dice.Roll(e.rules.DieSides)
	hit := roll+shooter.accuracy-target.shield >= e.rules.HitThreshold
	shot := Shot{
		SubRound: sub,
		Phase:    phase,
		Attacker: shooter.id,
		Target:   target.id,
		Weapon:   w.component,
		Roll:     roll,
		Accuracy: shooter.accuracy,
		Shield:   target.shield,
		Hit:      hit,
	}
	if hit {
		shot.Damage = w.damage
	}
	return shot
}

// creditKill records a destruction and awards kill VP to the shooter's
// owner. Ancient kills are worth more; ancient shooters earn nothing.
func (e *Engine) creditKill(s *State, enc *Encounter, victim *combatant, shooter ShipID) {
	enc.Destroyed = append(enc.Destroyed, victim.id)
	killer := s.Ships[shooter]
	if killer == nil || killer.Owner == NoPlayer {
		return
	}
	p := s.Players[killer.Owner]
	if p == nil {
		return
	}
	vp := e.rules.KillVP
	if victim.ancient {
		vp = e.rules.AncientKillVP
	}
	p.VP += vp
	p.VPBreakdown["combat"] += vp
}

// retreatWindow offers each non-ancient faction the chance to withdraw. A
// retreat target must be linked to the battle hex and hold no hostile
// ships; anything else is ignored.
func (e *Engine) retreatWindow(s *State, hex HexID, enc *Encounter, combatants []*combatant) {
	for _, faction := range aliveFactions(combatants) {
		if faction == FactionAncient {
			continue
		}
		target, ok := e.retreat.Retreat(s, hex, faction)
		if !ok || !e.retreatLegal(s, hex, target, faction) {
			continue
		}
		for _, c := range combatants {
			if c.faction != faction || !c.alive() {
				continue
			}
			ship := s.Ships[c.id]
			if ship == nil {
				continue
			}
			cls, err := e.catalog.ShipClass(ship.Class)
			if err != nil || !cls.CanMove {
				continue
			}
			s.moveShip(ship, target)
			c.retreated = true
			enc.Retreated = append(enc.Retreated, c.id)
		}
	}
}

func (e *Engine) retreatLegal(s *State, from, to HexID, faction Faction) bool {
	a, b := s.Hexes[from], s.Hexes[to]
	if a == nil || b == nil || !b.Explored || !linked(a, b) {
		return false
	}
	for _, ship := range s.ShipsInHex(to) {
		if factionOf(ship) != faction {
			return false
		}
	}
	return true
}

// resolveCombatPhase fights every contested hex in ID order and appends the
// encounter records to the state log.
func (e *Engine) resolveCombatPhase(s *State) {
	for _, hex := range s.contestedHexes() {
		enc := e.resolveEncounter(s, hex)
		s.Encounters = append(s.Encounters, enc)
	}
}
