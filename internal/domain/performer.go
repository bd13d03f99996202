package domain

import "time"

type Genre string

const (
	GenreRock       Genre = "rock"
	GenrePostRock   Genre = "post_rock"
	GenrePop        Genre = "pop"
	GenreJazz       Genre = "jazz"
	GenreMetal      Genre = "metal"
	GenreElectronic Genre = "electronic"
	GenreFolk       Genre = "folk"
	GenreHipHop     Genre = "hip_hop"
)

func (g Genre) Valid() bool {
	switch g {
	case GenreRock, GenrePostRock, GenrePop, GenreJazz, GenreMetal, GenreElectronic, GenreFolk, GenreHipHop:
		return true
	}
	return false
}

// PartnerTier classifies a performer for headliner pricing. Tiers are
// ordered: a higher tier commands a higher ticket price.
type PartnerTier string

const (
	PartnerTier1 PartnerTier = "tier_1"
	PartnerTier2 PartnerTier = "tier_2"
	PartnerTier3 PartnerTier = "tier_3"
	PartnerTier4 PartnerTier = "tier_4"
	PartnerTier5 PartnerTier = "tier_5"
)

func (t PartnerTier) Valid() bool {
	switch t {
	case PartnerTier1, PartnerTier2, PartnerTier3, PartnerTier4, PartnerTier5:
		return true
	}
	return false
}

// Performer is an act that can be rostered on events. Like venues, the
// name is unique among non-deleted performers only.
type Performer struct {
	ID           string
	Name         string
	Email        string
	ContactPhone string
	Genre        Genre
	PartnerTier  PartnerTier
	Deleted      bool
	DeletedAt    *time.Time
}
