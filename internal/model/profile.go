package model

// Profile is the persisted hunter profile.
type Profile struct {
	ID         string
	HunterName string
	Level      int32
	CurrentHP  int32
	MaxHP      int32
}

// ProfileStats aggregates diary counters for the profile screen.
type ProfileStats struct {
	Hunts int
	Kills int
	Items int
}
