package collision

// Category and collision formula names. Tile names are matched by substring,
// so "slope_left" is both a slope and a left side contact.
const (
	Leg  = "leg"
	Knee = "knee"
	Hand = "hand"
	Head = "head"

	Ground  = "ground"
	Slope   = "slope"
	Incline = "incline"
	Block   = "block"
	Liana   = "liana"
	Spike   = "spike"
	Left    = "left"
	Right   = "right"

	Take       = "take"
	Body       = "body"
	Animal     = "animal"
	Attack     = "attack"
	AttackFall = "attack_fall"
	Glue       = "glue"
)

// Collision groups.
const (
	GroupPlayer     = 1
	GroupEnemies    = 2
	GroupBackground = 3
)
