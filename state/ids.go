package state

import "github.com/milk9111/lionheart/fsm"

// State ids. Each state plays the animation of the same name on entry.
const (
	Idle                     fsm.StateID = "idle"
	Walk                     fsm.StateID = "walk"
	Crouch                   fsm.StateID = "crouch"
	Jump                     fsm.StateID = "jump"
	Fall                     fsm.StateID = "fall"
	Turn                     fsm.StateID = "turn"
	Border                   fsm.StateID = "border"
	Decay                    fsm.StateID = "decay"
	LianaIdle                fsm.StateID = "liana_idle"
	LianaSlide               fsm.StateID = "liana_slide"
	LianaSoar                fsm.StateID = "liana_soar"
	LianaWalk                fsm.StateID = "liana_walk"
	Patrol                   fsm.StateID = "patrol"
	PatrolCeil               fsm.StateID = "patrol_ceil"
	JumpSpider               fsm.StateID = "jump_spider"
	AttackPrepare            fsm.StateID = "attack_prepare"
	AttackCrouchPrepare      fsm.StateID = "attack_crouch_prepare"
	Attack                   fsm.StateID = "attack"
	AttackLiana              fsm.StateID = "attack_liana"
	IdleAnimal               fsm.StateID = "idle_animal"
	AttackAnimal             fsm.StateID = "attack_animal"
	Hurt                     fsm.StateID = "hurt"
	Dead                     fsm.StateID = "dead"
	ExecutionerAttackPrepare fsm.StateID = "executioner_attack_prepare"
	ExecutionerAttack1       fsm.StateID = "executioner_attack1"
	ExecutionerAttack2       fsm.StateID = "executioner_attack2"
)

// Movement constants shared by the player states.
const (
	WalkSpeed = 5.0 / 3.0
	JumpMin   = 2.5
	JumpHit   = 3.75
	JumpMax   = 5.4
	Gravity   = 6.5
)
