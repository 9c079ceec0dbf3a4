package state

import (
	"fmt"

	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/fsm"
)

// Context is handed to state constructors. It knows which states the
// template declares so built-in tables only link to those.
type Context struct {
	model    *entity.Model
	declared map[fsm.StateID]bool
}

type constructor func(c *Context) fsm.State

var constructors = map[fsm.StateID]constructor{
	Idle:                     newIdle,
	Walk:                     newWalk,
	Crouch:                   newCrouch,
	Jump:                     newJump,
	Fall:                     newFall,
	Turn:                     newTurn,
	Border:                   newBorder,
	Decay:                    newDecay,
	LianaIdle:                newLianaIdle,
	LianaSlide:               newLianaSlide,
	LianaSoar:                newLianaSoar,
	LianaWalk:                newLianaWalk,
	Patrol:                   newPatrol,
	PatrolCeil:               newPatrolCeil,
	JumpSpider:               newJumpSpider,
	AttackPrepare:            newAttackPrepare,
	AttackCrouchPrepare:      newAttackCrouchPrepare,
	Attack:                   newAttack,
	AttackLiana:              newAttackLiana,
	IdleAnimal:               newIdleAnimal,
	AttackAnimal:             newAttackAnimal,
	Hurt:                     newHurt,
	Dead:                     newDead,
	ExecutionerAttackPrepare: newExecutionerAttackPrepare,
	ExecutionerAttack1:       newExecutionerAttack1,
	ExecutionerAttack2:       newExecutionerAttack2,
}

// Known reports whether id has a constructor.
func Known(id fsm.StateID) bool {
	_, ok := constructors[id]
	return ok
}

// Build creates one fresh instance of every listed state for m, in order.
func Build(m *entity.Model, ids []fsm.StateID) ([]fsm.State, error) {
	c := &Context{model: m, declared: make(map[fsm.StateID]bool, len(ids))}
	for _, id := range ids {
		if !Known(id) {
			return nil, fmt.Errorf("state: %w: %s", fsm.ErrUnknownState, id)
		}
		c.declared[id] = true
	}
	states := make([]fsm.State, 0, len(ids))
	for _, id := range ids {
		states = append(states, constructors[id](c))
	}
	return states, nil
}
