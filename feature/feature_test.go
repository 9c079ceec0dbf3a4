package feature

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/lionheart/audio"
	"github.com/milk9111/lionheart/collision"
	"github.com/milk9111/lionheart/ecs"
	"github.com/milk9111/lionheart/ecs/component"
	"github.com/milk9111/lionheart/entity"
	"github.com/milk9111/lionheart/force"
	"github.com/milk9111/lionheart/fsm"
	"github.com/milk9111/lionheart/state"
	"github.com/milk9111/lionheart/tick"
)

type spawnRecord struct {
	name  string
	at    cp.Vector
	frame int
}

type fakeSpawner struct {
	env     *env
	spawned []spawnRecord
}

func (f *fakeSpawner) Spawn(name string, at cp.Vector) (*entity.Model, error) {
	m := f.env.model(name)
	m.Transform.Teleport(at.X, at.Y)
	if name == NorkaPillar {
		f.env.attach(m, entity.FeaturePillar, NewPillar(PillarConfig{}))
	}
	f.spawned = append(f.spawned, spawnRecord{name: name, at: at, frame: f.env.frame})
	return m, nil
}

func (f *fakeSpawner) named(name string) []spawnRecord {
	var out []spawnRecord
	for _, s := range f.spawned {
		if s.name == name {
			out = append(out, s)
		}
	}
	return out
}

type fakeSfx struct {
	played []audio.Sfx
}

func (f *fakeSfx) Play(id audio.Sfx) {
	f.played = append(f.played, id)
}

type fakeViewer bool

func (v fakeViewer) IsViewable(*component.Transform) bool { return bool(v) }

type env struct {
	t        *testing.T
	w        *ecs.World
	services *entity.Services
	spawner  *fakeSpawner
	sfx      *fakeSfx
	frame    int
	byName   map[string]*entity.Model
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{t: t, w: ecs.NewWorld(), sfx: &fakeSfx{}, byName: map[string]*entity.Model{}}
	e.spawner = &fakeSpawner{env: e}
	e.services = &entity.Services{Spawner: e.spawner, Sfx: e.sfx, Water: &entity.Water{}, Camera: &entity.Camera{}}
	return e
}

func (e *env) model(name string) *entity.Model {
	id := ecs.CreateEntity(e.w)
	m := &entity.Model{World: e.w, Entity: id, Name: name, Services: e.services, Transform: &component.Transform{}}
	if err := ecs.Add(e.w, id, entity.ModelComponent.Kind(), m); err != nil {
		e.t.Fatalf("Add: %v", err)
	}
	e.byName[name] = m
	return m
}

func (e *env) attach(m *entity.Model, id entity.FeatureID, f entity.Feature) {
	e.t.Helper()
	if err := m.AddFeature(id, f); err != nil {
		e.t.Fatalf("AddFeature: %v", err)
	}
	if err := f.Prepare(m); err != nil {
		e.t.Fatalf("Prepare %s: %v", id, err)
	}
	if r, ok := f.(entity.Recyclable); ok {
		r.Recycle()
	}
}

func (e *env) states(m *entity.Model, ids ...fsm.StateID) {
	e.t.Helper()
	m.States = fsm.NewHandler(m.Name)
	states, err := state.Build(m, ids)
	if err != nil {
		e.t.Fatalf("Build: %v", err)
	}
	if err := m.States.Register(states...); err != nil {
		e.t.Fatalf("Register: %v", err)
	}
	if err := m.States.Start(ids[0]); err != nil {
		e.t.Fatalf("Start: %v", err)
	}
}

func queued(m *entity.Model) bool {
	return ecs.IsQueued(m.World, m.Entity)
}

func TestBuildUnknownFeature(t *testing.T) {
	_, err := Build("laser", nil)
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("err = %v, want ErrUnknownFeature", err)
	}
}

func TestBuildDecodesConfig(t *testing.T) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte("sh: -0.5\namplitude: 12\n"), &n); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	f, err := Build(entity.FeaturePatrol, n.Content[0])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := f.(*Patrol)
	if p.cfg.Sh != -0.5 || p.cfg.Amplitude != 12 {
		t.Fatalf("config = %+v", p.cfg)
	}
}

func TestBuildDefaults(t *testing.T) {
	f, err := Build(entity.FeatureHurtable, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if h := f.(*Hurtable); h.cfg.Life != defaultLife || h.cfg.Recover != defaultRecover {
		t.Fatalf("defaults = %+v", h.cfg)
	}
	f, err = Build(entity.FeatureExplode5, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := f.(*Explode5).cfg.Effect; got != defaultExplodeEffect {
		t.Fatalf("effect = %q", got)
	}
}

func patrolModel(e *env, cfg PatrolConfig) (*entity.Model, *Patrol) {
	m := e.model("crawling")
	m.Mirror = &component.Mirror{}
	m.Movement = &component.Movement{}
	m.Control = &component.Control{}
	e.states(m, state.Patrol)
	p := NewPatrol(cfg)
	e.attach(m, entity.FeaturePatrol, p)
	return m, p
}

func TestPatrolReversal(t *testing.T) {
	e := newEnv(t)
	m, p := patrolModel(e, PatrolConfig{Sh: 1, Amplitude: 10})

	for i := 1; i <= 10; i++ {
		m.States.Update(1)
		p.Update(1)
		if sh, _ := p.Speeds(); sh != 1 {
			t.Fatalf("frame %d: sh = %v, want 1", i, sh)
		}
	}
	m.States.Update(1)
	p.Update(1)
	if sh, _ := p.Speeds(); sh != -1 {
		t.Fatalf("sh = %v, want -1 after passing the amplitude", sh)
	}
	if p.moved != 0 {
		t.Fatalf("moved = %v, want 0", p.moved)
	}
	if !m.Mirrored() {
		t.Fatal("reversed patrol should be mirrored")
	}
}

func TestPatrolWithoutAmplitudeNeverTurns(t *testing.T) {
	e := newEnv(t)
	m, p := patrolModel(e, PatrolConfig{Sh: -1})
	for i := 0; i < 100; i++ {
		m.States.Update(1)
		p.Update(1)
	}
	if sh, _ := p.Speeds(); sh != -1 {
		t.Fatalf("sh = %v, want -1", sh)
	}
}

func TestPatrolTurnState(t *testing.T) {
	e := newEnv(t)
	m := e.model("crawling")
	m.Mirror = &component.Mirror{}
	m.Movement = &component.Movement{}
	m.Control = &component.Control{}
	m.Collidable = &component.Collidable{Enabled: true}
	m.Anim = &component.Animator{Anims: map[string]component.Animation{
		string(state.Patrol): {First: 0, Last: 1, Speed: 1, Repeat: true},
		string(state.Turn):   {First: 0, Last: 1, Speed: 1},
	}}
	e.states(m, state.Patrol, state.Turn)
	p := NewPatrol(PatrolConfig{Sh: 1, Amplitude: 1, Coll: true})
	e.attach(m, entity.FeaturePatrol, p)

	m.States.Update(1)
	p.Update(1)
	m.States.Update(1)
	p.Update(1)
	if !m.IsState(state.Turn) {
		t.Fatalf("state = %s, want turn", m.States.Current())
	}
	if m.Collidable.Enabled {
		t.Fatal("collidable should be off while turning")
	}
	if m.Mirrored() {
		t.Fatal("mirror is applied when the turn ends")
	}
	m.Anim.Update(1)
	m.Anim.Update(1)
	m.States.PostUpdate()
	if !m.IsState(state.Patrol) || !m.Mirrored() || !m.Collidable.Enabled {
		t.Fatalf("after turn: state %s mirrored %v enabled %v", m.States.Current(), m.Mirrored(), m.Collidable.Enabled)
	}
}

func bulletModel(e *env, cfg BounceConfig) (*entity.Model, *BulletBounceOnGround) {
	m := e.model("bullet")
	m.Body = &component.Body{Gravity: 6.5}
	m.Movement = &component.Movement{}
	m.Launchable = &component.Launchable{Direction: force.Force{}}
	m.TileCollidable = &component.TileCollidable{Enabled: true}
	b := NewBulletBounceOnGround(cfg)
	e.attach(m, entity.FeatureBulletBounce, b)
	return m, b
}

var legCategory = collision.Category{Name: collision.Leg}

func fall(m *entity.Model, from, to float64) {
	m.Transform.OldY, m.Transform.Y = from, to
}

func TestBounceHeightClamp(t *testing.T) {
	tests := []struct {
		name string
		from float64
		want float64
		sfx  int
	}{
		{name: "clamped", from: 40, want: bounceMax, sfx: 1},
		{name: "scaled", from: 32, want: 1.5, sfx: 1},
		{name: "quiet", from: 30.5, want: 0.375, sfx: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			m, b := bulletModel(e, BounceConfig{Sfx: audio.ProjectileBounce})
			fall(m, tt.from, 30)
			b.NotifyTileCollided(collision.Result{Y: collision.Ground, SnapY: 30}, legCategory)
			if got := m.Movement.Jump.Direction.Y; got != tt.want {
				t.Fatalf("bounce = %v, want %v", got, tt.want)
			}
			if got := len(e.sfx.played); got != tt.sfx {
				t.Fatalf("sfx played %d times, want %d", got, tt.sfx)
			}
			if m.Transform.Y != 32 {
				t.Fatalf("y = %v, want lifted to 32", m.Transform.Y)
			}
		})
	}
}

func TestBounceSilentOffScreen(t *testing.T) {
	e := newEnv(t)
	e.services.Viewer = fakeViewer(false)
	m, b := bulletModel(e, BounceConfig{Sfx: audio.ProjectileBounce})
	fall(m, 40, 30)
	b.NotifyTileCollided(collision.Result{Y: collision.Ground}, legCategory)
	if len(e.sfx.played) != 0 {
		t.Fatal("off screen bounce should be silent")
	}
}

func TestBounceCooldown(t *testing.T) {
	e := newEnv(t)
	m, b := bulletModel(e, BounceConfig{})
	fall(m, 40, 30)
	b.NotifyTileCollided(collision.Result{Y: collision.Ground}, legCategory)
	fall(m, 40, 30)
	b.NotifyTileCollided(collision.Result{Y: collision.Ground}, legCategory)
	if _, n := b.Bias(); n != 1 {
		t.Fatalf("bounced = %d, want 1 during cooldown", n)
	}
	for i := 0; i < bounceDelayTick; i++ {
		b.Update(1)
	}
	b.NotifyTileCollided(collision.Result{Y: collision.Ground}, legCategory)
	if _, n := b.Bias(); n != 2 {
		t.Fatalf("bounced = %d, want 2 after cooldown", n)
	}
}

func TestBounceBias(t *testing.T) {
	tests := []struct {
		name string
		tile string
		hits int
		want float64
	}{
		{name: "slope right", tile: "slope_right", hits: 3, want: 1.5},
		{name: "slope right capped", tile: "slope_right", hits: 8, want: 3},
		{name: "incline left", tile: "incline_left", hits: 2, want: -1.5},
		{name: "incline left capped", tile: "incline_left", hits: 6, want: -3},
		{name: "flat ground", tile: collision.Ground, hits: 4, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			m, b := bulletModel(e, BounceConfig{})
			for i := 0; i < tt.hits; i++ {
				fall(m, 40, 30)
				b.NotifyTileCollided(collision.Result{Y: tt.tile}, legCategory)
				for j := 0; j < bounceDelayTick; j++ {
					b.Update(1)
				}
			}
			got, n := b.Bias()
			if got != tt.want || n != tt.hits {
				t.Fatalf("bias = %v after %d bounces, want %v after %d", got, n, tt.want, tt.hits)
			}
			if m.Movement.Jump.Direction.X != tt.want {
				t.Fatalf("jump x = %v, want %v", m.Movement.Jump.Direction.X, tt.want)
			}
		})
	}
}

func TestBounceCount(t *testing.T) {
	e := newEnv(t)
	m, b := bulletModel(e, BounceConfig{Count: 2})
	for i := 0; i < 5; i++ {
		fall(m, 40, 30)
		b.NotifyTileCollided(collision.Result{Y: collision.Ground}, legCategory)
		for j := 0; j < bounceDelayTick; j++ {
			b.Update(1)
		}
	}
	if _, n := b.Bias(); n != 2 {
		t.Fatalf("bounced = %d, want 2", n)
	}
}

func TestBounceKneeTurns(t *testing.T) {
	e := newEnv(t)
	m, b := bulletModel(e, BounceConfig{})
	m.Launchable.Direction.SetDirection(2, 1)
	m.Transform.OldX, m.Transform.X = 10, 12
	b.NotifyTileCollided(collision.Result{X: collision.Block, SnapX: 12}, collision.Category{Name: collision.Knee, Axis: collision.AxisX})
	d := m.Launchable.Direction
	if d.Direction.X != -2 || d.Destination.X != -2 || d.Direction.Y != 1 {
		t.Fatalf("direction = %+v", d)
	}
	if m.Transform.X != 10 {
		t.Fatalf("x = %v, want pushed back to 10", m.Transform.X)
	}
}

func TestExplode5Schedule(t *testing.T) {
	e := newEnv(t)
	m := e.model("explode5")
	m.Transform.Teleport(100, 50)
	x := NewExplode5(Explode5Config{})
	e.attach(m, entity.FeatureExplode5, x)

	for e.frame = 1; e.frame <= explode5Lifetime; e.frame++ {
		x.Update(1)
		if queued(m) {
			t.Fatalf("destroyed at frame %d", e.frame)
		}
	}
	x.Update(1)
	if !queued(m) {
		t.Fatal("should be destroyed once the lifetime elapsed")
	}

	got := e.spawner.named(defaultExplodeEffect)
	if len(got) != len(explode5Offsets) {
		t.Fatalf("spawned %d explosions, want %d", len(got), len(explode5Offsets))
	}
	for i, o := range explode5Offsets {
		want := spawnRecord{name: defaultExplodeEffect, at: cp.Vector{X: 100 + float64(o[0]), Y: 50 + float64(o[1])}, frame: o[2] + 2}
		if got[i] != want {
			t.Fatalf("spawn %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestTakeable(t *testing.T) {
	tests := []struct {
		name  string
		stats *component.Stats
		with  string
		by    string
		taken bool
	}{
		{name: "player body", stats: &component.Stats{Health: 2, HealthMax: 8}, with: collision.Take, by: collision.Body, taken: true},
		{name: "no stats", with: collision.Take, by: collision.Body},
		{name: "wrong hitbox", stats: &component.Stats{HealthMax: 8}, with: collision.Take, by: collision.Leg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			m := e.model("potion")
			k := NewTakeable(TakeableConfig{Sfx: audio.EffectTake, Effect: "taken", Stats: component.StatsDelta{Health: 3}})
			e.attach(m, entity.FeatureTakeable, k)
			other := e.model("valdyn")
			other.Stats = tt.stats

			k.NotifyCollided(other, collision.Hitbox{Name: tt.with}, collision.Hitbox{Name: tt.by})
			if k.Taken() != tt.taken || queued(m) != tt.taken {
				t.Fatalf("taken %v destroyed %v, want %v", k.Taken(), queued(m), tt.taken)
			}
			if !tt.taken {
				return
			}
			if other.Stats.Health != 5 {
				t.Fatalf("health = %d, want 5", other.Stats.Health)
			}
			if len(e.spawner.named("taken")) != 1 || len(e.sfx.played) != 1 {
				t.Fatal("take should spawn its effect and play its sfx once")
			}
			k.NotifyCollided(other, collision.Hitbox{Name: tt.with}, collision.Hitbox{Name: tt.by})
			if other.Stats.Health != 5 {
				t.Fatal("a pickup is taken once")
			}
		})
	}
}

func hurtableModel(e *env, cfg HurtableConfig) (*entity.Model, *Hurtable) {
	m := e.model("monster")
	m.Collidable = &component.Collidable{Group: collision.GroupEnemies}
	e.states(m, state.Patrol, state.Hurt, state.Dead)
	h := NewHurtable(cfg)
	e.attach(m, entity.FeatureHurtable, h)
	return m, h
}

func TestHurtableLife(t *testing.T) {
	e := newEnv(t)
	m, h := hurtableModel(e, HurtableConfig{Life: 2, Recover: 5, Effect: "explode"})
	player := e.model("valdyn")
	player.Collidable = &component.Collidable{Group: collision.GroupPlayer}
	sword := collision.Hitbox{Name: collision.Attack}
	body := collision.Hitbox{Name: collision.Body}

	h.NotifyCollided(player, body, sword)
	if h.Life() != 1 || !h.IsHurting() || !m.IsState(state.Hurt) {
		t.Fatalf("life %d hurting %v state %s", h.Life(), h.IsHurting(), m.States.Current())
	}
	h.NotifyCollided(player, body, sword)
	if h.Life() != 1 {
		t.Fatal("hurting should protect from the next hit")
	}
	for i := 0; i < 5; i++ {
		h.Update(1)
	}
	if h.IsHurting() {
		t.Fatal("should recover after the recover ticks")
	}
	h.NotifyCollided(player, body, sword)
	if !h.IsDead() || !m.IsState(state.Dead) || !queued(m) {
		t.Fatalf("dead %v state %s queued %v", h.IsDead(), m.States.Current(), queued(m))
	}
	if len(e.spawner.named("explode")) != 1 {
		t.Fatal("death should spawn the effect")
	}
}

func TestHurtableIgnoresOwnGroup(t *testing.T) {
	e := newEnv(t)
	_, h := hurtableModel(e, HurtableConfig{})
	ally := e.model("ally")
	ally.Collidable = &component.Collidable{Group: collision.GroupEnemies}
	h.NotifyCollided(ally, collision.Hitbox{Name: collision.Body}, collision.Hitbox{Name: collision.Attack})
	if h.IsHurting() || h.IsDead() {
		t.Fatal("same group attack should be ignored")
	}
}

func TestHurtablePersistWaitsForDeadAnimation(t *testing.T) {
	e := newEnv(t)
	m, h := hurtableModel(e, HurtableConfig{Persist: true})
	m.Anim = &component.Animator{Anims: map[string]component.Animation{string(state.Dead): {First: 0, Last: 1, Speed: 1}}}
	h.Kill(false)
	m.PlayAnim(string(state.Dead))
	h.Update(1)
	if queued(m) {
		t.Fatal("persisting corpse destroyed before its animation ended")
	}
	m.Anim.Update(1)
	m.Anim.Update(1)
	h.Update(1)
	if !queued(m) {
		t.Fatal("persisting corpse should be destroyed after its animation")
	}
}

func TestHurtableSpikeTile(t *testing.T) {
	e := newEnv(t)
	m, h := hurtableModel(e, HurtableConfig{Life: 3})
	m.Stats = &component.Stats{Health: 4, HealthMax: 8}
	h.NotifyTileCollided(collision.Result{Y: collision.Spike}, legCategory)
	if !h.IsHurtingBody() || m.Stats.Health != 3 || h.Life() != 3 {
		t.Fatalf("hurting body %v health %d", h.IsHurtingBody(), m.Stats.Health)
	}
}

func TestNorkaSequence(t *testing.T) {
	e := newEnv(t)
	e.services.Water = &entity.Water{Height: 40, Speed: 1, RaiseMax: 100}
	m := e.model("norka")
	m.Anim = &component.Animator{Anims: map[string]component.Animation{animIdle: {First: 0, Last: 3, Speed: 1}}}
	n := &Norka{}
	e.attach(m, entity.FeatureNorka, n)

	pillars := e.spawner.named(NorkaPillar)
	if len(pillars) != norkaPillars {
		t.Fatalf("spawned %d pillars, want %d", len(pillars), norkaPillars)
	}
	for i, p := range pillars {
		if p.at != (cp.Vector{X: float64(88 + i*80)}) {
			t.Fatalf("pillar %d at %v", i, p.at)
		}
		if !n.pillars[i].alive() {
			t.Fatalf("pillar %d handle lost", i)
		}
	}
	if pl, _ := entity.GetFeature[*Pillar](n.pillars[3].m, entity.FeaturePillar); pl.cfg.Delay != 400 {
		t.Fatalf("pillar delay = %d, want 400", pl.cfg.Delay)
	}
	if len(e.spawner.named(NorkaDaemon)) != 1 {
		t.Fatal("daemon should be spawned on recycle")
	}

	for i := 0; i < norkaPillarDelay; i++ {
		n.Update(1)
	}
	if n.Phase() != "spawn_flyer" {
		t.Fatalf("phase = %s after pillar delay", n.Phase())
	}
	for i := 0; i < norkaFlyerDelay; i++ {
		n.Update(1)
	}
	flyers := e.spawner.named(NorkaFlyer)
	if n.Phase() != "fight" || len(flyers) != 1 || flyers[0].at != (cp.Vector{X: 208, Y: 400}) {
		t.Fatalf("phase %s flyers %+v", n.Phase(), flyers)
	}

	daemon := n.daemon.m
	n.flyer.m.NotifyDestroyed()
	if !queued(daemon) || e.services.Water.RaiseMax != -1 {
		t.Fatal("flyer death should destroy the daemon and drain the water")
	}
	for _, p := range n.pillars {
		p.m.Update(1)
		if !queued(p.m) {
			t.Fatal("pillars should close on flyer death")
		}
	}

	daemon.NotifyDestroyed()
	if len(e.spawner.named(NorkaDemon)) != 1 {
		t.Fatal("daemon death should spawn its second part")
	}
	e.byName[NorkaDemon].NotifyDestroyed()
	if m.Anim.Speed() != -1 || m.Anim.Frame() != 3 {
		t.Fatalf("idle should play reversed from its last frame, speed %v frame %d", m.Anim.Speed(), m.Anim.Frame())
	}
	for i := 0; i < 4; i++ {
		if queued(m) {
			t.Fatalf("left early at update %d", i)
		}
		m.Anim.Update(1)
	}
	if !queued(m) || len(e.spawner.named(NorkaWalk)) != 1 {
		t.Fatal("norka should spawn the walking stage and leave")
	}
}

func TestNorkaDrownsPlayer(t *testing.T) {
	e := newEnv(t)
	e.services.Water = &entity.Water{Height: 40}
	player, h := hurtableModel(e, HurtableConfig{Life: 5})
	player.Transform.Teleport(0, 30)
	e.services.SetPlayer(player)
	m := e.model("norka")
	m.Anim = &component.Animator{Anims: map[string]component.Animation{animIdle: {Last: 3, Speed: 1}}}
	n := &Norka{}
	e.attach(m, entity.FeatureNorka, n)

	n.Update(1)
	if !h.IsHurtingBody() || h.Life() != 4 {
		t.Fatalf("under water: hurting body %v life %d", h.IsHurtingBody(), h.Life())
	}
	n.Update(1)
	if h.Life() != 4 {
		t.Fatal("water hurts once per recovery")
	}
}

func TestGhost2(t *testing.T) {
	e := newEnv(t)
	player := e.model("valdyn")
	player.Transform.Teleport(130, 40)
	e.services.SetPlayer(player)
	m := e.model("ghost2")
	m.Transform.Teleport(100, 40)
	g := &Ghost2{}
	e.attach(m, entity.FeatureGhost2, g)

	for i := 1; i < ghostTrackTick; i++ {
		g.Update(1)
		if g.Dashing() || m.Transform.X != 100 {
			t.Fatalf("update %d: ghost should bob in place", i)
		}
	}
	// The bobbing moved the ghost off the player's height, so the dash
	// climbs a little while covering the horizontal gap at full speed.
	y := m.Transform.Y
	g.Update(1)
	if !g.Dashing() {
		t.Fatal("ghost should dash after the track tick")
	}
	want := cp.Vector{X: ghostSpeed, Y: (40 - y) / 30 * ghostSpeed}
	if d := g.current.Direction; math.Abs(d.X-want.X) > 1e-9 || math.Abs(d.Y-want.Y) > 1e-9 {
		t.Fatalf("dash = %+v, want %+v", d, want)
	}
	g.Update(1)
	if m.Transform.X != 100+ghostSpeed {
		t.Fatalf("x = %v", m.Transform.X)
	}
}

func TestGhost2SamePlace(t *testing.T) {
	e := newEnv(t)
	player := e.model("valdyn")
	player.Transform.Teleport(100, 40)
	e.services.SetPlayer(player)
	m := e.model("ghost2")
	m.Transform.Teleport(100, 40)
	g := &Ghost2{}
	e.attach(m, entity.FeatureGhost2, g)
	g.tick.Set(ghostTrackTick)
	g.Update(1)
	if g.current.Direction != (cp.Vector{}) {
		t.Fatalf("dash = %+v, want zero on top of the player", g.current.Direction)
	}
}

func TestSheetCurve(t *testing.T) {
	e := newEnv(t)
	m := e.model("sheet")
	glue := &Glue{}
	sheet := &Sheet{}
	e.attach(m, entity.FeatureGlue, glue)
	e.attach(m, entity.FeatureSheet, sheet)
	player := e.model("valdyn")

	hit := func() {
		glue.NotifyCollided(player, collision.Hitbox{Name: collision.Glue}, collision.Hitbox{Name: collision.Leg})
	}
	hit()
	glue.Update(1)
	sheet.Update(1)
	if glue.Carried() != player || sheet.curve != sheetCurveSpeed {
		t.Fatalf("carried %v curve %v", glue.Carried(), sheet.curve)
	}
	for i := 0; i < 25; i++ {
		hit()
		glue.Update(1)
		sheet.Update(1)
	}
	if !sheet.done || sheet.curve != 0 {
		t.Fatalf("curve %v done %v, want a full half sine", sheet.curve, sheet.done)
	}

	sheet.Recycle()
	glue.Recycle()
	hit()
	glue.Update(1)
	sheet.Update(1)
	sheet.Update(1)
	glue.Update(1)
	if glue.Enabled() || !sheet.abort {
		t.Fatal("leaving the sheet should release the glue")
	}
	sheet.Update(1)
	if sheet.curve != sheetCurveSpeed {
		t.Fatalf("curve = %v, want rolling back", sheet.curve)
	}
}

func TestHotFireBall(t *testing.T) {
	e := newEnv(t)
	m := e.model("hot_fire_ball")
	e.attach(m, entity.FeatureLauncher, NewLauncher(LauncherConfig{Projectile: "fire_ball"}))
	h := NewHotFireBall(HotFireBallConfig{Delay: 20, Count: 1, Vx: 1, Vy: 2})
	e.attach(m, entity.FeatureHotFireBall, h)

	fired := func() int { return len(e.spawner.named("fire_ball")) }
	// Half the delay is skipped, the rest plus one series interval is waited.
	first := 20/2 + ballDelayTick - 1
	for i := 1; i < first; i++ {
		h.Update(1)
	}
	if fired() != 0 {
		t.Fatalf("fired %d before the first series", fired())
	}
	h.Update(1)
	if fired() != 1 {
		t.Fatalf("fired %d, want 1", fired())
	}
	if len(e.sfx.played) != 1 {
		t.Fatal("series start should play the sfx")
	}
	for i := 0; i < ballDelayTick; i++ {
		h.Update(1)
	}
	if fired() != 2 || h.current != 0 {
		t.Fatalf("fired %d current %d, want a two ball series", fired(), h.current)
	}
}

func TestNorkaPlatform(t *testing.T) {
	tests := []struct {
		vy    float64
		maxX  float64
		delay int
	}{
		{vy: -3, maxX: 48, delay: 280},
		{vy: -0.5, maxX: 112, delay: 258},
		{vy: -1, maxX: 76, delay: 250},
	}
	for _, tt := range tests {
		e := newEnv(t)
		m := e.model("norka_platform")
		m.Launchable = &component.Launchable{}
		m.Launchable.Direction.SetDirection(1, tt.vy)
		e.attach(m, entity.FeatureHurtable, NewHurtable(HurtableConfig{}))
		p := &NorkaPlatform{}
		e.attach(m, entity.FeatureNorkaPlatform, p)

		p.Update(1)
		m.Transform.X = tt.maxX + 1
		p.Update(1)
		if m.Launchable.Direction.Direction != (cp.Vector{}) {
			t.Fatalf("vy %v: platform should stop past %v", tt.vy, tt.maxX)
		}
		for i := 2; i < tt.delay; i++ {
			p.Update(1)
		}
		if queued(m) {
			t.Fatalf("vy %v: sank before %d ticks", tt.vy, tt.delay)
		}
		p.Update(1)
		if !queued(m) {
			t.Fatalf("vy %v: should sink after %d ticks", tt.vy, tt.delay)
		}
	}
}

func TestBossNorka2Bullet(t *testing.T) {
	e := newEnv(t)
	m := e.model("boss_norka2_bullet")
	m.Launchable = &component.Launchable{}
	m.Launchable.Direction.SetDirection(-2, 1)
	e.attach(m, entity.FeatureHurtable, NewHurtable(HurtableConfig{Life: 99}))
	b := &BossNorka2Bullet{}
	e.attach(m, entity.FeatureBossNorka2Bullet, b)

	boss := e.model("boss_norka2")
	e.attach(boss, entity.FeatureBossNorka2, &Marker{})
	bh := NewHurtable(HurtableConfig{Life: 3})
	e.attach(boss, entity.FeatureHurtable, bh)
	player := e.model("valdyn")

	b.NotifyCollided(boss, collision.Hitbox{Name: collision.Attack}, collision.Hitbox{Name: collision.Body})
	if bh.Life() != 3 {
		t.Fatal("bullet must be reverted before it hurts the boss")
	}
	b.NotifyCollided(player, collision.Hitbox{Name: collision.Body}, collision.Hitbox{Name: collision.AttackFall})
	if !b.Reverted() || m.Launchable.Direction.Direction.X != 2 {
		t.Fatalf("reverted %v direction %+v", b.Reverted(), m.Launchable.Direction.Direction)
	}
	b.NotifyCollided(boss, collision.Hitbox{Name: collision.Attack}, collision.Hitbox{Name: collision.Body})
	if bh.Life() != 2 || !queued(m) {
		t.Fatalf("boss life %d bullet destroyed %v", bh.Life(), queued(m))
	}
}

func TestSpiderJumpsAtPlayer(t *testing.T) {
	e := newEnv(t)
	player := e.model("valdyn")
	player.Transform.Teleport(200, 32)
	e.services.SetPlayer(player)
	m := e.model("spider")
	m.Mirror = &component.Mirror{}
	m.Body = &component.Body{}
	m.Movement = &component.Movement{}
	m.Control = &component.Control{}
	e.states(m, state.Idle, state.Patrol, state.JumpSpider, state.Fall)
	s := NewSpider(SpiderConfig{})
	e.attach(m, entity.FeatureSpider, s)

	s.Update(1)
	if !m.IsState(state.Idle) {
		t.Fatalf("state = %s, player is out of range", m.States.Current())
	}
	player.Transform.Teleport(60, 0)
	e.services.Snapshot()
	s.Update(1)
	if !m.IsState(state.JumpSpider) || m.Body.Gravity != spiderGravity {
		t.Fatalf("state %s gravity %v", m.States.Current(), m.Body.Gravity)
	}
	if len(e.sfx.played) != 1 || e.sfx.played[0] != audio.MonsterSpider {
		t.Fatalf("sfx = %v", e.sfx.played)
	}
	m.ChangeState(state.Patrol)
	s.Update(1)
	if m.Device().Horizontal() != spiderTrackSpeed || m.Mirrored() {
		t.Fatalf("patrol toward the player: move %v mirrored %v", m.Device().Horizontal(), m.Mirrored())
	}
}

func TestSpiderDropsFromCeiling(t *testing.T) {
	e := newEnv(t)
	player := e.model("valdyn")
	player.Transform.Teleport(110, 0)
	e.services.SetPlayer(player)
	m := e.model("spider")
	m.Transform.Teleport(100, 300)
	m.Body = &component.Body{}
	m.Control = &component.Control{}
	e.states(m, state.Idle, state.PatrolCeil, state.Fall)
	s := NewSpider(SpiderConfig{})
	e.attach(m, entity.FeatureSpider, s)
	m.ChangeState(state.PatrolCeil)

	s.Update(1)
	if !m.IsState(state.Fall) || m.Body.Gravity != spiderGravityCeil || m.Body.Disabled {
		t.Fatalf("state %s gravity %v disabled %v", m.States.Current(), m.Body.Gravity, m.Body.Disabled)
	}
}

// TestRecycleRestoresFreshState drives each feature, recycles it and
// compares it with a freshly prepared instance.
func TestRecycleRestoresFreshState(t *testing.T) {
	tests := []struct {
		name  string
		build func(e *env) (entity.Feature, func())
		// view picks the compared fields of features whose recycle spawns
		// new entities. The whole struct is compared otherwise.
		view  func(f entity.Feature) any
	}{
		{
			name: "bullet bounce",
			build: func(e *env) (entity.Feature, func()) {
				m, b := bulletModel(e, BounceConfig{})
				return b, func() {
					fall(m, 40, 30)
					b.NotifyTileCollided(collision.Result{Y: "slope_left"}, legCategory)
					b.Update(1)
				}
			},
		},
		{
			name: "patrol",
			build: func(e *env) (entity.Feature, func()) {
				m, p := patrolModel(e, PatrolConfig{Sh: 1, Amplitude: 3})
				return p, func() {
					for i := 0; i < 5; i++ {
						m.States.Update(1)
						p.Update(1)
					}
				}
			},
		},
		{
			name: "ghost2",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("ghost2")
				m.Transform.Teleport(10, 10)
				g := &Ghost2{}
				e.attach(m, entity.FeatureGhost2, g)
				return g, func() {
					for i := 0; i < ghostTrackTick+5; i++ {
						g.Update(1)
					}
				}
			},
		},
		{
			name: "hurtable",
			build: func(e *env) (entity.Feature, func()) {
				_, h := hurtableModel(e, HurtableConfig{Life: 3})
				return h, func() { h.Hurt() }
			},
		},
		{
			name: "norka platform",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("norka_platform")
				m.Transform.Teleport(300, 0)
				m.Launchable = &component.Launchable{}
				e.attach(m, entity.FeatureHurtable, NewHurtable(HurtableConfig{}))
				p := &NorkaPlatform{}
				e.attach(m, entity.FeatureNorkaPlatform, p)
				return p, func() {
					p.Update(1)
					m.Transform.X = 0
					p.Update(1)
				}
			},
		},
		{
			name: "spider",
			build: func(e *env) (entity.Feature, func()) {
				player := e.model("valdyn")
				e.services.SetPlayer(player)
				m := e.model("spider")
				m.Mirror = &component.Mirror{}
				m.Body = &component.Body{}
				m.Movement = &component.Movement{}
				m.Control = &component.Control{}
				e.states(m, state.Idle, state.Patrol, state.JumpSpider, state.Fall)
				s := NewSpider(SpiderConfig{})
				e.attach(m, entity.FeatureSpider, s)
				return s, func() {
					player.Transform.Teleport(20, 0)
					e.services.Snapshot()
					s.Update(1)
					m.ChangeState(state.Patrol)
					s.Update(1)
				}
			},
		},
		{
			name: "norka",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("norka")
				m.Anim = &component.Animator{Anims: map[string]component.Animation{animIdle: {Last: 3, Speed: 1}}}
				n := &Norka{}
				e.attach(m, entity.FeatureNorka, n)
				return n, func() {
					for i := 0; i < norkaPillarDelay+norkaFlyerDelay+3; i++ {
						n.Update(1)
					}
					n.onDaemonDeath()
				}
			},
			view: func(f entity.Feature) any {
				n := f.(*Norka)
				return struct {
					phase norkaPhase
					tick  tick.Tick
					flyer handle
					exit  bool
				}{n.phase, n.tick, n.flyer, n.exit}
			},
		},
		{
			name: "sheet",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("sheet")
				glue := &Glue{}
				sheet := &Sheet{}
				e.attach(m, entity.FeatureGlue, glue)
				e.attach(m, entity.FeatureSheet, sheet)
				player := e.model("valdyn")
				return sheet, func() {
					for i := 0; i < 3; i++ {
						glue.NotifyCollided(player, collision.Hitbox{Name: collision.Glue}, collision.Hitbox{Name: collision.Leg})
						glue.Update(1)
						sheet.Update(1)
					}
				}
			},
		},
		{
			name: "glue",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("platform")
				g := &Glue{}
				e.attach(m, entity.FeatureGlue, g)
				player := e.model("valdyn")
				return g, func() {
					g.NotifyCollided(player, collision.Hitbox{Name: collision.Glue}, collision.Hitbox{Name: collision.Leg})
					g.Update(1)
					g.SetEnabled(false)
					g.NotifyCollided(player, collision.Hitbox{Name: collision.Glue}, collision.Hitbox{Name: collision.Leg})
				}
			},
		},
		{
			name: "hot fire ball",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("hot_fire_ball")
				e.attach(m, entity.FeatureLauncher, NewLauncher(LauncherConfig{Projectile: "fire_ball"}))
				h := NewHotFireBall(HotFireBallConfig{Delay: 20, Count: 2})
				e.attach(m, entity.FeatureHotFireBall, h)
				return h, func() {
					for i := 0; i < 20/2+ballDelayTick+1; i++ {
						h.Update(1)
					}
				}
			},
		},
		{
			name: "explode5",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("explode5")
				x := NewExplode5(Explode5Config{})
				e.attach(m, entity.FeatureExplode5, x)
				return x, func() {
					for i := 0; i < 12; i++ {
						x.Update(1)
					}
				}
			},
		},
		{
			name: "takeable",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("potion")
				k := NewTakeable(TakeableConfig{Stats: component.StatsDelta{Health: 1}})
				e.attach(m, entity.FeatureTakeable, k)
				other := e.model("valdyn")
				other.Stats = &component.Stats{HealthMax: 8}
				return k, func() {
					k.NotifyCollided(other, collision.Hitbox{Name: collision.Take}, collision.Hitbox{Name: collision.Body})
				}
			},
		},
		{
			name: "boss norka2 bullet",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("boss_norka2_bullet")
				m.Launchable = &component.Launchable{}
				e.attach(m, entity.FeatureHurtable, NewHurtable(HurtableConfig{Life: 99}))
				b := &BossNorka2Bullet{}
				e.attach(m, entity.FeatureBossNorka2Bullet, b)
				player := e.model("valdyn")
				return b, func() {
					b.NotifyCollided(player, collision.Hitbox{Name: collision.Body}, collision.Hitbox{Name: collision.AttackFall})
				}
			},
		},
		{
			name: "pillar",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("pillar")
				p := NewPillar(PillarConfig{Delay: 2})
				e.attach(m, entity.FeaturePillar, p)
				return p, func() {
					for i := 0; i < 4; i++ {
						p.Update(1)
					}
					p.Close()
				}
			},
		},
		{
			name: "spike",
			build: func(e *env) (entity.Feature, func()) {
				m := e.model("spike")
				m.Collidable = &component.Collidable{Hitboxes: []collision.Hitbox{{Name: collision.Attack}}}
				delay := 1
				s := NewSpike(SpikeConfig{Delay: &delay})
				e.attach(m, entity.FeatureSpike, s)
				return s, func() { s.Update(1) }
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			f, drive := tt.build(e)
			view := tt.view
			if view == nil {
				view = func(f entity.Feature) any { return reflect.ValueOf(f).Elem().Interface() }
			}
			want := view(f)
			drive()
			if reflect.DeepEqual(want, view(f)) {
				t.Fatal("driving the feature should change it")
			}
			f.(entity.Recyclable).Recycle()
			if got := view(f); !reflect.DeepEqual(want, got) {
				t.Fatalf("after recycle\n got %+v\nwant %+v", got, want)
			}
		})
	}
}
