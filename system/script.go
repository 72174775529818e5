package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"go.uber.org/zap"
)

const scriptDispatch = `
update(__engine, __state)
`

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// ScriptSystem runs each entity's controller script once per tick, before physics.
// A script defines update(engine, state); state is a map kept across ticks.
type ScriptSystem struct {
	Logger *zap.Logger
	// Load reads script source by path. Defaults to prefabs.LoadScript.
	Load func(path string) ([]byte, error)

	cache map[ecs.Entity]*scriptRuntime
}

func NewScriptSystem(logger *zap.Logger) *ScriptSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptSystem{Logger: logger, Load: prefabs.LoadScript, cache: map[ecs.Entity]*scriptRuntime{}}
}

// Invalidate drops compiled copies of path so the next tick reloads it. Script state
// is reset for the affected entities.
func (s *ScriptSystem) Invalidate(path string) {
	for e, rt := range s.cache {
		if rt.path == path {
			delete(s.cache, e)
		}
	}
}

func (s *ScriptSystem) Update(w *ecs.World, dt float64) {
	scripts := w.Scripts()
	for e := range s.cache {
		if !scripts.Has(e) {
			delete(s.cache, e)
		}
	}
	for _, e := range ecs.Intersect(scripts, w.Bodies2D()) {
		b, _ := w.Body2D(e)
		s.run(w, e, body2DHandle{b}, dt)
	}
	for _, e := range ecs.Intersect(scripts, w.Bodies3D()) {
		b, _ := w.Body3D(e)
		s.run(w, e, body3DHandle{b}, dt)
	}
}

func (s *ScriptSystem) run(w *ecs.World, e ecs.Entity, body scriptBody, dt float64) {
	path, _ := w.Script(e)
	rt, err := s.runtime(e, path)
	if err != nil {
		s.Logger.Warn("script load failed", zap.Stringer("entity", e), zap.String("script", path), zap.Error(err))
		return
	}
	engine := buildScriptEngine(body, w.Tick(), dt)
	if err := rt.compiled.Set("__engine", engine); err != nil {
		s.Logger.Warn("script setup failed", zap.Stringer("entity", e), zap.Error(err))
		return
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		s.Logger.Warn("script setup failed", zap.Stringer("entity", e), zap.Error(err))
		return
	}
	if err := rt.compiled.Run(); err != nil {
		s.Logger.Warn("script update failed", zap.Stringer("entity", e), zap.String("script", path), zap.Error(err))
	}
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}
	src, err := s.Load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile %s: %w", path, err)
	}
	rt := &scriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

// scriptBody is the part of a body a script may read and drive. Vectors are padded
// to three components; 2D bodies ignore the third.
type scriptBody interface {
	dims() int
	position() [3]float64
	velocity() [3]float64
	contact() [3]float64
	submerged() bool
	applyForce(v [3]float64)
	applyImpulse(v [3]float64)
	setVelocity(v [3]float64)
}

type body2DHandle struct{ b *physics.Body2D }

func (h body2DHandle) dims() int                 { return 2 }
func (h body2DHandle) position() [3]float64      { return vec2(h.b.Position) }
func (h body2DHandle) velocity() [3]float64      { return vec2(h.b.Velocity) }
func (h body2DHandle) contact() [3]float64       { return vec2(h.b.Contact) }
func (h body2DHandle) submerged() bool           { return false }
func (h body2DHandle) applyForce(v [3]float64)   { h.b.ApplyForce(cp.Vector{X: v[0], Y: v[1]}) }
func (h body2DHandle) applyImpulse(v [3]float64) { h.b.ApplyImpulse(cp.Vector{X: v[0], Y: v[1]}) }
func (h body2DHandle) setVelocity(v [3]float64)  { h.b.Velocity = cp.Vector{X: v[0], Y: v[1]} }

func vec2(v cp.Vector) [3]float64 { return [3]float64{v.X, v.Y, 0} }

type body3DHandle struct{ b *physics.Body3D }

func (h body3DHandle) dims() int                 { return 3 }
func (h body3DHandle) position() [3]float64      { return h.b.Position }
func (h body3DHandle) velocity() [3]float64      { return h.b.Velocity }
func (h body3DHandle) contact() [3]float64       { return h.b.Contact }
func (h body3DHandle) submerged() bool           { return h.b.IsSubmerged }
func (h body3DHandle) applyForce(v [3]float64)   { h.b.ApplyForce(mgl64.Vec3(v)) }
func (h body3DHandle) applyImpulse(v [3]float64) { h.b.ApplyImpulse(mgl64.Vec3(v)) }
func (h body3DHandle) setVelocity(v [3]float64)  { h.b.Velocity = mgl64.Vec3(v) }

func buildScriptEngine(body scriptBody, tick uint64, dt float64) *tengo.ImmutableMap {
	n := body.dims()
	getter := func(name string, get func() [3]float64) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return vectorObject(get(), n), nil
		}}
	}
	setter := func(name string, set func([3]float64)) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := objectVector(args[0])
			if err != nil {
				return nil, err
			}
			set(v)
			return tengo.UndefinedValue, nil
		}}
	}

	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"position":      getter("position", body.position),
		"velocity":      getter("velocity", body.velocity),
		"contact":       getter("contact", body.contact),
		"apply_force":   setter("apply_force", body.applyForce),
		"apply_impulse": setter("apply_impulse", body.applyImpulse),
		"set_velocity":  setter("set_velocity", body.setVelocity),
		"submerged": &tengo.UserFunction{Name: "submerged", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if body.submerged() {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}},
		"tick": &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Int{Value: int64(tick)}, nil
		}},
		"dt": &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: dt}, nil
		}},
	}}
}

func vectorObject(v [3]float64, n int) *tengo.Array {
	out := make([]tengo.Object, n)
	for i := range out {
		out[i] = &tengo.Float{Value: v[i]}
	}
	return &tengo.Array{Value: out}
}

// objectVector accepts an array of up to three numbers; missing components are zero.
func objectVector(obj tengo.Object) ([3]float64, error) {
	var v [3]float64
	var items []tengo.Object
	switch a := obj.(type) {
	case *tengo.Array:
		items = a.Value
	case *tengo.ImmutableArray:
		items = a.Value
	default:
		return v, tengo.ErrInvalidArgumentType{Name: "vector", Expected: "array", Found: obj.TypeName()}
	}
	if len(items) > 3 {
		return v, fmt.Errorf("system: vector has %d components", len(items))
	}
	for i, item := range items {
		f, ok := tengo.ToFloat64(item)
		if !ok {
			return v, tengo.ErrInvalidArgumentType{Name: "vector", Expected: "float", Found: item.TypeName()}
		}
		v[i] = f
	}
	return v, nil
}
