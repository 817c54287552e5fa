package game

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/pkg/errors"
)

// MarkerView presents the landing point. Implementations must tolerate
// repeated Show and Hide calls.
type MarkerView interface {
	Show()
	Hide()
	SetPosition(position mgl64.Vec3)
	SetLabel(text string, visible bool)
}

// MarkerState is the outcome of the last successful prediction.
type MarkerState struct {
	Result   ballistics.PredictionResult
	OnTarget bool
	Target   ballistics.Target
	Valid    bool
}

type LandingMarkerOptions struct {
	Clock   TickSource
	Rays    RaySource
	Caster  ballistics.RayCaster
	Targets TargetSource
	View    MarkerView
	// Exclude lists objects the arc passes through, usually the thrower.
	// The view is added when it is a SceneObject.
	Exclude      []uuid.UUID
	Simulation   ballistics.SimulationConfig
	TargetLeeway float64
	LabelText    string
}

// LandingMarker predicts the landing point once per tick while enabled.
type LandingMarker struct {
	mutex        sync.Mutex
	clock        TickSource
	rays         RaySource
	caster       ballistics.RayCaster
	targets      TargetSource
	view         MarkerView
	exclude      ballistics.ExclusionSet
	simulation   ballistics.SimulationConfig
	leeway       float64
	labelText    string
	enabled      bool
	subscription *Subscription
	last         MarkerState
	failedTicks  int
	timer        *util.Timer
}

func NewLandingMarker(options LandingMarkerOptions) *LandingMarker {
	exclude := ballistics.NewExclusionSet(options.Exclude...)
	if object, isSceneObject := options.View.(SceneObject); isSceneObject {
		exclude.Add(object.ID())
	}
	targets := options.Targets
	if targets == nil {
		targets = TargetSourceFunc(func() []ballistics.Target { return nil })
	}
	caster := options.Caster
	if caster == nil {
		caster = ballistics.EmptyScene
	}
	labelText := options.LabelText
	if labelText == "" {
		labelText = DefaultLabelText
	}
	return &LandingMarker{
		clock:      options.Clock,
		rays:       options.Rays,
		caster:     caster,
		targets:    targets,
		view:       options.View,
		exclude:    exclude,
		simulation: options.Simulation,
		leeway:     options.TargetLeeway,
		labelText:  labelText,
		timer:      util.NewTimer(),
	}
}

// Enable starts per tick prediction and shows the marker. Calling it while
// enabled does nothing.
func (m *LandingMarker) Enable() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.enabled {
		return
	}
	m.enabled = true
	if m.view != nil {
		m.view.Show()
	}
	if m.clock != nil {
		m.subscription = m.clock.Subscribe(m.onTick)
	}
	util.LogMarkerInfo("[LandingMarker] enabled")
}

// Disable stops prediction and hides the marker without releasing it.
func (m *LandingMarker) Disable() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !m.enabled {
		return
	}
	m.enabled = false
	m.subscription.Cancel()
	m.subscription = nil
	if m.view != nil {
		m.view.Hide()
	}
	util.LogMarkerInfo("[LandingMarker] disabled")
}

// Toggle returns the new state.
func (m *LandingMarker) Toggle() bool {
	if m.IsEnabled() {
		m.Disable()
		return false
	}
	m.Enable()
	return true
}

func (m *LandingMarker) IsEnabled() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.enabled
}

func (m *LandingMarker) Last() MarkerState {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.last
}

func (m *LandingMarker) FailedTicks() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.failedTicks
}

func (m *LandingMarker) Timer() *util.Timer {
	return m.timer
}

func (m *LandingMarker) onTick(deltaTime float64) {
	if _, err := m.Update(); err != nil {
		m.mutex.Lock()
		m.failedTicks++
		m.mutex.Unlock()
		util.LogMarkerError(fmt.Sprintf("[LandingMarker] prediction failed, keeping last state: %v", err))
	}
}

// Update runs one prediction with the current ray and targets. On error the
// previous state is kept and returned along with the error. A missing ray is
// not an error.
func (m *LandingMarker) Update() (MarkerState, error) {
	if m.rays == nil {
		return m.Last(), errors.New("no ray source")
	}
	origin, direction, ok := m.rays.Ray()
	if !ok {
		return m.Last(), nil
	}
	direction, ok = util.NormalizeOrZero(direction)
	if !ok {
		return m.Last(), errors.Errorf("zero aim direction from %v", origin)
	}

	stop := m.timer.Start("predict")
	result, err := ballistics.Predict(origin, direction, m.simulation, m.exclude, m.caster)
	duration := stop()
	if err != nil {
		return m.Last(), errors.Wrap(err, "predict")
	}

	state := MarkerState{Result: result, Valid: true}
	targets := m.targets.Targets()
	if ballistics.IsNearAnyTargetWithin(result.Point, targets, m.leeway) {
		state.OnTarget = true
		state.Target, _ = ballistics.NearestTarget(result.Point, targets, m.leeway)
	}
	util.LogPredictionDebug(fmt.Sprintf("[LandingMarker] %v hit=%t steps=%d onTarget=%t in %.3fms", result.Point, result.Hit, result.Steps, state.OnTarget, duration))

	m.mutex.Lock()
	m.last = state
	enabled := m.enabled
	m.mutex.Unlock()

	if enabled && m.view != nil {
		m.view.SetPosition(result.Point)
		m.view.SetLabel(m.labelFor(state), state.OnTarget)
	}
	return state, nil
}

func (m *LandingMarker) labelFor(state MarkerState) string {
	if !state.OnTarget || state.Target.Name == "" {
		return m.labelText
	}
	return m.labelText + " " + state.Target.Name
}

// MarkerNode is the default MarkerView. While shown it is attached to the
// scene as a small box so it has to be excluded from the marker's own casts.
type MarkerNode struct {
	mutex    sync.RWMutex
	id       uuid.UUID
	scene    *Scene
	position mgl64.Vec3
	visible  bool
	label    *BillboardLabel
	collider *util.MeshCollider
}

func NewMarkerNode(scene *Scene, size float64, label *BillboardLabel) *MarkerNode {
	if label == nil {
		label = NewBillboardLabel(DefaultLabelPixelsPerUnit, mgl64.Vec3{0, DefaultLabelHeight, 0})
	}
	n := &MarkerNode{
		id:    uuid.New(),
		scene: scene,
		label: label,
	}
	n.collider = util.NewBoxCollider("landing-marker", mgl64.Vec3{}, mgl64.Vec3{size, size, size})
	n.collider.TransformFunc = func() mgl64.Mat4 {
		position := n.GetPosition()
		return mgl64.Translate3D(position.X(), position.Y(), position.Z())
	}
	return n
}

func (n *MarkerNode) ID() uuid.UUID {
	return n.id
}

func (n *MarkerNode) GetName() string {
	return "landing-marker"
}

func (n *MarkerNode) GetCollider() util.Collider {
	return n.collider
}

func (n *MarkerNode) Show() {
	n.mutex.Lock()
	n.visible = true
	n.mutex.Unlock()
	if n.scene != nil && !n.scene.IsAttached(n.id) {
		n.scene.Attach(n)
	}
}

func (n *MarkerNode) Hide() {
	n.mutex.Lock()
	n.visible = false
	n.mutex.Unlock()
	n.label.SetVisible(false)
	if n.scene != nil {
		n.scene.Detach(n.id)
	}
}

func (n *MarkerNode) IsVisible() bool {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.visible
}

func (n *MarkerNode) SetPosition(position mgl64.Vec3) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.position = position
}

func (n *MarkerNode) GetPosition() mgl64.Vec3 {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.position
}

func (n *MarkerNode) SetLabel(text string, visible bool) {
	n.label.SetText(text)
	n.label.SetVisible(visible && n.IsVisible())
}

func (n *MarkerNode) Label() *BillboardLabel {
	return n.label
}
