package bough

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // atlas and font page textures
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxLayers caps the number of layers. The gui layer takes the last index.
const maxLayers = 32

// Runtime owns the visual tree, the resource registries, input state and
// update hooks. It is single-threaded: call every method from the game
// loop.
type Runtime struct {
	cfg Config

	layers     map[string]*Layer
	layerOrder []*Layer
	gui        *Layer
	nextLayer  int

	atlases map[string]*Atlas
	fonts   map[string]*BitmapFont
	shaders map[string]*ebiten.Shader

	roots      []*Visual
	attachSeq  int
	billboards []*Visual

	focus   KeyboardInput
	cursors [cursorSlots]*cursorImage

	hooks        hookTable
	tags         map[string][]*Transition
	suppress     []string
	inputEnabled bool

	source       inputSource
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
	injectRunes  []rune
	injectKeys   []Key
	runeBuf      []rune
	keyBuf       []Key

	sink        EventSink
	overlays    []*StatsLabel
	script      *ScriptRunner
	screenshots []string

	screenW, screenH float64

	commands []drawCommand
	sortBuf  []drawCommand
	vertices []ebiten.Vertex
	indices  []uint32

	stats    frameStats
	shutdown bool
}

// NewRuntime validates cfg and creates a runtime with an empty gui layer.
func NewRuntime(cfg Config) (*Runtime, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	globalDebug = cfg.Debug
	rt := &Runtime{
		cfg:          cfg,
		layers:       make(map[string]*Layer),
		atlases:      make(map[string]*Atlas),
		fonts:        make(map[string]*BitmapFont),
		shaders:      make(map[string]*ebiten.Shader),
		hooks:        newHookTable(),
		tags:         make(map[string][]*Transition),
		inputEnabled: true,
		source:       ebitenInput{},
		screenW:      float64(cfg.ScreenWidth),
		screenH:      float64(cfg.ScreenHeight),
	}
	rt.gui = &Layer{Name: GuiLayer, Index: maxLayers - 1}
	rt.layers[GuiLayer] = rt.gui
	rt.layerOrder = append(rt.layerOrder, rt.gui)
	Logger().Info("runtime started", "width", cfg.ScreenWidth, "height", cfg.ScreenHeight, "debug", cfg.Debug)
	return rt, nil
}

// Config returns the runtime's configuration.
func (rt *Runtime) Config() Config { return rt.cfg }

// ScreenSize returns the gui layer size in pixels.
func (rt *Runtime) ScreenSize() (w, h float64) { return rt.screenW, rt.screenH }

// Shutdown disposes every visual, clears hooks and transitions and drops
// the registries. Later calls that create or look up resources return
// ErrShutdown.
func (rt *Runtime) Shutdown() {
	if rt.shutdown {
		return
	}
	for len(rt.roots) > 0 {
		rt.roots[len(rt.roots)-1].Dispose()
	}
	rt.cursors = [cursorSlots]*cursorImage{}
	rt.hooks = newHookTable()
	rt.tags = make(map[string][]*Transition)
	rt.suppress = nil
	rt.atlases = nil
	rt.fonts = nil
	rt.shaders = nil
	rt.billboards = nil
	rt.overlays = nil
	rt.focus = nil
	rt.sink = nil
	rt.injectQueue = nil
	rt.script = nil
	rt.screenshots = nil
	rt.shutdown = true
	Logger().Info("runtime shut down")
}

// IsShutdown reports whether Shutdown was called.
func (rt *Runtime) IsShutdown() bool { return rt.shutdown }

// AddAtlas registers an atlas under its name.
func (rt *Runtime) AddAtlas(a *Atlas) error {
	if rt.shutdown {
		return ErrShutdown
	}
	rt.atlases[a.Name] = a
	return nil
}

// LoadAtlas parses an atlas description and registers it under name.
func (rt *Runtime) LoadAtlas(name string, desc io.Reader, texture image.Image) (*Atlas, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	a, err := ParseAtlas(name, desc, texture)
	if err != nil {
		return nil, err
	}
	rt.atlases[name] = a
	return a, nil
}

// LoadAtlasFS loads an atlas description and its texture from fsys. The
// atlas is registered under the description's file stem.
func (rt *Runtime) LoadAtlasFS(fsys fs.FS, descPath, texturePath string) (*Atlas, error) {
	tex, err := decodeImage(fsys, texturePath)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(descPath)
	if err != nil {
		return nil, fmt.Errorf("bough: open atlas %s: %w", descPath, err)
	}
	defer f.Close()
	return rt.LoadAtlas(fileStem(descPath), f, tex)
}

// Atlas returns a registered atlas.
func (rt *Runtime) Atlas(name string) (*Atlas, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	if a, ok := rt.atlases[name]; ok {
		return a, nil
	}
	return nil, &NotFoundError{Kind: "atlas", Name: name}
}

// Sprite resolves a path of the form "atlas/sprite". The path splits at
// the first slash, so sprite names may contain slashes.
func (rt *Runtime) Sprite(spritePath string) (*Sprite, error) {
	atlasName, name, ok := strings.Cut(spritePath, "/")
	if !ok || atlasName == "" || name == "" {
		return nil, &NotFoundError{Kind: "sprite", Name: spritePath}
	}
	a, err := rt.Atlas(atlasName)
	if err != nil {
		return nil, err
	}
	return a.Sprite(name)
}

// AddFont registers a font under its name.
func (rt *Runtime) AddFont(f *BitmapFont) error {
	if rt.shutdown {
		return ErrShutdown
	}
	rt.fonts[f.Name] = f
	return nil
}

// LoadFont parses a BMFont description and registers it under name.
func (rt *Runtime) LoadFont(name string, desc io.Reader, pages map[string]image.Image) (*BitmapFont, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	f, err := ParseBitmapFont(name, desc, pages)
	if err != nil {
		return nil, err
	}
	rt.fonts[name] = f
	return f, nil
}

// LoadFontFS loads a BMFont description and its page images from fsys.
// The font is registered under the description's file stem.
func (rt *Runtime) LoadFontFS(fsys fs.FS, descPath string, pagePaths ...string) (*BitmapFont, error) {
	pages := make(map[string]image.Image, len(pagePaths))
	for _, p := range pagePaths {
		img, err := decodeImage(fsys, p)
		if err != nil {
			return nil, err
		}
		pages[fileStem(p)] = img
	}
	f, err := fsys.Open(descPath)
	if err != nil {
		return nil, fmt.Errorf("bough: open font %s: %w", descPath, err)
	}
	defer f.Close()
	return rt.LoadFont(fileStem(descPath), f, pages)
}

// Font returns a registered font.
func (rt *Runtime) Font(name string) (*BitmapFont, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	if f, ok := rt.fonts[name]; ok {
		return f, nil
	}
	return nil, &NotFoundError{Kind: "font", Name: name}
}

// AddShader compiles Kage source and registers it under name.
func (rt *Runtime) AddShader(name string, src []byte) error {
	if rt.shutdown {
		return ErrShutdown
	}
	s, err := ebiten.NewShader(src)
	if err != nil {
		return fmt.Errorf("bough: compile shader %s: %w", name, err)
	}
	rt.shaders[name] = s
	return nil
}

// Shader returns a registered shader. It implements ShaderProvider.
func (rt *Runtime) Shader(name string) (*ebiten.Shader, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	if s, ok := rt.shaders[name]; ok {
		return s, nil
	}
	return nil, &NotFoundError{Kind: "shader", Name: name}
}

// AddLayer registers a world layer drawn below the gui layer, or replaces
// the camera of an existing layer.
func (rt *Runtime) AddLayer(name string, cam *Camera) (*Layer, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	if l, ok := rt.layers[name]; ok {
		l.Camera = cam
		return l, nil
	}
	if rt.nextLayer >= maxLayers-1 {
		return nil, fmt.Errorf("bough: no available layers for %q", name)
	}
	l := &Layer{Name: name, Index: rt.nextLayer, Camera: cam}
	rt.nextLayer++
	rt.layers[name] = l
	rt.layerOrder = append(rt.layerOrder, l)
	return l, nil
}

// Layer returns a registered layer.
func (rt *Runtime) Layer(name string) (*Layer, error) {
	if l, ok := rt.layers[name]; ok {
		return l, nil
	}
	return nil, &NotFoundError{Kind: "layer", Name: name}
}

// Attach creates the visual for c. Every control constructor calls it.
func (rt *Runtime) Attach(c Control, pos Vec3, size Vec2, opts VisualOptions) (*Visual, error) {
	if rt.shutdown {
		return nil, ErrShutdown
	}
	base := c.controlBase()
	if base.visual != nil && !base.visual.disposed {
		return nil, fmt.Errorf("bough: control %q is already attached", base.visual.opts.Name)
	}
	var parent *Visual
	if opts.Parent != nil {
		parent = opts.Parent.Visual()
		if parent == nil || parent.disposed {
			return nil, ErrDisposed
		}
	}
	// Children default to their parent's layer.
	layerName := opts.Layer
	switch {
	case layerName != "":
	case parent != nil:
		layerName = parent.layer.Name
	default:
		layerName = rt.cfg.DefaultLayer
	}
	layer, err := rt.Layer(layerName)
	if err != nil {
		return nil, err
	}
	col := opts.Color
	if col == (Color{}) {
		col = ColorWhite
	}

	rt.attachSeq++
	v := &Visual{
		rt:        rt,
		control:   c,
		caps:      resolveCapabilities(c),
		opts:      opts,
		layer:     layer,
		drawLayer: layer,
		parent:    parent,
		position:  pos,
		size:      size,
		color:     col,
		visible:   true,
		active:    true,
		order:     rt.attachSeq,
		dirty:     DirtySize | DirtyContent,
	}
	base.visual = v
	if parent != nil {
		parent.children = append(parent.children, v)
	} else {
		rt.roots = append(rt.roots, v)
	}
	v.container = v.findContainer()
	if opts.Billboard != BillboardNone {
		v.drawLayer = rt.gui
		rt.billboards = append(rt.billboards, v)
	}
	v.updatePosition()
	if v.container != nil {
		v.container.caps.container.OnChildAdded(c)
	}
	if rt.cfg.Debug {
		debugCheckTreeDepth(v)
		if parent != nil {
			debugCheckChildCount(parent)
		}
	}
	return v, nil
}

// VisualCount returns the number of live visuals.
func (rt *Runtime) VisualCount() int {
	n := 0
	for _, r := range rt.roots {
		r.walk(func(*Visual) { n++ })
	}
	return n
}

// Update advances one frame: the script, input, update hooks, cameras,
// billboards, lazy rebuilds, then Updater controls. It returns the rebuild
// errors of the frame joined together.
func (rt *Runtime) Update(dt float64) error {
	if rt.shutdown {
		return ErrShutdown
	}
	start := time.Now()
	if rt.script != nil {
		rt.script.step(rt)
	}
	rt.processInput()
	rt.tickHooks(dt)
	for _, l := range rt.layerOrder {
		if l.Camera != nil {
			l.Camera.update(float32(dt))
		}
	}
	rt.updateBillboards()
	err := rt.rebuildDirty()
	rt.runUpdaters(dt)
	rt.stats.updateTime = time.Since(start)
	return err
}

func (rt *Runtime) updateBillboards() {
	live := rt.billboards[:0]
	for _, v := range rt.billboards {
		if v.disposed {
			continue
		}
		v.updatePosition()
		live = append(live, v)
	}
	clear(rt.billboards[len(live):])
	rt.billboards = live
}

// rebuildDirty rebuilds every dirty visual in tree order.
func (rt *Runtime) rebuildDirty() error {
	var errs []error
	for _, r := range rt.roots {
		r.walk(func(v *Visual) {
			if v.dirty == 0 || v.disposed {
				return
			}
			if err := v.rebuild(); err != nil {
				Logger().Warn("rebuild failed", "visual", v.opts.Name, "error", err)
				errs = append(errs, fmt.Errorf("bough: rebuild %q: %w", v.opts.Name, err))
			}
		})
	}
	return errors.Join(errs...)
}

func (rt *Runtime) runUpdaters(dt float64) {
	var updaters []*Visual
	rt.walkActive(func(v *Visual) {
		if v.caps.updater != nil {
			updaters = append(updaters, v)
		}
	})
	for _, v := range updaters {
		if !v.disposed {
			v.caps.updater.Update(dt)
		}
	}
}

// forget clears runtime references to a disposed visual.
func (rt *Runtime) forget(v *Visual) {
	rt.forgetPointers(v)
	if k, ok := v.control.(KeyboardInput); ok && rt.focus == k {
		rt.focus = nil
	}
}

// SetFocus moves keyboard focus to k. Pass nil to clear it.
func (rt *Runtime) SetFocus(k KeyboardInput) {
	if rt.focus == k {
		return
	}
	old := rt.focus
	rt.focus = k
	if old != nil {
		old.OnLostFocus()
	}
	if k != nil {
		k.OnGotFocus()
	}
}

// Focus returns the focused control, or nil.
func (rt *Runtime) Focus() KeyboardInput { return rt.focus }

// SetInputEnabled turns pointer presses, drags, the wheel and keys on or
// off. Hover tracking continues either way.
func (rt *Runtime) SetInputEnabled(enabled bool) { rt.inputEnabled = enabled }

// InputEnabled reports whether input is enabled and no suppressing
// transition is running.
func (rt *Runtime) InputEnabled() bool {
	if !rt.inputEnabled {
		return false
	}
	for _, tag := range rt.suppress {
		if rt.AnyTransition(tag) {
			return false
		}
	}
	return true
}

// SuppressInput disables input while any transition tagged tag runs.
func (rt *Runtime) SuppressInput(tag string) {
	for _, t := range rt.suppress {
		if t == tag {
			return
		}
	}
	rt.suppress = append(rt.suppress, tag)
}

// AllowInput undoes SuppressInput for tag.
func (rt *Runtime) AllowInput(tag string) {
	for i, t := range rt.suppress {
		if t == tag {
			rt.suppress = append(rt.suppress[:i], rt.suppress[i+1:]...)
			return
		}
	}
}

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bough: open image %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bough: decode image %s: %w", name, err)
	}
	return img, nil
}

func fileStem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
