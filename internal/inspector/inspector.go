// Package inspector is an ImGui front end for the tessellator: a control
// panel for resolution, normals and camera next to an offscreen preview.
package inspector

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/assets"
	"github.com/Faultbox/bezier-teapot/internal/config"
	"github.com/Faultbox/bezier-teapot/internal/engine/framebuffer"
	"github.com/Faultbox/bezier-teapot/internal/engine/renderer"
	"github.com/Faultbox/bezier-teapot/internal/engine/ui"
	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/internal/scene"
	"github.com/Faultbox/bezier-teapot/pkg/formats"
)

const titlePrefix = "Bezier Inspector"

// Options configures an Inspector beyond the shared config.
type Options struct {
	// ScreenshotDir receives PNG captures of the preview.
	ScreenshotDir string
}

// Inspector owns the UI backend, the preview target and the scene.
type Inspector struct {
	cfg     *config.Config
	opts    Options
	log     *zap.Logger
	assets  *assets.Manager
	backend *ui.Backend

	renderer *renderer.Renderer
	preview  *framebuffer.Framebuffer
	scene    *scene.Scene
	frame    scene.Frame
	source   string
	surfaces int
	skipped  int

	// Results of native dialogs, which run off the main thread.
	opened   chan string
	exported chan string

	wireframe bool
	lastMouse imgui.Vec2
	status    string
	statusErr bool
	statusAt  time.Time
}

// New opens the window and loads the configured patch document.
func New(cfg *config.Config, m *assets.Manager, opts Options) (*Inspector, error) {
	in := &Inspector{
		cfg:      cfg,
		opts:     opts,
		log:      logger.Named("inspector"),
		assets:   m,
		opened:   make(chan string, 1),
		exported: make(chan string, 1),
	}

	rcfg := renderer.DefaultConfig(cfg.Window.Width, cfg.Window.Height)

	var err error
	in.backend, err = ui.NewBackend(titlePrefix, cfg.Window.Width, cfg.Window.Height, rcfg.Background)
	if err != nil {
		return nil, err
	}

	in.renderer, err = renderer.New(rcfg)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	in.preview, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		in.renderer.Close()
		return nil, err
	}

	if err := in.load(cfg.Tessellation.PatchFile); err != nil {
		in.Close()
		return nil, err
	}
	return in, nil
}

// Run blocks until the window is closed.
func (in *Inspector) Run() {
	in.backend.Run(in.render)
}

// Close releases GL resources.
func (in *Inspector) Close() {
	if in.preview != nil {
		in.preview.Destroy()
		in.preview = nil
	}
	if in.renderer != nil {
		in.renderer.Close()
		in.renderer = nil
	}
}

// load replaces the scene with the patches of a document. Resolution,
// normals and camera carry over from the current scene.
func (in *Inspector) load(path string) error {
	doc, err := in.assets.Load(path)
	if err != nil {
		return err
	}
	grids, gridErr := doc.Grids()

	cfg := *in.cfg
	if in.scene != nil {
		cfg.Tessellation.Resolution = in.scene.Resolution()
		cfg.Tessellation.Normals = in.scene.Normals()
	}
	s, err := scene.New(&cfg, grids)
	if err != nil {
		return err
	}
	if in.scene != nil {
		s.SetCamera(in.scene.Orbit.State)
	}

	in.scene = s
	in.source = path
	in.surfaces = len(doc.Surfaces)
	in.skipped = len(doc.Surfaces) - formats.ValidGrids(grids)
	if gridErr != nil {
		in.log.Warn("document has invalid surfaces", zap.String("file", path), zap.Error(gridErr))
	}
	in.log.Info("patches loaded",
		zap.String("file", path),
		zap.Int("surfaces", in.surfaces),
		zap.Int("skipped", in.skipped),
	)
	return nil
}

// reloadWith rebuilds the scene after a change to the shared config, such
// as the up axis, that the scene only reads at construction.
func (in *Inspector) reloadWith(change func(*config.Config)) {
	prev := *in.cfg
	change(in.cfg)
	if err := in.load(in.source); err != nil {
		*in.cfg = prev
		in.setStatus(err)
	}
}

func (in *Inspector) render() {
	in.drainDialogs()
	in.handleKeys()

	in.drawMenu()

	pos, size := ui.Workspace()
	panelW := min(float32(320), size.X/3)

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelW, size.Y))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Controls", nil, flags) {
		in.drawControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+panelW, pos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X-panelW, size.Y))
	if imgui.BeginV("Preview", nil, flags|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse) {
		in.drawPreview()
	}
	imgui.End()

	in.backend.SetTitle(in.scene.Title(titlePrefix))
}

// drawPreview renders the scene into the offscreen target sized to the
// available region and shows it as an image that takes pointer input.
func (in *Inspector) drawPreview() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}
	in.preview.Resize(int32(avail.X), int32(avail.Y))

	frame, err := in.scene.Frame(in.preview.Aspect())
	if err != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), err.Error())
		return
	}
	in.frame = frame

	restore := in.preview.Bind()
	w, h := in.preview.Size()
	in.renderer.Resize(int(w), int(h))
	if frame.MeshChanged {
		in.renderer.Upload(frame.Mesh)
	}
	in.renderer.SetWireframe(in.wireframe)
	in.renderer.Begin()
	in.renderer.Draw(frame.Transforms)
	restore()

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(in.preview.Texture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1), // GL textures are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mouse := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			in.scene.Drag(int(mouse.X-in.lastMouse.X), int(mouse.Y-in.lastMouse.Y))
		}
		in.lastMouse = mouse

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			in.scene.Zoom(wheel)
		}
	}
}

func (in *Inspector) handleKeys() {
	if imgui.IsAnyItemActive() {
		return
	}
	switch {
	case ui.KeyPressed(imgui.KeyEqual, imgui.KeyKeypadAdd):
		in.scene.ChangeResolution(1)
	case ui.KeyPressed(imgui.KeyMinus, imgui.KeyKeypadSubtract):
		in.scene.ChangeResolution(-1)
	case ui.KeyPressed(imgui.KeyN):
		in.scene.CycleNormals()
	case ui.KeyPressed(imgui.KeyW):
		in.wireframe = !in.wireframe
	case ui.KeyPressed(imgui.KeyR):
		in.scene.Reset()
	case ui.KeyPressed(imgui.KeyF12):
		in.saveScreenshot()
	}
}

// drainDialogs applies dialog results on the main thread, which owns the
// GL context.
func (in *Inspector) drainDialogs() {
	select {
	case path := <-in.opened:
		if err := in.load(path); err != nil {
			in.setStatus(fmt.Errorf("open %s: %w", filepath.Base(path), err))
		} else {
			in.setStatus(nil, "Loaded "+filepath.Base(path))
		}
	case path := <-in.exported:
		in.setStatus(in.exportOBJ(path), "Exported "+filepath.Base(path))
	default:
	}
}

// exportOBJ writes the mesh currently on screen.
func (in *Inspector) exportOBJ(path string) error {
	if in.frame.Mesh == nil {
		return errors.New("nothing to export yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(in.source), filepath.Ext(in.source))
	if in.source == "" {
		name = "teapot"
	}
	if err := formats.WriteOBJ(f, in.frame.Mesh, name); err != nil {
		return err
	}
	in.log.Info("mesh exported",
		zap.String("file", path),
		zap.Int("triangles", in.frame.Mesh.TriangleCount()),
	)
	return f.Close()
}

func (in *Inspector) saveScreenshot() {
	path, err := in.screenshot()
	in.setStatus(err, "Saved "+path)
}

// screenshot saves the preview as a timestamped PNG.
func (in *Inspector) screenshot() (string, error) {
	if err := os.MkdirAll(in.opts.ScreenshotDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("teapot-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(in.opts.ScreenshotDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, in.preview.Snapshot()); err != nil {
		return "", err
	}
	in.log.Info("screenshot saved", zap.String("file", path))
	return path, f.Close()
}

// setStatus shows err, or the optional success message when err is nil.
func (in *Inspector) setStatus(err error, ok ...string) {
	in.statusAt = time.Now()
	in.statusErr = err != nil
	switch {
	case err != nil:
		in.status = err.Error()
		in.log.Warn("action failed", zap.Error(err))
	case len(ok) > 0:
		in.status = ok[0]
	}
}

// stats reports the current mesh for the panel.
func (in *Inspector) stats() (vertices, triangles, patches int) {
	if m := in.frame.Mesh; m != nil {
		return m.VertexCount(), m.TriangleCount(), len(m.Patches)
	}
	return 0, 0, 0
}
