package inspector

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/config"
	"github.com/Faultbox/bezier-teapot/internal/scene"
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// statusTimeout is how long a status message stays visible.
const statusTimeout = 5 * time.Second

var upAxes = []string{"y", "z"}

func (in *Inspector) drawMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open patch file...") {
			in.openDialog()
		}
		if imgui.MenuItemBool("Reload embedded teapot") {
			select {
			case in.opened <- "":
			default:
			}
		}
		imgui.Separator()
		if imgui.MenuItemBool("Export OBJ...") {
			in.exportDialog()
		}
		if imgui.MenuItemBool("Save screenshot (F12)") {
			in.saveScreenshot()
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

// openDialog shows a native picker off the main thread; the choice is
// loaded by drainDialogs on the next frame.
func (in *Inspector) openDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Patch documents", "json", "txt").
			Filter("All Files", "*").
			Title("Open Patch Document").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				in.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case in.opened <- path:
		default:
		}
	}()
}

func (in *Inspector) exportDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Export Mesh").
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				in.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		if filepath.Ext(path) == "" {
			path += ".obj"
		}
		select {
		case in.exported <- path:
		default:
		}
	}()
}

func (in *Inspector) drawControls() {
	in.drawSource()
	imgui.Spacing()
	in.drawTessellation()
	imgui.Spacing()
	in.drawCamera()
	imgui.Spacing()
	in.drawMatrices()
	in.drawStatus()
}

func (in *Inspector) drawSource() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Document", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	name := in.source
	if name == "" {
		name = "embedded teapot"
	}
	imgui.Text(filepath.Base(name))
	imgui.TextDisabled(fmt.Sprintf("%d surfaces", in.surfaces))
	if in.skipped > 0 {
		imgui.TextColored(imgui.NewVec4(1, 0.7, 0.3, 1), fmt.Sprintf("%d invalid surfaces skipped", in.skipped))
	}
	if imgui.ButtonV("Open...", imgui.NewVec2(-1, 0)) {
		in.openDialog()
	}
}

func (in *Inspector) drawTessellation() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Tessellation", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}

	n := int32(in.scene.Resolution())
	imgui.Text("Resolution (N)")
	if imgui.SliderIntV("##resolution", &n, 1, scene.MaxResolution, "%d", imgui.SliderFlagsNone) {
		in.scene.SetResolution(int(n))
	}

	imgui.Text("Normals")
	current := in.scene.Normals()
	for _, name := range scene.Strategies() {
		if imgui.SelectableBoolV(name, name == current, 0, imgui.NewVec2(0, 0)) && name != current {
			if err := in.scene.SetNormals(name); err != nil {
				in.setStatus(err)
			}
		}
	}

	imgui.Checkbox("Wireframe (W)", &in.wireframe)

	vertices, triangles, patches := in.stats()
	if imgui.BeginTable("meshstats", 2) {
		row := func(label string, value int) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.TextDisabled(label)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", value))
		}
		row("Patches", patches)
		row("Vertices", vertices)
		row("Triangles", triangles)
		imgui.EndTable()
	}
}

func (in *Inspector) drawCamera() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}

	state := in.scene.Orbit.State
	pitch := math.Degrees(state.Pitch)
	yaw := math.Degrees(state.Yaw)
	zoom := state.Zoom

	changed := imgui.SliderFloatV("Pitch", &pitch, -90, 90, "%.1f deg", imgui.SliderFlagsNone)
	changed = imgui.SliderFloatV("Yaw", &yaw, -180, 180, "%.1f deg", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Zoom", &zoom, in.scene.Orbit.MinZoom, in.scene.Orbit.MaxZoom, "%.2f", imgui.SliderFlagsNone) || changed
	if changed {
		state.Pitch = math.Radians(pitch)
		state.Yaw = math.Radians(yaw)
		state.Zoom = zoom
		in.scene.SetCamera(state)
	}

	imgui.Text("Up axis")
	for i, axis := range upAxes {
		if i > 0 {
			imgui.SameLine()
		}
		selected := in.cfg.Camera.UpAxis == axis
		if imgui.SelectableBoolV(axis+" up", selected, 0, imgui.NewVec2(60, 0)) && !selected {
			in.reloadWith(func(c *config.Config) { c.Camera.UpAxis = axis })
		}
	}

	if imgui.ButtonV("Reset View (R)", imgui.NewVec2(-1, 0)) {
		in.scene.Reset()
	}
	imgui.TextDisabled("Drag to rotate, scroll to zoom")
}

func (in *Inspector) drawMatrices() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Matrices", imgui.TreeNodeFlagsNone) {
		return
	}
	t := in.frame.Transforms
	matrix("Projection", t.Projection)
	matrix("ModelView", t.ModelView)
	matrix("Normal", t.Normal)
}

func matrix(label string, m math.Mat4) {
	imgui.TextDisabled(label)
	for row := 0; row < 4; row++ {
		imgui.Text(fmt.Sprintf("%8.3f %8.3f %8.3f %8.3f", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3)))
	}
}

func (in *Inspector) drawStatus() {
	if in.status == "" || time.Since(in.statusAt) > statusTimeout {
		return
	}
	imgui.Separator()
	color := imgui.NewVec4(0.5, 0.9, 0.5, 1)
	if in.statusErr {
		color = imgui.NewVec4(1, 0.4, 0.4, 1)
	}
	imgui.PushStyleColorVec4(imgui.ColText, color)
	imgui.TextWrapped(in.status)
	imgui.PopStyleColor()
}
