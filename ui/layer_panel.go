package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// LayerPanel is the side panel listing the layers of the open map. Clicking a
// layer toggles it in MapData.Hidden.
type LayerPanel struct {
	UI *ebitenui.UI

	// Callbacks
	OnNextMap func()
	OnPrevMap func()

	data *components.MapData

	mapLabel     *widget.Label
	layerButtons map[string]*widget.Button

	titleFace text.Face
	smallFace text.Face
}

// NewLayerPanel builds a panel for data. Call Rebuild after switching maps.
func NewLayerPanel(data *components.MapData, onNext, onPrev func()) *LayerPanel {
	lp := &LayerPanel{
		OnNextMap: onNext,
		OnPrevMap: onPrev,
	}
	lp.loadFonts()
	lp.Rebuild(data)
	return lp
}

func (lp *LayerPanel) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	lp.titleFace = &text.GoTextFace{
		Source: fontSource,
		Size:   cfg.UI.FontSize + 2,
	}
	lp.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   cfg.UI.FontSize,
	}
}

// Rebuild recreates the widgets for the layers of data.
func (lp *LayerPanel) Rebuild(data *components.MapData) {
	lp.data = data
	lp.layerButtons = make(map[string]*widget.Button)

	// Transparent root so only the panel itself covers the map
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.BlackOverlay)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(cfg.UI.Padding)),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(cfg.UI.PanelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	lp.mapLabel = widget.NewLabel(
		widget.LabelOpts.Text(lp.mapTitle(), &lp.titleFace, &widget.LabelColor{
			Idle: cfg.UI.TextColor,
		}),
	)
	panel.AddChild(lp.mapLabel)
	panel.AddChild(lp.buildMapButtons())

	if data != nil && data.Map != nil {
		if len(data.Map.LayerNames) > 0 {
			panel.AddChild(lp.sectionLabel("Tile layers"))
		}
		for _, name := range data.Map.LayerNames {
			panel.AddChild(lp.layerButton(name))
		}
		if len(data.Map.ObjectLayerNames) > 0 {
			panel.AddChild(lp.sectionLabel("Object layers"))
		}
		for _, name := range data.Map.ObjectLayerNames {
			panel.AddChild(lp.layerButton(name))
		}
	}

	rootContainer.AddChild(panel)

	lp.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (lp *LayerPanel) sectionLabel(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, &lp.smallFace, &widget.LabelColor{
			Idle: color.RGBA{180, 180, 180, 255},
		}),
	)
}

func (lp *LayerPanel) buildMapButtons() *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	prev := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(40, 18)),
		widget.ButtonOpts.Image(lp.buttonImage()),
		widget.ButtonOpts.Text("<", &lp.smallFace, lp.buttonTextColor()),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if lp.OnPrevMap != nil {
				lp.OnPrevMap()
			}
		}),
	)
	next := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(40, 18)),
		widget.ButtonOpts.Image(lp.buttonImage()),
		widget.ButtonOpts.Text(">", &lp.smallFace, lp.buttonTextColor()),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if lp.OnNextMap != nil {
				lp.OnNextMap()
			}
		}),
	)

	single := lp.data == nil || len(lp.data.Names) < 2
	prev.GetWidget().Disabled = single
	next.GetWidget().Disabled = single

	row.AddChild(prev)
	row.AddChild(next)
	return row
}

func (lp *LayerPanel) layerButton(name string) *widget.Button {
	btn := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(cfg.UI.PanelWidth-2*cfg.UI.Padding, 18)),
		widget.ButtonOpts.Image(lp.buttonImage()),
		widget.ButtonOpts.Text(lp.layerText(name), &lp.smallFace, lp.buttonTextColor()),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ToggleLayer(lp.data, name)
			lp.UpdateUI()
		}),
	)
	lp.layerButtons[name] = btn
	return btn
}

// ToggleLayer flips the panel override for the named layer.
func ToggleLayer(data *components.MapData, name string) {
	if data == nil {
		return
	}
	if data.Hidden == nil {
		data.Hidden = make(map[string]bool)
	}
	data.Hidden[name] = !data.Hidden[name]
}

func (lp *LayerPanel) layerText(name string) string {
	mark := "[x]"
	if lp.data != nil && lp.data.Hidden[name] {
		mark = "[ ]"
	}
	return fmt.Sprintf("%s %s", mark, name)
}

func (lp *LayerPanel) mapTitle() string {
	if lp.data == nil || lp.data.Map == nil {
		return "no map"
	}
	title, err := lp.data.Map.Properties.GetString("title")
	if err != nil || title == "" {
		title = lp.data.Name()
	}
	if len(lp.data.Names) > 1 {
		return fmt.Sprintf("%s (%d/%d)", title, lp.data.Index+1, len(lp.data.Names))
	}
	return title
}

// UpdateUI refreshes button labels from the current map state.
func (lp *LayerPanel) UpdateUI() {
	if lp.mapLabel != nil {
		lp.mapLabel.Label = lp.mapTitle()
	}
	for name, btn := range lp.layerButtons {
		if textWidget := btn.Text(); textWidget != nil {
			textWidget.Label = lp.layerText(name)
		}
	}
}

func (lp *LayerPanel) buttonImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(cfg.UI.ButtonIdle)
	hover := image.NewNineSliceColor(cfg.UI.ButtonHover)
	pressed := image.NewNineSliceColor(cfg.UI.ButtonPressed)
	disabled := image.NewNineSliceColor(cfg.UI.ButtonOff)

	return &widget.ButtonImage{
		Idle:     idle,
		Hover:    hover,
		Pressed:  pressed,
		Disabled: disabled,
	}
}

func (lp *LayerPanel) buttonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     cfg.UI.TextColor,
		Hover:    color.RGBA{255, 255, 200, 255},
		Pressed:  color.RGBA{200, 200, 200, 255},
		Disabled: color.RGBA{120, 120, 120, 255},
	}
}

// Update calls the UI's Update method
func (lp *LayerPanel) Update() {
	lp.UI.Update()
}

// Draw draws the panel over the map
func (lp *LayerPanel) Draw(screen *ebiten.Image) {
	lp.UI.Draw(screen)
}
