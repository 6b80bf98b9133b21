package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tankgame/obj"
	"golang.org/x/image/font/gofont/goregular"
)

type layerEntry struct {
	kind obj.Kind
}

type brushEntry struct {
	index int
	label string
}

// panel is the side bar: layer and brush lists, actions and a status line.
type panel struct {
	layers  *widget.List
	brushes *widget.List
	status  *widget.Text

	// set while the lists are refreshed from editor state so the selection
	// handlers do not feed back into the editor
	suppressEvents bool
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.Black,
				Selected:            color.RGBA{0, 0, 128, 255},
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{200, 220, 255, 255},
				SelectedBackground:  color.RGBA{180, 200, 255, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{220, 220, 220, 255}),
				Mask: solidNineSlice(color.RGBA{220, 220, 220, 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{40, 40, 40, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}

// BuildEditorUI attaches the side panel to e.
func BuildEditorUI(e *Editor) (*ebitenui.UI, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("editor: load font: %w", err)
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)
	theme := ui.PrimaryTheme

	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})
	p := &panel{}

	side := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	side.AddChild(widget.NewLabel(widget.LabelOpts.Text("Layers (Tab)", &fontFace, labelColor)))
	p.layers = widget.NewList(
		widget.ListOpts.Entries([]any{layerEntry{obj.Terrain}, layerEntry{obj.Collision}, layerEntry{obj.Objective}}),
		widget.ListOpts.EntryLabelFunc(func(v any) string {
			if entry, ok := v.(layerEntry); ok {
				return entry.kind.String()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(layerEntry)
			if !ok || p.suppressEvents {
				return
			}
			e.SelectLayer(entry.kind)
		}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(stretch, widget.WidgetOpts.MinSize(0, 80))),
	)
	side.AddChild(p.layers)

	side.AddChild(widget.NewLabel(widget.LabelOpts.Text("Brush (1-9)", &fontFace, labelColor)))
	p.brushes = widget.NewList(
		widget.ListOpts.Entries(nil),
		widget.ListOpts.EntryLabelFunc(func(v any) string {
			if entry, ok := v.(brushEntry); ok {
				return fmt.Sprintf("%d. %s", entry.index+1, entry.label)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(brushEntry)
			if !ok || p.suppressEvents {
				return
			}
			e.SelectBrush(entry.index)
		}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(stretch, widget.WidgetOpts.MinSize(0, 240))),
	)
	side.AddChild(p.brushes)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, &fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	buttons.AddChild(button("Save", func() { _ = e.Save() }))
	buttons.AddChild(button("Undo", func() { e.Undo() }))
	side.AddChild(buttons)

	p.status = widget.NewText(widget.TextOpts.Text(e.status, &fontFace, color.White))
	side.AddChild(p.status)

	side.AddChild(widget.NewText(widget.TextOpts.Text(
		"LMB paint  RMB erase\nArrows scroll  C copy record\nCtrl+S save  Ctrl+Z undo",
		&fontFace, color.Gray{Y: 170},
	)))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(side)
	ui.Container = root

	e.ui = ui
	e.panel = p
	p.sync(e)
	return ui, nil
}

// sync shows the editor's current layer and brush.
func (p *panel) sync(e *Editor) {
	if p == nil {
		return
	}
	p.suppressEvents = true
	defer func() { p.suppressEvents = false }()

	p.layers.SetSelectedEntry(layerEntry{e.layer})
	names := e.Brushes()
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = brushEntry{index: i, label: n}
	}
	p.brushes.SetEntries(entries)
	if sel := e.brush[e.layer]; sel < len(names) {
		p.brushes.SetSelectedEntry(entries[sel])
	}
}

func (p *panel) setStatus(s string, dirty bool) {
	if p == nil {
		return
	}
	if dirty {
		s += " *"
	}
	p.status.Label = s
}
