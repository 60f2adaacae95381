package main

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/streetfighter/system"
)

// NewResultUI builds the centered end-of-match panel with Rematch and Quit
// buttons.
func NewResultUI(g *Game, res system.MatchResult) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text(resultTitle(g, res), &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	detail := widget.NewText(
		widget.TextOpts.Text(resultDetail(res), &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	rematchBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Rematch (R)", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.rematch = true
		}),
	)
	quitBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Quit (Esc)", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.quit = true
		}),
	)

	w, h := g.Layout(0, 0)
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w/3, h/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(detail)
	panel.AddChild(rematchBtn)
	panel.AddChild(quitBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func resultTitle(g *Game, res system.MatchResult) string {
	switch res.Outcome {
	case system.OutcomePlayerWins:
		return strings.ToUpper(g.roster.Fighters[system.SidePlayer].Name) + " WINS"
	case system.OutcomeEnemyWins:
		return strings.ToUpper(g.roster.Fighters[system.SideEnemy].Name) + " WINS"
	default:
		return "DRAW"
	}
}

func resultDetail(res system.MatchResult) string {
	if res.Reason == system.ReasonTimeUp {
		return fmt.Sprintf("Time up  %d - %d", res.PlayerHealth, res.EnemyHealth)
	}
	return fmt.Sprintf("K.O. at %ds  %d - %d", res.TimeRemaining, res.PlayerHealth, res.EnemyHealth)
}
