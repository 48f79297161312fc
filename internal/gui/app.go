package gui

import (
	"context"
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/shell"
	uitheme "github.com/appengine-ltd/fae-factory/internal/ui/theme"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	// Step is the simulated time of one world tick.
	Step    time.Duration
	Width   int32
	Height  int32
	FPS     int32
	FontDir string
}

type App struct {
	ui *factoryUI
}

func NewApp(cfg AppConfig, sh *shell.Shell) *App {
	return &App{ui: newFactoryUI(cfg, sh)}
}

func (a *App) Run() error {
	return a.ui.Run()
}

const (
	maxMessages = 200
	maxInputLen = 180
	queueSize   = 32
)

type factoryUI struct {
	cfg   AppConfig
	shell *shell.Shell
	clock *shell.Clock
	queue *intentQueue

	width  int32
	height int32
	layout screenLayout

	typing   bool
	input    string
	messages []string
	status   string
	cursor   int
	offset   int
	quit     bool
}

func newFactoryUI(cfg AppConfig, sh *shell.Shell) *factoryUI {
	if cfg.Step <= 0 {
		cfg.Step = time.Second / 30
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	ui := &factoryUI{
		cfg:    cfg,
		shell:  sh,
		clock:  shell.NewClock(cfg.Step),
		queue:  newIntentQueue(queueSize),
		width:  cfg.Width,
		height: cfg.Height,
	}
	ui.layout = computeLayout(innerArea(ui.width, ui.height))
	return ui
}

func innerArea(w, h int32) box {
	m := spaceXS
	return box{X: m, Y: m, W: float32(w) - 2*m, H: float32(h) - 2*m}
}

func (ui *factoryUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "fae-factory")
	rl.SetExitKey(0)
	rl.SetTargetFPS(ui.cfg.FPS)
	initTypography(ui.cfg.FontDir)
	ui.clock.Start(time.Now())

	ctx := context.Background()
	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())
		ui.layout = computeLayout(innerArea(ui.width, ui.height))

		ui.handleKeys(ctx)
		ui.handleMouse(ctx)
		ui.runQueued(ctx)
		ui.advance(ctx, time.Now())

		rl.BeginDrawing()
		rl.ClearBackground(AppTheme.Background)
		ui.draw()
		rl.EndDrawing()
	}

	shutdownTypography()
	rl.CloseWindow()
	return nil
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

func (ui *factoryUI) handleKeys(ctx context.Context) {
	if ui.typing {
		captureTextInput(&ui.input, maxInputLen)
		switch {
		case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
			ui.submitLine()
		case rl.IsKeyPressed(rl.KeyEscape):
			ui.input = ""
			ui.typing = false
		}
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySlash) {
		ui.typing = true
		return
	}
	if !HotkeysEnabled(ui) {
		return
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		ui.startPlayerCraft(ctx)
	case rl.IsKeyPressed(rl.KeyX):
		ui.cancelPlayerCraft(ctx)
	case rl.IsKeyPressed(rl.KeyTab):
		ui.status = "Holding " + heldName(ui.shell.CycleHeld())
	case rl.IsKeyPressed(rl.KeyUp):
		ui.moveCursor(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		ui.moveCursor(1)
	case rl.IsKeyPressed(rl.KeyP):
		ui.togglePause()
	case rl.IsKeyPressed(rl.KeyDelete):
		ui.removeSelected(ctx)
	case rl.IsKeyPressed(rl.KeyR):
		ui.selectRecipe(ctx)
	case rl.IsKeyPressed(rl.KeyE):
		ui.clickSelected(ctx, world.Modifiers{Ctrl: true})
	case ShiftKeyPressed(rl.KeyI):
		ui.clickSelected(ctx, world.Modifiers{Shift: true})
	case rl.IsKeyPressed(rl.KeyI):
		ui.clickSelected(ctx, world.Modifiers{})
	case rl.IsKeyPressed(rl.KeyW):
		ui.clickSelected(ctx, world.Modifiers{Alt: true})
	case ctrlDown() && rl.IsKeyPressed(rl.KeyQ):
		ui.quit = true
	}

	for d := 0; d <= 9; d++ {
		if rl.IsKeyPressed(rl.KeyZero + int32(d)) {
			ui.holdDigit(d)
		}
	}
	for n := 1; n <= 12; n++ {
		if rl.IsKeyPressed(rl.KeyF1 + int32(n-1)) {
			ui.buildKind(ctx, n)
		}
	}
}

func (ui *factoryUI) handleMouse(ctx context.Context) {
	left := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	right := rl.IsMouseButtonPressed(rl.MouseButtonRight)
	if !left && !right {
		return
	}
	pos := rl.GetMousePosition()
	if ui.layout.Input.contains(pos.X, pos.Y) {
		ui.typing = true
		return
	}
	idx, ok := rowAt(ui.layout.Entities, ui.offset, len(ui.shell.World().Entities()), pos.X, pos.Y)
	if !ok {
		return
	}
	ui.cursor = idx
	if left {
		ui.clickEntity(ctx, idx, currentModifiers())
	}
}

func captureTextInput(target *string, maxLen int) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(*target) < maxLen {
			*target += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func (ui *factoryUI) submitLine() {
	line := strings.TrimSpace(ui.input)
	ui.input = ""
	ui.typing = false
	if line == "" {
		return
	}
	ui.appendMessage("> " + line)
	if !ui.queue.TryEnqueue(ui.shell.Parse(line)) {
		ui.status = "Too many commands waiting; try again."
	}
}

func (ui *factoryUI) runQueued(ctx context.Context) {
	for _, intent := range ui.queue.Drain() {
		res := ui.shell.Run(ctx, intent)
		ui.apply(res)
		if res.Quit {
			ui.quit = true
		}
	}
}

// advance steps the world for the wall time elapsed since the last frame.
func (ui *factoryUI) advance(ctx context.Context, now time.Time) {
	for i := ui.clock.Due(now); i > 0; i-- {
		for _, ev := range ui.shell.Step(ctx, ui.cfg.Step) {
			ui.appendMessage(ev.String())
		}
	}
}

func (ui *factoryUI) togglePause() {
	if ui.clock.Toggle() {
		ui.status = "Paused."
		return
	}
	ui.status = "Running."
}

func (ui *factoryUI) startPlayerCraft(ctx context.Context) {
	player, err := ui.shell.World().Player()
	if err != nil {
		ui.status = err.Error()
		return
	}
	ui.apply(ui.shell.Submit(ctx, world.StartCraftCommand(player, recipes.DefaultRecipe, false)))
}

func (ui *factoryUI) cancelPlayerCraft(ctx context.Context) {
	player, err := ui.shell.World().Player()
	if err != nil {
		ui.status = err.Error()
		return
	}
	ui.apply(ui.shell.Submit(ctx, world.CancelCraftCommand(player)))
}

func (ui *factoryUI) holdDigit(d int) {
	t, ok := heldForDigit(d)
	if !ok {
		return
	}
	if err := ui.shell.World().SetHeld(t); err != nil {
		ui.status = err.Error()
		return
	}
	ui.status = "Holding " + heldName(t)
}

func (ui *factoryUI) buildKind(ctx context.Context, n int) {
	kind, ok := kindForFunctionKey(n)
	if !ok {
		return
	}
	ui.apply(ui.shell.Build(ctx, kind))
}

func (ui *factoryUI) moveCursor(delta int) {
	n := len(ui.shell.World().Entities())
	ui.cursor = wrapIndex(ui.cursor+delta, n)
}

func (ui *factoryUI) selectedEntity() (world.EntityID, bool) {
	ids := ui.shell.World().Entities()
	if len(ids) == 0 {
		return world.NoEntity, false
	}
	ui.cursor = clampInt(ui.cursor, 0, len(ids)-1)
	return ids[ui.cursor], true
}

func (ui *factoryUI) isPlayer(id world.EntityID) bool {
	player, err := ui.shell.World().Player()
	return err == nil && id == player
}

func (ui *factoryUI) clickEntity(ctx context.Context, idx int, mods world.Modifiers) {
	ids := ui.shell.World().Entities()
	if idx < 0 || idx >= len(ids) {
		return
	}
	if ui.isPlayer(ids[idx]) {
		ui.status = "Press space to craft by hand."
		return
	}
	ui.apply(ui.shell.Click(ctx, ids[idx], mods))
}

func (ui *factoryUI) clickSelected(ctx context.Context, mods world.Modifiers) {
	if _, ok := ui.selectedEntity(); ok {
		ui.clickEntity(ctx, ui.cursor, mods)
	}
}

func (ui *factoryUI) selectRecipe(ctx context.Context) {
	id, ok := ui.selectedEntity()
	if !ok {
		return
	}
	if ui.isPlayer(id) {
		ui.status = "The player crafts by hand."
		return
	}
	ui.apply(ui.shell.Submit(ctx, world.SelectRecipeCommand(id)))
}

func (ui *factoryUI) removeSelected(ctx context.Context) {
	id, ok := ui.selectedEntity()
	if !ok {
		return
	}
	if ui.isPlayer(id) {
		ui.status = "The player cannot be removed."
		return
	}
	player, _ := ui.shell.World().Player()
	ui.apply(ui.shell.Submit(ctx, world.RemoveEntityCommand(id, player)))
	ui.cursor = clampInt(ui.cursor, 0, len(ui.shell.World().Entities())-1)
}

func (ui *factoryUI) apply(res shell.Result) {
	if !res.Handled {
		ui.status = res.Message
		return
	}
	ui.status = ""
	for _, line := range strings.Split(res.Message, "\n") {
		ui.appendMessage(line)
	}
}

func (ui *factoryUI) appendMessage(message string) {
	line := strings.TrimRight(message, " ")
	if line == "" {
		return
	}
	ui.messages = append(ui.messages, line)
	if len(ui.messages) > maxMessages {
		ui.messages = append([]string(nil), ui.messages[len(ui.messages)-maxMessages:]...)
	}
}

func heldName(t items.ItemType) string {
	if t == "" {
		return "nothing"
	}
	return string(t)
}

// ---------------------------------------------------------------------------
// Drawing
// ---------------------------------------------------------------------------

func (ui *factoryUI) draw() {
	uitheme.DrawFrame(ui.width, ui.height)
	snap := ui.shell.World().Snapshot()
	ui.drawHeader(snap)
	ui.drawEntities(snap)
	ui.drawDetail(snap)
	ui.drawLog()
	ui.drawInput()
}

func (ui *factoryUI) drawHeader(snap world.Snapshot) {
	h := ui.layout.Header
	drawText("FAE FACTORY", int32(h.X+spaceS), int32(h.Y+spaceS), typeScale.Title, AppTheme.Accent)
	titleW := measureText("FAE FACTORY", typeScale.Title)
	drawText("v"+ui.cfg.Version, int32(h.X+spaceS)+titleW+12, int32(h.Y+spaceS+12), typeScale.Small, AppTheme.TextMuted)

	clock := fmt.Sprintf("tick %d   holding %s", snap.Tick, heldName(snap.Held))
	clr := AppTheme.TextSecondary
	if ui.clock.Paused {
		clock += "   PAUSED"
		clr = AppTheme.Warning
	}
	w := measureText(clock, typeScale.Body)
	drawText(clock, int32(h.X+h.W-spaceS)-w, int32(h.Y+spaceM), typeScale.Body, clr)
	uitheme.DrawDivider(h.X, h.Y+h.H-2, h.X+h.W, h.Y+h.H-2)
}

func (ui *factoryUI) drawEntities(snap world.Snapshot) {
	list := ui.layout.Entities
	DrawPanel(list, "Workshop", !ui.typing)
	n := len(snap.Entities)
	if n == 0 {
		return
	}
	ui.cursor = clampInt(ui.cursor, 0, n-1)
	rows := visibleRows(list)
	ui.offset = scrollOffset(ui.offset, ui.cursor, n, rows)

	for i := 0; i < rows && ui.offset+i < n; i++ {
		e := snap.Entities[ui.offset+i]
		b := rowBox(list, i)
		DrawListItem(b, ui.offset+i == ui.cursor, shell.EntityLabel(e), e.Status())
		bar := box{X: b.X + spaceM, Y: b.Y + b.H - 12, W: b.W - 2*spaceM, H: 5}
		switch {
		case e.HasCrafter:
			DrawCraftBar(bar, e.State, e.Fraction)
		case e.HasSpawner:
			uitheme.DrawProgress(toRect(bar), e.SpawnFraction, AppTheme.AccentSecondary)
		}
	}
}

func (ui *factoryUI) drawDetail(snap world.Snapshot) {
	d := ui.layout.Detail
	if len(snap.Entities) == 0 {
		DrawPanel(d, "Nothing here", false)
		return
	}
	e := snap.Entities[clampInt(ui.cursor, 0, len(snap.Entities)-1)]
	title := e.Name
	if title == "" {
		title = string(e.Kind)
	}
	DrawPanel(d, fmt.Sprintf("#%d %s", e.ID, title), false)

	x := int32(d.X + spaceM)
	y := int32(d.Y + panelHeadH + spaceXS)
	line := uitheme.Type.LineHeight(typeScale.Small)
	DrawLabelValue("Slots", fmt.Sprintf("%d used of %d", len(e.Stacks), e.Slots), x, y, AppTheme.TextPrimary)
	y += line
	DrawLabelValue("Accepts", e.InputFilter, x, y, AppTheme.TextPrimary)
	y += line
	DrawLabelValue("Gives", e.OutputFilter, x, y, AppTheme.TextPrimary)
	y += line
	if e.HasCrafter {
		recipe := string(e.Recipe)
		if recipe == "" {
			recipe = "none"
		}
		DrawLabelValue("Recipe", recipe, x, y, AppTheme.Accent)
		y += line
		DrawLabelValue("State", e.State.String(), x, y, AppTheme.TextPrimary)
		y += line
		DrawCraftBar(box{X: float32(x), Y: float32(y), W: d.W - 2*spaceM, H: 8}, e.State, e.Fraction)
		y += 16
	}
	if e.HasSpawner {
		DrawLabelValue("Next gift", e.SpawnRemaining.Round(time.Millisecond).String(), x, y, AppTheme.AccentSecondary)
		y += line
	}
	DrawStacks(float32(x), float32(y)+4, d.X+d.W-spaceM, e.Stacks)
}

func (ui *factoryUI) drawLog() {
	lb := ui.layout.Log
	DrawPanel(lb, "Log", false)
	size := typeScale.Log
	lh := uitheme.Type.LineHeight(size)
	top := int32(lb.Y + panelHeadH)
	y := int32(lb.Y+lb.H-spaceS) - lh
	limit := int32(lb.W - 2*spaceM)
	measure := func(s string) int32 { return measureText(s, size) }

	for i := len(ui.messages) - 1; i >= 0 && y >= top; i-- {
		lines := wrapText(ui.messages[i], limit, measure)
		clr := AppTheme.TextSecondary
		if strings.HasPrefix(ui.messages[i], "> ") {
			clr = AppTheme.Accent
		}
		for j := len(lines) - 1; j >= 0 && y >= top; j-- {
			drawText(lines[j], int32(lb.X+spaceM), y, size, clr)
			y -= lh
		}
	}
}

func (ui *factoryUI) drawInput() {
	DrawInputField(ui.layout.Input, ui.input, "Enter to type a command, help lists them", ui.typing)
	hb := ui.layout.Hints
	if ui.status != "" {
		drawText(ui.status, int32(hb.X+spaceS), int32(hb.Y+4), typeScale.Small, AppTheme.Warning)
		return
	}
	uitheme.DrawHintText("space craft  x cancel  1-4 hold  0 empty hand  tab cycle  click insert  shift stack  ctrl empty  alt take  r recipe  F1-F5 build  del remove  p pause",
		int32(hb.X+spaceS), int32(hb.Y+4))
}
