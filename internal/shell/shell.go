package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/parser"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

const historyLimit = 100

// Result is what a typed line did. Advanced is the simulated time stepped.
type Result struct {
	Handled  bool
	Message  string
	Advanced time.Duration
	Quit     bool
}

// Shell turns typed lines into world commands. Commands are flushed with a
// zero-length step so the reply can describe what happened.
type Shell struct {
	world      *world.World
	parser     *parser.Parser
	step       time.Duration
	lastEntity world.EntityID
	history    []world.Event
}

func New(w *world.World, step time.Duration) *Shell {
	if step <= 0 {
		step = time.Second
	}
	return &Shell{world: w, parser: parser.New(), step: step}
}

func (s *Shell) World() *world.World {
	return s.world
}

// Step advances the world once and records its events.
func (s *Shell) Step(ctx context.Context, elapsed time.Duration) []world.Event {
	s.world.Step(ctx, elapsed)
	evs := s.world.DrainEvents()
	s.history = append(s.history, evs...)
	if over := len(s.history) - historyLimit; over > 0 {
		s.history = append([]world.Event(nil), s.history[over:]...)
	}
	return evs
}

// History returns up to n recent events, oldest first.
func (s *Shell) History(n int) []world.Event {
	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	out := make([]world.Event, n)
	copy(out, s.history[len(s.history)-n:])
	return out
}

// Context builds the parser vocabulary from the current world.
func (s *Shell) Context() parser.ParseContext {
	ctx := parser.ParseContext{}
	for _, t := range items.AllItemTypes() {
		ctx.Items = append(ctx.Items, string(t))
	}
	for _, r := range recipes.Order() {
		ctx.Recipes = append(ctx.Recipes, string(r))
	}
	for _, k := range world.PlaceableKinds() {
		ctx.Structures = append(ctx.Structures, string(k))
	}
	player, _ := s.world.Player()
	for _, id := range s.world.Entities() {
		if id == player {
			continue
		}
		if kind, err := s.world.KindOf(id); err == nil {
			ctx.Entities = append(ctx.Entities, string(kind))
		}
	}
	if inv, err := s.world.InventoryOf(player); err == nil {
		for _, st := range inv.Stacks() {
			ctx.Inventory = append(ctx.Inventory, string(st.Type))
		}
	}
	if s.lastEntity != world.NoEntity {
		ctx.LastEntity = "#" + strconv.FormatUint(uint64(s.lastEntity), 10)
	}
	return ctx
}

// Parse reads raw against the current world without running it.
func (s *Shell) Parse(raw string) parser.Intent {
	return s.parser.Parse(s.Context(), raw)
}

// Execute parses raw and runs it.
func (s *Shell) Execute(ctx context.Context, raw string) Result {
	return s.Run(ctx, s.Parse(raw))
}

func (s *Shell) Run(ctx context.Context, intent parser.Intent) Result {
	if intent.Clarify != nil {
		return Result{Handled: true, Message: formatClarify(intent.Clarify)}
	}
	switch intent.Verb {
	case "help":
		return Result{Handled: true, Message: s.help()}
	case "inventory":
		return s.inventory(intent.Args)
	case "look":
		return s.look(intent.Args)
	case "entities":
		return Result{Handled: true, Message: FormatEntities(s.world.Snapshot())}
	case "recipes":
		return Result{Handled: true, Message: FormatRecipes(s.world.Research())}
	case "events":
		return Result{Handled: true, Message: FormatEvents(s.History(20))}
	case "tick":
		return s.tick(ctx, intent.Quantity)
	case "craft":
		return s.craft(ctx, intent.Args)
	case "assign":
		return s.assign(ctx, intent.Args)
	case "cancel":
		return s.cancel(ctx, intent.Args)
	case "select":
		return s.selectRecipe(ctx, intent.Args)
	case "hold":
		return s.hold(intent.Args)
	case "insert":
		return s.insert(ctx, intent.Args, intent.Quantity)
	case "withdraw":
		return s.withdraw(ctx, intent.Args)
	case "empty":
		return s.empty(ctx, intent.Args)
	case "click":
		return s.click(ctx, intent.Args)
	case "build":
		return s.build(ctx, intent.Args)
	case "remove":
		return s.remove(ctx, intent.Args)
	case "unlock":
		return s.research(intent.Args, true)
	case "lock":
		return s.research(intent.Args, false)
	case "quit":
		return Result{Handled: true, Message: "Bye.", Quit: true}
	default:
		return Result{Handled: false, Message: fmt.Sprintf("Unknown command %q. Try help.", intent.Raw)}
	}
}

// Submit enqueues cmds and applies them at once.
func (s *Shell) Submit(ctx context.Context, cmds ...world.Command) Result {
	for _, cmd := range cmds {
		if err := s.world.Enqueue(cmd); err != nil {
			return Result{Handled: true, Message: err.Error()}
		}
	}
	evs := s.Step(ctx, 0)
	if len(evs) == 0 {
		return Result{Handled: true, Message: "Nothing happened."}
	}
	return Result{Handled: true, Message: FormatEvents(evs)}
}

func (s *Shell) tick(ctx context.Context, q *parser.Quantity) Result {
	steps := 1
	total := s.step
	if d := q.Duration(); d > 0 {
		total = d
		steps = int((d + s.step - 1) / s.step)
	} else if q != nil && q.Unit == "count" && q.N > 0 {
		steps = q.N
		total = time.Duration(q.N) * s.step
	}

	var evs []world.Event
	remaining := total
	for i := 0; i < steps && remaining > 0; i++ {
		dt := min(s.step, remaining)
		evs = append(evs, s.Step(ctx, dt)...)
		remaining -= dt
	}
	msg := fmt.Sprintf("Advanced %s to tick %d.", total, s.world.Tick())
	if len(evs) > 0 {
		msg += "\n" + FormatEvents(evs)
	}
	return Result{Handled: true, Message: msg, Advanced: total}
}

// resolveEntity accepts "#3", "player" or a structure kind; kinds resolve to
// the oldest live entity of that kind.
func (s *Shell) resolveEntity(arg string) (world.EntityID, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "" || arg == "player":
		return s.world.Player()
	case strings.HasPrefix(arg, "#"):
		n, err := strconv.ParseUint(strings.TrimPrefix(arg, "#"), 10, 32)
		if err != nil {
			return world.NoEntity, fmt.Errorf("bad entity reference %q", arg)
		}
		id := world.EntityID(n)
		if _, err := s.world.KindOf(id); err != nil {
			return world.NoEntity, err
		}
		s.lastEntity = id
		return id, nil
	}
	kind, err := world.ParseKind(strings.ReplaceAll(arg, " ", "-"))
	if err != nil {
		return world.NoEntity, err
	}
	for _, id := range s.world.Entities() {
		if k, _ := s.world.KindOf(id); k == kind {
			s.lastEntity = id
			return id, nil
		}
	}
	return world.NoEntity, fmt.Errorf("no %s has been built", kind)
}

func (s *Shell) entityArg(args []string, i int) (world.EntityID, error) {
	if i < len(args) {
		return s.resolveEntity(args[i])
	}
	return s.world.Player()
}

func resolveItem(arg string) (items.ItemType, error) {
	if arg == "nothing" {
		return "", nil
	}
	return items.ParseItemType(arg)
}

// resolveRecipe accepts a recipe name or a product; a product picks the
// first unlocked recipe that makes it.
func (s *Shell) resolveRecipe(arg string) (recipes.RecipeType, error) {
	if r, err := recipes.ParseRecipeType(strings.ReplaceAll(arg, " ", "-")); err == nil {
		return r, nil
	}
	product, err := items.ParseItemType(arg)
	if err != nil {
		return "", fmt.Errorf("unknown recipe: %q", arg)
	}
	for _, r := range recipes.All() {
		if !s.world.Research().Contains(r.Type) {
			continue
		}
		for _, out := range r.Output {
			if out.Type == product {
				return r.Type, nil
			}
		}
	}
	return "", fmt.Errorf("no unlocked recipe makes %s", product)
}

func repeatFlag(arg string, fallback bool) bool {
	switch arg {
	case "repeat", "loop", "forever", "always":
		return true
	case "once", "single":
		return false
	default:
		return fallback
	}
}

func formatClarify(q *parser.ClarifyQuestion) string {
	if len(q.Options) == 0 {
		return q.Prompt
	}
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, parser.IntentToCommandString(o))
	}
	return q.Prompt + " " + strings.Join(opts, " | ")
}
