package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/gbademo/internal/entity"
	"github.com/samdwyer/gbademo/internal/telemetry"
	"github.com/samdwyer/gbademo/internal/ui"
	"github.com/samdwyer/gbademo/internal/world"
)

// Game holds the entire demo state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	bg       *world.Background
	sprite   *entity.Sprite // moved by the player
	other    *entity.Sprite // stands still and animates
	state    State
	window   bool
	frame    int
	running  bool

	// Supplied by the screen; replaced in tests
	playArea func() (int, int)
	beep     func() error
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	renderer := ui.NewRenderer(screen)
	g := newGame(cfg, renderer.PlayArea, screen.Beep)
	g.screen = screen
	g.renderer = renderer
	return g, nil
}

// Start positions in cells: the handheld's pixel positions divided by the
// 8-pixel tile size.
const (
	playerX, playerY = 6, 6
	otherX, otherY   = 18, 6
	otherTag         = "Sprite2"
)

// newGame sets up the background and sprites without touching a terminal.
func newGame(cfg Config, playArea func() (int, int), beep func() error) *Game {
	other := entity.NewSprite(otherX, otherY, otherTag)
	other.Glyphs = []rune{'▖', '▘', '▝', '▗'}
	return &Game{
		cfg:      cfg,
		bg:       world.FromGameData(),
		sprite:   entity.NewSprite(playerX, playerY, cfg.SpriteTag),
		other:    other,
		state:    StatePlaying,
		running:  true,
		playArea: playArea,
		beep:     beep,
	}
}

// Run executes the frame loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("map.width", g.bg.Width),
		attribute.Int("map.height", g.bg.Height),
		attribute.String("sprite.tag", g.sprite.Tag),
		attribute.Int("sprite.frames", g.sprite.Frames),
		attribute.Int("game.fps", g.cfg.FPS),
	)

	// tcell delivers input by blocking poll; forward it so the loop can also tick
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.frameInterval())
	defer ticker.Stop()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-ticker.C:
			g.update()
			g.renderer.Render(g.scene())
		}
	}

	span.SetAttributes(attribute.Int("game.frames", g.frame))
	return nil
}

// frameInterval returns the ticker period for the configured frame rate,
// clamped to 1..MaxFPS.
func (g *Game) frameInterval() time.Duration {
	fps := min(max(g.cfg.FPS, 1), MaxFPS)
	return time.Second / time.Duration(fps)
}

// update advances one frame.
func (g *Game) update() {
	g.frame++
	if g.state != StatePlaying {
		return
	}
	if g.cfg.ScrollEvery > 0 && g.frame%g.cfg.ScrollEvery == 0 {
		g.bg.Scroll(1, 0)
	}
	if g.cfg.AnimateEvery > 0 && g.frame%g.cfg.AnimateEvery == 0 {
		g.sprite.Advance()
		g.other.Advance()
	}
}

// scene collects what the renderer draws this frame.
func (g *Game) scene() ui.Scene {
	return ui.Scene{
		Background: g.bg,
		Sprites:    []*entity.Sprite{g.other, g.sprite},
		Window:     g.window,
		Status: fmt.Sprintf(" %s  %s %d/%d  window:%s  ←↑↓→ move · space sfx · w window · p pause · q quit",
			g.state, g.sprite.Tag, g.sprite.Frame+1, max(g.sprite.Frames, 1), onOff(g.window)),
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
		g.clampSprite()
	}
}

// handleKey processes keyboard input.
func (g *Game) handleKey(ctx context.Context, key tcell.Key, r rune) {
	span := trace.SpanFromContext(ctx)

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.move(0, -1)
	case tcell.KeyDown:
		g.move(0, 1)
	case tcell.KeyLeft:
		g.move(-1, 0)
	case tcell.KeyRight:
		g.move(1, 0)

	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			g.running = false
		case ' ':
			if err := g.beep(); err != nil {
				span.RecordError(err)
			}
			span.AddEvent("sound.effect")
		case 'w', 'W':
			g.window = !g.window
			span.AddEvent("window.toggle", trace.WithAttributes(attribute.Bool("window.enabled", g.window)))
		case 'p', 'P':
			if g.state == StatePlaying {
				g.state = StatePaused
			} else {
				g.state = StatePlaying
			}
		}
	}
}

// move steps the sprite, keeping it inside the play area.
func (g *Game) move(dx, dy int) {
	w, h := g.playArea()
	g.sprite.MoveWithin(dx, dy, w, h)
}

// clampSprite pulls the sprite back on screen after a resize.
func (g *Game) clampSprite() {
	w, h := g.playArea()
	g.sprite.X = max(0, min(g.sprite.X, w-g.sprite.Width))
	g.sprite.Y = max(0, min(g.sprite.Y, h-g.sprite.Height))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
