package render

import (
	"golang.org/x/image/font"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/theme"
)

// CommandKind identifies a recorded draw call.
type CommandKind string

const (
	CmdFillRect   CommandKind = "fill"
	CmdStrokeRect CommandKind = "stroke"
	CmdText       CommandKind = "text"
	CmdPushClip   CommandKind = "push-clip"
	CmdPopClip    CommandKind = "pop-clip"
)

// Command is one recorded draw call.
type Command struct {
	Kind   CommandKind `yaml:"kind"`
	Bounds geom.Bounds `yaml:"bounds,omitempty"`
	Color  theme.Color `yaml:"color,omitempty"`
	Width  float32     `yaml:"width,omitempty"`
	Text   string      `yaml:"text,omitempty"`
}

// Recorder is a Surface that keeps every call instead of drawing. Commands
// fully outside the active clip are dropped, which mirrors what a real
// backend would show.
type Recorder struct {
	commands []Command
	clips    []geom.Bounds
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) clipped(b geom.Bounds) bool {
	if len(r.clips) == 0 {
		return false
	}
	return !r.clips[len(r.clips)-1].Intersects(b)
}

func (r *Recorder) FillRect(b geom.Bounds, c theme.Color) {
	if r.clipped(b) {
		return
	}
	r.commands = append(r.commands, Command{Kind: CmdFillRect, Bounds: b, Color: c})
}

func (r *Recorder) StrokeRect(b geom.Bounds, width float32, c theme.Color) {
	if r.clipped(b) {
		return
	}
	r.commands = append(r.commands, Command{Kind: CmdStrokeRect, Bounds: b, Color: c, Width: width})
}

func (r *Recorder) DrawText(text string, at geom.Vec2, face font.Face, c theme.Color) {
	b := geom.Bounds{
		X:      at.X,
		Y:      at.Y,
		Width:  theme.MeasureString(face, text),
		Height: theme.LineHeight(face),
	}
	if r.clipped(b) {
		return
	}
	r.commands = append(r.commands, Command{Kind: CmdText, Bounds: b, Color: c, Text: text})
}

func (r *Recorder) PushClip(b geom.Bounds) {
	if len(r.clips) > 0 {
		b = r.clips[len(r.clips)-1].Intersect(b)
	}
	r.clips = append(r.clips, b)
	r.commands = append(r.commands, Command{Kind: CmdPushClip, Bounds: b})
}

func (r *Recorder) PopClip() {
	if len(r.clips) == 0 {
		return
	}
	r.clips = r.clips[:len(r.clips)-1]
	r.commands = append(r.commands, Command{Kind: CmdPopClip})
}

// Commands returns the recorded calls in order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Texts returns the strings of every recorded text call, in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.commands {
		if c.Kind == CmdText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Reset clears recorded commands and the clip stack.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.clips = r.clips[:0]
}
