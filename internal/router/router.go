package router

import (
	"context"
	"errors"
	log "log/slog"

	"tunebox/internal/nlu"
	"tunebox/internal/session"
	"tunebox/internal/state"
)

// Status strings published on state transitions. The empty string clears
// the dashboard field.
const (
	StatusRecording  = "recording"
	StatusProcessing = "Processing Request"
	statusClear      = ""
)

func statusError(err error) string { return "error:" + err.Error() }

var errNoRecording = errors.New("no recording found")

// Session is the recording session manager.
type Session interface {
	Begin() error
	End() (string, error)
	Active() bool
	Last() string
}

// Transcriber turns a recorded file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Player plays a recorded file and blocks until done.
type Player interface {
	Play(ctx context.Context, path string) error
}

// Publisher is the outbound half of the bus gateway.
type Publisher interface {
	PublishStatus(ctx context.Context, status string)
	PublishSearch(ctx context.Context, query string) error
	ClearSearch(ctx context.Context)
}

// NopPublisher is used when the daemon runs without a broker.
type NopPublisher struct{}

func (NopPublisher) PublishStatus(context.Context, string) {}

func (NopPublisher) PublishSearch(context.Context, string) error { return nil }

func (NopPublisher) ClearSearch(context.Context) {}

// Notifier gives audible feedback on record start and stop.
type Notifier interface {
	Chime()
}

// Router merges console keystrokes and bus-delivered events into one
// state machine. Every transition runs on the single Run goroutine, which
// is what serializes the two trigger sources against each other; the
// producers only ever touch the command channel.
type Router struct {
	st   *state.State
	sess Session
	stt  Transcriber
	play Player
	pub  Publisher
	not  Notifier

	cmds chan Command
}

func New(st *state.State, sess Session, stt Transcriber, play Player) *Router {
	return &Router{
		st:   st,
		sess: sess,
		stt:  stt,
		play: play,
		pub:  NopPublisher{},
		cmds: make(chan Command, 16),
	}
}

// SetPublisher wires the bus gateway in. Call before Run.
func (r *Router) SetPublisher(pub Publisher) {
	r.pub = pub
}

// SetNotifier wires the record chime in. Call before Run.
func (r *Router) SetNotifier(n Notifier) {
	r.not = n
}

// Enqueue hands a command to the router loop without blocking the caller.
// A full queue drops the command; with a human on one end and a button on
// the other, sixteen queued commands already mean something is wedged.
func (r *Router) Enqueue(cmd Command) {
	select {
	case r.cmds <- cmd:
	default:
		log.Warn("Command queue full, dropping", "cmd", cmd.Kind)
	}
}

// Run consumes commands until ctx is done or a Quit arrives.
func (r *Router) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-r.cmds:
			log.Debug("Dispatch", "cmd", cmd.Kind)
			if quit := r.dispatch(ctx, cmd); quit {
				return
			}
		}
	}
}

func (r *Router) dispatch(ctx context.Context, cmd Command) (quit bool) {
	switch cmd.Kind {
	case KindButtonPress:
		// Disambiguated here, at dispatch time, not by the sender.
		if r.sess.Active() {
			r.stop(ctx, cmd.Source)
		} else {
			r.record(ctx)
		}
	case KindRecord:
		r.record(ctx)
	case KindStopRecord:
		r.stop(ctx, cmd.Source)
	case KindTranscribe:
		r.transcribe(ctx)
	case KindPlay:
		r.playback(ctx)
	case KindToggleVolume:
		on := r.st.ToggleMonitoring()
		log.Info("Volume monitoring toggled", "enabled", on)
	case KindQuit:
		return true
	}
	return false
}

func (r *Router) record(ctx context.Context) {
	if err := r.sess.Begin(); err != nil {
		if errors.Is(err, session.ErrAlreadyRecording) {
			log.Info("Recording already in progress")
			return
		}
		log.Error("Failed to start recording", "err", err)
		r.pub.PublishStatus(ctx, statusError(err))
		return
	}

	log.Info("Recording... speak now", "hint", "say: play <song> by <artist>")
	r.chime()
	r.pub.PublishStatus(ctx, StatusRecording)
	r.pub.ClearSearch(ctx)
}

func (r *Router) stop(ctx context.Context, src Source) {
	path, err := r.sess.End()
	if err != nil {
		if errors.Is(err, session.ErrNotRecording) {
			log.Info("No active recording to stop")
			return
		}
		// Session is forced back to Idle; the file may still be usable.
		log.Error("Capture did not stop cleanly", "err", err)
		r.pub.PublishStatus(ctx, statusError(err))
	}

	r.chime()
	log.Info("Recording stopped", "file", path)

	if src == SourceBus {
		r.Enqueue(Command{Kind: KindTranscribe, Source: src})
	}
}

func (r *Router) transcribe(ctx context.Context) {
	last := r.sess.Last()
	if last == "" {
		log.Info("No recording found, record audio first")
		r.pub.PublishStatus(ctx, statusError(errNoRecording))
		return
	}

	// Processing phase. Transcription is the one slow operation in the
	// daemon; it runs here on the loop goroutine without holding the
	// state lock, so the sensor loop keeps its flag reads cheap.
	r.pub.PublishStatus(ctx, StatusProcessing)
	log.Info("Transcribing audio...", "file", last)

	text, err := r.stt.Transcribe(ctx, last)
	if err != nil {
		log.Error("Transcription failed", "err", err)
		r.pub.PublishStatus(ctx, statusError(err))
		return
	}
	r.st.SetTranscript(text)

	query := nlu.ParseVoiceCommand(text)
	log.Info("Transcribed", "text", text, "query", query)

	if err := r.pub.PublishSearch(ctx, query); err != nil {
		log.Error("Failed to publish search query", "query", query, "err", err)
		r.pub.PublishStatus(ctx, statusError(err))
		return
	}

	r.pub.PublishStatus(ctx, statusClear)
	log.Info("Search query dispatched", "query", query)
}

func (r *Router) playback(ctx context.Context) {
	last := r.sess.Last()
	if last == "" {
		log.Info("No recording found, record audio first")
		return
	}

	log.Info("Playing back...", "file", last)
	if err := r.play.Play(ctx, last); err != nil {
		log.Error("Playback failed", "file", last, "err", err)
		return
	}
	log.Info("Playback done")
}

func (r *Router) chime() {
	if r.not != nil {
		r.not.Chime()
	}
}
