package notify

import (
	"fmt"
	log "log/slog"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Chimer plays a short mp3 cue when recording starts or stops. The cue
// file is decoded once on first use; a missing or undecodable file
// disables the chime instead of failing the recording flow.
type Chimer struct {
	path string

	once sync.Once
	buf  *beep.Buffer
	err  error
}

func NewChimer(path string) *Chimer {
	return &Chimer{path: path}
}

func (c *Chimer) load() {
	f, err := os.Open(c.path)
	if err != nil {
		c.err = err
		return
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		c.err = fmt.Errorf("decode %s: %w", c.path, err)
		return
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		c.err = fmt.Errorf("init speaker: %w", err)
		return
	}

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	c.buf = buf
}

// Chime plays the cue and waits for it to finish.
func (c *Chimer) Chime() {
	c.once.Do(c.load)
	if c.err != nil {
		log.Debug("Chime disabled", "err", c.err)
		return
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(c.buf.Streamer(0, c.buf.Len()), beep.Callback(func() {
		close(done)
	})))
	<-done
}
