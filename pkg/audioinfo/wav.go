package audioinfo

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Duration reports the play time of a WAV file.
func Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dur, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	return dur, nil
}
