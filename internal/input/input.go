// Package input turns a raw terminal byte stream into game intents.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
)

const (
	keyEsc   = '\x1b'
	keyCtrlC = '\x03'
)

// Stream delivers input bytes via a channel. Bytes of an escape sequence
// split across reads are carried over to the next ReadInput call.
type Stream struct {
	ch           chan byte
	pending      []byte
	pendingSince time.Time
	closed       bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader hit EOF or an error.
func (s *Stream) Closed() bool { return s.closed }

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the intents they encode, in arrival order. An unfinished escape
// sequence is held back until it completes or config.EscapeTimeout passes,
// after which it counts as a lone ESC.
func ReadInput(s *Stream) []game.Intent {
	buf := s.pending
	carried := len(buf) > 0
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	intents, rest := Parse(buf)
	if len(rest) == 0 {
		return intents
	}

	if !s.closed {
		// A carried sequence is always at the start of buf
		if !carried || len(rest) != len(buf) {
			s.pendingSince = time.Now()
		}
		if time.Since(s.pendingSince) < config.EscapeTimeout {
			s.pending = append(s.pending, rest...)
			return intents
		}
	}
	s.pendingSince = time.Time{}
	return append(intents, flush(rest)...)
}

// Parse decodes buf into intents. An unfinished escape sequence at the end
// of buf (a trailing ESC, or a CSI or SS3 sequence missing its final byte)
// is returned as rest so the caller can retry once more bytes arrive.
// ESC followed by anything that does not start a sequence is Cancel.
func Parse(buf []byte) (intents []game.Intent, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != keyEsc {
			if in := byteIntent(b); in != game.IntentNone {
				intents = append(intents, in)
			}
			continue
		}

		if i+1 >= len(buf) {
			return intents, buf[i:]
		}

		switch buf[i+1] {
		case '[':
			// CSI: ESC [ <parameters 0x30-0x3F> <intermediates 0x20-0x2F> <final>
			j := i + 2
			for j < len(buf) && buf[j] >= 0x20 && buf[j] <= 0x3F {
				j++
			}
			if j >= len(buf) {
				return intents, buf[i:]
			}
			if buf[j] < 0x40 || buf[j] > 0x7E {
				// Not a final byte; the sequence was abandoned
				intents = append(intents, game.IntentCancel)
				i = j - 1
				continue
			}
			if in, ok := arrowIntent(buf[j]); ok {
				intents = append(intents, in)
			}
			i = j
		case 'O':
			// SS3: ESC O <final>, sent by terminals in application cursor mode
			if i+2 >= len(buf) {
				return intents, buf[i:]
			}
			if in, ok := arrowIntent(buf[i+2]); ok {
				intents = append(intents, in)
			}
			i += 2
		default:
			intents = append(intents, game.IntentCancel)
		}
	}
	return intents, nil
}

// flush resolves a sequence that will not complete: the ESC is Cancel and
// the bytes after it are ordinary keys.
func flush(rest []byte) []game.Intent {
	intents := []game.Intent{game.IntentCancel}
	for _, b := range rest[1:] {
		if in := byteIntent(b); in != game.IntentNone {
			intents = append(intents, in)
		}
	}
	return intents
}

// arrowIntent maps the final byte of an arrow key sequence.
func arrowIntent(code byte) (game.Intent, bool) {
	switch code {
	case 'A': // Up arrow
		return game.IntentTurnUp, true
	case 'B': // Down arrow
		return game.IntentTurnDown, true
	case 'C': // Right arrow
		return game.IntentTurnRight, true
	case 'D': // Left arrow
		return game.IntentTurnLeft, true
	}
	return game.IntentNone, false
}

// byteIntent maps a single key press.
func byteIntent(b byte) game.Intent {
	switch b {
	case 'w', 'W', 'i', 'I':
		return game.IntentTurnUp
	case 's', 'S', 'k', 'K':
		return game.IntentTurnDown
	case 'a', 'A', 'j', 'J':
		return game.IntentTurnLeft
	case 'd', 'D', 'l', 'L':
		return game.IntentTurnRight
	case ' ', 'p', 'P':
		return game.IntentPause
	case '\n', '\r':
		return game.IntentConfirm
	case keyEsc:
		return game.IntentCancel
	case 'r', 'R':
		return game.IntentRestart
	case 'm', 'M':
		return game.IntentToggleMode
	case 'n', 'N':
		return game.IntentToggleSound
	case 'q', 'Q', keyCtrlC:
		return game.IntentExit
	}
	return game.IntentNone
}
