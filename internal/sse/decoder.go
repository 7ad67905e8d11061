package sse

import (
	"bytes"
	"io"
)

const readChunkSize = 4096

// LineDecoder turns a sequence of raw transport chunks into complete lines.
// Chunk boundaries may fall anywhere, including inside a multi-byte UTF-8
// sequence: the decoder buffers raw bytes and only splits on '\n', so a
// partial rune at the end of a chunk is carried into the next call intact.
type LineDecoder struct {
	pending []byte
}

// Write appends chunk to the pending buffer and returns every complete line
// it now holds, in order. The trailing fragment after the last newline (which
// may be empty) is retained for the next call. A trailing '\r' is stripped
// from each returned line.
func (d *LineDecoder) Write(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}
	d.pending = append(d.pending, chunk...)

	var lines []string
	for {
		i := bytes.IndexByte(d.pending, '\n')
		if i < 0 {
			break
		}
		line := d.pending[:i]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		lines = append(lines, string(line))
		d.pending = d.pending[i+1:]
	}
	return lines
}

// Pending reports whether an unterminated fragment is buffered.
func (d *LineDecoder) Pending() bool {
	return len(d.pending) > 0
}

// Reset discards any buffered fragment. Called at end of stream: a line not
// terminated by a newline at EOF is incomplete and is dropped, not surfaced.
func (d *LineDecoder) Reset() {
	d.pending = nil
}

// Stream reads r to EOF, decoding chunks into lines and parsing each line as
// a protocol event. Step payloads are passed to onStep synchronously and in
// order. The last result payload wins; ok reports whether any result event
// arrived before the transport ended.
func Stream(r io.Reader, onStep func(string)) (final string, ok bool, err error) {
	var dec LineDecoder
	buf := make([]byte, readChunkSize)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			for _, line := range dec.Write(buf[:n]) {
				ev, valid := ParseEvent(line)
				if !valid {
					continue
				}
				switch ev.Type {
				case TypeStep:
					if onStep != nil {
						onStep(ev.Data)
					}
				case TypeResult:
					final = ev.Data
					ok = true
				}
			}
		}
		if readErr == io.EOF {
			dec.Reset()
			return final, ok, nil
		}
		if readErr != nil {
			return final, ok, readErr
		}
	}
}
