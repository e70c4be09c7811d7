package listener

import (
	"bytes"
	"io"
)

// lineEndings adapts a raw transport to the \n-only convention the
// session code uses. Telnet clients send \r\n and SSH clients without
// a PTY may send bare \r; outgoing text gets \r\n so both render
// correctly.
type lineEndings struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{rw: rw}
}

func (le *lineEndings) Read(p []byte) (int, error) {
	n, err := le.rw.Read(p)
	if n == 0 {
		return n, err
	}

	// Rewrite in place: every \r becomes \n, and a \r\n pair collapses
	// to a single \n.
	out := 0
	for i := 0; i < n; i++ {
		b := p[i]
		if b == '\r' {
			if i+1 < n && p[i+1] == '\n' {
				i++
			}
			b = '\n'
		}
		p[out] = b
		out++
	}
	return out, err
}

func (le *lineEndings) Write(p []byte) (int, error) {
	if !bytes.ContainsRune(p, '\n') {
		return le.rw.Write(p)
	}

	expanded := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := le.rw.Write(expanded); err != nil {
		return 0, err
	}
	// Report the caller's length, not the expanded one.
	return len(p), nil
}
