package headless

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"
)

// Event is one line of a headless run's JSONL output stream.
type Event struct {
	Timestamp float64 `json:"timestamp"`
	Type      string  `json:"type"`
	Content   string  `json:"content"`
}

// maxLineBytes bounds a single wrapped output line. Agents occasionally
// dump minified JSON blobs far beyond bufio's default token size.
const maxLineBytes = 1 << 20

// WrapOutput reads raw lines from r and writes them to w as JSONL events,
// flushing per line so readers can tail the stream live. When raw is
// non-nil every input line is mirrored there unmodified.
func WrapOutput(r io.Reader, w io.Writer, raw io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	enc := json.NewEncoder(w)
	for scanner.Scan() {
		line := scanner.Text()
		if raw != nil {
			if _, err := io.WriteString(raw, line+"\n"); err != nil {
				return err
			}
		}
		ev := Event{
			Timestamp: float64(time.Now().UnixNano()) / 1e9,
			Type:      "output",
			Content:   line,
		}
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// lastLineWindow is how far back LastRawLine looks in the output file.
const lastLineWindow = 4096

// LastRawLine returns the last non-empty line within the final few KB of
// the file at path, or "" when there is none. Errors degrade to "": the
// last line is a convenience, not a guarantee.
func LastRawLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return ""
	}

	offset := info.Size() - lastLineWindow
	if offset < 0 {
		offset = 0
	}
	buf := make([]byte, info.Size()-offset)
	if _, err := f.ReadAt(buf, offset); err != nil && err != io.EOF {
		return ""
	}

	lines := strings.Split(string(buf), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
