package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

const (
	defaultPollInterval = 250 * time.Millisecond
	maxLineBytes        = 1024 * 1024
)

// TailOptions selects which part of a log file to return. A negative Offset
// returns the last Limit lines; otherwise reading resumes at Offset.
type TailOptions struct {
	Offset int64
	Limit  int
	Follow bool
	Wait   time.Duration
}

// TailResult holds lines read and the offset to resume from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tailer reads log files through a filesystem abstraction.
type Tailer struct {
	fs    afero.Fs
	clock clockwork.Clock
	poll  time.Duration
}

// NewTailer returns a Tailer. Nil arguments fall back to the OS filesystem
// and the real clock.
func NewTailer(fsys afero.Fs, clock clockwork.Clock) *Tailer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tailer{fs: fsys, clock: clock, poll: defaultPollInterval}
}

// Tail reads path from the OS filesystem.
func Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	return NewTailer(nil, nil).Tail(ctx, path, opts)
}

// Tail returns lines according to opts. With Follow set and nothing new to
// read, it polls until a line arrives, Wait elapses, or ctx is done.
func (t *Tailer) Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	result := TailResult{Offset: opts.Offset}

	info, err := t.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Offset = 0
			return result, nil
		}
		return result, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return result, fmt.Errorf("log path %q is a directory", path)
	}
	if opts.Wait < 0 {
		opts.Wait = 0
	}

	if opts.Offset < 0 {
		lines, offset, err := t.lastLines(path, opts.Limit)
		if err != nil {
			return result, err
		}
		result = TailResult{Lines: lines, Offset: offset}
	} else {
		offset := opts.Offset
		if offset > info.Size() {
			// The file was rotated or truncated underneath the reader.
			offset = 0
		}
		lines, next, err := t.forward(path, offset)
		if err != nil {
			return result, err
		}
		result = TailResult{Lines: lines, Offset: next}
	}

	if opts.Follow && opts.Wait > 0 && len(result.Lines) == 0 {
		return t.waitForLines(ctx, path, result.Offset, opts.Wait)
	}
	return result, nil
}

func (t *Tailer) lastLines(path string, limit int) ([]string, int64, error) {
	file, err := t.fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		size, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, size, nil
	}

	ring := make([]string, limit)
	count, idx := 0, 0
	offset, err := scanLines(file, func(line string) {
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return nil, 0, err
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

func (t *Tailer) forward(path string, offset int64) ([]string, int64, error) {
	file, err := t.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}
	var lines []string
	read, err := scanLines(file, func(line string) { lines = append(lines, line) })
	if err != nil {
		return nil, 0, err
	}
	return lines, offset + read, nil
}

// scanLines feeds every complete line to fn and returns how many bytes those
// lines occupied. A trailing partial line is left for the next read.
func scanLines(r io.Reader, fn func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			consumed += int64(len(line))
			text := line[:len(line)-1]
			if n := len(text); n > 0 && text[n-1] == '\r' {
				text = text[:n-1]
			}
			if len(text) > maxLineBytes {
				text = text[:maxLineBytes]
			}
			fn(text)
			continue
		}
		if errors.Is(err, io.EOF) {
			return consumed, nil
		}
		return consumed, fmt.Errorf("read log file: %w", err)
	}
}

func (t *Tailer) waitForLines(ctx context.Context, path string, offset int64, wait time.Duration) (TailResult, error) {
	deadline := t.clock.Now().Add(wait)
	ticker := t.clock.NewTicker(t.poll)
	defer ticker.Stop()

	result := TailResult{Offset: offset}
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.Chan():
		}

		lines, next, err := t.forward(path, offset)
		if err != nil {
			return result, err
		}
		if len(lines) > 0 {
			return TailResult{Lines: lines, Offset: next}, nil
		}
		if !t.clock.Now().Before(deadline) {
			return result, nil
		}
	}
}
