package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FrameLogger appends raw inbound/outbound wire frames to a file when
// TETRIS_AI_LOG_PATH is set, sampling every Nth frame and rotating to a
// ".1" suffix once TETRIS_AI_LOG_MAX_LINES lines have been written.
type FrameLogger struct {
	mu        sync.Mutex
	path      string
	everyN    int
	maxLines  int
	file      *os.File
	lineCount int
	seen      int
}

type frameLogEntry struct {
	Dir      string `json:"dir"`
	ClientID int    `json:"client_id"`
	Line     string `json:"line"`
}

// NewFrameLogger opens the log file at path, or returns a no-op logger
// if path is empty. everyN <= 0 is treated as 1 (log every frame).
func NewFrameLogger(path string, everyN, maxLines int) (*FrameLogger, error) {
	if path == "" {
		return &FrameLogger{everyN: 1}, nil
	}
	if everyN <= 0 {
		everyN = 1
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open frame log %s: %w", path, err)
	}
	return &FrameLogger{path: path, everyN: everyN, maxLines: maxLines, file: f}, nil
}

// Log records one raw frame if it falls on the sampling boundary and the
// logger is active.
func (fl *FrameLogger) Log(dir string, clientID int, line string) {
	if fl == nil || fl.file == nil {
		return
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()

	fl.seen++
	if fl.seen%fl.everyN != 0 {
		return
	}

	entry, err := json.Marshal(frameLogEntry{Dir: dir, ClientID: clientID, Line: line})
	if err != nil {
		return
	}
	fl.file.Write(entry)
	fl.file.Write([]byte("\n"))
	fl.lineCount++

	if fl.maxLines > 0 && fl.lineCount >= fl.maxLines {
		fl.rotate()
	}
}

func (fl *FrameLogger) rotate() {
	fl.file.Close()
	rotated := fl.path + ".1"
	os.Rename(fl.path, rotated)
	f, err := os.OpenFile(fl.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err == nil {
		fl.file = f
	}
	fl.lineCount = 0
}

// Close flushes and closes the underlying file, if any.
func (fl *FrameLogger) Close() error {
	if fl == nil || fl.file == nil {
		return nil
	}
	return fl.file.Close()
}
