// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// This interface supports both CLI and [MCP] server modes, allowing seamless
// switching between human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints an informational message.
	Printf(format string, v ...any)
	// Println prints an informational message with a newline.
	Println(v ...any)
	// Debugf formats and prints a diagnostic message. Implementations
	// drop it unless debug output is enabled.
	Debugf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// Discard is a Logger that drops every message.
var Discard Logger = NewMCPLogger(nil, true)

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct {
	logger  *log.Logger
	verbose atomic.Bool
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// Debug output is off until [CLILogger.SetVerbose] enables it.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Debugf prints a "debug: " prefixed message when verbose output is enabled.
func (c *CLILogger) Debugf(format string, v ...any) {
	if !c.verbose.Load() {
		return
	}
	c.logger.Printf("debug: "+format, v...)
}

// SetVerbose toggles debug output.
func (c *CLILogger) SetVerbose(v bool) { c.verbose.Store(v) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger implements Logger for [MCP] server mode.
// It suppresses output by default since MCP communication happens over stdio,
// but can be configured to write structured logs to a separate destination.
//
// MCPLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type MCPLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
	debug  bool
}

// NewMCPLogger creates a new [MCP] logger.
// By default, it's silent (output suppressed) to avoid interfering with [MCP] stdio protocol.
// Set silent=false and provide a writer to enable structured logging to a file or stderr.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{
		writer: writer,
		silent: silent,
	}
}

// SetDebug toggles emission of "debug" level entries.
func (m *MCPLogger) SetDebug(v bool) {
	m.mu.Lock()
	m.debug = v
	m.mu.Unlock()
}

// entry is one JSON log line.
type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// write encodes a single JSON line into a pooled buffer and flushes it.
func (m *MCPLogger) write(level, msg string) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// json.Encoder appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry{Level: level, Message: msg}); err != nil {
		return
	}

	m.mu.Lock()
	_, _ = buf.WriteTo(m.writer)
	m.mu.Unlock()
}

// Printf formats and logs a structured "info" message in JSON format.
// Output is suppressed if silent mode is enabled.
func (m *MCPLogger) Printf(format string, v ...any) {
	if m.silent {
		return
	}
	m.write("info", fmt.Sprintf(format, v...))
}

// Println logs a structured "info" message in JSON format.
// Output is suppressed if silent mode is enabled.
func (m *MCPLogger) Println(v ...any) {
	if m.silent {
		return
	}
	m.write("info", fmt.Sprint(v...))
}

// Debugf logs a structured "debug" message when debug output is enabled.
func (m *MCPLogger) Debugf(format string, v ...any) {
	if m.silent {
		return
	}
	m.mu.Lock()
	enabled := m.debug
	m.mu.Unlock()
	if !enabled {
		return
	}
	m.write("debug", fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination for the MCP logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		m.writer = io.Discard
	} else {
		m.writer = w
	}
}
