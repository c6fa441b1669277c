package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Prefixes(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *ConsoleLogger)
		want string
	}{
		{"verbose", func(l *ConsoleLogger) { l.Verbose("parsed %d schemas", 3) }, "[VERBOSE] parsed 3 schemas\n"},
		{"info", func(l *ConsoleLogger) { l.Info("wrote %s", "schema.sql") }, "wrote schema.sql\n"},
		{"warn", func(l *ConsoleLogger) { l.Warn("%d warnings", 2) }, "[WARN] 2 warnings\n"},
		{"error", func(l *ConsoleLogger) { l.Error("failed: %v", "boom") }, "[ERROR] failed: boom\n"},
		{"no args keeps percent", func(l *ConsoleLogger) { l.Info("100%") }, "100%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWriterLogger(&buf, true))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, false)
	logger.Verbose("test message: %s", "value")
	assert.Empty(t, buf.String())
}

func TestConsoleLogger_DefaultsToStderr(t *testing.T) {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	logger := NewConsoleLogger(false)
	logger.Info("info message: %s", "value")

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	assert.Equal(t, "info message: value\n", buf.String())
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 100)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "message ") || strings.HasPrefix(line, "[VERBOSE] verbose "), "interleaved line %q", line)
	}
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Warn("warn %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()
}

// BenchmarkConsoleLogger_VerboseDisabled measures performance when verbose is disabled
func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewWriterLogger(io.Discard, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

// Example demonstrates NullLogger usage
func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	logger.Warn("This too")
	fmt.Println("Done")
	// Output:
	// Done
}
