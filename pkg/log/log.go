// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/copydir/pkg/copydir"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent entry lines
	pathWidth   = 50 // Base width for the destination path
)

// 📦 Job describes one copy being reported
type Job struct {
	Name        string // Job name from the config
	Source      string // Source root
	Destination string // Destination root
}

// 🎯 Logger renders copy progress on a console and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

var _ copydir.Recorder = (*Logger)(nil)

// 🏭 New creates a new logger writing to console and mirroring to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func kindStyle(kind copydir.EntryKind) (rune, color.Attribute) {
	switch kind {
	case copydir.KindDirectory:
		return '+', color.FgBlue
	case copydir.KindSymbolicLink:
		return '↪', color.FgCyan
	default:
		return '✓', color.FgGreen
	}
}

// 📝 formatCreation formats one created entry for display
func (l *Logger) formatCreation(kind copydir.EntryKind, path string) string {
	symbol, symbolColor := kindStyle(kind)
	return fmt.Sprintf("%s%s %s%s %s",
		fmt.Sprintf("%*s", entryIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		copydir.CreationPrefix,
		fmt.Sprintf("%-*s", pathWidth, path),
		color.New(color.Faint).Sprint(kind.String()))
}

// 📝 RecordCreation prints a created directory, file or link
func (l *Logger) RecordCreation(ctx context.Context, kind copydir.EntryKind, path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatCreation(kind, path))

	l.zlog.Info().
		Stringer("kind", kind).
		Str("path", path).
		Msg(copydir.CreationPrefix + path)
}

// 📒 JobRecorder prints the creations of one job and counts them. Jobs
// running side by side each get their own.
type JobRecorder struct {
	logger *Logger
	job    Job
	mu     sync.Mutex
	counts map[copydir.EntryKind]int
}

var _ copydir.Recorder = (*JobRecorder)(nil)

// 📝 StartJob prints the header of a job and returns its recorder
func (l *Logger) StartJob(ctx context.Context, job Job) *JobRecorder {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "[copying %s]\n", color.New(color.FgCyan).Sprint(job.Destination))
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(job.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(job.Source))

	l.zlog.Info().
		Str("job", job.Name).
		Str("source", job.Source).
		Str("destination", job.Destination).
		Msg("starting copy")

	return &JobRecorder{logger: l, job: job, counts: map[copydir.EntryKind]int{}}
}

// 📝 RecordCreation prints the entry through the logger
func (j *JobRecorder) RecordCreation(ctx context.Context, kind copydir.EntryKind, path string) {
	j.logger.RecordCreation(ctx, kind, path)
}

// 🧮 Count adds the entry to the job's summary
func (j *JobRecorder) Count(ctx context.Context, kind copydir.EntryKind, path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.counts[kind]++
}

// 📊 Counts returns how many entries of each kind were counted
func (j *JobRecorder) Counts() map[copydir.EntryKind]int {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make(map[copydir.EntryKind]int, len(j.counts))
	for k, v := range j.counts {
		out[k] = v
	}
	return out
}

// 📝 End logs the summary of the job
func (j *JobRecorder) End(ctx context.Context, err error) {
	counts := j.Counts()

	j.logger.mu.Lock()
	defer j.logger.mu.Unlock()

	ev := j.logger.zlog.Info()
	if err != nil {
		ev = j.logger.zlog.Error().Err(err)
	}
	ev.Str("job", j.job.Name).
		Int("directories", counts[copydir.KindDirectory]).
		Int("files", counts[copydir.KindFile]).
		Int("links", counts[copydir.KindSymbolicLink]).
		Msg("copy complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("copydir")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
