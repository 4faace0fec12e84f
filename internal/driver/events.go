package driver

import "time"

// Stage is the step of the per-file pipeline an Event reports on.
type Stage string

const (
	// StageLoad reads the file from disk.
	StageLoad Stage = "load"
	// StageParse builds the tree and its snapshot.
	StageParse Stage = "parse"
	// StageTransform applies the recipe.
	StageTransform Stage = "transform"
	// StagePrint reprints the tree.
	StagePrint Stage = "print"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage has started.
	StatusWorking Status = "working"
	// StatusCached indicates the result came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file is finished.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Run calls it from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
