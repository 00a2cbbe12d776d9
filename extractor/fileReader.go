package main

import (
	"fmt"
	"io"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
)

// FileReader walks the events of a file honouring skip and max_events.
type FileReader struct {
	Event    *sdsignals.Event
	Position int
	EvtCount int
	Config   sdsignals.Configuration
	Logger   sdsignals.Logger
}

func NewFileReader(event *sdsignals.Event, config sdsignals.Configuration, logger sdsignals.Logger) *FileReader {
	return &FileReader{Event: event, Position: config.Skip, EvtCount: 0, Config: config, Logger: logger}
}

// getNextEvent returns io.EOF once the file or max_events is exhausted.
// The returned record is a copy owned by the caller.
func (f *FileReader) getNextEvent() (sdsignals.EventRecord, error) {
	if f.EvtCount >= f.Config.MaxEvents {
		if f.Config.Verbosity > 0 {
			f.Logger.Info("Max events reached", "fileReader")
		}
		return sdsignals.EventRecord{}, io.EOF
	}
	if f.Position >= f.Event.NEvents() {
		return sdsignals.EventRecord{}, io.EOF
	}

	n := f.Position
	f.Position++
	if err := f.Event.ReadEvent(n); err != nil {
		return sdsignals.EventRecord{}, err
	}
	record, err := f.Event.Record()
	if err != nil {
		return sdsignals.EventRecord{}, err
	}
	f.EvtCount++
	if f.Config.Verbosity > 0 {
		message := fmt.Sprintf("Reading event %d with ID %d", n, record.EventID)
		f.Logger.Info(message, "fileReader")
	}
	return *record, nil
}

func numberOfEventsToProcess(fileEvtCount int, skipEvts int, maxEvtCount int) int {
	evtsToRead := fileEvtCount - skipEvts
	if evtsToRead > maxEvtCount {
		evtsToRead = maxEvtCount
	}
	if evtsToRead < 0 {
		evtsToRead = 0
	}
	return evtsToRead
}
