package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"github.com/jmbenlloch/sdsignals_go/pkg/h5"
)

type EventWriter interface {
	WriteEvent(event *h5.ExtractedEvent) error
}

func extractEvent(record *sdsignals.EventRecord, geometry sdsignals.DetectorGeometry,
	config sdsignals.Configuration) (h5.ExtractedEvent, error) {
	extracted := h5.ExtractedEvent{
		EventID:   record.EventID,
		GPSSecond: record.GPSSecond,
		Tables:    make(map[sdsignals.SignalGroup]sdsignals.SignalTable),
	}
	for _, group := range config.SelectedGroups() {
		table, err := sdsignals.Classify(group, record, geometry)
		if err != nil {
			return h5.ExtractedEvent{EventID: record.EventID, Error: true},
				fmt.Errorf("event %d, group %s: %w", record.EventID, group, err)
		}
		extracted.Tables[group] = table
	}
	if len(config.LDFSamples) > 0 {
		extracted.LDF = record.LDF.Curve(config.LDFSamples)
	}
	return extracted, nil
}

func worker(id int, jobs <-chan sdsignals.EventRecord, results chan<- h5.ExtractedEvent,
	geometry sdsignals.DetectorGeometry, config sdsignals.Configuration, logger sdsignals.Logger) {
	for record := range jobs {
		results <- processRecord(id, &record, geometry, config, logger)
	}
}

func processRecord(id int, record *sdsignals.EventRecord, geometry sdsignals.DetectorGeometry,
	config sdsignals.Configuration, logger sdsignals.Logger) (extracted h5.ExtractedEvent) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("worker %d recovered from panic on event %d: %v", id, record.EventID, r)
			logger.Error(errMessage.Error())
			extracted = h5.ExtractedEvent{EventID: record.EventID, Error: true}
		}
	}()

	if config.Verbosity > 1 {
		message := fmt.Sprintf("Worker %d processing event %d", id, record.EventID)
		logger.Info(message, "worker")
	}
	extracted, err := extractEvent(record, geometry, config)
	if err != nil {
		logger.Error(err.Error())
	}
	return extracted
}

// sendEventsToWorkers stops at the first read error unless discard is set,
// in which case the failing event is skipped.
func sendEventsToWorkers(fileReader *FileReader, jobs chan<- sdsignals.EventRecord, logger sdsignals.Logger) error {
	defer close(jobs)
	for {
		record, err := fileReader.getNextEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			message := fmt.Errorf("error reading event: %w", err)
			logger.Error(message.Error())
			if fileReader.Config.Discard {
				continue
			}
			return message
		}
		jobs <- record
	}
}

func runWorkers(fileReader *FileReader, geometry sdsignals.DetectorGeometry,
	writer EventWriter, config sdsignals.Configuration, logger sdsignals.Logger) (int, error) {
	jobs := make(chan sdsignals.EventRecord, config.NumWorkers)
	results := make(chan h5.ExtractedEvent, 100)

	var wg sync.WaitGroup
	for w := 1; w <= config.NumWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, jobs, results, geometry, config, logger)
		}(w)
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- sendEventsToWorkers(fileReader, jobs, logger)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	written, err := processWorkerResults(results, writer, config, logger)
	if rerr := <-readErr; rerr != nil {
		err = errors.Join(rerr, err)
	}
	return written, err
}

// processWorkerResults drains results even after a write failure so the
// workers can finish.
func processWorkerResults(results <-chan h5.ExtractedEvent, writer EventWriter,
	config sdsignals.Configuration, logger sdsignals.Logger) (int, error) {
	evtsWritten := 0
	var writeErr error
	for event := range results {
		if event.Error {
			message := fmt.Sprintf("discarding event %d", event.EventID)
			logger.Error(message)
			continue
		}
		if !config.WriteData || writeErr != nil {
			continue
		}
		if err := writer.WriteEvent(&event); err != nil {
			writeErr = fmt.Errorf("error writing event %d: %w", event.EventID, err)
			logger.Error(writeErr.Error())
			continue
		}
		evtsWritten++
		if config.Verbosity > 1 {
			message := fmt.Sprintf("Written event %d", event.EventID)
			logger.Info(message, "writer")
		}
	}
	return evtsWritten, writeErr
}
