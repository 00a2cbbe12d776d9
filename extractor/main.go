package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"github.com/jmbenlloch/sdsignals_go/pkg/h5"
)

var configuration sdsignals.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		return fmt.Errorf("error reading configuration file: %w", err)
	}
	sdsignals.SetConfiguration(configuration)
	sdsignals.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	file, err := h5.OpenEventFile(configuration.FileIn)
	if err != nil {
		return err
	}

	event, err := openEvent(file)
	if err != nil {
		file.Close()
		return err
	}
	defer event.Close()

	evtsToRead := numberOfEventsToProcess(event.NEvents(), configuration.Skip, configuration.MaxEvents)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d, to process: %d", event.NEvents(), evtsToRead)
		logger.Info(message, "main")
	}

	writer, err := h5.NewWriter(configuration.FileOut, configuration)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	start := time.Now()
	fileReader := NewFileReader(event, configuration, logger)
	written, err := runWorkers(fileReader, event.Geometry(), writer, configuration, logger)
	if cerr := writer.Close(); cerr != nil {
		logger.Error(cerr.Error())
	}
	if err != nil {
		return err
	}

	duration := time.Since(start)
	message := fmt.Sprintf("Events written: %d. Total time: %d ms", written, duration.Milliseconds())
	logger.Info(message, "main")
	return nil
}

// openEvent takes the station positions from the database unless no_db is
// set, in which case the geometry stored in the event file is used.
func openEvent(file *h5.EventFile) (*sdsignals.Event, error) {
	if configuration.NoDB || file.NEvents() == 0 {
		return sdsignals.Open(file)
	}

	dbConn, err := sdsignals.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer dbConn.Close()

	first, err := file.ReadEvent(0)
	if err != nil {
		return nil, fmt.Errorf("error reading first event: %w", err)
	}
	geometry, err := sdsignals.LoadDetectorGeometry(dbConn, first.GPSSecond)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sdsignals.ErrReadGeometry, err)
	}
	return sdsignals.OpenWithGeometry(file, geometry), nil
}
