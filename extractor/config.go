package main

import (
	"encoding/json"
	"fmt"
	"os"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
)

func LoadConfiguration(filename string) (sdsignals.Configuration, error) {
	var config sdsignals.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.NoDB = true
	config.Discard = true
	config.Skip = 0
	config.Host = "localhost"
	config.User = "sdreader"
	config.Passwd = "readonly"
	config.DBName = "SDGeometry"
	config.NumWorkers = 1
	config.WriteData = true
	config.CompressionLevel = 4
	config.LDFSamples = []float64{}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	config.Groups = config.SelectedGroups()
	if config.NumWorkers < 1 {
		return config, fmt.Errorf("num_workers must be positive, got %d", config.NumWorkers)
	}
	return config, nil
}

func printConfiguration(config sdsignals.Configuration, logger sdsignals.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Discard: %t", config.Discard), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Groups: %v", config.Groups), "config")
	logger.Info(fmt.Sprintf("LDF samples: %v", config.LDFSamples), "config")
}
