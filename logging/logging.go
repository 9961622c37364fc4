package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

var (
	fileLogger *log.Logger
	logFile    *os.File
	mu         sync.Mutex
	isSetup    bool
)

// SetupLogger opens the log file for this run. An existing file is
// truncated so every run starts with a clean log.
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fileLogger = log.New(logFile, "", log.LstdFlags)
	fileLogger.Printf("--- ImageDiffer Log Started at %s ---\n", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger closes the log file
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		fileLogger.Printf("--- ImageDiffer Log Closed at %s ---\n", time.Now().Format(time.RFC3339))
		logFile.Close()
		logFile = nil
	}
	fileLogger = nil
	isSetup = false
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if fileLogger != nil {
		fileLogger.Printf("INFO: "+format, args...)
	}
}

// DebugLog logs a message without a level prefix
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if fileLogger != nil {
		fileLogger.Printf(format, args...)
	}
}

// LogError logs an error message. Errors are never dropped: without a
// log file they go to the standard logger.
func LogError(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if fileLogger != nil {
		fileLogger.Printf("ERROR: "+format, args...)
	} else {
		log.Printf("ERROR: "+format, args...)
	}
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if fileLogger != nil {
		fileLogger.Printf("WARNING: "+format, args...)
	}
}

// LogRowFailure logs a row that was dropped from the output
func LogRowFailure(line int, err error) {
	LogError("Line number %d: %v", line, err)
}
