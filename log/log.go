package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    = log.New(io.Discard, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(io.Discard, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog   = log.New(io.Discard, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
)

var logFileName = filepath.Join(os.TempDir(), "json-modal.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// Until then every logger discards its output.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	InfoLog.SetOutput(f)
	WarningLog.SetOutput(f)
	ErrorLog.SetOutput(f)

	globalLogFile = f
}

// Close flushes the log file. Call it once before the program exits.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}
