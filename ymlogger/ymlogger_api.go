package ymlogger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

//muLogger is the mutex for the logger writer. Serializes the writes to the output
var muLogger sync.Mutex
var logger io.Writer

//processName is printed with each log message.
var processName = "elevenlabs-bridge"

//logSeverity is the minimum log level. Logs will only be printed if they are above this level.
//Guarded by muLogger.
var logSeverity = DEBUG

var logFileName string

var hostname string

var processID int

var consoleLog = true

// LogError logs all the error level statments
func LogError(requestID string, v ...interface{}) {
	Log(requestID, 2, ERROR, v...)
}

//LogCritical logs all the critical level statements
func LogCritical(requestID string, v ...interface{}) {
	Log(requestID, 2, CRITICAL, v...)
}

//LogInfo logs all the info level statements
func LogInfo(requestID string, v ...interface{}) {
	Log(requestID, 2, INFO, v...)
}

//LogDebug logs all the debug level statements
func LogDebug(requestID string, v ...interface{}) {
	Log(requestID, 2, DEBUG, v...)
}

//LogErrorf logs all the error level statements in given format
func LogErrorf(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, ERROR, format, v...)
}

//LogCriticalf logs all the critical level statements in given format
func LogCriticalf(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, CRITICAL, format, v...)
}

//LogInfof logs all the info level statements in given format
func LogInfof(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, INFO, format, v...)
}

//LogDebugf logs all the debug level statements in given format
func LogDebugf(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, DEBUG, format, v...)
}

// LogInfoWithFields logs an info level statement with structured fields attached
func LogInfoWithFields(requestID string, msg string, fields map[string]interface{}) {
	logWithFields(requestID, 2, INFO, msg, fields)
}

// LogErrorWithFields logs an error level statement with structured fields attached
func LogErrorWithFields(requestID string, msg string, fields map[string]interface{}) {
	logWithFields(requestID, 2, ERROR, msg, fields)
}

//Log logs all statements without formatting
func Log(requestID string, stackLevel int, logLevel LogLevel, v ...interface{}) {
	var msg = ""
	if len(v) > 0 {
		msg = fmt.Sprint(v...)
	}
	logWithFields(requestID, stackLevel+1, logLevel, msg, nil)
}

//Logf logs all statements with formatting
func Logf(requestID string, stackLevel int, logLevel LogLevel, format string, v ...interface{}) {
	logWithFields(requestID, stackLevel+1, logLevel, fmt.Sprintf(format, v...), nil)
}

func logWithFields(requestID string, stackLevel int, logLevel LogLevel, msg string, fields map[string]interface{}) {
	if _, filename, line, ok := runtime.Caller(stackLevel); ok {
		loggerLog(requestID, filename, line, logLevel, msg, fields)
		return
	}
	loggerLog(requestID, "", 0, logLevel, msg, fields)
}

func loggerLog(
	requestID string,
	filename string,
	line int,
	level LogLevel,
	v string,
	fields map[string]interface{},
) {
	if level < severity() {
		return
	}
	entry := LogData{
		BaseLogger: BaseLoggerData{
			RequestID:   requestID,
			LogTime:     time.Now().UTC(),
			Hostname:    hostname,
			ProcessName: processName,
			ProcessID:   processID,
		},
		Level:    level.String(),
		FileName: filepath.Base(filename),
		LineNum:  line,
		Msg:      v,
		Fields:   fields,
	}
	pushJSONByteStream(entry)
}

func pushJSONByteStream(
	entry interface{},
) {
	byteStream, err := json.Marshal(entry)
	if err != nil {
		log.Println("Logger: Unable to marshal the JSON")
		return
	}

	muLogger.Lock()
	defer muLogger.Unlock()
	/* When init doesn't happen before logger gets called */
	if logger == nil {
		initConn()
		if logger == nil {
			log.Println("Logger : Handle couldn't be initialised ")
			return
		}
	}
	n, err := logger.Write(append(byteStream, '\n'))
	if err != nil {
		log.Printf("Got error while logging. Length written. %d Cause: %s", n, err.Error())
	}
}

// InitYMLogger initializes the logger with service specific config
func InitYMLogger(l LoggerConf) error {
	if l.ProcessName != "" {
		processName = l.ProcessName
	}
	logFileName = l.LogFileName
	consoleLog = l.ConsoleLog
	hostname, _ = os.Hostname()
	processID = os.Getpid()
	muLogger.Lock()
	defer muLogger.Unlock()
	logSeverity = logSeverity.FromString(l.LogSeverity)
	return initConn()
}

// SetOutput replaces the writer the log lines go to
func SetOutput(w io.Writer) {
	muLogger.Lock()
	logger = w
	muLogger.Unlock()
}

// SetSeverity sets the minimum level that gets written
func SetSeverity(level LogLevel) {
	muLogger.Lock()
	logSeverity = level
	muLogger.Unlock()
}

func severity() LogLevel {
	muLogger.Lock()
	defer muLogger.Unlock()
	return logSeverity
}

// initConn must be called with muLogger held.
func initConn() (err error) {
	if logFileName == "" {
		if !consoleLog {
			log.Println("Logger: no log file configured, falling back to stdout")
		}
		logger = os.Stdout
		return nil
	}
	logger, err = os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		log.Println("Unable to open the log file", logFileName)
		logger = nil
	}
	return err
}
