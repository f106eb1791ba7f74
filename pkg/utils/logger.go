// Package utils предоставляет простой файловый логгер для CLI утилит.
//
// Логгер пишет в .log файл с timestamp в имени, в директории запуска.
// Thread-safe через sync.Mutex.
package utils

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	logFile     *os.File
	logMutex    sync.Mutex
	initialized bool
)

// InitLogger создает .log файл в текущей директории.
//
// Имя файла: poryadok-YYYY-MM-DD-HH-MM.log.
// Повторный вызов — no-op.
func InitLogger() error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if initialized {
		return nil
	}

	filename := fmt.Sprintf("poryadok-%s.log", time.Now().Format("2006-01-02-15-04"))

	var err error
	logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	initialized = true
	writeLine("INFO", "Logger initialized", "file", filename)
	return nil
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()
	writeLine("INFO", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()
	writeLine("WARN", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()
	writeLine("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение.
func Debug(msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()
	writeLine("DEBUG", msg, keyvals...)
}

// writeLine пишет строку в лог. Вызывающий обязан держать logMutex.
//
// Формат: [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
// До InitLogger (logFile == nil) строки уходят в stderr: предупреждения
// валидации конфига не должны теряться из-за порядка инициализации.
func writeLine(level, msg string, keyvals ...any) {
	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}
	line += "\n"

	if logFile == nil {
		fmt.Fprint(os.Stderr, line)
		return
	}

	if _, err := logFile.WriteString(line); err != nil {
		// Fallback: файл недоступен, пишем в stderr
		fmt.Fprintf(os.Stderr, "%s", line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: WriteString failed: %v]\n", err)
		return
	}
	if err := logFile.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
	}
}

// Close закрывает лог-файл. Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
		initialized = false
	}
}
