package framework

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"bundletest/pkg/container"
	"bundletest/pkg/kernel"
	"bundletest/pkg/kerneltest"
	"bundletest/pkg/logging"
)

const (
	// ModuleName is the registered name of FrameworkModule.
	ModuleName = "framework.FrameworkModule"
	// LoggerServiceID is the id of the logger service.
	LoggerServiceID = "logger"
	// LogLevelParameter holds the configured log level name.
	LogLevelParameter = "framework.log_level"
)

func init() {
	kerneltest.MustRegisterModule(ModuleName, func() kernel.Module { return &FrameworkModule{} })
}

const schema = `
#Config: {
	log_level: "debug" | "info" | "warn" | "error" | *"info"
	log_to_file: bool | *true
}
`

type frameworkConfig struct {
	LogLevel  string `json:"log_level"`
	LogToFile bool   `json:"log_to_file"`
}

// FrameworkModule registers the logger service.
type FrameworkModule struct {
	kernel.BaseModule

	mu   sync.Mutex
	file *os.File
}

// Extension returns the "framework" extension.
func (m *FrameworkModule) Extension() container.Extension {
	return &extension{module: m}
}

// Shutdown closes the log file, if the logger was created.
func (m *FrameworkModule) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

func (m *FrameworkModule) openLogFile(dir, environment string) (io.Writer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file != nil {
		return m.file, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, environment+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	m.file = file
	return file, nil
}

type extension struct {
	module *FrameworkModule
}

func (e *extension) Alias() string { return "framework" }

func (e *extension) Load(configs []map[string]any, b *container.Builder) error {
	cfg, err := container.ProcessConfiguration[frameworkConfig](schema, "#Config", configs)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	b.SetParameter(LogLevelParameter, cfg.LogLevel)

	b.Register(LoggerServiceID, func(r container.Resolver) (any, error) {
		if !cfg.LogToFile {
			return logging.NewLogger(level, io.Discard), nil
		}

		dir, _ := r.Parameter("kernel.logs_dir")
		environment, _ := r.Parameter("kernel.environment")
		logsDir, ok := dir.(string)
		if !ok || logsDir == "" {
			return nil, fmt.Errorf("kernel.logs_dir is not set")
		}

		w, err := e.module.openLogFile(logsDir, fmt.Sprint(environment))
		if err != nil {
			return nil, err
		}
		return logging.NewLogger(level, w), nil
	}).AddTag("logger")

	return nil
}
