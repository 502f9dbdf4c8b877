//go:build windows

package winsvc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/go-tangra/go-tangra-sysinfo/internal/logger"
)

const eventID = 1

// eventLogWriter writes zerolog entries to the Windows Event Log, mapping
// the entry level onto the event type.
type eventLogWriter struct {
	elog *eventlog.Log
}

func (w *eventLogWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.InfoLevel, p)
}

func (w *eventLogWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	msg := string(p)
	var err error
	switch level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		err = w.elog.Error(eventID, msg)
	case zerolog.WarnLevel:
		err = w.elog.Warning(eventID, msg)
	default:
		err = w.elog.Info(eventID, msg)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetupEventLog opens the named event log source and redirects the global
// logger to it at level. When the source cannot be opened the logger is
// left unchanged.
func SetupEventLog(name string, level zerolog.Level) {
	elog, err := eventlog.Open(name)
	if err != nil {
		return
	}
	logger.SetOutput(&eventLogWriter{elog: elog}, level)
}

// IsWindowsService reports whether the SCM started this process.
func IsWindowsService() bool {
	ok, err := svc.IsWindowsService()
	return err == nil && ok
}

const (
	// stopGrace bounds how long a stop request waits for the agent to
	// finish its current snapshot.
	stopGrace = 30 * time.Second

	// recoveryReset is the failure counter reset period, in seconds.
	recoveryReset = 24 * 60 * 60

	accepted = svc.AcceptStop | svc.AcceptShutdown
)

// ErrAlreadyInstalled is returned by Install when the service exists.
var ErrAlreadyInstalled = errors.New("service already installed")

// agentService adapts a blocking run function to svc.Handler.
type agentService struct {
	name string
	run  func(ctx context.Context) error
	log  zerolog.Logger
}

func (a *agentService) Execute(_ []string, req <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	status <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	status <- svc.Status{State: svc.Running, Accepts: accepted}
	a.log.Info().Str("service", a.name).Msg("Service running")

	for {
		select {
		case err := <-done:
			status <- svc.Status{State: svc.StopPending}
			if err != nil {
				a.log.Error().Err(err).Str("service", a.name).Msg("Service stopped with error")
				return false, 1
			}
			return false, 0

		case cr := <-req:
			switch cr.Cmd {
			case svc.Interrogate:
				status <- cr.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				cancel()
				a.awaitStop(done)
				return false, 0
			}
		}
	}
}

func (a *agentService) awaitStop(done <-chan error) {
	timer := time.NewTimer(stopGrace)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			a.log.Warn().Err(err).Str("service", a.name).Msg("Service stopped with error")
		}
	case <-timer.C:
		a.log.Warn().Str("service", a.name).Dur("grace", stopGrace).Msg("Timed out waiting for graceful shutdown")
	}
}

// RunService hands the process to the SCM and blocks until the service
// stops. run's context is cancelled on a stop or shutdown request.
func RunService(name string, run func(ctx context.Context) error) error {
	return svc.Run(name, &agentService{
		name: name,
		run:  run,
		log:  logger.WithComponent("winsvc"),
	})
}

// Install registers an auto-start service that restarts on failure, plus
// an event log source of the same name.
func Install(name, displayName, description, exePath string, args []string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	if existing, err := m.OpenService(name); err == nil {
		existing.Close()
		return fmt.Errorf("%s: %w", name, ErrAlreadyInstalled)
	}

	s, err := m.CreateService(name, exePath, mgr.Config{
		DisplayName: displayName,
		Description: description,
		StartType:   mgr.StartAutomatic,
	}, args...)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	defer s.Close()

	log := logger.WithComponent("winsvc")
	if err := s.SetRecoveryActions([]mgr.RecoveryAction{
		{Type: mgr.ServiceRestart, Delay: 10 * time.Second},
		{Type: mgr.ServiceRestart, Delay: 30 * time.Second},
		{Type: mgr.NoAction},
	}, recoveryReset); err != nil {
		log.Warn().Err(err).Str("service", name).Msg("Could not set recovery actions")
	}

	if err := eventlog.InstallAsEventCreate(name, eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		log.Warn().Err(err).Str("service", name).Msg("Could not install event log source")
	}

	return nil
}

// Uninstall stops the service if it is running, then removes it and its
// event log source.
func Uninstall(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	stopAndWait(s, 5*time.Second)

	if err := s.Delete(); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	_ = eventlog.Remove(name)

	return nil
}

// stopAndWait requests a stop and polls until the service reports stopped
// or wait elapses.
func stopAndWait(s *mgr.Service, wait time.Duration) {
	st, err := s.Query()
	if err != nil || st.State == svc.Stopped {
		return
	}
	_, _ = s.Control(svc.Stop)

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		time.Sleep(500 * time.Millisecond)
		if st, err = s.Query(); err != nil || st.State == svc.Stopped {
			return
		}
	}
}

// ExePath returns the absolute path of the running executable.
func ExePath() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("executable path: %w", err)
	}
	return p, nil
}
