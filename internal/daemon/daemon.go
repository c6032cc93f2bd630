package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ServerName is the registry name of the dashboard server.
const ServerName = "web"

// HeartbeatState represents the parsed state of a heartbeat file.
type HeartbeatState struct {
	Mode     string // "running" or "stale"
	PID      string
	Port     int
	Interval int
	Age      int
	Status   string // "ok" or "error"
}

// CheckFunc reports the health of the process on each heartbeat.
type CheckFunc func() error

// Daemon marks a long-running nutrilog process (the dashboard server) as
// alive with a PID file and a periodic heartbeat so other invocations can
// find it.
type Daemon struct {
	Name     string
	Port     int
	Interval int // Seconds between heartbeats
	DataRoot string
	CheckFn  CheckFunc
}

func heartbeatPath(dataRoot, name string) string {
	return filepath.Join(dataRoot, "heartbeat", name+".txt")
}

func pidPath(dataRoot, name string) string {
	return filepath.Join(dataRoot, "pids", name+".pid")
}

// WriteHeartbeat writes a heartbeat entry: epoch,interval,pid,port,status
func (d *Daemon) WriteHeartbeat(status string) error {
	path := heartbeatPath(d.DataRoot, d.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	content := fmt.Sprintf("%d,%d,%d,%d,%s\n", time.Now().Unix(), d.Interval, os.Getpid(), d.Port, status)
	return os.WriteFile(path, []byte(content), 0644)
}

// WritePID writes the current process PID to the PID file.
func (d *Daemon) WritePID() error {
	path := pidPath(d.DataRoot, d.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("%d", os.Getpid())), 0644)
}

// Run writes the PID file and heartbeats until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	for _, dir := range []string{"heartbeat", "pids"} {
		if err := os.MkdirAll(filepath.Join(d.DataRoot, dir), 0755); err != nil {
			return fmt.Errorf("create %s dir: %w", dir, err)
		}
	}

	if err := d.WritePID(); err != nil {
		return fmt.Errorf("write PID: %w", err)
	}

	d.beat()

	interval := d.Interval
	if interval <= 0 {
		interval = 30
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.cleanup()
			return nil
		case <-ticker.C:
			d.beat()
		}
	}
}

func (d *Daemon) beat() {
	status := "ok"
	if d.CheckFn != nil {
		if err := d.CheckFn(); err != nil {
			status = "error"
		}
	}
	_ = d.WriteHeartbeat(status)
}

func (d *Daemon) cleanup() {
	os.Remove(pidPath(d.DataRoot, d.Name))
	os.Remove(heartbeatPath(d.DataRoot, d.Name))
}

// ReadHeartbeatState reads and parses the heartbeat file of name.
func ReadHeartbeatState(dataRoot, name string) *HeartbeatState {
	data, err := os.ReadFile(heartbeatPath(dataRoot, name))
	if err != nil {
		return nil
	}

	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ",", 5)
	if len(parts) < 5 {
		return nil
	}

	epoch, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil
	}

	interval, _ := strconv.Atoi(parts[1])
	pid := parts[2]
	port, _ := strconv.Atoi(parts[3])
	status := parts[4]

	age := int(time.Now().Unix() - epoch)

	healthyLimit := interval * 3
	if healthyLimit < 90 {
		healthyLimit = 90
	}

	mode := "stale"
	if interval > 0 && age <= healthyLimit {
		mode = "running"
	}

	return &HeartbeatState{
		Mode:     mode,
		PID:      pid,
		Port:     port,
		Interval: interval,
		Age:      age,
		Status:   status,
	}
}

// IsPIDRunning checks if a process with the given PID is running.
func IsPIDRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil
}

// IsRunning checks whether name is alive via its PID file or heartbeat.
func IsRunning(dataRoot, name string) bool {
	data, err := os.ReadFile(pidPath(dataRoot, name))
	if err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err == nil && IsPIDRunning(pid) {
			return true
		}
	}

	hb := ReadHeartbeatState(dataRoot, name)
	return hb != nil && hb.Mode == "running"
}

// EnsureDataDirs creates all required data directories.
func EnsureDataDirs(dataRoot string) error {
	dirs := []string{
		dataRoot,
		filepath.Join(dataRoot, "pids"),
		filepath.Join(dataRoot, "heartbeat"),
		filepath.Join(dataRoot, "charts"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}
