package midi

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI guitars. A MIDI driver
// must be registered by the binary (see cmd/tonedrill).
type DeviceManager struct {
	pattern     string
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	logger      *slog.Logger
}

// NewDeviceManager watches for input ports whose name contains pattern
// (case-insensitive). An empty pattern matches every port.
func NewDeviceManager(pattern string, logger *slog.Logger) *DeviceManager {
	return &DeviceManager{
		pattern:     strings.ToLower(pattern),
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		logger:      logger,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// CoreMIDI can hang while listing ports
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		dm.logger.Warn("midi: port scan timed out")
		return
	}

	seenIDs := make(map[string]bool)

	for _, inPort := range inPorts {
		if !MatchesPort(inPort.String(), dm.pattern) {
			continue
		}
		id := inPort.String()
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		g, err := NewGuitarController(id, inPort)
		if err != nil {
			dm.logger.Warn("midi: could not open port", "port", id, "err", err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = g
		dm.mu.Unlock()

		dm.logger.Info("midi: guitar connected", "port", id)
		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: g,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		dm.logger.Info("midi: guitar disconnected", "port", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// MatchesPort reports whether a port name contains pattern, ignoring case.
// Virtual through ports never match.
func MatchesPort(name, pattern string) bool {
	name = strings.ToLower(name)
	if strings.Contains(name, "midi through") || strings.Contains(name, "through port") {
		return false
	}
	return strings.Contains(name, strings.ToLower(pattern))
}
