package netcheck

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// Checker answers connectivity queries.
type Checker interface {
	IsAvailable() bool
	Observe(ctx context.Context) <-chan bool
}

const defaultInterval = 2 * time.Second

// Monitor inspects the host network interfaces.
type Monitor struct {
	interval   time.Duration
	logger     *slog.Logger
	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

// NewMonitor builds a Monitor that polls at the given interval when observed.
func NewMonitor(interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Monitor{
		interval:   interval,
		logger:     logger,
		interfaces: net.Interfaces,
		addrs:      func(iface net.Interface) ([]net.Addr, error) { return iface.Addrs() },
	}
}

// IsAvailable reports whether any non-loopback interface is up with a unicast address.
func (m *Monitor) IsAvailable() bool {
	ifaces, err := m.interfaces()
	if err != nil {
		m.logger.Debug("list interfaces failed", "error", err)
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := m.addrs(iface)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if hasUnicast(addr) {
				return true
			}
		}
	}
	return false
}

// Observe emits the current state immediately and then once per transition.
// Each call starts its own watcher; the channel closes when ctx is done.
func (m *Monitor) Observe(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		last := m.IsAvailable()
		if !send(ctx, out, last) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			current := m.IsAvailable()
			if current == last {
				continue
			}
			if current {
				m.logger.Debug("network is available")
			} else {
				m.logger.Debug("network is lost")
			}
			last = current
			if !send(ctx, out, current) {
				return
			}
		}
	}()
	return out
}

func send(ctx context.Context, out chan<- bool, value bool) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- value:
		return true
	}
}

func hasUnicast(addr net.Addr) bool {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	default:
		return false
	}
	return ip != nil && ip.IsGlobalUnicast()
}

// Static is a Checker with a fixed answer.
type Static bool

// IsAvailable returns the fixed answer.
func (s Static) IsAvailable() bool { return bool(s) }

// Observe emits the fixed answer once and closes when ctx is done.
func (s Static) Observe(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)
	out <- bool(s)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out
}
