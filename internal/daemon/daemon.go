package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/masjid-clock/internal/config"
	"github.com/username/masjid-clock/internal/hijridate"
	"github.com/username/masjid-clock/internal/player"
	"github.com/username/masjid-clock/internal/schedule"
	"github.com/username/masjid-clock/internal/timetable"
	"github.com/username/masjid-clock/pkg/dateutil"
	"go.uber.org/zap"
)

// Daemon owns the poll loop: once per tick it checks for a date change,
// evaluates the signal trigger, and recomputes the next event. All core
// state (latches, cached day views) lives here, guarded by one mutex so
// an operator reload never interleaves with a tick.
type Daemon struct {
	store      *timetable.Store
	cfg        *config.Config
	player     player.Player
	logger     *zap.Logger
	systemTray bool
	trayApp    *TrayApp
	ctx        context.Context
	cancel     context.CancelFunc

	mu          sync.Mutex
	latches     schedule.Latches
	currentDate time.Time
	today       timetable.Day
	tomorrow    timetable.Day
	lastNext    string // last announced next-event identity, for transition logging
}

// New creates a daemon instance
func New(store *timetable.Store, cfg *config.Config, pl player.Player, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		store:      store,
		cfg:        cfg,
		player:     pl,
		logger:     logger,
		systemTray: cfg.Daemon.SystemTray,
		ctx:        ctx,
		cancel:     cancel,
		latches:    schedule.NewLatches(),
	}
}

// Start starts the daemon
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.runLoop()
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	return d.runLoop()
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// runLoop drives the tick cycle until a signal or Stop arrives.
func (d *Daemon) runLoop() error {
	interval := d.cfg.Daemon.GetPollInterval()
	d.logger.Info("Daemon started",
		zap.Duration("poll_interval", interval),
		zap.String("timetable", d.store.Path()))

	d.refreshViews(time.Now())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Quit()
			}
			return nil

		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				d.logger.Info("Received SIGHUP, reloading timetable")
				d.Reload()
				continue
			}
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Quit()
			}
			d.Stop()
			return nil

		case now := <-ticker.C:
			d.tick(now)
		}
	}
}

// tick runs one poll cycle against a consistent snapshot of the day views.
func (d *Daemon) tick(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !dateutil.IsSameDay(now, d.currentDate) {
		d.refreshViewsLocked(now)
	}

	for _, key := range schedule.Tick(now, d.today, d.latches) {
		d.logger.Info("Event signal", zap.String("key", key))
		go d.play(key)
	}

	result := schedule.NextEvent(now, d.today, d.tomorrow)
	d.announce(result)

	if d.trayApp != nil {
		d.trayApp.SetTooltip(statusLine(result))
	}
}

// play delivers one signal off the tick loop.
func (d *Daemon) play(key string) {
	if err := d.player.Play(key); err != nil {
		d.logger.Error("Failed to play signal",
			zap.String("key", key),
			zap.Error(err))
	}
}

// announce logs the next event once per transition, not every tick.
func (d *Daemon) announce(result *schedule.Result) {
	identity := ""
	if result != nil {
		identity = fmt.Sprintf("%s/%v", result.Event, result.Iqamah)
	}
	if identity == d.lastNext {
		return
	}
	d.lastNext = identity

	if result == nil {
		d.logger.Info("No upcoming event")
		return
	}
	d.logger.Info("Next event",
		zap.String("event", string(result.Event)),
		zap.Bool("iqamah", result.Iqamah),
		zap.String("countdown", result.Countdown()))
}

// Reload re-reads the timetable and refreshes the cached day views.
// Latches are kept: they re-latch correctly once the clock passes each
// event's window.
func (d *Daemon) Reload() {
	if err := d.store.Load(); err != nil {
		d.logger.Warn("Timetable reload failed, continuing with empty data",
			zap.Error(err))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshViewsLocked(time.Now())
	d.logger.Info("Timetable reloaded", zap.Int("days", d.store.Len()))
}

func (d *Daemon) refreshViews(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshViewsLocked(now)
}

// refreshViewsLocked re-derives today's and tomorrow's rows. Caller holds mu.
func (d *Daemon) refreshViewsLocked(now time.Time) {
	d.currentDate = dateutil.StartOfDay(now)
	today, ok := d.store.ForDate(now)
	if !ok {
		d.logger.Warn("No timetable row for today",
			zap.String("date", now.Format(dateutil.DateLayout)))
	}
	d.today = today
	d.tomorrow, _ = d.store.ForDate(now.AddDate(0, 0, 1))
}

// Status returns a human-readable snapshot for the tray menu.
func (d *Daemon) Status() string {
	now := time.Now()

	d.mu.Lock()
	today := d.today
	tomorrow := d.tomorrow
	d.mu.Unlock()

	line := statusLine(schedule.NextEvent(now, today, tomorrow))

	hd, err := hijridate.Resolve(now, today.Time(string(schedule.Maghrib)), d.cfg.Hijri.OffsetDays)
	if err != nil {
		return line
	}
	return fmt.Sprintf("%s\n%s", line, hd)
}

func statusLine(result *schedule.Result) string {
	if result == nil {
		return "No upcoming event"
	}
	return fmt.Sprintf("%s in %s", result.Label(), result.Countdown())
}
