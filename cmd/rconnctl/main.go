// Command rconnctl is a small demo client: it dials one or more OpenFlow
// peers, supervises each with an rconn.Connection under a shared
// manager.Manager, and logs state transitions and inbound messages until
// interrupted. Modeled on the teacher's cmd/example (a hardcoded
// multi-backend demo run from main), reshaped around a real event loop
// instead of one-shot request/response calls.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/switchcore/rconn"
	"github.com/switchcore/rconn/internal/clock"
	"github.com/switchcore/rconn/manager"
	"github.com/switchcore/rconn/vconn"
)

func main() {
	var (
		targets       = flag.String("targets", "tcp:127.0.0.1:6633", "comma-separated list of switch addresses to dial")
		probeInterval = flag.Uint64("probe-interval", 5, "inactivity probe interval in seconds, 0 disables probing")
		maxBackoff    = flag.Uint64("max-backoff", 8, "maximum reconnect backoff in seconds")
		dev           = flag.Bool("dev", false, "use zap's development logger instead of production")
	)
	flag.Parse()

	logger, err := newLogger(*dev)
	if err != nil {
		log.Fatalf("rconnctl: building logger: %v", err)
	}
	defer logger.Sync()

	names := splitTargets(*targets)
	if len(names) == 0 {
		logger.Fatal("rconnctl: no targets given")
	}

	sysClock := clock.NewSystem()

	mgr := manager.New(manager.WithLogger(logger))
	for _, name := range names {
		c := rconn.Create(*probeInterval, *maxBackoff,
			rconn.WithLogger(logger),
			rconn.WithOpener(vconn.Open),
			rconn.WithClock(sysClock),
		)
		c.Connect(name)
		if err := mgr.Register(name, c); err != nil {
			logger.Fatal("rconnctl: registering connection", zap.String("target", name), zap.Error(err))
		}
	}

	// Drive runs in its own goroutine, rather than on main, so that on
	// shutdown CloseAll can still submit its Destroy calls through each
	// connection's driver goroutine before that goroutine is told to stop.
	// Canceling driveCtx first (as signal.NotifyContext's single shared
	// context would) would let the driver goroutines return before
	// CloseAll's commands ever reached them.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	driveCtx, driveCancel := context.WithCancel(context.Background())
	defer driveCancel()

	driveErr := make(chan error, 1)
	go func() {
		driveErr <- mgr.Drive(driveCtx, func(ctx context.Context, name string, c *rconn.Connection) error {
			return driveOne(ctx, name, c, logger, sysClock)
		})
	}()

	select {
	case <-sigCh:
		logger.Info("rconnctl: signal received, closing connections")
	case err := <-driveErr:
		if err != nil {
			logger.Warn("rconnctl: driver group exited early", zap.Error(err))
		}
		driveCancel()
		return
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	mgr.CloseAll(closeCtx)
	closeCancel()

	driveCancel()
	<-driveErr
}

// driveOne runs a single Connection's Run/Recv cycle for as long as ctx
// stays alive, logging every inbound message and returning when the
// context is canceled. It is the caller-owned event loop spec.md §1
// deliberately leaves out of the core package.
func driveOne(ctx context.Context, name string, c *rconn.Connection, logger *zap.Logger, sysClock *clock.System) error {
	fields := []zap.Field{zap.String("target", name)}
	lastState := c.State()

	for {
		c.Run()
		if s := c.State(); s != lastState {
			logger.Info("state changed", append(fields, zap.String("from", string(lastState)), zap.String("to", string(s)))...)
			lastState = s
		}

		for {
			msg, ok := c.Recv()
			if !ok {
				break
			}
			msgFields := append([]zap.Field{}, fields...)
			if typ, err := msg.TypeOf(); err == nil {
				msgFields = append(msgFields, zap.Uint8("type", uint8(typ)))
			}
			logger.Debug("message received", msgFields...)
		}

		if c.IsConnectivityQuestionable() {
			logger.Warn("connectivity questionable", fields...)
		}

		wait := c.RunWait()
		recvReady := c.RecvWait()

		if wait.WakeNow {
			continue
		}

		var timer *time.Timer
		var timerC <-chan time.Time
		if wait.WakeAt != clock.Infinity {
			if d := clock.SatSub(wait.WakeAt, sysClock.Now()); d > 0 {
				timer = time.NewTimer(time.Duration(d) * time.Second)
				timerC = timer.C
			}
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return ctx.Err()
		case <-timerC:
		case <-recvReady:
		case <-wait.SendReady:
		}
		stopTimer(timer)
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

func splitTargets(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
