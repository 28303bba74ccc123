package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/leonardotrapani/cocovoice/internal/audio"
	"github.com/leonardotrapani/cocovoice/internal/bus"
	"github.com/leonardotrapani/cocovoice/internal/config"
	"github.com/leonardotrapani/cocovoice/internal/injection"
	"github.com/leonardotrapani/cocovoice/internal/listener"
	"github.com/leonardotrapani/cocovoice/internal/notify"
	"github.com/leonardotrapani/cocovoice/internal/transcriber"
)

// Daemon wires the listener to the control socket: it owns the config
// manager, builds the pipeline from the current config, and serves the
// one-byte command protocol.
type Daemon struct {
	manager *config.Manager

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	listener *listener.Listener
	wg       sync.WaitGroup
	runErr   error
}

func New() (*Daemon, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		manager: manager,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("daemon: config watch unavailable: %v", err)
	}
	defer d.manager.Stop()

	if err := d.startListener(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("daemon: received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	// Close the listener socket when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	log.Printf("daemon: started, listening on control socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("daemon: shutdown requested")
				d.wg.Wait()
				return d.runErr
			}
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

// startListener builds the pipeline from the current config and runs it
// until the daemon context is cancelled. A capture open failure is fatal
// to the whole daemon, surfaced from Run.
func (d *Daemon) startListener() error {
	cfg := d.manager.GetConfig()

	engine, err := transcriber.NewEngine(cfg.ToEngineConfig())
	if err != nil {
		return fmt.Errorf("create transcription engine: %w", err)
	}

	var chimer notify.Chimer = notify.NopChimer{}
	if cfg.Notifications.Chimes {
		chimer = notify.NewChimer()
	}
	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notifications.Enabled {
		notifier = notify.ForType(cfg.Notifications.Type)
	}

	l := listener.New(listener.Deps{
		Source:   audio.NewCapture(cfg.ToCaptureConfig()),
		Engine:   engine,
		Injector: injection.NewInjector(cfg.ToInjectionConfig()),
		Chimer:   chimer,
		Notifier: notifier,
	}, func() listener.Config {
		return d.manager.GetConfig().ToListenerConfig()
	})

	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := l.Run(d.ctx); err != nil {
			log.Printf("daemon: listener failed: %v", err)
			d.mu.Lock()
			d.runErr = err
			d.mu.Unlock()
			d.cancel()
		}
	}()
	return nil
}

func (d *Daemon) status() listener.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return listener.StatusIdle
	}
	return d.listener.Status()
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("daemon: client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case 's':
		fmt.Fprintf(c, "STATUS status=%s\n", d.status())
	case 'p':
		d.withListener(func(l *listener.Listener) { l.Pause() })
		fmt.Fprint(c, "OK paused\n")
	case 'r':
		d.withListener(func(l *listener.Listener) { l.Resume() })
		fmt.Fprint(c, "OK resumed\n")
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("daemon: unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

func (d *Daemon) withListener(fn func(*listener.Listener)) {
	d.mu.Lock()
	l := d.listener
	d.mu.Unlock()
	if l != nil {
		fn(l)
	}
}
