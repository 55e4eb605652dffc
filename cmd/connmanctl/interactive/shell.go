// Package interactive provides the connmanctl command shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/connman-go/connman/pkg/connman"
	"github.com/connman-go/connman/pkg/dispatch"
	"github.com/connman-go/connman/pkg/inspect"
	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/signal"
)

// SignalSource opens a stream of ConnMan signals that ends when ctx is
// done.
type SignalSource func(ctx context.Context) (<-chan signal.Message, error)

// Config configures a Shell.
type Config struct {
	Caller  connman.Caller
	Signals SignalSource

	// Logger and Protocol are passed to the monitor's dispatcher.
	Logger   *slog.Logger
	Protocol log.Logger

	// BufferSize is the monitor subscription capacity.
	BufferSize int
}

var errUsage = errors.New("usage")

// Shell runs connmanctl commands.
type Shell struct {
	cfg       Config
	manager   *connman.Manager
	formatter *inspect.Formatter
	out       io.Writer

	mu      sync.Mutex
	monitor context.CancelFunc
}

// New creates a shell that writes to out.
func New(cfg Config, out io.Writer) *Shell {
	return &Shell{
		cfg:       cfg,
		manager:   connman.NewManager(cfg.Caller),
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// Run reads commands with readline until quit, EOF or ctx ends.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "connman> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	defer s.stopMonitor()

	s.out = rl.Stdout()
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}
		if quit := s.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "state":
		err = s.cmdState(ctx)
	case "offline":
		err = s.cmdOffline(ctx, args)
	case "technologies", "tech":
		err = s.cmdTechnologies(ctx)
	case "services", "svc":
		err = s.cmdServices(ctx)
	case "peers":
		err = s.cmdPeers(ctx)
	case "clients":
		err = s.cmdClients(ctx)
	case "scan":
		err = s.withTechnology(ctx, args, 1, func(t *connman.Technology) error {
			if err := t.Scan(ctx); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Scan completed for %s\n", t.Props.Name)
			return nil
		})
	case "enable", "disable":
		on := cmd == "enable"
		err = s.withTechnology(ctx, args, 1, func(t *connman.Technology) error {
			if err := t.SetPowered(ctx, on); err != nil {
				return err
			}
			state := "Disabled"
			if on {
				state = "Enabled"
			}
			fmt.Fprintf(s.out, "%s %s\n", state, t.Props.Name)
			return nil
		})
	case "tether":
		err = s.cmdTether(ctx, args)
	case "connect", "disconnect", "remove":
		err = s.cmdServiceAction(ctx, cmd, args)
	case "autoconnect":
		err = s.cmdAutoConnect(ctx, args)
	case "move":
		err = s.cmdMove(ctx, args)
	case "monitor":
		err = s.cmdMonitor(ctx, args)
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintln(s.out, err)
	} else if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
connmanctl Commands:
  Manager:
    state                              - Show global state
    offline on|off                     - Toggle offline mode
    technologies                       - List technologies
    services                           - List services in preference order
    peers                              - List peers
    clients                            - List tethering clients

  Technologies (by type or path segment):
    scan <tech>                        - Scan for services
    enable <tech> / disable <tech>     - Power a technology on or off
    tether <tech> on|off               - Toggle tethering

  Services (by name or path segment):
    connect <svc> / disconnect <svc>   - Connect or disconnect
    remove <svc>                       - Forget a favorite service
    autoconnect <svc> on|off           - Toggle autoconnect
    move <svc> before|after <svc>      - Reorder services

  General:
    monitor on|off                     - Print signals as they arrive
    help                               - Show this help
    quit                               - Exit`)
}

func (s *Shell) cmdState(ctx context.Context) error {
	props, err := s.manager.Properties(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatManager(props))
	return nil
}

func (s *Shell) cmdOffline(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: offline on|off", errUsage)
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := s.manager.SetOfflineMode(ctx, on); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Offline mode %s\n", args[0])
	return nil
}

func (s *Shell) cmdTechnologies(ctx context.Context) error {
	techs, err := s.manager.Technologies(ctx)
	if err != nil {
		return err
	}
	for _, t := range techs {
		fmt.Fprint(s.out, s.formatter.FormatTechnology(t))
	}
	return nil
}

func (s *Shell) cmdServices(ctx context.Context) error {
	services, err := s.manager.Services(ctx)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		fmt.Fprintln(s.out, "No services")
		return nil
	}
	for _, svc := range services {
		fmt.Fprintln(s.out, s.formatter.FormatServiceLine(svc))
	}
	return nil
}

func (s *Shell) cmdPeers(ctx context.Context) error {
	peers, err := s.manager.Peers(ctx)
	if err != nil {
		return err
	}
	if len(peers) == 0 {
		fmt.Fprintln(s.out, "No peers")
		return nil
	}
	for _, p := range peers {
		fmt.Fprintln(s.out, p.Path)
		fmt.Fprint(s.out, s.formatter.FormatProperties(1, p.Props))
	}
	return nil
}

func (s *Shell) cmdClients(ctx context.Context) error {
	clients, err := s.manager.TetheringClients(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(s.out, "No tethering clients")
		return nil
	}
	for _, c := range clients {
		fmt.Fprintln(s.out, c)
	}
	return nil
}

func (s *Shell) cmdTether(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: tether <tech> on|off", errUsage)
	}
	on, err := parseOnOff(args[1])
	if err != nil {
		return err
	}
	return s.withTechnology(ctx, args, 2, func(t *connman.Technology) error {
		if err := t.SetTethering(ctx, on); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Tethering %s for %s\n", args[1], t.Props.Name)
		return nil
	})
}

func (s *Shell) cmdServiceAction(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s <svc>", errUsage, cmd)
	}
	svc, err := s.findService(ctx, args[0])
	if err != nil {
		return err
	}
	switch cmd {
	case "connect":
		err = svc.Connect(ctx)
	case "disconnect":
		err = svc.Disconnect(ctx)
	case "remove":
		err = svc.Remove(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s\n", cmd, s.formatter.FormatServiceLine(svc))
	return nil
}

func (s *Shell) cmdAutoConnect(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: autoconnect <svc> on|off", errUsage)
	}
	on, err := parseOnOff(args[1])
	if err != nil {
		return err
	}
	svc, err := s.findService(ctx, args[0])
	if err != nil {
		return err
	}
	if err := svc.SetAutoConnect(ctx, on); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Autoconnect %s for %s\n", args[1], path.Base(string(svc.Path)))
	return nil
}

func (s *Shell) cmdMove(ctx context.Context, args []string) error {
	if len(args) != 3 || (args[1] != "before" && args[1] != "after") {
		return fmt.Errorf("%w: move <svc> before|after <svc>", errUsage)
	}
	svc, err := s.findService(ctx, args[0])
	if err != nil {
		return err
	}
	other, err := s.findService(ctx, args[2])
	if err != nil {
		return err
	}
	if args[1] == "before" {
		return svc.MoveBefore(ctx, other)
	}
	return svc.MoveAfter(ctx, other)
}

func (s *Shell) cmdMonitor(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: monitor on|off", errUsage)
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if !on {
		s.stopMonitor()
		fmt.Fprintln(s.out, "Monitor off")
		return nil
	}
	if err := s.startMonitor(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Monitor on")
	return nil
}

func (s *Shell) startMonitor(ctx context.Context) error {
	if s.cfg.Signals == nil {
		return errors.New("no signal source")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.monitor != nil {
		return nil
	}

	mctx, cancel := context.WithCancel(ctx)
	src, err := s.cfg.Signals(mctx)
	if err != nil {
		cancel()
		return err
	}

	d := dispatch.New(dispatch.Config{
		Logger:     s.cfg.Logger,
		Protocol:   s.cfg.Protocol,
		BufferSize: s.cfg.BufferSize,
	})
	sub := d.Subscribe()
	go d.Run(mctx, src)
	go func() {
		defer sub.Close()
		for {
			select {
			case <-mctx.Done():
				return
			case n := <-sub.C():
				fmt.Fprintln(s.out, s.formatter.FormatNotification(n))
			}
		}
	}()

	s.monitor = cancel
	return nil
}

func (s *Shell) stopMonitor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.monitor != nil {
		s.monitor()
		s.monitor = nil
	}
}

func (s *Shell) withTechnology(ctx context.Context, args []string, want int, fn func(*connman.Technology) error) error {
	if len(args) != want {
		return fmt.Errorf("%w: expected a technology", errUsage)
	}
	techs, err := s.manager.Technologies(ctx)
	if err != nil {
		return err
	}
	for _, t := range techs {
		if string(t.Props.Type) == args[0] || path.Base(string(t.Path)) == args[0] {
			return fn(t)
		}
	}
	return fmt.Errorf("no technology %q", args[0])
}

func (s *Shell) findService(ctx context.Context, key string) (*connman.Service, error) {
	services, err := s.manager.Services(ctx)
	if err != nil {
		return nil, err
	}
	for _, svc := range services {
		if path.Base(string(svc.Path)) == key || string(svc.Path) == key {
			return svc, nil
		}
	}
	for _, svc := range services {
		if svc.Props.Name != nil && *svc.Props.Name == key {
			return svc, nil
		}
	}
	return nil, fmt.Errorf("no service %q", key)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", errUsage, s)
}

func completer() *readline.PrefixCompleter {
	onOff := []readline.PrefixCompleterInterface{readline.PcItem("on"), readline.PcItem("off")}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("state"),
		readline.PcItem("offline", onOff...),
		readline.PcItem("technologies"),
		readline.PcItem("services"),
		readline.PcItem("peers"),
		readline.PcItem("clients"),
		readline.PcItem("scan"),
		readline.PcItem("enable"),
		readline.PcItem("disable"),
		readline.PcItem("tether"),
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("remove"),
		readline.PcItem("autoconnect"),
		readline.PcItem("move"),
		readline.PcItem("monitor", onOff...),
		readline.PcItem("quit"),
	)
}
