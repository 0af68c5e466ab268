package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leeineian/ghost/home"
	"github.com/leeineian/ghost/proc"
	"github.com/leeineian/ghost/sys"
)

const pidFile = ".bot.pid"

func main() {
	// LogFatal panics so deferred cleanup (PID lock, database) still runs
	defer func() {
		if r := recover(); r != nil {
			if msg, ok := r.(string); ok {
				fmt.Fprintf(os.Stderr, "\n[FATAL] %s\n", msg)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	silent := flag.Bool("silent", false, "Disable all log output")
	skipReg := flag.Bool("skip-reg", false, "Skip command registration")
	forceReg := flag.Bool("force-reg", false, "Re-register commands even if unchanged")
	flag.Parse()

	cfg, cfgErr := sys.LoadConfig()
	sys.InitLogger(*silent || (cfg != nil && cfg.Silent), true)
	if cfgErr != nil {
		sys.LogFatal(sys.MsgConfigFailedToLoad, cfgErr)
	}

	sys.LogInfo(sys.MsgBotStarting, sys.GetProjectName())

	release, err := lockPIDFile(pidFile)
	if err != nil {
		sys.LogFatal(sys.MsgGenericError, err)
	}
	defer release()

	if err := run(cfg, *silent, *skipReg, *forceReg); err != nil {
		sys.LogFatal(sys.MsgGenericError, err)
	}
}

func run(cfg *sys.Config, silent, skipReg, forceReg bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	sys.SetAppContext(ctx)

	db, err := sys.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	trolls := sys.NewTrollStore(cfg.TrollsPath())
	roles := sys.NewRoleStore(cfg.RolesPath())

	client, err := sys.CreateClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Discord client: %w", err)
	}
	defer client.Close(context.Background())

	manager := proc.NewTrollManager(ctx, proc.NewDisgoPlatform(client, cfg.GuildID), trolls, proc.Options{
		History: db,
	})

	home.Setup(home.Deps{
		Manager: manager,
		Roles:   roles,
		Policy:  sys.NewAccessPolicy(cfg.OwnerIDs),
		DB:      db,
	})

	// Sessions resume once the guild cache is populated.
	sys.RegisterDaemon(sys.LogTroll, func(ctx context.Context) (bool, func(), func()) {
		return true, func() {
			if _, err := manager.Resume(proc.DefaultInterval); err != nil {
				sys.LogTroll(sys.MsgTrollResumeFail, err)
			}
		}, manager.Shutdown
	})

	presence := proc.NewPresenceRotator(client, manager, cfg.PresenceText)
	sys.RegisterDaemon(sys.LogPresence, func(ctx context.Context) (bool, func(), func()) {
		return true, func() { presence.Run(ctx) }, nil
	})

	if !skipReg {
		if err := sys.RegisterCommands(ctx, client, db, cfg.GuildID, forceReg); err != nil {
			sys.LogError(sys.MsgBotRegisterFail, err)
		}
	} else {
		sys.LogLoader(sys.MsgLoaderSkipped)
	}

	if err := client.OpenGateway(ctx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	<-ctx.Done()
	if !silent {
		fmt.Println()
	}

	sys.ShutdownDaemons()

	if botUser, ok := client.Caches.SelfUser(); ok {
		sys.LogInfo(sys.MsgBotShutdown, botUser.Username)
	} else {
		sys.LogInfo(sys.MsgBotShutdown, sys.GetProjectName())
	}
	return nil
}

// lockPIDFile takes an exclusive flock on path, terminating any older instance holding it.
func lockPIDFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open PID file: %w", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			break
		}
		if err != syscall.EWOULDBLOCK {
			_ = f.Close()
			return nil, fmt.Errorf("failed to lock PID file: %w", err)
		}

		var oldPid int
		_, _ = f.Seek(0, 0)
		if _, scanErr := fmt.Fscanf(f, "%d", &oldPid); scanErr != nil || oldPid == os.Getpid() {
			<-ticker.C
			continue
		}

		process, procErr := os.FindProcess(oldPid)
		if procErr != nil {
			<-ticker.C
			continue
		}

		sys.LogInfo(sys.MsgBotKillingOld, oldPid)
		_ = process.Signal(syscall.SIGTERM)
		if !waitForExit(process, ticker, 5*time.Second) {
			sys.LogWarn(sys.MsgBotStubborn, oldPid)
			_ = process.Signal(syscall.SIGKILL)
			waitForExit(process, ticker, 2*time.Second)
		}
		sys.LogInfo(sys.MsgBotOldTerminated)
	}

	_ = f.Truncate(0)
	_, _ = f.Seek(0, 0)
	_, _ = fmt.Fprintf(f, "%d", os.Getpid())
	_ = f.Sync()

	return func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		_ = os.Remove(path)
	}, nil
}

func waitForExit(process *os.Process, ticker *time.Ticker, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case <-ticker.C:
			if err := process.Signal(syscall.Signal(0)); err != nil {
				return true
			}
		case <-deadline:
			return false
		}
	}
}
