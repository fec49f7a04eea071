package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ivlev/segplay/internal/composite"
	"github.com/ivlev/segplay/internal/config"
	"github.com/ivlev/segplay/internal/director"
	"github.com/ivlev/segplay/internal/registry"
	"github.com/ivlev/segplay/internal/scene"
	"github.com/ivlev/segplay/internal/stage"
	"github.com/ivlev/segplay/internal/system"
)

var buildVersion = "dev"

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("[-] Configuration error: %v", err)
	}
	cfg.BuildVersion = buildVersion

	if err := run(cfg); err != nil {
		log.Fatalf("[-] %v", err)
	}
}

func run(cfg *config.Config) error {
	startTime := time.Now()

	dir := cfg.Dir
	if dir == "" {
		latest, err := director.FindLatestAnimation(cfg.AnimationsDir)
		if err != nil {
			return fmt.Errorf("%w. Put an animation folder into %s/", err, cfg.AnimationsDir)
		}
		dir = latest
		fmt.Printf("[*] Selected animation: %s\n", dir)
	}

	anim, err := director.Discover(dir, cfg.Workers, director.WithPrefix(cfg.Prefix))
	if err != nil {
		return fmt.Errorf("discover %s: %w", dir, err)
	}
	if cfg.Prefix != "" && cfg.Prefix != anim.Manifest.Prefix {
		return fmt.Errorf("prefix %q does not match manifest prefix %q", cfg.Prefix, anim.Manifest.Prefix)
	}

	reg := registry.New()
	if err := director.Register(reg, anim); err != nil {
		return fmt.Errorf("register segments: %w", err)
	}

	total := anim.Manifest.Total
	if cfg.Total >= 0 {
		total = cfg.Total
	}

	fmt.Printf("--- [SEGPLAY %s] ---\n", cfg.BuildVersion)
	fmt.Printf("[*] Animation: %s | Segments: %d | Definitions: %d\n", anim.Manifest.Name, total, len(anim.Definitions))
	fmt.Println("-----------------------------")

	st := stage.New("scene")
	var sc scene.Scene = st
	if cfg.Detached {
		sc = nil
	}

	player, err := composite.New(reg, sc, anim.Manifest.Prefix, total)
	if err != nil {
		return err
	}

	report := player.Report()
	fmt.Printf("[*] %s\n", report)
	if cfg.Strict {
		if err := report.Err(); err != nil {
			return fmt.Errorf("strict mode: %w", err)
		}
	}

	actor, err := st.NewActor(cfg.Actor)
	if err != nil {
		return err
	}

	for pass := 1; pass <= cfg.Repeat; pass++ {
		before := len(st.Calls())
		if err := player.Play(actor); err != nil {
			return fmt.Errorf("pass %d: %w", pass, err)
		}
		fmt.Printf("[*] Pass %d/%d: %d calls, clock %.2fs\n", pass, cfg.Repeat, len(st.Calls())-before, st.Clock())
	}

	if cfg.TracePath != "" {
		if err := st.WriteTrace(cfg.TracePath); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
		fmt.Printf("[*] Trace written: %s\n", cfg.TracePath)
	}

	if cfg.ShowStats {
		stats, err := system.Collect()
		if err != nil {
			log.Printf("[!] Failed to collect stats: %v", err)
		} else {
			fmt.Printf("[*] %s\n", stats)
		}
	}

	fmt.Printf("[+++] Done in %s: %d of %d segments played\n", time.Since(startTime).Round(time.Millisecond), player.Len(), player.Total())
	return nil
}
