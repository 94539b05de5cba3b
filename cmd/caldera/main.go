package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caldera-engine/caldera/internal/core/blob"
	"github.com/caldera-engine/caldera/internal/core/engine"
	"github.com/caldera-engine/caldera/internal/core/observability/log"
)

func main() {
	configPath := flag.String("config", "caldera.yml", "path to the engine config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Println("Error running engine:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (engine.Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		var cfg engine.Config
		cfg.ApplyDefaults()
		return cfg, nil
	}
	if err != nil {
		return engine.Config{}, err
	}
	defer func() { _ = f.Close() }()
	return engine.LoadConfig(f)
}

func run(cfg engine.Config) error {
	logger := log.New(log.ParseLevel(cfg.LogLevel))
	e, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer e.Destroy()

	e.CreateUniverse()
	defer e.DestroyUniverse()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			if err := saveGame(e); err != nil {
				logger.Error("autosave failed", log.Error(err))
			}
			return nil
		case <-ticker.C:
			e.Update(true, 1.0, -1)
		}
	}
}

// saveGame writes the serialized engine state through the save device,
// with the stream CRC appended as a 4-byte trailer. The trailer is the
// out-of-band home of the integrity checksum; the stream header's
// reserved slot stays empty.
func saveGame(e *engine.Engine) error {
	out := blob.NewOutput()
	crc := e.Serialize(out)
	out.WriteUint32(crc)
	return e.FileSystem().WriteFile("save/autosave.sav", out.Bytes())
}
