package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/doomerang-predict/assets"
	"github.com/automoto/doomerang-predict/server/core"
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/automoto/doomerang-predict/shared/protocol"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	name := flag.String("name", "Doomerang Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	arena := flag.String("arena", assets.DefaultArena, "Arena to load")
	flag.Parse()

	movement, err := netconfig.LoadPrediction()
	if err != nil {
		log.Fatalf("Failed to load movement config: %v", err)
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	level, err := core.LoadServerArena(*arena)
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}

	server := core.NewServer(core.Options{
		TickRate: movement.ServerTickRate,
		Name:     *name,
		Version:  *version,
		Arena:    level,
		Movement: movement,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting %q on port %d (arena: %s, tick rate: %d/s, version: %s)",
		*name, *port, *arena, movement.ServerTickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
