// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/relabs-tech/baseboard/internal/app"
	"github.com/relabs-tech/baseboard/internal/config"
)

func main() {
	configPath := flag.String("config", "./baseboard_config.txt", "path to configuration file")
	simulate := flag.Bool("sim", false, "check simulated devices")
	flag.Parse()

	log.Println("starting baseboard check")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunBoardCheck(ctx, *simulate); err != nil {
		log.Fatalf("board check failed: %v", err)
	}
	log.Println("board check passed")
}
