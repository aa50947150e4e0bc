package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/drakos74/xmlp/infra/config"
	"github.com/drakos74/xmlp/internal/mlp"
	"github.com/drakos74/xmlp/internal/server"
	"github.com/drakos74/xmlp/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	cfgFile := flag.String("config", "", "yaml file with the default attribute values")
	level := flag.String("log", "info", "log level")
	addr := flag.String("http", "", "address to expose the message api and the prometheus metrics on e.g. ':6021'")
	script := flag.String("script", "", "file with messages to run instead of reading stdin")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	host := newHost(os.Stdout)
	object := mlp.New(host, json.NewFileStorage())

	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load config")
		}
		if err := object.Registry().Apply(cfg.Attributes); err != nil {
			log.Fatal().Err(err).Msg("could not apply config")
		}
	}

	if *addr != "" {
		srv := server.NewServer(mlp.Name, *addr).
			Add(server.Health(), server.Message(host.remote(object)))
		go func() {
			if err := srv.Run(); err != nil {
				log.Error().Err(err).Str("addr", *addr).Msg("server stopped")
			}
		}()
	}

	var in io.Reader = os.Stdin
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			log.Fatal().Err(err).Str("script", *script).Msg("could not open script")
		}
		defer f.Close()
		in = f
	}

	if err := host.run(bufio.NewScanner(in), object); err != nil {
		fmt.Fprintf(os.Stderr, "error reading messages: %s\n", err.Error())
		os.Exit(1)
	}
}
