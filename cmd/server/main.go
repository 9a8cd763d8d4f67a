package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dd0wney/graphdb/pkg/api"
	"github.com/dd0wney/graphdb/pkg/graphql"
	"github.com/dd0wney/graphdb/pkg/logging"
	"github.com/dd0wney/graphdb/pkg/metrics"
	"github.com/dd0wney/graphdb/pkg/partition"
	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/dd0wney/graphdb/pkg/replication"
	"github.com/dd0wney/graphdb/pkg/validation"
)

// cliArgs is the result of parsing: server <http_port> -p <part> -l <peer0>
// <peer1> <peer2> [-transport zmq|nng]. `flag` can't express a positional
// argument surrounding its own options, so this is hand-rolled, the same
// way cs426_graph_server.c hand-rolls its own getopt loop.
type cliArgs struct {
	httpPort  int
	partition int
	peers     []string
	transport string
}

func parseArgs(argv []string) (cliArgs, error) {
	args := cliArgs{transport: "zmq"}
	if len(argv) < 1 {
		return args, fmt.Errorf("usage: server <http_port> -p <partnum> -l <peer0> <peer1> <peer2> [-transport zmq|nng]")
	}

	port, err := strconv.Atoi(argv[0])
	if err != nil {
		return args, fmt.Errorf("invalid http_port %q: %w", argv[0], err)
	}
	args.httpPort = port

	rest := argv[1:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "-p":
			i++
			if i >= len(rest) {
				return args, fmt.Errorf("-p requires an argument")
			}
			part, err := strconv.Atoi(rest[i])
			if err != nil {
				return args, fmt.Errorf("invalid partition %q: %w", rest[i], err)
			}
			args.partition = part

		case "-l":
			if i+3 >= len(rest) {
				return args, fmt.Errorf("-l requires three peer addresses")
			}
			args.peers = []string{rest[i+1], rest[i+2], rest[i+3]}
			i += 3

		case "-transport":
			i++
			if i >= len(rest) {
				return args, fmt.Errorf("-transport requires an argument")
			}
			args.transport = rest[i]

		default:
			return args, fmt.Errorf("unknown argument %q", rest[i])
		}
	}

	return args, nil
}

// rpcPort returns the port portion of a host:port peer entry.
func rpcPort(peer string) string {
	idx := strings.LastIndex(peer, ":")
	if idx < 0 {
		return peer
	}
	return peer[idx+1:]
}

func newTransport(name string) (replication.Transport, error) {
	switch name {
	case "zmq":
		return replication.NewZMQTransport(), nil
	case "nng":
		return replication.NewNNGTransport(), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}

func main() {
	var logger logging.Logger = logging.NewDefaultLogger()

	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := validation.ServerConfig{
		HTTPPort:  args.httpPort,
		Partition: args.partition,
		Peers:     args.peers,
		Transport: args.transport,
	}
	if err := validation.ValidateServerConfig(cfg); err != nil {
		logger.Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}

	self := args.partition - 1
	logger = logging.NewPeerLogger(self)

	table := partition.Table{args.peers[0], args.peers[1], args.peers[2]}
	rpcAddr := "0.0.0.0:" + rpcPort(table[self])

	reg := metrics.DefaultRegistry()

	transport, err := newTransport(args.transport)
	if err != nil {
		logger.Error("unsupported transport", logging.Error(err))
		os.Exit(1)
	}

	client := replication.NewClient(transport, replication.DefaultTimeout)
	peerCtx := peer.New(self, table, client, logger, reg)

	rpcServer := replication.NewServer(transport, peerCtx)
	go func() {
		logger.Info("rpc listener starting", logging.String("addr", rpcAddr))
		if err := rpcServer.ListenAndServe(rpcAddr); err != nil {
			logger.Error("rpc listener failed", logging.Error(err))
			os.Exit(1)
		}
	}()

	router := api.NewRouter(peerCtx, logger, reg)

	schema, err := graphql.GenerateSchema(peerCtx)
	if err != nil {
		logger.Error("graphql schema build failed", logging.Error(err))
		os.Exit(1)
	}
	router.Handle("/graphql", graphql.NewHandler(schema))

	httpAddr := fmt.Sprintf(":%d", args.httpPort)
	httpSrv := &http.Server{Addr: httpAddr, Handler: router}
	go func() {
		logger.Info("http listener starting", logging.String("addr", httpAddr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http listener failed", logging.Error(err))
			os.Exit(1)
		}
	}()

	logger.Info("server started", logging.String("transport", args.transport))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpSrv.Shutdown(shutdownCtx)
}
