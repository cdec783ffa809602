// Command healthcheck probes the gRPC health service of a running server and
// exits non-zero unless it reports SERVING. It is meant for container
// health checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/solidarias/internal/client/client"
)

func main() {
	addr := flag.String("g", "127.0.0.1:50051", "address and port of the gRPC health service")
	service := flag.String("service", "", "health service name, empty for the whole server")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	os.Exit(run(*addr, *service, *timeout))
}

func run(addr, service string, timeout time.Duration) int {
	c, err := client.NewHealthClient(addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.Check(ctx, service); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("SERVING")
	return 0
}
