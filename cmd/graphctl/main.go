// Command graphctl is an interactive client for one peer's HTTP API: type
// add_node/add_edge/get_neighbors/shortest_path commands and see the status
// code and JSON-decoded body come back (a non-JSON body shows as empty).
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "peer HTTP API base URL")
	flag.Parse()

	cli := newClient(*addr)
	p := tea.NewProgram(initialModel(cli, *addr))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
