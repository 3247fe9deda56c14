// Command ossimclient is a manual test harness for ossimd: an
// interactive REPL that connects to the simulator's unix socket and
// lets a human drive RUN/BLOCK requests by hand. It is not part of
// the simulator itself — a real client is just any process that
// speaks the wire protocol in internal/ipc.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tuannm99/ossim/internal/ipc"
)

type session struct {
	conn net.Conn
}

func dial(socket string, timeout time.Duration) (*session, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.Dial("unix", socket)
	if err != nil {
		return nil, err
	}
	return &session{conn: conn}, nil
}

func (s *session) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *session) send(msg ipc.Message) (*ipc.Message, error) {
	if err := ipc.WriteMessage(s.conn, msg); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	reply, err := ipc.ReadMessageBlocking(s.conn)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}

func parsePages(fields []string) ([]int32, error) {
	pages := make([]int32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad vpn %q: %w", f, err)
		}
		pages = append(pages, int32(v))
	}
	return pages, nil
}

func printHelp() {
	fmt.Println(`commands:
  run <pid> <time_ms> [vpn ...]   send a RUN request with an optional page reference list
  block <pid> <time_ms>           send a BLOCK request
  help                            show this help
  quit | exit                     disconnect and quit`)
}

func main() {
	var (
		socket  = flag.String("socket", "/tmp/ossim.sock", "ossimd unix socket path")
		timeout = flag.Duration("timeout", 3*time.Second, "dial timeout")
	)
	flag.Parse()

	sess, err := dial(*socket, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = sess.Close() }()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ossim> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("connected to %s\n", *socket)
	fmt.Println("type help for commands")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println("^C")
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "run":
			if len(fields) < 3 {
				fmt.Println("usage: run <pid> <time_ms> [vpn ...]")
				continue
			}
			pid, err := strconv.ParseInt(fields[1], 10, 32)
			if err != nil {
				fmt.Printf("bad pid: %v\n", err)
				continue
			}
			timeMs, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				fmt.Printf("bad time_ms: %v\n", err)
				continue
			}
			pages, err := parsePages(fields[3:])
			if err != nil {
				fmt.Println(err)
				continue
			}
			reply, err := sess.send(ipc.Message{Pid: int32(pid), Request: ipc.RequestRun, TimeMs: uint32(timeMs), Pages: pages})
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("%s pid=%d time_ms=%d\n", reply.Request, reply.Pid, reply.TimeMs)
		case "block":
			if len(fields) != 3 {
				fmt.Println("usage: block <pid> <time_ms>")
				continue
			}
			pid, err := strconv.ParseInt(fields[1], 10, 32)
			if err != nil {
				fmt.Printf("bad pid: %v\n", err)
				continue
			}
			timeMs, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				fmt.Printf("bad time_ms: %v\n", err)
				continue
			}
			reply, err := sess.send(ipc.Message{Pid: int32(pid), Request: ipc.RequestBlock, TimeMs: uint32(timeMs)})
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("%s pid=%d time_ms=%d\n", reply.Request, reply.Pid, reply.TimeMs)
		default:
			fmt.Printf("unknown command: %s (try help)\n", fields[0])
		}
	}
}
