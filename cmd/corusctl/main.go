// Command corusctl is a small CLI exercising read/write/database-dump
// operations against a Corus/IFLAG device, in the teacher's cmd/sdo_client
// idiom: a flag-parsed subcommand driving one client against one device.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pwitab/corus/catalog"
	"github.com/pwitab/corus/internal/frame"
	"github.com/pwitab/corus/session"
	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "read":
		runRead(os.Args[2:])
	case "write":
		runWrite(os.Args[2:])
	case "database":
		runDatabase(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: corusctl <read|write|database> [flags]")
}

func commonFlags(fs *flag.FlagSet) (*string, *time.Duration, *bool) {
	address := fs.String("address", "", "device address, host:port")
	timeout := fs.Duration("timeout", 30*time.Second, "transport timeout")
	debug := fs.Bool("debug", false, "enable debug logging")
	return address, timeout, debug
}

func connectOrExit(address string, timeout time.Duration, debug bool) *session.Session {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	if address == "" {
		fmt.Fprintln(os.Stderr, "error: -address is required")
		os.Exit(1)
	}
	s := session.NewTCP(session.Config{Address: address, Timeout: timeout}, log.StandardLogger())
	if err := s.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", err)
		os.Exit(1)
	}
	return s
}

func runRead(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	address, timeout, debug := commonFlags(fs)
	idsFlag := fs.String("ids", "", "comma-separated parameter ids")
	fs.Parse(args)

	ids, err := parseIDs(*idsFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := connectOrExit(*address, *timeout, *debug)
	defer s.Break()

	cat := catalog.Default()
	params := make([]catalog.Parameter, 0, len(ids))
	for _, id := range ids {
		p, err := cat.ParameterByID(id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		params = append(params, p)
	}

	values, err := s.ReadParameters(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}
	for _, p := range params {
		v, ok := values[p.ID]
		if !ok {
			fmt.Printf("%s (id=%d): absent\n", p.Name, p.ID)
			continue
		}
		fmt.Printf("%s (id=%d): %+v\n", p.Name, p.ID, v)
	}
}

func runWrite(args []string) {
	fs := flag.NewFlagSet("write", flag.ExitOnError)
	address, timeout, debug := commonFlags(fs)
	id := fs.Int("id", 0, "parameter id to write")
	value := fs.String("value", "", "value to write (parsed per the parameter's kind)")
	fs.Parse(args)

	s := connectOrExit(*address, *timeout, *debug)
	defer s.Break()

	cat := catalog.Default()
	p, err := cat.ParameterByID(*id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	v, err := parseValueForKind(p, *value)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = s.WriteParameters([]session.WriteItem{{Parameter: p, Value: v}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func runDatabase(args []string) {
	fs := flag.NewFlagSet("database", flag.ExitOnError)
	address, timeout, debug := commonFlags(fs)
	name := fs.String("database", "interval", "database name: interval|hourly|daily|monthly")
	fs.Parse(args)

	s := connectOrExit(*address, *timeout, *debug)
	defer s.Break()

	db, err := databaseFromName(*name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	records, err := s.ReadDatabase(*name, db, time.Time{}, time.Time{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "database read failed: %v\n", err)
		os.Exit(1)
	}
	for i, record := range records {
		fmt.Printf("record %d: %+v\n", i, record)
	}
}

func databaseFromName(name string) (frame.Database, error) {
	switch name {
	case "interval":
		return frame.Interval, nil
	case "hourly":
		return frame.Hourly, nil
	case "daily":
		return frame.Daily, nil
	case "monthly":
		return frame.Monthly, nil
	default:
		return 0, fmt.Errorf("unknown database %q", name)
	}
}

func parseIDs(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("-ids is required")
	}
	var ids []int
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			id, err := strconv.Atoi(s[start:i])
			if err != nil {
				return nil, fmt.Errorf("bad parameter id %q: %w", s[start:i], err)
			}
			ids = append(ids, id)
			start = i + 1
		}
	}
	return ids, nil
}
