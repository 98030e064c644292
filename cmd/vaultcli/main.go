package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"CloudVault/internal/cliapi"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const usage = `CloudVault requester CLI

Usage:
  vaultcli [--server URL] <command> [args]

Commands:
  resolve <share-key>            List the files behind a share key
  request <file-id> <my-key>     Ask the owner for permission to decrypt
  check <file-id> <my-key>       One-shot approval check
  wait <file-id> <my-key>        Poll until the owner approves
  version                        Print build info
`

func main() {
	server := flag.String("server", envOr("CLOUDVAULT_SERVER", "http://localhost:5000"), "CloudVault server URL")
	interval := flag.Duration("interval", 3*time.Second, "poll interval for wait")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, cliapi.New(*server), *interval, flag.Args()))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(ctx context.Context, client *cliapi.Client, interval time.Duration, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "resolve":
		err = cmdResolve(ctx, client, args[1:])
	case "request":
		err = cmdRequest(ctx, client, args[1:])
	case "check":
		err = cmdCheck(ctx, client, args[1:])
	case "wait":
		err = cmdWait(ctx, client, interval, args[1:])
	case "version":
		fmt.Printf("CloudVault CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s error: %v\n", args[0], err)
		return 1
	}
	return 0
}

func cmdResolve(ctx context.Context, client *cliapi.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: resolve <share-key>")
	}
	shared, err := client.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Owner: %s (%s)\n", shared.Owner.Username, shared.Owner.ID)
	if len(shared.Files) == 0 {
		fmt.Println("No files shared.")
		return nil
	}
	for _, f := range shared.Files {
		risk := "-"
		if f.RiskLevel != nil {
			risk = *f.RiskLevel
		}
		fmt.Printf("  %s  %-30s %8d bytes  risk: %s\n", f.ID, f.Name, f.Size, risk)
	}
	return nil
}

func cmdRequest(ctx context.Context, client *cliapi.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: request <file-id> <my-key>")
	}
	req, err := client.RequestAccess(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Request %s filed for %q, status: %s\n", req.ID, req.FileName, req.Status)
	return nil
}

func cmdCheck(ctx context.Context, client *cliapi.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: check <file-id> <my-key>")
	}
	approved, err := client.CheckApproval(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if approved {
		fmt.Println("Approved.")
	} else {
		fmt.Println("Not approved yet.")
	}
	return nil
}

func cmdWait(ctx context.Context, client *cliapi.Client, interval time.Duration, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: wait <file-id> <my-key>")
	}
	fmt.Printf("Waiting for approval (poll every %s, Ctrl+C to stop)...\n", interval)
	approved, err := client.WaitForApproval(ctx, args[0], args[1], interval)
	if err != nil {
		return err
	}
	if approved {
		fmt.Println("Approved.")
	}
	return nil
}
