package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/kineticgo/kinetic"
	"github.com/kineticgo/kinetic/commands"
)

func main() {
	addrFlag := flag.String("addr", "127.0.0.1:8123", "Kinetic drive/simulator address (host:port)")
	identityFlag := flag.Int64("identity", 1, "Client identity registered with the drive")
	keyFlag := flag.String("key", "asdfasdf", "Shared HMAC secret for the identity")
	clusterFlag := flag.Int64("cluster-version", 0, "Expected cluster version")
	opFlag := flag.String("op", "noop", "Operation to issue: noop or get")
	keyNameFlag := flag.String("key-name", "", "Key to GET (required when -op=get)")
	timeoutFlag := flag.Duration("timeout", 10*time.Second, "Connect and operation timeout")

	flag.Usage = printUsage
	flag.Parse()

	if *opFlag == "get" && *keyNameFlag == "" {
		log.Fatalf("-op=get requires -key-name")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	session, err := kinetic.Connect(ctx, *addrFlag, *identityFlag, []byte(*keyFlag), *clusterFlag,
		kinetic.WithConnectTimeout(*timeoutFlag),
		kinetic.WithHandshakeTimeout(*timeoutFlag),
		kinetic.WithOperationTimeout(*timeoutFlag),
	)
	if err != nil {
		log.Fatalf("connect to %s: %v", *addrFlag, err)
	}
	defer session.Disconnect()

	fmt.Printf("connected: connectionID=%d clusterVersion=%d\n", session.ConnectionID(), session.ClusterVersion())

	var builder kinetic.CommandBuilder
	var entry commands.Entry
	switch *opFlag {
	case "get":
		builder = &commands.Get{Key: []byte(*keyNameFlag), Out: &entry}
	default:
		builder = commands.Noop{}
	}

	_, status := session.Submit(ctx, builder, nil)
	fmt.Printf("status: %s\n", status)
	if *opFlag == "get" && status.IsOK() {
		fmt.Printf("value: %q\n", entry.Value)
	}
}

func printUsage() {
	fmt.Println("kineticcli - Kinetic drive smoke client")
	fmt.Println("Usage:")
	fmt.Println("  kineticcli -addr <host:port> -identity <id> -key <secret> [-op noop|get] [-key-name <key>]")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println("  kineticcli -addr 127.0.0.1:8123 -op noop")
	fmt.Println("  kineticcli -addr 127.0.0.1:8123 -op get -key-name mykey")
}
