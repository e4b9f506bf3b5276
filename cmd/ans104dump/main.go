// Command ans104dump is the CLI front end spec §6 leaves as an external,
// out-of-core collaborator: it wires fetch, bundle, and sink together.
//
// Grounded on original_source/cli.rs and main.rs, which expose two
// subcommands (Fetch, PrintJson) via clap; no example repo in the pack
// demonstrably wires a CLI framework (see DESIGN.md), so flag parsing here
// is stdlib `flag`, one FlagSet per subcommand, matching the pack's general
// preference for the standard library wherever nothing ecosystem-specific
// is exercised.
package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/echa/log"

	"github.com/liteseed/ans104/bundle"
	"github.com/liteseed/ans104/fetch"
	"github.com/liteseed/ans104/signature"
	"github.com/liteseed/ans104/sink"
	"github.com/liteseed/ans104/tag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "fetch":
		err = runFetch(os.Args[2:])
	case "print":
		err = runPrint(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Log.Errorf("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ans104dump fetch -tx <id> [-gateway url] [-verify] [-out file.json]")
	fmt.Fprintln(os.Stderr, "       ans104dump print -file bundle.json [-data]")
}

func runFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	txID := fs.String("tx", "", "transaction id of the bundle to fetch")
	gateway := fs.String("gateway", fetch.DefaultGateway, "Arweave gateway base URL")
	verify := fs.Bool("verify", false, "verify every item's signature before emitting it")
	out := fs.String("out", "bundle.json", "output JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *txID == "" {
		return fmt.Errorf("fetch: -tx is required")
	}

	ctx := context.Background()
	client := fetch.New(*gateway)
	body, err := client.Stream(ctx, *txID)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	defer f.Close()

	registry := signature.NewRegistry()
	s := sink.NewJSON(f)
	opts := bundle.Options{Verify: *verify}
	if err := bundle.Decode(ctx, body, registry, s, opts); err != nil {
		return err
	}
	log.Log.Infof("wrote %s", *out)
	return nil
}

func runPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	file := fs.String("file", "", "path to a bundle.json file produced by fetch")
	printData := fs.Bool("data", false, "include each item's raw data payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("print: -file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	var items []printableItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("parsing %s: %w", *file, err)
	}
	for _, item := range items {
		item.print(*printData)
	}
	return nil
}

// printableItem mirrors sink's JSON shape loosely enough to render without
// importing package sink's unexported encoder details; it decodes the
// base64url fields back to bytes only for hex display.
//
// Grounded on original_source/utils.rs's PrintDataItem/Debug impl: fixed
// field order, hex-encoded binary fields, tags as "Name: x, Value: y", and
// the raw data payload only shown when printData is set.
type printableItem struct {
	ID            string    `json:"id"`
	SignatureType uint16    `json:"signatureType"`
	Signature     string    `json:"signature"`
	Owner         string    `json:"owner"`
	OwnerAddress  string    `json:"ownerAddress"`
	Target        *string   `json:"target,omitempty"`
	Anchor        *string   `json:"anchor,omitempty"`
	Tags          []tag.Tag `json:"tags"`
	Data          string    `json:"data"`
}

func (p printableItem) print(printData bool) {
	fmt.Printf("ID: %s\n", p.ID)
	fmt.Printf("Signature Type: %d\n", p.SignatureType)
	fmt.Printf("Signature: %s\n", hexOrRaw(p.Signature))
	fmt.Printf("Owner: %s\n", hexOrRaw(p.Owner))
	fmt.Printf("Owner Address: %s\n", p.OwnerAddress)
	if p.Target != nil {
		fmt.Printf("Target: %s\n", hexOrRaw(*p.Target))
	}
	if p.Anchor != nil {
		fmt.Printf("Anchor: %s\n", hexOrRaw(*p.Anchor))
	}
	fmt.Println("Tags:")
	for _, t := range p.Tags {
		fmt.Printf("    Name: %s, Value: %s\n", t.Name, t.Value)
	}
	if printData {
		fmt.Printf("Data: %s\n", hexOrRaw(p.Data))
	}
	fmt.Println()
}

func hexOrRaw(b64url string) string {
	b, err := base64.RawURLEncoding.DecodeString(b64url)
	if err != nil {
		return b64url
	}
	return hex.EncodeToString(b)
}
