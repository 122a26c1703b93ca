// Tetherdump CLI - inspect and index captured runtime metadata snapshots
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/tether/manifest"
	"github.com/chazu/tether/metastore"
	"github.com/chazu/tether/snapshot"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	show := flag.String("show", "", "Print the classes of a snapshot file")
	dbPath := flag.String("db", "tether.db", "Metadata store path (used with --ingest, --list, --find-class, --find-method)")
	ingest := flag.String("ingest", "", "Ingest a snapshot file into the metadata store")
	list := flag.Bool("list", false, "List snapshots in the metadata store")
	findClass := flag.String("find-class", "", "Find classes by name or Namespace.Name prefix")
	findMethod := flag.String("find-method", "", "Find methods by exact name")
	profileDir := flag.String("profile", "", "Validate the tether.toml profile in the given directory")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tetherdump [options]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects snapshot files captured from an attached runtime and maintains\n")
		fmt.Fprintf(os.Stderr, "a queryable metadata store built from them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tetherdump --show meta.cbor              # Print a snapshot's classes\n")
		fmt.Fprintf(os.Stderr, "  tetherdump --ingest meta.cbor --db meta.db\n")
		fmt.Fprintf(os.Stderr, "  tetherdump --list --db meta.db           # List ingested snapshots\n")
		fmt.Fprintf(os.Stderr, "  tetherdump --find-class Foo --db meta.db\n")
		fmt.Fprintf(os.Stderr, "  tetherdump --find-method Add --db meta.db\n")
		fmt.Fprintf(os.Stderr, "  tetherdump --profile ./game              # Validate game/tether.toml\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	ran := false

	if *profileDir != "" {
		ran = true
		m, err := manifest.Load(*profileDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("profile %q", m.Profile.Name)
		if m.Profile.Version != "" {
			fmt.Printf(" version %s", m.Profile.Version)
		}
		fmt.Println()
		fmt.Printf("  assemblies: %d, preload: %d\n", len(m.Runtime.Assemblies), len(m.Runtime.Preload))
	}

	if *show != "" {
		ran = true
		if err := showSnapshot(os.Stdout, *show); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *ingest != "" || *list || *findClass != "" || *findMethod != "" {
		ran = true
		if err := withStore(os.Stdout, *dbPath, *ingest, *list, *findClass, *findMethod); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if !ran {
		flag.Usage()
		os.Exit(2)
	}
}

func showSnapshot(w io.Writer, path string) error {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "snapshot %s captured %s\n", snap.ID, snap.CapturedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "digest %x\n", snap.Digest())

	classes := make([]snapshot.ClassDigest, len(snap.Classes))
	copy(classes, snap.Classes)
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Display() < classes[j].Display()
	})
	for _, c := range classes {
		fmt.Fprintf(w, "  %s (%d methods, %d fields)\n", c.Display(), len(c.Methods), len(c.Fields))
	}
	return nil
}

func withStore(w io.Writer, dbPath, ingestPath string, list bool, findClass, findMethod string) error {
	store, err := metastore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if ingestPath != "" {
		snap, err := snapshot.ReadFile(ingestPath)
		if err != nil {
			return err
		}
		if err := store.Ingest(snap); err != nil {
			return err
		}
		fmt.Fprintf(w, "ingested snapshot %s (%d classes)\n", snap.ID, len(snap.Classes))
	}

	if list {
		infos, err := store.Snapshots()
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Fprintf(w, "%s  %s  %d classes\n", info.ID, info.CapturedAt.Format("2006-01-02 15:04:05"), info.ClassCount)
		}
	}

	if findClass != "" {
		hits, err := store.FindClasses(findClass)
		if err != nil {
			return err
		}
		for _, hit := range hits {
			fmt.Fprintf(w, "%s  (snapshot %s)\n", hit.Display(), hit.SnapshotID)
		}
	}

	if findMethod != "" {
		hits, err := store.FindMethods(findMethod)
		if err != nil {
			return err
		}
		for _, hit := range hits {
			fmt.Fprintf(w, "%s  %s\n", hit.Class, hit.Signature)
		}
	}

	return nil
}
