package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/theflywheel/chash"
)

func main() {
	strategyName := flag.String("strategy", "quadratic", "collision strategy: chaining, linear, quadratic, double")
	verbose := flag.Bool("v", false, "log resize events")
	flag.Parse()

	strategy, ok := parseStrategy(*strategyName)
	if !ok {
		log.Fatalf("Unknown strategy %q", *strategyName)
	}

	logger := chash.NoopLogger()
	if *verbose {
		logger = chash.NewTextLogger(slog.LevelDebug)
	}

	// Over-large and zero capacities are rejected
	if _, err := chash.New(65536); err != nil {
		fmt.Printf("New(65536): %v\n", err)
	}
	if _, err := chash.New(0); err != nil {
		fmt.Printf("New(0): %v\n", err)
	}

	table, err := chash.New(50, chash.WithStrategy(strategy), chash.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}
	defer table.Release()

	fmt.Printf("Created %s table with %d slots\n", strategy, table.Size())

	// 156 and 206 share slot 6; 50 and 0 share slot 0
	for _, kv := range []struct {
		key   uint16
		value string
	}{
		{156, "Hello"},
		{156 + 50, "World!"},
		{50, "Check"},
		{0, "ActualCollision"},
	} {
		if err := table.Add(kv.key, kv.value); err != nil {
			log.Fatalf("Failed to add key %d: %v", kv.key, err)
		}
	}
	fmt.Printf("Inserted %d entries, load factor %d%%\n", table.Len(), table.LoadFactor())

	value, err := table.Find(0)
	if err != nil {
		log.Fatalf("Failed to find key 0: %v", err)
	}
	fmt.Printf("Key 0 => %s\n", value)

	if _, err := table.Update(0, "World"); err != nil {
		log.Fatalf("Failed to update key 0: %v", err)
	}
	count, err := table.Delete(50)
	if err != nil {
		log.Fatalf("Failed to delete key 50: %v", err)
	}
	fmt.Printf("Deleted key 50, %d entries left\n", count)

	dest, copied, err := chash.Copy(table)
	if err != nil {
		log.Fatalf("Failed to copy table: %v", err)
	}
	defer dest.Release()
	fmt.Printf("Copied %d entries\n", copied)

	display(os.Stdout, dest)
}

func parseStrategy(name string) (chash.Strategy, bool) {
	for _, s := range []chash.Strategy{chash.Chaining, chash.LinearProbing, chash.QuadraticProbing, chash.DoubleHashing} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

func display(w io.Writer, t *chash.Table) {
	t.Range(func(index int, key uint16, value string) bool {
		fmt.Fprintf(w, "Slot %2d: key %5d value %s\n", index, key, value)
		return true
	})
}
