package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hborlik/scwfc/objectdb"
)

var validateCmd = &cobra.Command{
	Use:   "validate <db.json>",
	Short: "Load a database and report I1/I2 invariant violations",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := getLogger()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	db, err := objectdb.Load(f)
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	known := make(map[int64]bool)
	for _, c := range db.ClassIDs() {
		known[int64(c)] = true
	}

	warnings := 0
	for id, p := range db.MakePatternMap() {
		if !known[p.ClassID] {
			log.Warn("pattern %d: dangling class_id %d (I1 violation, unreachable)", id, p.ClassID)
			warnings++
		}
		for _, req := range p.RequiredClasses {
			if !known[req] {
				log.Warn("pattern %d: orphaned required class %d (I1 violation)", id, req)
				warnings++
			}
		}
	}

	if warnings == 0 {
		fmt.Println("database valid: no I1/I2 violations found")
		return nil
	}
	fmt.Printf("database has %d I1/I2 violation(s); see warnings above\n", warnings)
	return nil
}
