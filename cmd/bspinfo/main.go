// Command bspinfo inspects VBSP map files from the command line:
// a thin cobra front end over the srcbsp library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vortigaunt/srcbsp/internal/bsp"
	"github.com/vortigaunt/srcbsp/internal/bsp/entities"
	"github.com/vortigaunt/srcbsp/internal/bsp/pakfile"
	"github.com/vortigaunt/srcbsp/internal/bsp/sprp"
)

var rootCmd = &cobra.Command{
	Use:   "bspinfo",
	Short: "bspinfo inspects Source engine VBSP map files.",
	Long:  `bspinfo prints the lump directory, dumps entities, lists static props, and lists or extracts files from the PAKFILE lump of a VBSP map. It does not modify the map.`,
}

var printCmd = &cobra.Command{
	Use:   "print <map.bsp>",
	Short: "Print the lump directory and game lump directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := bsp.Open(args[0])
		if err != nil {
			return err
		}

		fmt.Println("Filename:", bf.Filename)
		fmt.Println(" Version:", bsp.VersionName(bf.Version))
		fmt.Println("   Lumps:")
		for i := 0; i < bsp.NumLumps; i++ {
			l := bf.Lumps[i]
			if len(l.Data) == 0 && l.Type != bsp.LumpEntities {
				continue
			}
			fmt.Printf("     %-28s %8.1f kB  v%-3d\n", l.Type, float64(len(l.Data))/1024.0, l.Version)
		}

		if bf.GameLumps.Len() > 0 {
			fmt.Println(" GameLumps:")
			for _, g := range bf.GameLumps.All() {
				fmt.Printf("     %-8q %8.1f kB  v%-3d\n", string(g.ID[:]), float64(len(g.Data))/1024.0, g.Version)
			}
		}
		return nil
	},
}

var entitiesCmd = &cobra.Command{
	Use:   "entities <map.bsp>",
	Short: "Print a summary of the entity lump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := bsp.Open(args[0])
		if err != nil {
			return err
		}
		vmf, err := entities.Parse(bf.Lump(bsp.LumpEntities).Data)
		if err != nil {
			return err
		}
		fmt.Println("worldspawn:", len(vmf.World.KeyValues), "keys,", len(vmf.World.Outputs), "outputs")
		fmt.Println("entities:", len(vmf.Entities))
		counts := map[string]int{}
		for _, e := range vmf.Entities {
			counts[e.Classname()]++
		}
		for class, n := range counts {
			fmt.Printf("  %-32s %d\n", class, n)
		}
		return nil
	},
}

var propsCmd = &cobra.Command{
	Use:   "props <map.bsp>",
	Short: "List static props from the sprp game lump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := bsp.Open(args[0])
		if err != nil {
			return err
		}
		g, ok := bf.GameLumps.Get(sprpID())
		if !ok {
			fmt.Println("no sprp game lump present")
			return nil
		}
		props, err := sprp.Decode(g.Data, int32(g.Version))
		if err != nil {
			return err
		}
		for i, p := range props {
			fmt.Printf("%4d  %-48s  (%.1f, %.1f, %.1f)\n", i, p.Model, p.Origin.X, p.Origin.Y, p.Origin.Z)
		}
		return nil
	},
}

var pakListCmd = &cobra.Command{
	Use:   "pak-list <map.bsp>",
	Short: "List the files embedded in the PAKFILE lump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := bsp.Open(args[0])
		if err != nil {
			return err
		}
		names, err := pakfile.Names(bf.Lump(bsp.LumpPakfile).Data)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var pakExtractCmd = &cobra.Command{
	Use:   "pak-extract <map.bsp> <entry-name> <output-path>",
	Short: "Extract a single file from the PAKFILE lump",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := bsp.Open(args[0])
		if err != nil {
			return err
		}
		data, err := pakfile.ReadFile(bf.Lump(bsp.LumpPakfile).Data, args[1])
		if err != nil {
			return err
		}
		return os.WriteFile(args[2], data, 0o644)
	},
}

// sprpID is the in-memory 4-byte game lump id for static props. On disk the
// id is stored byte-reversed ("prps"); Open undoes that swap for every game
// lump id, so lookups use the unreversed form.
func sprpID() [4]byte { return [4]byte{'s', 'p', 'r', 'p'} }

func init() {
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(entitiesCmd)
	rootCmd.AddCommand(propsCmd)
	rootCmd.AddCommand(pakListCmd)
	rootCmd.AddCommand(pakExtractCmd)
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bspinfo:", err)
		os.Exit(1)
	}
}
