package cmd

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/salespulse/salespulse/internal/analyze"
	"github.com/salespulse/salespulse/internal/config"
	"github.com/salespulse/salespulse/internal/pitch"
	"github.com/salespulse/salespulse/internal/store"
	"github.com/spf13/cobra"
)

var pitchSeed int64

var showPitchCmd = &cobra.Command{
	Use:   "show-pitch <customer-id>",
	Short: "Generate a personalized sales pitch for a customer",
	Long: `Build the personalized sales pitch and product recommendations for
one customer, exactly as the API would return them.

The pitch wording varies between runs; pass --seed to make it
reproducible.`,
	Args: cobra.ExactArgs(1),
	RunE: showPitch,
}

func init() {
	rootCmd.AddCommand(showPitchCmd)

	showPitchCmd.Flags().Int64Var(&pitchSeed, "seed", 0, "Random seed for pitch wording (0 = time-based)")
}

func showPitch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st := store.New(cfg.Data.Dir)
	if err := st.Ensure(cfg.GeneratorSettings()); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	customers, _ := st.Snapshot()

	customer, err := analyze.Profile(customers, args[0])
	if err != nil {
		return err
	}

	seed := pitchSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	p := pitch.Generate(*customer, rng)
	recs := pitch.Recommendations(*customer, rng)

	fmt.Printf("✉️  Subject: %s\n", p.Subject)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println(p.FullPitch)

	fmt.Println("\n🎁 Recommendations:")
	for i, r := range recs {
		fmt.Printf("   #%d [%s] %s | %s (%s)\n", i+1, r.Discount, r.Title, r.Description, r.Urgency)
	}

	return nil
}
