package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yqhp/pay-engine/pkg/types"
)

// runInput is the YAML fixture consumed by the run command.
type runInput struct {
	CrewMember        *types.CrewMemberProfile `yaml:"crew_member"`
	FlightAssignments []types.FlightAssignment `yaml:"flight_assignments"`
	PendingClaims     []types.Claim            `yaml:"pending_claims"`
	PayPeriodStart    string                   `yaml:"pay_period_start"`
	PayPeriodEnd      string                   `yaml:"pay_period_end"`
}

// runCmd 是 run 子命令
var runCmd = &cobra.Command{
	Use:   "run <input.yaml>",
	Short: "Execute one pay calculation from a fixture file",
	Long: `Executes a single pay calculation synchronously and prints the
finalized breakdown. The input file carries the crew member profile, the
flight assignments for the period, optional pending claims, and the pay
period dates.`,
	Example: `  # Run a pay calculation
  pay-engine run fixtures/november.yaml

  # With debug logging
  pay-engine run --debug fixtures/november.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculation,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runCalculation(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	var input runInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine, auditor, _, claims, err := buildEngine(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer auditor.Close()

	if input.CrewMember != nil {
		for _, claim := range input.PendingClaims {
			claims.Add(input.CrewMember.EmployeeID, claim)
		}
	}

	st, err := engine.Run(context.Background(), input.CrewMember, input.FlightAssignments,
		input.PayPeriodStart, input.PayPeriodEnd)
	if err != nil {
		return err
	}

	printSummary(st)
	return nil
}

func printSummary(st *types.ExecutionState) {
	fmt.Printf("Execution ID: %s\n", st.ExecutionID)
	fmt.Printf("Status:       %s\n", st.Status)
	fmt.Printf("Needs Review: %v\n", st.RequiresHumanReview)

	if st.Breakdown != nil {
		b := st.Breakdown
		fmt.Printf("Total Hours:  %.2f\n", b.TotalHours)
		fmt.Printf("Confidence:   %.2f\n", b.ConfidenceScore)
		fmt.Println("Pay Breakdown:")
		fmt.Printf("  base pay:    $%.2f\n", b.BasePay)
		fmt.Printf("  per diem:    $%.2f\n", b.PerDiem)
		fmt.Printf("  premium pay: $%.2f\n", b.PremiumPay)
		if b.ClaimsPay > 0 {
			fmt.Printf("  claims pay:  $%.2f\n", b.ClaimsPay)
		}
		fmt.Printf("  total pay:   $%.2f\n", b.TotalPay)
	}

	if len(st.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range st.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(st.ErrorLog) > 0 {
		fmt.Println("Errors:")
		for _, e := range st.ErrorLog {
			fmt.Printf("  - %s\n", e)
		}
	}
}
