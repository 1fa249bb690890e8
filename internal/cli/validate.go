package cli

import (
	"github.com/BartekS5/RCV/internal/rules"
	"github.com/BartekS5/RCV/internal/validation"
	"github.com/spf13/cobra"
)

type ValidateOptions struct {
	RulesDoc     string
	DatasetPath  string
	Source       string
	SQLTable     string
	SQLOrderBy   string
	BatchSize    int
	GroupKey     string
	AmountColumn string
	Threshold    float64
	Store        bool
}

func NewValidateCmd() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a dataset against a regulatory rules document",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidation(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.RulesDoc, "rules", "r", "", "Path to the regulatory rules document (.pdf or plain text)")
	cmd.Flags().StringVarP(&opts.DatasetPath, "dataset", "d", "", "Path to the dataset file (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.Source, "source", "file", "Dataset source: file or sql")
	cmd.Flags().StringVar(&opts.SQLTable, "table", "", "SQL table to read when --source sql")
	cmd.Flags().StringVar(&opts.SQLOrderBy, "order-by", "", "Column fixing SQL row order (used with --source sql)")
	cmd.Flags().IntVarP(&opts.BatchSize, "batch-size", "b", validation.DefaultBatchSize, "Rows per validation batch")
	cmd.Flags().StringVar(&opts.GroupKey, "group-key", "Customer_ID", "Column used to group rows for aggregation")
	cmd.Flags().StringVar(&opts.AmountColumn, "amount-column", "Transaction_Amt", "Column summed per group")
	cmd.Flags().Float64Var(&opts.Threshold, "similarity-threshold", rules.DefaultSimilarityThreshold, "Minimum similarity for rule field mapping")
	cmd.Flags().BoolVar(&opts.Store, "store", false, "Store violation records in MongoDB")
	cmd.MarkFlagRequired("rules")

	return cmd
}
