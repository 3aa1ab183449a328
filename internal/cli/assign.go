package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

type AssignOptions struct {
	GlobalOptions

	ReviewerID string
	StartDate  string
	EndDate    string
	DueDate    string
	Mode       string
}

func DefaultAssignOptions() *AssignOptions {
	return &AssignOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Mode:          api.ReviewModeRemote,
	}
}

func NewCmdAssign() *cobra.Command {
	o := DefaultAssignOptions()
	cmd := &cobra.Command{
		Use:   "assign REVIEW_ID",
		Short: "Assign a reviewer and schedule the review.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *AssignOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.ReviewerID, "reviewer", o.ReviewerID, "Reviewer to assign")
	fs.StringVar(&o.StartDate, "start", o.StartDate, "Planned start date (YYYY-MM-DD)")
	fs.StringVar(&o.EndDate, "end", o.EndDate, "Planned end date (YYYY-MM-DD)")
	fs.StringVar(&o.DueDate, "due", o.DueDate, "Completion due date (YYYY-MM-DD)")
	fs.StringVar(&o.Mode, "mode", o.Mode, "Review mode (remote, onsite, other)")
}

func (o *AssignOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.ReviewerID == "" {
		return fmt.Errorf("--reviewer is required")
	}
	for _, d := range []string{o.StartDate, o.EndDate, o.DueDate} {
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return fmt.Errorf("dates must be in YYYY-MM-DD format: %w", err)
		}
	}
	return nil
}

func (o *AssignOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	start, _ := time.Parse(time.DateOnly, o.StartDate)
	end, _ := time.Parse(time.DateOnly, o.EndDate)
	due, _ := time.Parse(time.DateOnly, o.DueDate)

	review, err := o.Client().Assign(ctx, *id, api.AssignForm{
		ReviewerId: o.ReviewerID,
		StartDate:  start,
		EndDate:    end,
		DueDate:    due,
		ReviewMode: o.Mode,
	})
	if err != nil {
		return fmt.Errorf("assigning review: %w", err)
	}

	fmt.Printf("review %s assigned to %s, status %s\n", review.Id, review.ReviewerId, review.WorkflowStatus)
	return nil
}
