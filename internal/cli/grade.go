package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

type RateOptions struct {
	GlobalOptions

	Grade    int
	Comments string
	Hours    float64
}

func DefaultRateOptions() *RateOptions {
	return &RateOptions{GlobalOptions: DefaultGlobalOptions()}
}

func NewCmdRate() *cobra.Command {
	o := DefaultRateOptions()
	cmd := &cobra.Command{
		Use:   "rate REVIEW_ID",
		Short: "Submit the reviewer rating for verification.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *RateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.IntVar(&o.Grade, "grade", o.Grade, "Grade on the 1-5 scale")
	fs.StringVar(&o.Comments, "comments", o.Comments, "Detailed comments supporting the grade")
	fs.Float64Var(&o.Hours, "hours", o.Hours, "Hours spent on the review")
}

func (o *RateOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	review, err := o.Client().SubmitRating(ctx, *id, api.RatingForm{
		Grade:      o.Grade,
		Comments:   o.Comments,
		HoursSpent: o.Hours,
	})
	if err != nil {
		return fmt.Errorf("submitting rating: %w", err)
	}

	fmt.Printf("review %s submitted for verification\n", review.Id)
	return nil
}

type VerifyOptions struct {
	GlobalOptions

	Grade     int
	Agreement string
	Notes     string
}

func DefaultVerifyOptions() *VerifyOptions {
	return &VerifyOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Agreement:     api.AgreementFull,
	}
}

func NewCmdVerify() *cobra.Command {
	o := DefaultVerifyOptions()
	cmd := &cobra.Command{
		Use:   "verify REVIEW_ID",
		Short: "Countersign a submitted rating as technical director.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VerifyOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.IntVar(&o.Grade, "grade", o.Grade, "Verified grade on the 1-5 scale")
	fs.StringVar(&o.Agreement, "agreement", o.Agreement, "Agreement level (full, partial, disagree)")
	fs.StringVar(&o.Notes, "notes", o.Notes, "Verification notes")
}

func (o *VerifyOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	review, err := o.Client().Verify(ctx, *id, api.VerificationForm{
		Grade:          o.Grade,
		AgreementLevel: o.Agreement,
		Notes:          o.Notes,
	})
	if err != nil {
		return fmt.Errorf("verifying review: %w", err)
	}

	fmt.Printf("review %s verified, status %s\n", review.Id, review.WorkflowStatus)
	return nil
}

type FinalizeOptions struct {
	GlobalOptions

	Grade    int
	Notes    string
	FollowUp bool
	Revise   bool
	Reason   string
}

func DefaultFinalizeOptions() *FinalizeOptions {
	return &FinalizeOptions{GlobalOptions: DefaultGlobalOptions()}
}

func NewCmdFinalize() *cobra.Command {
	o := DefaultFinalizeOptions()
	cmd := &cobra.Command{
		Use:   "finalize REVIEW_ID",
		Short: "Record the final sign-off, or send the review back for revision.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *FinalizeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.IntVar(&o.Grade, "grade", o.Grade, "Final grade on the 1-5 scale")
	fs.StringVar(&o.Notes, "notes", o.Notes, "Decision notes")
	fs.BoolVar(&o.FollowUp, "follow-up", o.FollowUp, "Flag the firm for follow-up")
	fs.BoolVar(&o.Revise, "revise", o.Revise, "Send the review back for revision instead of finalizing")
	fs.StringVar(&o.Reason, "reason", o.Reason, "Revision reason, with --revise")
}

func (o *FinalizeOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	if o.Revise {
		review, err := o.Client().RequestRevision(ctx, *id, api.RevisionForm{Reason: o.Reason})
		if err != nil {
			return fmt.Errorf("requesting revision: %w", err)
		}
		fmt.Printf("review %s sent back for revision\n", review.Id)
		return nil
	}

	review, err := o.Client().Finalize(ctx, *id, api.FinalReviewForm{
		FinalGrade:       o.Grade,
		DecisionNotes:    o.Notes,
		FollowUpRequired: o.FollowUp,
	})
	if err != nil {
		return fmt.Errorf("finalizing review: %w", err)
	}

	fmt.Printf("review %s completed with final grade %d\n", review.Id, o.Grade)
	return nil
}
