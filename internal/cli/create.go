package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

type CreateOptions struct {
	GlobalOptions

	MemberFirmID   string
	Type           string
	ReviewType     int
	PreviousRating int
}

func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Type:          api.ReviewTypeCurrentMember,
		ReviewType:    8,
	}
}

func NewCmdCreate() *cobra.Command {
	o := DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new review.",
		Args:  cobra.NoArgs,
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

func (o *CreateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.MemberFirmID, "member-firm", o.MemberFirmID, "Member firm under review")
	fs.StringVar(&o.Type, "type", o.Type, "Review type (current-member, prospect)")
	fs.IntVar(&o.ReviewType, "hours", o.ReviewType, "Review hour bucket (5, 8, 18)")
	fs.IntVar(&o.PreviousRating, "previous-rating", o.PreviousRating, "Grade of the previous review, if any")
}

func (o *CreateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.MemberFirmID == "" {
		return fmt.Errorf("--member-firm is required")
	}
	return nil
}

func (o *CreateOptions) Run(ctx context.Context, args []string) error {
	form := api.ReviewCreateForm{
		MemberFirmId: o.MemberFirmID,
		Type:         o.Type,
		ReviewType:   o.ReviewType,
	}
	if o.PreviousRating > 0 {
		form.PreviousRating = &o.PreviousRating
	}

	review, err := o.Client().CreateReview(ctx, form)
	if err != nil {
		return fmt.Errorf("creating review: %w", err)
	}

	fmt.Printf("review %s created\n", review.Id)
	return nil
}
