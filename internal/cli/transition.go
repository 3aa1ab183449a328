package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

func parseReviewID(arg string) (string, *uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return "", nil, fmt.Errorf("invalid review id: %w", err)
	}
	return ReviewKind, &id, nil
}

type AcceptOptions struct {
	GlobalOptions

	AsFirm bool
}

func DefaultAcceptOptions() *AcceptOptions {
	return &AcceptOptions{GlobalOptions: DefaultGlobalOptions()}
}

func NewCmdAccept() *cobra.Command {
	o := DefaultAcceptOptions()
	cmd := &cobra.Command{
		Use:   "accept REVIEW_ID",
		Short: "Accept an assigned review as the reviewer or the member firm.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *AcceptOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.BoolVar(&o.AsFirm, "firm", o.AsFirm, "Accept on behalf of the member firm")
}

func (o *AcceptOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	var review *api.Review
	if o.AsFirm {
		review, err = o.Client().AcceptByFirm(ctx, *id)
	} else {
		review, err = o.Client().AcceptByReviewer(ctx, *id)
	}
	if err != nil {
		return fmt.Errorf("accepting review: %w", err)
	}

	fmt.Printf("review %s accepted, status %s\n", review.Id, review.WorkflowStatus)
	return nil
}

type RejectOptions struct {
	GlobalOptions

	Reason string
}

func DefaultRejectOptions() *RejectOptions {
	return &RejectOptions{GlobalOptions: DefaultGlobalOptions()}
}

func NewCmdReject() *cobra.Command {
	o := DefaultRejectOptions()
	cmd := &cobra.Command{
		Use:   "reject REVIEW_ID",
		Short: "Reject a review before acceptance completes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *RejectOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.Reason, "reason", o.Reason, "Reason for the rejection")
}

func (o *RejectOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	review, err := o.Client().Reject(ctx, *id, api.RejectForm{Reason: o.Reason})
	if err != nil {
		return fmt.Errorf("rejecting review: %w", err)
	}

	fmt.Printf("review %s rejected\n", review.Id)
	return nil
}

type StartOptions struct {
	GlobalOptions
}

func DefaultStartOptions() *StartOptions {
	return &StartOptions{GlobalOptions: DefaultGlobalOptions()}
}

func NewCmdStart() *cobra.Command {
	o := DefaultStartOptions()
	cmd := &cobra.Command{
		Use:   "start REVIEW_ID",
		Short: "Start working on an accepted review.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.GlobalOptions.Bind(cmd.Flags())
	return cmd
}

func (o *StartOptions) Run(ctx context.Context, args []string) error {
	_, id, err := parseReviewID(args[0])
	if err != nil {
		return err
	}

	review, err := o.Client().StartWork(ctx, *id)
	if err != nil {
		return fmt.Errorf("starting review: %w", err)
	}

	fmt.Printf("review %s in progress\n", review.Id)
	return nil
}
