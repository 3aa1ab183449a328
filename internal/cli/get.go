package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	api "github.com/qualinet/review-planner/api/v1alpha1"
	"github.com/qualinet/review-planner/internal/client"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"

	ReviewKind = "review"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

type GetOptions struct {
	GlobalOptions

	Output  string
	Status  string
	Stage   string
	Overdue bool
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many reviews.",
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

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVar(&o.Status, "status", o.Status, "Filter reviews by workflow status")
	fs.StringVar(&o.Stage, "stage", o.Stage, "Filter reviews by workflow stage")
	fs.BoolVar(&o.Overdue, "overdue", o.Overdue, "Only show overdue reviews")
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if _, _, err := parseAndValidateKindId(args[0]); err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}

	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	_, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	if id != nil {
		review, err := c.GetReview(ctx, *id)
		if err != nil {
			return err
		}
		return printResource(review, o.Output, func() {
			printReviewTable(*review)
		})
	}

	list, err := c.ListReviews(ctx, client.ListFilter{Status: o.Status, Stage: o.Stage, Overdue: o.Overdue})
	if err != nil {
		return err
	}
	return printResource(list, o.Output, func() {
		printReviewTable(list.Items...)
	})
}

func parseAndValidateKindId(arg string) (string, *uuid.UUID, error) {
	kind, idStr, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if kind != ReviewKind {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}
	if idStr == "" {
		return kind, nil, nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid resource id: %w", err)
	}
	return kind, &id, nil
}

func singular(kind string) string {
	return strings.TrimSuffix(kind, "s")
}

func printResource(resource any, output string, table func()) error {
	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(resource, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case yamlFormat:
		data, err := yaml.Marshal(resource)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		table()
	}
	return nil
}

func printReviewTable(reviews ...api.Review) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMEMBER FIRM\tREVIEWER\tSTATUS\tSTAGE\t%\tOVERDUE")
	for _, r := range reviews {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%t\n",
			r.Id, r.MemberFirmId, r.ReviewerId, r.WorkflowStatus, r.CurrentStage, r.Percentage, r.IsOverdue)
	}
	w.Flush()
}
