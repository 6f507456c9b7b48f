package cli

import (
	"errors"
	"fmt"

	"portfolio-contact-api/internal/contactform"

	"github.com/spf13/cobra"
)

const defaultEndpoint = "http://localhost:8080/api/contact"

// errSubmissionFailed makes the process exit non-zero after the status was printed
var errSubmissionFailed = errors.New("submission failed")

func sendCmd() *cobra.Command {
	var endpoint, name, email, message string
	var verbose bool

	c := &cobra.Command{
		Use:   "send",
		Short: "Send one contact message (no retry)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			var opts []contactform.Option
			if verbose {
				opts = append(opts, contactform.WithOnChange(func(s contactform.Snapshot) {
					fmt.Fprintf(out, "[%s]\n", s.Status.State)
				}))
			}

			form := contactform.New(contactform.NewClient(endpoint, nil), opts...)
			_ = form.Set(contactform.FieldName, name)
			_ = form.Set(contactform.FieldEmail, email)
			_ = form.Set(contactform.FieldMessage, message)

			st, err := form.Submit(cmd.Context())
			if errors.Is(err, contactform.ErrIncomplete) {
				return errors.New(contactform.MsgFillAllFields)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, st.Message)
			if st.State != contactform.StateSuccess {
				return errSubmissionFailed
			}
			return nil
		},
	}

	c.Flags().StringVar(&endpoint, "endpoint", defaultEndpoint, "Contact endpoint URL")
	c.Flags().StringVarP(&name, "name", "n", "", "Your name")
	c.Flags().StringVarP(&email, "email", "e", "", "Reply address")
	c.Flags().StringVarP(&message, "message", "m", "", "Message body")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print state transitions")
	return c
}
