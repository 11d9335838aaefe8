package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/tundavala/escola/core"
	"github.com/tundavala/escola/core/tuition"
)

func (cli *commandLine) quote(level, mode string, students int, early bool) error {
	q, err := tuition.Calculate(
		tuition.EducationLevel(core.CleanString(level)),
		tuition.PaymentMode(core.CleanString(mode)),
		students,
		early,
	)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "education level\t%s\t\n", q.EducationLevel)
	fmt.Fprintf(w, "payment mode\t%s\t\n", q.PaymentMode)
	fmt.Fprintf(w, "students\t%d\t\n", q.StudentCount)
	fmt.Fprintf(w, "base price\t%s\t\n", q.BasePrice.StringFixed(2))
	fmt.Fprintf(w, "subtotal\t%s\t\n", q.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "discount\t%d%%\t\n", q.Discount)
	fmt.Fprintf(w, "discount amount\t%s\t\n", q.DiscountAmount.StringFixed(2))
	fmt.Fprintf(w, "final amount\t%s\t\n", q.FinalAmount.StringFixed(2))
	fmt.Fprintf(w, "installment amount\t%s\t\n", q.InstallmentAmount.StringFixed(2))
	return w.Flush()
}
