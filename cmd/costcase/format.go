package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/format"
	"github.com/dgallion1/costcase/internal/outstore"
)

func printSummary(w io.Writer, s *casestudy.Study) {
	money := func(v float64) string { return format.Number(v, 2) }
	line := func(label, value string) { fmt.Fprintf(w, "  %-44s %16s\n", label, value) }

	fmt.Fprintf(w, "PLAN (%s units/year)\n", format.Number(float64(s.Inputs.PlanVolume), 0))
	line("Production costs", money(s.Costs.Total))
	line("Full unit cost", money(s.UnitCost.Unit.Total()))
	line("Working capital", money(s.WorkingCapital.Total))
	line("Opening balance", money(s.Opening.Sheet.Active()))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PRICE")
	line("Full-cost price", money(s.Pricing.FullCostPrice))
	line("Variable-cost price", money(s.Pricing.VariableCostPrice))
	line("Plan price", money(s.Pricing.PlanPrice))
	line("Actual price", money(s.Pricing.ActualPrice))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "RESULTS %16s %16s\n", "plan", "actual")
	pair := func(label string, plan, actual float64) {
		fmt.Fprintf(w, "  %-28s %16s %16s\n", label, money(plan), money(actual))
	}
	r := s.Results
	pair("Revenue", r.Plan.Revenue, r.Actual.Revenue)
	pair("Sales profit", r.Plan.SalesProfit, r.Actual.SalesProfit)
	pair("Net profit", r.Plan.NetProfit, r.Actual.NetProfit)
	pair("Year-end cash", s.Closing.Plan.End, s.Closing.Actual.End)
	pair("Closing balance", s.Closing.PlanSheet.Active(), s.Closing.ActualSheet.Active())
	fmt.Fprintf(w, "  %-28s %16s %16s\n", "Loan repayment", s.Closing.Plan.Repayment, s.Closing.Actual.Repayment)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RATIOS")
	line("Break-even volume", format.Number(float64(s.Ratios.BreakEvenVolume), 0))
	line("Break-even revenue", money(s.Ratios.BreakEvenRevenue))
	line("Current liquidity (plan)", format.Plain(s.Ratios.CurrentLiquidity.Plan, 2))
	line("Sales return (plan), %", format.Percent(s.Ratios.SalesReturn.Plan, 2))
	line("Operating leverage (plan)", format.Plain(s.Ratios.OperatingLeverage.Plan, 2))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "COST TREE")
	fmt.Fprintln(w, s.Costs.Tree)
}

func printVolumes(w io.Writer, s *casestudy.Study) {
	fmt.Fprintf(w, "%10s %18s %18s %18s %14s\n", "volume", "fixed", "variable", "total", "per unit")
	for _, it := range s.Samples.Items() {
		v := it.Out
		fmt.Fprintf(w, "%10d %18s %18s %18s %14s\n",
			it.In,
			format.Number(v.Const(), 2),
			format.Number(v.Variable(), 2),
			format.Number(v.Total(), 2),
			format.Number(v.Total()/float64(it.In), 2))
	}
}

func printReports(w io.Writer, infos []outstore.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "no reports")
		return
	}
	fmt.Fprintf(w, "%-40s %12s  %-20s %s\n", "KEY", "SIZE", "MODIFIED", "ETAG")
	for _, info := range infos {
		fmt.Fprintf(w, "%-40s %12s  %-20s %s\n",
			info.Key,
			format.Number(float64(info.Size), 0),
			info.LastModified.UTC().Format(time.DateTime),
			info.ETag)
	}
}
