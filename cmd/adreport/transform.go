package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aerissecure/adreport"
	"github.com/aerissecure/adreport/internal/server"
)

var (
	transformOut string
	filterOut    string
	filterDay    string
)

var transformCmd = &cobra.Command{
	Use:   "transform IN.xlsx",
	Short: "Derive the daily report from a campaign export",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransform,
}

var filterCmd = &cobra.Command{
	Use:   "filter REPORT.xlsx --day Wed",
	Short: "Keep the report rows whose Day ends with the given weekday",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilter,
}

func init() {
	transformCmd.Flags().StringVarP(&transformOut, "output", "o", "processed_data.xlsx", "Output workbook")
	filterCmd.Flags().StringVarP(&filterOut, "output", "o", "", "Output workbook (default filtered_data_<day>.xlsx)")
	filterCmd.Flags().StringVar(&filterDay, "day", "", "Weekday suffix to match, e.g. Wed")
	_ = filterCmd.MarkFlagRequired("day")
}

func runTransform(cmd *cobra.Command, args []string) error {
	raw, err := readWith(args[0], adreport.ReadRawTable)
	if err != nil {
		return err
	}
	derived, err := adreport.Transform(raw)
	if err != nil {
		return errors.Wrapf(err, "transform %s", args[0])
	}
	if err := writeReport(transformOut, derived); err != nil {
		return err
	}
	log.WithFields(log.Fields{"in": args[0], "out": transformOut, "rows": derived.Len()}).Info("Report written.")
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	derived, err := readWith(args[0], adreport.ReadDerivedTable)
	if err != nil {
		return err
	}
	filtered, err := adreport.FilterWeekday(derived, filterDay)
	if err != nil {
		return err
	}
	if filtered.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No data found for the specified day.")
		return nil
	}
	out := filterOut
	if out == "" {
		out = server.FilteredName(filterDay)
	}
	if err := writeReport(out, filtered); err != nil {
		return err
	}
	log.WithFields(log.Fields{"in": args[0], "out": out, "day": filterDay, "rows": filtered.Len()}).Info("Filtered report written.")
	return nil
}

func readWith[T any](path string, read func(io.ReaderAt, int64) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrap(err, "open input")
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return zero, errors.Wrap(err, "stat input")
	}
	v, err := read(f, info.Size())
	if err != nil {
		return zero, errors.Wrapf(err, "read %s", path)
	}
	return v, nil
}

func writeReport(path string, t adreport.DerivedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := adreport.WriteDerivedTable(f, t); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}
