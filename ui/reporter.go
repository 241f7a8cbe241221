package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/mgutz/ansi"

	"disfork/auth"
	"disfork/deleter"
	"disfork/scan"
)

var (
	red    = ansi.ColorFunc("red+b")
	green  = ansi.ColorFunc("green+b")
	cyan   = ansi.ColorFunc("cyan+b")
	yellow = ansi.ColorFunc("yellow+b")
)

const (
	batchCooldown  = 20 * time.Second
	singleCooldown = 5 * time.Second
)

type Reporter struct {
	out   io.Writer
	in    *bufio.Reader
	clock clock.Clock
}

func NewReporter(out io.Writer, in io.Reader, clk clock.Clock) *Reporter {
	return &Reporter{
		out:   out,
		in:    bufio.NewReader(in),
		clock: clk,
	}
}

func (r *Reporter) Info(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s %s\n", cyan("i"), fmt.Sprintf(format, args...))
}

func (r *Reporter) Success(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s %s\n", green("+"), fmt.Sprintf(format, args...))
}

func (r *Reporter) Failure(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "%s %s\n", red("x"), fmt.Sprintf(format, args...))
}

func (r *Reporter) DeviceCode(code auth.DeviceCode) {
	r.Info("Visit: %s", green(code.VerificationURI))
	r.Info("And enter code: %s", yellow(code.UserCode))
	r.Info("Waiting for authorization...")
}

func (r *Reporter) Progress(v scan.Verdict) {
	switch {
	case v.Err != nil:
		r.Failure("%s - %s", v.Repo.FullName(), v.Err)
	case v.Useless:
		fmt.Fprintf(r.out, "%s %s - %s\n", cyan("-"), v.Repo.FullName(), red(v.Reason.String()))
	default:
		fmt.Fprintf(r.out, "%s %s - %s\n", cyan("-"), v.Repo.FullName(), v.Reason.String())
	}
}

// WaitForEnter blocks until the user presses Enter.
func (r *Reporter) WaitForEnter() error {
	_, err := r.in.ReadString('\n')
	return err
}

func (r *Reporter) Confirm(count int) (bool, error) {
	if count > 1 {
		fmt.Fprintf(r.out, "Are you sure you want to delete %d repositories? [y/N] ", count)
	} else {
		fmt.Fprint(r.out, "Are you sure you want to delete this repository? [y/N] ")
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Cooldown gives the user a last chance to interrupt before anything is
// deleted; longer for batches.
func (r *Reporter) Cooldown(count int) {
	wait := singleCooldown
	if count > 1 {
		wait = batchCooldown
	}

	r.Info("Deleting in %s (interrupt to abort)...", wait)

	for remaining := wait; remaining > 0; remaining -= time.Second {
		fmt.Fprintf(r.out, "\r%s %ds ", yellow("~"), int(remaining/time.Second))
		r.clock.Sleep(time.Second)
	}
	fmt.Fprint(r.out, "\r")
}

func (r *Reporter) DeletionReport(report deleter.Report) {
	if report.DryRun {
		for _, repo := range report.WouldDelete {
			r.Info("Would delete %s", repo.FullName())
		}
		r.Success("Dry run - nothing was deleted")
		return
	}

	for _, repo := range report.Succeeded {
		r.Success("Deleted %s", repo.FullName())
	}

	for name, err := range report.Failed {
		r.Failure("Failed to delete %s: %s", name, err)
	}

	r.Success("Deleted %d of %d repositories", len(report.Succeeded), len(report.Succeeded)+len(report.Failed))
}
