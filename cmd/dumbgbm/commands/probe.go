package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/drm"
	"github.com/NeowayLabs/gbm/format"
)

func (a *app) probeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Show driver, capabilities and formats of the card",
		Args:  cobra.NoArgs,
		RunE:  a.runProbe,
	}
}

func (a *app) runProbe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	f, err := openCard(a.cfg.Card)
	if err != nil {
		return err
	}
	defer f.Close()
	fd := int(f.Fd())
	card := drm.NewCard(fd)

	version, err := card.Version()
	if err != nil {
		return fmt.Errorf("%s: driver version: %w", a.cfg.Card, err)
	}
	fmt.Fprintf(out, "Card:     %s\n", a.cfg.Card)
	fmt.Fprintf(out, "Driver:   %s\n", version)
	if version.Desc != "" {
		fmt.Fprintf(out, "          %s\n", version.Desc)
	}

	dumbCap, err := card.GetCap(drm.CapDumbBuffer)
	if err != nil {
		fmt.Fprintf(out, "Dumb:     unknown (%v)\n", err)
	} else {
		fmt.Fprintf(out, "Dumb:     %t\n", dumbCap != 0)
	}
	prime, err := card.GetCap(drm.CapPrime)
	if err != nil {
		fmt.Fprintf(out, "Prime:    unknown (%v)\n", err)
	} else {
		fmt.Fprintf(out, "Prime:    %s\n", primeString(prime))
	}
	fmt.Fprintf(out, "Cursor:   %s\n", cursorString(card))
	fmt.Fprintf(out, "Backends: %s\n", strings.Join(gbm.Backends(), ", "))

	dev, err := gbm.CreateDevice(fd, "", nil)
	if err != nil {
		fmt.Fprintf(out, "Device:   unavailable (%v)\n", err)
		return nil
	}
	defer dev.Destroy()
	fmt.Fprintf(out, "Device:   %s backend, ABI %d\n\n", dev.BackendName(), dev.Version())

	return printFormats(out, dev)
}

func primeString(caps uint64) string {
	var parts []string
	if caps&drm.PrimeCapImport != 0 {
		parts = append(parts, "import")
	}
	if caps&drm.PrimeCapExport != 0 {
		parts = append(parts, "export")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// cursorString reports the largest cursor buffer the driver scans out.
func cursorString(k interface {
	GetCap(uint64) (uint64, error)
}) string {
	w, err := k.GetCap(drm.CapCursorWidth)
	if err != nil {
		return "unknown"
	}
	h, err := k.GetCap(drm.CapCursorHeight)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

// printFormats lists the catalog with the usages dev accepts for each
// format.
func printFormats(w io.Writer, dev gbm.Device) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tCODE\tBPP\tSCANOUT\tCURSOR\tRENDER")
	for _, f := range format.Formats() {
		fmt.Fprintf(tw, "%s\t%#08x\t%d\t%s\t%s\t%s\n",
			format.Name(f), f, format.BitsPerPixel(f),
			yesNo(dev.IsFormatSupported(f, gbm.UseScanout)),
			yesNo(dev.IsFormatSupported(f, gbm.UseCursor)),
			yesNo(dev.IsFormatSupported(f, gbm.UseRendering)),
		)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
