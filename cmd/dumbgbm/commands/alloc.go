package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sys/unix"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/format"
)

type allocOptions struct {
	width, height uint32
	format        string
	fill          uint8
	cursor        bool
	export        bool
	dump          string
}

func (a *app) allocCommand() *cobra.Command {
	o := &allocOptions{}
	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Allocate a dumb buffer, fill it and print its layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAlloc(cmd.OutOrStdout(), o)
		},
	}
	flags := cmd.Flags()
	flags.Uint32Var(&o.width, "width", 256, "buffer width in pixels")
	flags.Uint32Var(&o.height, "height", 256, "buffer height in pixels")
	flags.StringVar(&o.format, "format", "XR24", "fourcc of the pixel format")
	flags.Uint8Var(&o.fill, "fill", 0xff, "byte written over the whole buffer")
	flags.BoolVar(&o.cursor, "cursor", false, "allocate for cursor use instead of scanout")
	flags.BoolVar(&o.export, "export", false, "export a prime descriptor")
	flags.StringVar(&o.dump, "dump", "", "write the packed pixel rows to this file")
	return cmd
}

func (a *app) runAlloc(out io.Writer, o *allocOptions) error {
	f, err := format.Parse(o.format)
	if err != nil {
		return err
	}
	usage := gbm.UseScanout | gbm.UseWrite
	if o.cursor {
		usage = gbm.UseCursor | gbm.UseWrite
	}

	card, dev, err := a.openDevice()
	if err != nil {
		return err
	}
	defer card.Close()
	defer dev.Destroy()

	bo, err := dev.CreateBO(o.width, o.height, f, usage, nil)
	if err != nil {
		return err
	}
	defer bo.Destroy()

	if err := bo.Write(bytes.Repeat([]byte{o.fill}, int(bo.Size()))); err != nil {
		return err
	}
	printLayout(out, bo)

	if o.export {
		fd, err := bo.FD()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Prime fd: %d\n", fd)
		closeFD(fd)
	}

	if o.dump != "" {
		data, stride, err := bo.Map(0, 0, bo.Width(), bo.Height(), gbm.TransferRead)
		if err != nil {
			return err
		}
		defer bo.Unmap(data)

		file, err := os.Create(o.dump)
		if err != nil {
			return err
		}
		defer file.Close()
		rowBytes := int(bo.Width() * format.BytesPerPixel(bo.Format()))
		n, err := dumpRows(file, data, int(stride), rowBytes, int(bo.Height()))
		if err != nil {
			return fmt.Errorf("dump %s: %w", o.dump, err)
		}
		fmt.Fprintf(out, "Dumped:   %d bytes to %s\n", n, o.dump)
	}
	return nil
}

func closeFD(fd int) {
	_ = unix.Close(fd)
}

func printLayout(w io.Writer, bo gbm.BO) {
	h, _ := bo.Handle().Uint32()
	fmt.Fprintf(w, "Format:   %s (%d bpp)\n", format.Name(bo.Format()), bo.Bpp())
	fmt.Fprintf(w, "Size:     %dx%d\n", bo.Width(), bo.Height())
	fmt.Fprintf(w, "Handle:   %d\n", h)
	fmt.Fprintf(w, "Stride:   %d\n", bo.Stride())
	fmt.Fprintf(w, "Bytes:    %d\n", bo.Size())
	fmt.Fprintf(w, "Modifier: %#x\n", bo.Modifier())
}

// dumpRows writes height rows of rowBytes each, dropping the padding
// between rowBytes and stride.
func dumpRows(w io.Writer, data []byte, stride, rowBytes, height int) (int64, error) {
	if height <= 0 {
		return 0, nil
	}
	if rowBytes > stride || stride*(height-1)+rowBytes > len(data) {
		return 0, fmt.Errorf("%d rows of %d bytes at stride %d overrun %d byte mapping",
			height, rowBytes, stride, len(data))
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for y := 0; y < height; y++ {
		row := data[y*stride : y*stride+rowBytes]
		buf.Write(row)
	}
	return buf.WriteTo(w)
}
