package commands

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/format"
)

type drawOptions struct {
	width, height uint32
	hold          time.Duration
	export        bool
}

func (a *app) drawCommand() *cobra.Command {
	o := &drawOptions{}
	cmd := &cobra.Command{
		Use:   "draw IMAGE",
		Short: "Scale an image into an XRGB8888 scanout buffer",
		Long: `draw decodes IMAGE (png, jpeg, gif, bmp or webp), scales it to the buffer
size and writes it into a mapped XRGB8888 dumb buffer. With --export the
buffer is shared as a prime descriptor while draw holds it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDraw(cmd, args[0], o)
		},
	}
	flags := cmd.Flags()
	flags.Uint32Var(&o.width, "width", 0, "buffer width, the image width when 0")
	flags.Uint32Var(&o.height, "height", 0, "buffer height, the image height when 0")
	flags.DurationVar(&o.hold, "hold", 0, "keep the buffer alive this long after drawing")
	flags.BoolVar(&o.export, "export", false, "export a prime descriptor for the buffer")
	return cmd
}

func (a *app) runDraw(cmd *cobra.Command, path string, o *drawOptions) error {
	out := cmd.OutOrStdout()

	src, err := decodeImage(path)
	if err != nil {
		return err
	}
	width, height := o.width, o.height
	if width == 0 {
		width = uint32(src.Bounds().Dx())
	}
	if height == 0 {
		height = uint32(src.Bounds().Dy())
	}

	card, dev, err := a.openDevice()
	if err != nil {
		return err
	}
	defer card.Close()
	defer dev.Destroy()

	bo, err := dev.CreateBO(width, height, format.XRGB8888, gbm.UseScanout|gbm.UseWrite, nil)
	if err != nil {
		return err
	}
	defer bo.Destroy()

	data, stride, err := bo.Map(0, 0, width, height, gbm.TransferWrite)
	if err != nil {
		return err
	}
	blitXRGB8888(data, int(stride), scaleImage(src, int(width), int(height)))
	bo.Unmap(data)
	printLayout(out, bo)

	if o.export {
		fd, err := bo.FD()
		if err != nil {
			return err
		}
		defer closeFD(fd)
		fmt.Fprintf(out, "Prime fd: %d (pid %d)\n", fd, os.Getpid())
	}

	if o.hold > 0 {
		select {
		case <-time.After(o.hold):
		case <-cmd.Context().Done():
		}
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// scaleImage resamples src to width x height. An image already of that
// size is converted without resampling.
func scaleImage(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// blitXRGB8888 stores img into a little-endian XRGB8888 mapping whose rows
// are stride bytes apart.
func blitXRGB8888(dst []byte, stride int, img *image.RGBA) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := dst[y*stride:]
		src := img.Pix[y*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			p := src[x*4:]
			v := uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
			binary.LittleEndian.PutUint32(row[x*4:], v)
		}
	}
}
