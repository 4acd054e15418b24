// Command kerf previews laser-cutting toolpaths in SVG drawings.
//
// It reads a drawing, computes the document-to-machine mapping for the
// configured bed and origin convention, and writes the drawing back with a
// regenerated debug overlay: directional traces over every toolpath and
// labeled reference markers at the bed's four corners. Optionally it also
// renders a PNG preview of the overlay scene.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/tsawler/kerf"
	"github.com/tsawler/kerf/overlay"
	"github.com/tsawler/kerf/schema"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

var (
	// Flags
	source      = flag.String("in", "", "source SVG file")
	destination = flag.String("out", pipeName, "destination SVG file (default: stdout)")
	bedWidth    = flag.Float64("bed-width", 0, "bed width in machine units")
	bedHeight   = flag.Float64("bed-height", 0, "bed height in machine units")
	unit        = flag.String("unit", "", "unit symbol for reference labels")
	origin      = flag.String("origin", "", "machine origin: top-left, bottom-left, center")
	offsetX     = flag.Float64("offset-x", 0, "horizontal machine offset")
	offsetY     = flag.Float64("offset-y", 0, "vertical machine offset")
	scale       = flag.Float64("scale", 1.0, "uniform scale factor")
	tolerance   = flag.Float64("tolerance", 0, "curve approximation tolerance (0 = default)")
	noOverlay   = flag.Bool("no-overlay", false, "remove any existing overlay instead of regenerating it")
	previewPath = flag.String("preview", "", "also write a PNG preview to this path")
	previewW    = flag.Int("preview-width", 800, "preview image width in pixels")
	previewH    = flag.Int("preview-height", 600, "preview image height in pixels")
	schemaPath  = flag.String("schema", "", "parameter descriptor (.inx) supplying defaults")
)

func main() {
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "error: -in SVG file is required")
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := applySchemaDefaults(); err != nil {
		return err
	}

	job := kerf.Open(*source).
		Bed(*bedWidth, *bedHeight).
		Offset(*offsetX, *offsetY).
		ScaleFactor(*scale)
	if *unit != "" {
		job = job.Unit(*unit)
	}
	if *origin != "" {
		job = job.OriginName(*origin)
	}
	if *tolerance > 0 {
		job = job.Tolerance(*tolerance)
	}

	if *previewPath != "" && !*noOverlay {
		if err := writePreview(job); err != nil {
			return err
		}
	}

	if *noOverlay {
		doc, err := job.Document()
		if err != nil {
			return err
		}
		overlay.Clear(doc)
	} else {
		curves, err := job.Curves()
		if err != nil {
			return err
		}
		if _, err := job.Overlay(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "kerf: %d toolpath curves, origin %s, bed %gx%g\n",
			len(curves), *origin, *bedWidth, *bedHeight)
	}

	return writeDocument(job)
}

// applySchemaDefaults fills flags the user did not set from a parameter
// descriptor, falling back to built-in defaults.
func applySchemaDefaults() error {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var s *schema.Schema
	if *schemaPath != "" {
		loaded, err := schema.LoadFile(*schemaPath)
		if err != nil {
			return err
		}
		s = loaded
	}

	defaultStr := func(flagName, paramName, fallback string, dst *string) {
		if set[flagName] {
			return
		}
		if s != nil {
			*dst = s.Default(paramName, fallback)
			return
		}
		*dst = fallback
	}
	defaultFloat := func(flagName, paramName string, fallback float64, dst *float64) {
		if set[flagName] {
			return
		}
		if s != nil {
			*dst = s.FloatDefault(paramName, fallback)
			return
		}
		*dst = fallback
	}

	defaultStr("unit", "unit", "mm", unit)
	defaultStr("origin", "machine_origin", "bottom-left", origin)
	defaultFloat("bed-width", "bed_width", *bedWidth, bedWidth)
	defaultFloat("bed-height", "bed_height", *bedHeight, bedHeight)
	defaultFloat("offset-x", "horizontal_offset", *offsetX, offsetX)
	defaultFloat("offset-y", "vertical_offset", *offsetY, offsetY)
	defaultFloat("scale", "scaling_factor", *scale, scale)

	// Enum values declared in the descriptor constrain the origin flag.
	if s != nil {
		if p, ok := s.Lookup("machine_origin"); ok && !p.Allows(*origin) {
			return fmt.Errorf("origin %q not allowed by descriptor (choices: %v)", *origin, p.Choices)
		}
	}
	return nil
}

func writePreview(job *kerf.Job) error {
	img, err := job.Preview(*previewW, *previewH)
	if err != nil {
		return err
	}

	f, err := os.Create(*previewPath)
	if err != nil {
		return fmt.Errorf("creating preview file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}

func writeDocument(job *kerf.Job) error {
	if *destination == pipeName {
		return job.WriteTo(os.Stdout)
	}

	f, err := os.Create(*destination)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	return job.WriteTo(f)
}
