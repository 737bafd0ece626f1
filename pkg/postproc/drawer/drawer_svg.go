// Package drawer renders the cutter profiles sketched during a pipeline run
// to an SVG file, one coloured path per profile. It exists for visual
// debugging of parameter sets before handing them to a real kernel.
package drawer

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/cogforge/gearpost/pkg/geom"
)

const maxRGB = 240

// arcChords is the number of chords used to flatten one arc for rendering.
const arcChords = 32

// SVGDrawer collects sketched profiles and writes them to an SVG file.
type SVGDrawer struct {
	svgFileName string
	profiles    []namedProfile
}

type namedProfile struct {
	step    string
	profile *geom.Profile
}

// NewSVGDrawer creates a drawer writing to the given file.
func NewSVGDrawer(svgFileName string) *SVGDrawer {
	return &SVGDrawer{svgFileName: svgFileName}
}

// AddProfile records one profile sketched by the named step.
func (d *SVGDrawer) AddProfile(step string, p *geom.Profile) {
	d.profiles = append(d.profiles, namedProfile{step: step, profile: p})
}

// Draw writes the collected profiles to the SVG file. Profiles from the same
// step share a colour; the colours ramp from blue to red across steps.
func (d *SVGDrawer) Draw() error {
	file, err := os.Create(d.svgFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.svgFileName)
	}
	defer file.Close()

	desc, err := d.describe()
	if err != nil {
		return err
	}

	tpl, err := template.New("svgTemplate").Parse(svgTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(file, desc)
	if err != nil {
		return errors.Wrapf(err, "unable to render %s", d.svgFileName)
	}

	return nil
}

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="{{.ViewBox}}">
	<g transform="scale(1,-1)" fill="none" stroke-width="{{.StrokeWidth}}">
	{{range .Paths}}
		<path d="{{.D}}" stroke="{{.Color}}"><title>{{.Step}}</title></path>
	{{end}}
	</g>
	</svg>
	`

type description struct {
	ViewBox     string
	StrokeWidth string
	Paths       []path
}

type path struct {
	Step  string
	D     string
	Color string
}

func (d *SVGDrawer) describe() (description, error) {
	desc := description{}

	stepColors, err := d.stepColors()
	if err != nil {
		return desc, err
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, np := range d.profiles {
		pts := np.profile.Flatten(arcChords)

		var sb strings.Builder
		for i, pt := range pts {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}

			fmt.Fprintf(&sb, "%s %.4f %.4f ", cmd, pt.X, pt.Y)

			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}

		if np.profile.Closed() {
			sb.WriteString("Z")
		}

		desc.Paths = append(desc.Paths, path{
			Step:  np.step,
			D:     sb.String(),
			Color: stepColors[np.step],
		})
	}

	if len(desc.Paths) == 0 {
		desc.ViewBox = "0 0 1 1"
		desc.StrokeWidth = "0.01"

		return desc, nil
	}

	// The Y flip in the template mirrors the viewBox vertically.
	margin := math.Max(maxX-minX, maxY-minY) * 0.05
	desc.ViewBox = fmt.Sprintf("%.4f %.4f %.4f %.4f",
		minX-margin, -maxY-margin,
		(maxX-minX)+2*margin, (maxY-minY)+2*margin)
	desc.StrokeWidth = fmt.Sprintf("%.4f", math.Max(maxX-minX, maxY-minY)/200)

	return desc, nil
}

// stepColors assigns each step a colour on a blue-to-red ramp, in sorted
// step-name order so the assignment is deterministic.
func (d *SVGDrawer) stepColors() (map[string]string, error) {
	names := make([]string, 0, len(d.profiles))
	seen := make(map[string]struct{})

	for _, np := range d.profiles {
		if _, ok := seen[np.step]; ok {
			continue
		}

		seen[np.step] = struct{}{}
		names = append(names, np.step)
	}

	sort.Strings(names)

	stepColors := make(map[string]string, len(names))

	for i, name := range names {
		fraction := 0.0
		if len(names) > 1 {
			fraction = float64(i) / float64(len(names)-1)
		}

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		c, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return nil, errors.Wrap(err, "unable to get colour")
		}

		stepColors[name] = c.ToHEX().String()
	}

	return stepColors, nil
}
