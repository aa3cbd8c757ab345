package main

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/arloliu/splitkit/filter"
	"github.com/arloliu/splitkit/site"
	"github.com/arloliu/splitkit/source"
	"github.com/arloliu/splitkit/types"
)

// sourceSpec is the JSON form of a point or area source.
type sourceSpec struct {
	Type   string       `json:"type"`
	ID     string       `json:"id"`
	TRT    string       `json:"trt"`
	MinMag float64      `json:"minMag"`
	MaxMag float64      `json:"maxMag"`
	Lon    float64      `json:"lon,omitempty"`
	Lat    float64      `json:"lat,omitempty"`
	Ring   [][2]float64 `json:"ring,omitempty"`
}

func (s sourceSpec) build() (types.Source, error) {
	switch s.Type {
	case "point", "":
		return source.NewPoint(s.ID, s.TRT, s.MinMag, s.MaxMag, s.Lon, s.Lat), nil
	case "area":
		if len(s.Ring) < 3 {
			return nil, fmt.Errorf("source %s: area needs at least 3 vertices", s.ID)
		}
		ring := make(orb.Ring, len(s.Ring))
		for i, p := range s.Ring {
			ring[i] = orb.Point(p)
		}

		return source.NewArea(s.ID, s.TRT, s.MinMag, s.MaxMag, ring), nil
	default:
		return nil, fmt.Errorf("source %s: unknown type %q", s.ID, s.Type)
	}
}

type matchView struct {
	ID       string `json:"id"`
	TRT      string `json:"trt"`
	NumSites int    `json:"numSites"`
	SiteIDs  []int  `json:"siteIds,omitempty"`
}

type filterReport struct {
	Mode    string      `json:"mode"`
	Kept    []matchView `json:"kept"`
	Dropped int         `json:"dropped"`
}

func (r filterReport) WriteText(w io.Writer) error {
	for _, m := range r.Kept {
		if _, err := fmt.Fprintf(w, "%-20s %-28s sites=%d\n", m.ID, m.TRT, m.NumSites); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "mode=%s kept=%d dropped=%d\n", r.Mode, len(r.Kept), r.Dropped)

	return err
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Keep the sources that affect at least one site",
	Long: "Reads sites ({ids, lons, lats}) and sources (array of point or area specs) and " +
		"prints the sources within the integration distance of at least one site. The " +
		"distance comes from --distance or from integrationDistance in the config file.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		sitesPath, _ := f.GetString("sites")
		sourcesPath, _ := f.GetString("sources")

		var sites site.Collection
		if err := readJSON(cmd, sitesPath, &sites); err != nil {
			return err
		}
		var specs []sourceSpec
		if err := readJSON(cmd, sourcesPath, &specs); err != nil {
			return err
		}
		sources := make([]types.Source, 0, len(specs))
		for _, s := range specs {
			src, err := s.build()
			if err != nil {
				return err
			}
			sources = append(sources, src)
		}

		dist := cfg.IntegrationDistance
		if f.Changed("distance") {
			km, _ := f.GetFloat64("distance")
			d, err := filter.NewScalar(km)
			if err != nil {
				return err
			}
			dist = d
		}

		opts := []filter.Option{filter.WithLogger(logger), filter.WithMetrics(collector)}
		if noIndex, _ := f.GetBool("no-index"); noIndex {
			opts = append(opts, filter.WithoutIndex())
		}
		sf := filter.New(&sites, dist, opts...)
		withSites, _ := f.GetBool("with-sites")

		r := filterReport{Mode: sf.Mode().String(), Kept: []matchView{}}
		for m, err := range sf.Filter(source.NewStatic(sources).All()) {
			if err != nil {
				return err
			}
			view := matchView{ID: m.Source.ID(), TRT: m.Source.TectonicRegionType(), NumSites: m.NumSites}
			if withSites && m.Sites != nil {
				view.SiteIDs = m.Sites.IDs()
			}
			r.Kept = append(r.Kept, view)
		}
		r.Dropped = len(sources) - len(r.Kept)

		return render(cmd, r)
	},
}

func init() {
	f := filterCmd.Flags()
	f.String("sites", "", "sites JSON file")
	f.String("sources", "", "sources JSON file")
	f.Float64("distance", 0, "integration distance in km for every region")
	f.Bool("no-index", false, "filter by distance instead of the spatial index")
	f.Bool("with-sites", false, "include affected site ids in the output")
	_ = filterCmd.MarkFlagRequired("sites")
	_ = filterCmd.MarkFlagRequired("sources")
	rootCmd.AddCommand(filterCmd)
}
