package export_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/svgmapper/pkg/export"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
)

func ExampleFormatPoints() {
	pts := []geom.Point{geom.Pt(100, 100), geom.Pt(1.0/3, 2.5), geom.Pt(-0.00001, 7)}
	fmt.Println(export.FormatPoints(pts))
	// Output: 100,100 0.3333,2.5 0,7
}

func ExampleExporter_ExportSVG() {
	doc := model.NewDocument()
	doc.Rooms.Append(model.NewRoom("Lobby", []geom.Point{
		geom.Pt(100, 100), geom.Pt(300, 100), geom.Pt(300, 300), geom.Pt(100, 300),
	}))

	out := export.New().ExportSVG(context.Background(), doc)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "<polygon") {
			fmt.Println(line[:strings.Index(line, " fill=")])
		}
	}
	// Output: <polygon points="100,100 300,100 300,300 100,300" data-label="Lobby"
}
