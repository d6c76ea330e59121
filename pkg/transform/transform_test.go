package transform

import (
	"math"
	"testing"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

const tolerance = 1e-3

func closeTo(a, b geom.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want Result
	}{
		{
			name: "uniform letterbox horizontally",
			p:    Params{Image: geom.Sz(800, 600), Control: geom.Sz(1024, 600), Stretch: Uniform},
			want: Result{ScaleX: 1, ScaleY: 1, OffsetX: 112, OffsetY: 0},
		},
		{
			name: "uniform to fill crops vertically",
			p:    Params{Image: geom.Sz(800, 600), Control: geom.Sz(1024, 600), Stretch: UniformToFill},
			want: Result{ScaleX: 1.28, ScaleY: 1.28, OffsetX: 0, OffsetY: -84},
		},
		{
			name: "fill distorts",
			p:    Params{Image: geom.Sz(800, 600), Control: geom.Sz(1024, 600), Stretch: Fill},
			want: Result{ScaleX: 1.28, ScaleY: 1, OffsetX: 0, OffsetY: 0},
		},
		{
			name: "dpi halves image dips",
			p:    Params{Image: geom.Sz(800, 600), Control: geom.Sz(800, 600), DPIScaleX: 2, DPIScaleY: 2},
			want: Result{ScaleX: 2, ScaleY: 2, OffsetX: 0, OffsetY: 0},
		},
		{
			name: "rounding of repeating fractions",
			p:    Params{Image: geom.Sz(3, 3), Control: geom.Sz(1, 2)},
			want: Result{ScaleX: 0.33333333, ScaleY: 0.33333333, OffsetX: 0, OffsetY: 0.5},
		},
		{
			name: "zero image is identity",
			p:    Params{Image: geom.Sz(0, 600), Control: geom.Sz(800, 600)},
			want: Identity,
		},
		{
			name: "negative control is identity",
			p:    Params{Image: geom.Sz(800, 600), Control: geom.Sz(-1, 600)},
			want: Identity,
		},
		{
			name: "zero dpi treated as one",
			p:    Params{Image: geom.Sz(100, 100), Control: geom.Sz(200, 200), DPIScaleX: 0, DPIScaleY: -3},
			want: Result{ScaleX: 2, ScaleY: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(tt.p); got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToScreen(t *testing.T) {
	p := Params{Image: geom.Sz(800, 600), Control: geom.Sz(1024, 600), Stretch: Uniform}
	got := ToScreen(geom.Pt(100, 100), p)
	if got != geom.Pt(212, 100) {
		t.Errorf("ToScreen() = %v, want (212,100)", got)
	}
}

func TestRoundTrip(t *testing.T) {
	images := []geom.Size{geom.Sz(800, 600), geom.Sz(600, 800), geom.Sz(1, 1), geom.Sz(4096, 97), geom.Sz(333, 777)}
	controls := []geom.Size{geom.Sz(1024, 600), geom.Sz(300, 900), geom.Sz(1920, 1080), geom.Sz(17, 13)}
	dpis := [][2]float64{{1, 1}, {1.5, 1.5}, {2, 1}, {0.75, 3.125}}
	modes := []StretchMode{Uniform, UniformToFill, Fill}

	for _, img := range images {
		for _, ctl := range controls {
			for _, dpi := range dpis {
				for _, mode := range modes {
					p := Params{Image: img, Control: ctl, DPIScaleX: dpi[0], DPIScaleY: dpi[1], Stretch: mode}
					samples := []geom.Point{
						geom.Pt(0, 0),
						geom.Pt((img.W-1)/2, (img.H-1)/3),
						geom.Pt(img.W-1, img.H-1),
						geom.Pt((img.W-1)*0.9, (img.H-1)*0.1),
					}
					for _, px := range samples {
						back := ToPixel(ToScreen(px, p), p)
						if !closeTo(back, px, tolerance) {
							t.Errorf("round trip %v via %+v = %v", px, p, back)
						}
					}
				}
			}
		}
	}
}

func TestToPixelClamps(t *testing.T) {
	p := Params{Image: geom.Sz(800, 600), Control: geom.Sz(1024, 600), Stretch: Uniform}

	tests := []struct {
		name   string
		screen geom.Point
		want   geom.Point
	}{
		{"left letterbox", geom.Pt(5, 300), geom.Pt(0, 300)},
		{"right letterbox", geom.Pt(1020, 300), geom.Pt(799, 300)},
		{"far negative", geom.Pt(-1e9, -1e9), geom.Pt(0, 0)},
		{"far positive", geom.Pt(1e9, 1e9), geom.Pt(799, 599)},
		{"inside", geom.Pt(512, 300), geom.Pt(400, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPixel(tt.screen, p)
			if !closeTo(got, tt.want, 1e-9) {
				t.Errorf("ToPixel(%v) = %v, want %v", tt.screen, got, tt.want)
			}
			if got.X < 0 || got.Y < 0 || got.X > 799 || got.Y > 599 {
				t.Errorf("ToPixel(%v) = %v outside image", tt.screen, got)
			}
		})
	}
}

func TestToPixelDegenerateImage(t *testing.T) {
	p := Params{Image: geom.Sz(0, 0), Control: geom.Sz(100, 100)}
	got := ToPixel(geom.Pt(-5, 42), p)
	if got != geom.Pt(-5, 42) {
		t.Errorf("ToPixel() = %v, want identity (-5,42)", got)
	}
}

func TestNormalize(t *testing.T) {
	img := geom.Sz(800, 600)
	got := Normalize(geom.Pt(100, 100), img)
	if !closeTo(got, geom.Pt(0.125, 0.1667), tolerance) {
		t.Errorf("Normalize() = %v, want (0.125,0.1667)", got)
	}
	if back := Denormalize(got, img); !closeTo(back, geom.Pt(100, 100), 1e-9) {
		t.Errorf("Denormalize() = %v, want (100,100)", back)
	}
	if got := Normalize(geom.Pt(5, 5), geom.Sz(0, 10)); got != (geom.Point{}) {
		t.Errorf("Normalize(degenerate) = %v, want origin", got)
	}
}

func TestNormalizedToScreenMatchesToScreen(t *testing.T) {
	p := Params{Image: geom.Sz(640, 480), Control: geom.Sz(500, 500), DPIScaleX: 1.25, DPIScaleY: 1.25, Stretch: Uniform}
	px := geom.Pt(320, 120)
	a := ToScreen(px, p)
	b := NormalizedToScreen(Normalize(px, p.Image), p)
	if !closeTo(a, b, 1e-9) {
		t.Errorf("NormalizedToScreen() = %v, ToScreen() = %v", b, a)
	}
}

func TestResultMatrix(t *testing.T) {
	p := Params{Image: geom.Sz(800, 600), Control: geom.Sz(1024, 600), DPIScaleX: 2, DPIScaleY: 2, Stretch: Fill}
	r := Calculate(p)
	m := r.Matrix(p)
	px := geom.Pt(123, 456)
	if got, want := m.Apply(px), r.ToScreen(px, p); !closeTo(got, want, 1e-9) {
		t.Errorf("Matrix.Apply() = %v, want %v", got, want)
	}

	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}
	if got := inv.Apply(m.Apply(px)); !closeTo(got, px, 1e-9) {
		t.Errorf("inverse round trip = %v, want %v", got, px)
	}

	if _, ok := (Matrix{}).Invert(); ok {
		t.Error("Invert(zero) should report singular")
	}
}

func TestParseStretchMode(t *testing.T) {
	tests := []struct {
		in      string
		want    StretchMode
		wantErr bool
	}{
		{"uniform", Uniform, false},
		{"", Uniform, false},
		{"Uniform-To-Fill", UniformToFill, false},
		{"uniform_to_fill", UniformToFill, false},
		{"UniformToFill", UniformToFill, false},
		{"fill", Fill, false},
		{"stretch", Uniform, true},
	}
	for _, tt := range tests {
		got, err := ParseStretchMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStretchMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStretchMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStretchModeText(t *testing.T) {
	var m StretchMode
	if err := m.UnmarshalText([]byte("fill")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if m != Fill {
		t.Errorf("UnmarshalText = %v, want fill", m)
	}
	b, _ := UniformToFill.MarshalText()
	if string(b) != "uniform-to-fill" {
		t.Errorf("MarshalText = %s, want uniform-to-fill", b)
	}
}
