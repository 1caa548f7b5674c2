package pptx

import (
	"strings"
	"testing"
)

func TestNewColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"FF0000", "FFFF0000"},
		{"#00ff00", "FF00FF00"},
		{"f00", "FFFF0000"},
		{"#abc", "FFAABBCC"},
		{"80112233", "80112233"},
		{"", "FF000000"},
		{"zzzzzz", "FF000000"},
		{"12345", "FF000000"},
	}
	for _, tt := range tests {
		if got := NewColor(tt.in).ARGB; got != tt.want {
			t.Errorf("NewColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestColorAlpha(t *testing.T) {
	c := NewColor("336699")
	if c.GetAlpha() != 255 {
		t.Errorf("alpha = %d, want 255", c.GetAlpha())
	}
	half := c.WithAlpha(0.5)
	if half.RGB() != "336699" {
		t.Errorf("WithAlpha changed rgb: %s", half.RGB())
	}
	if a := half.GetAlpha(); a < 126 || a > 129 {
		t.Errorf("alpha = %d, want about 128", a)
	}
	if c.WithAlpha(7).GetAlpha() != 255 || c.WithAlpha(-1).GetAlpha() != 0 {
		t.Error("opacity not clamped to 0..1")
	}
	if !strings.Contains(srgbXML(half), "<a:alpha ") {
		t.Error("translucent color must render an alpha child")
	}
	if strings.Contains(srgbXML(c), "<a:alpha ") {
		t.Error("opaque color must not render an alpha child")
	}
}

func TestFontSizeClamp(t *testing.T) {
	f := NewFont()
	if f.SetSize(0).Size != 1 {
		t.Errorf("size below 1 not clamped: %v", f.Size)
	}
	if f.SetSize(10000).Size != 4000 {
		t.Errorf("size above 4000 not clamped: %v", f.Size)
	}
	if f.SetSize(10.5).sizeHundredths() != 1050 {
		t.Errorf("sizeHundredths = %d", f.sizeHundredths())
	}
}

func TestMeasurements(t *testing.T) {
	if Inch(1) != 914400 {
		t.Errorf("Inch(1) = %d", Inch(1))
	}
	if Point(1) != 12700 {
		t.Errorf("Point(1) = %d", Point(1))
	}
	if Pixel(96) != Inch(1) {
		t.Errorf("Pixel(96) = %d, want %d", Pixel(96), Inch(1))
	}
	if EMUToInch(Inch(2.5)) != 2.5 {
		t.Errorf("EMUToInch round trip failed")
	}
	if Inch(1e30) <= 0 {
		t.Error("huge values must clamp, not overflow")
	}
}

func TestLayouts(t *testing.T) {
	l := NewDocumentLayout()
	if l.CX != 9144000 || l.CY != 5143500 || l.Name != LayoutScreen16x9 {
		t.Errorf("default layout = %+v", l)
	}
	l.SetLayout("bogus")
	if l.Name != LayoutScreen16x9 {
		t.Error("unknown layout name must leave the layout unchanged")
	}
	l.SetCustomLayout(-1, Inch(3))
	if l.CX != 9144000 || l.CY != Inch(3) || l.presentationSlideSizeType() != "custom" {
		t.Errorf("custom layout = %+v", l)
	}
}

func TestValidate(t *testing.T) {
	p := New()
	if err := p.Validate(); err != nil {
		t.Errorf("new presentation should validate: %v", err)
	}

	slide := p.GetActiveSlide()
	slide.CreateDrawingShape()
	slide.CreateChartShape()
	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"picture has no image data or source", "chart shape has no chart type set"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}

func TestExtractText(t *testing.T) {
	p := New()
	slide := p.GetActiveSlide()
	slide.CreateRichTextShape().CreateTextRun("Title")
	slide.CreateAutoShape().SetText("Button")
	tbl := slide.CreateTableShape(1, 2)
	tbl.GetCell(0, 1).SetText("Cell")

	if got := slide.ExtractText(); got != "Title\nButton\nCell" {
		t.Errorf("ExtractText = %q", got)
	}
}
