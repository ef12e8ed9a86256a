package pdf2html

// Notes:
// - Config: validation of destination, output name, page range and both
//   resolutions; the background resolution only matters with ProcessNonText.
// - Color: parsing of short and long hex forms.

import (
	"errors"
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestConfig_Validate - Configuration validation
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"empty destination", func(c *Config) { c.DestDir = "" }, ErrEmptyDestDir},
		{"empty output name", func(c *Config) { c.OutputFilename = "" }, ErrInvalidOutputFilename},
		{"output with separator", func(c *Config) { c.OutputFilename = "a/b.html" }, ErrInvalidOutputFilename},
		{"output with backslash", func(c *Config) { c.OutputFilename = `a\b.html` }, ErrInvalidOutputFilename},
		{"output dotdot", func(c *Config) { c.OutputFilename = ".." }, ErrInvalidOutputFilename},
		{"output collides with css", func(c *Config) { c.OutputFilename = CSSFilename }, ErrInvalidOutputFilename},
		{"output collides with background", func(c *Config) { c.OutputFilename = "p1.png" }, ErrInvalidOutputFilename},
		{"output collides with hex background", func(c *Config) { c.OutputFilename = "p1f.png" }, ErrInvalidOutputFilename},
		{"output collides with background upper case", func(c *Config) { c.OutputFilename = "PA.PNG" }, ErrInvalidOutputFilename},
		{"output collides with partial stream", func(c *Config) { c.OutputFilename = "index.html.part" }, ErrInvalidOutputFilename},
		{"output png not a page name", func(c *Config) { c.OutputFilename = "page.png" }, nil},
		{"output bare p png", func(c *Config) { c.OutputFilename = "p.png" }, nil},
		{"first page zero", func(c *Config) { c.FirstPage = 0 }, ErrInvalidPageRange},
		{"last before first", func(c *Config) { c.FirstPage, c.LastPage = 3, 2 }, ErrInvalidPageRange},
		{"foreground dpi zero", func(c *Config) { c.Resolution.H = 0 }, ErrInvalidResolution},
		{"foreground dpi NaN", func(c *Config) { c.Resolution.V = math.NaN() }, ErrInvalidResolution},
		{"foreground dpi too high", func(c *Config) { c.Resolution.V = MaxDPI + 1 }, ErrInvalidResolution},
		{"bad background ignored when disabled", func(c *Config) { c.BackgroundResolution.H = 0 }, nil},
		{
			name: "bad background rejected when enabled",
			mutate: func(c *Config) {
				c.ProcessNonText = true
				c.BackgroundResolution.H = 0
			},
			wantErr: ErrInvalidResolution,
		},
		{"staging equals destination", func(c *Config) { c.TmpDir = c.DestDir }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig("out")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_StagingNames(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig("out")
	cfg.TmpDir = ""
	if got := cfg.stagingDir(); got != "out" {
		t.Errorf("stagingDir() = %q, want fallback to destination", got)
	}
	if got := cfg.partialFilename(); got != "index.html.part" {
		t.Errorf("partialFilename() = %q, want index.html.part", got)
	}
	if cfg.partialFilename() == cfg.OutputFilename {
		t.Error("partial output collides with the deliverable")
	}
}

func TestPageFilename(t *testing.T) {
	t.Parallel()

	for index, want := range map[int]string{1: "p1.png", 10: "pa.png", 255: "pff.png"} {
		if got := pageFilename(index); got != want {
			t.Errorf("pageFilename(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestResolution_Scale(t *testing.T) {
	t.Parallel()

	sx, sy := Resolution{H: 144, V: 36}.Scale()
	if sx != 2 || sy != 0.5 {
		t.Errorf("Scale() = (%v, %v), want (2, 0.5)", sx, sy)
	}
}

// ---------------------------------------------------------------------------
// TestParseColor - Hex colors
// ---------------------------------------------------------------------------

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"#000000", Black, false},
		{"#ff8000", Color{R: 0xff, G: 0x80}, false},
		{"#F80", Color{R: 0xff, G: 0x88}, false},
		{"  #0a0b0c ", Color{R: 0x0a, G: 0x0b, B: 0x0c}, false},
		{"#ff80", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.wantErr && got.Hex() != "#"+hexOf(got) {
				t.Errorf("Hex() = %q", got.Hex())
			}
		})
	}
}

func hexOf(c Color) string {
	const digits = "0123456789abcdef"
	b := []byte{}
	for _, v := range []uint8{c.R, c.G, c.B} {
		b = append(b, digits[v>>4], digits[v&0xf])
	}
	return string(b)
}

// ---------------------------------------------------------------------------
// TestErrors - Typed errors
// ---------------------------------------------------------------------------

func TestBackgroundError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &BackgroundError{Pages: []PageError{{Page: 3, Err: cause}, {Page: 1, Err: cause}}}

	if got, want := err.Error(), "background render failed for 2 page(s): 1, 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrBackgroundRender) || !errors.Is(err, cause) {
		t.Error("BackgroundError must unwrap to the sentinel and the page causes")
	}
	var pe PageError
	if !errors.As(err, &pe) || pe.Page != 3 {
		t.Errorf("errors.As PageError = %+v, want page 3", pe)
	}
}

func TestSequenceError(t *testing.T) {
	t.Parallel()

	err := &SequenceError{Page: 4, Reason: "page not ended"}
	if got, want := err.Error(), "page event sequence violated: page 4: page not ended"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrSequence) {
		t.Error("SequenceError must wrap ErrSequence")
	}
}
